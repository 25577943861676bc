package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"car_rental/internal/model"

	"github.com/jackc/pgx/v5"
)

// CarRepository defines operations for car catalog data
type CarRepository interface {
	Create(ctx context.Context, car *model.Car) error
	FindByID(ctx context.Context, id int) (*model.Car, error)
	FindAll(ctx context.Context, filters model.CarFilters) ([]model.Car, error)
	Update(ctx context.Context, car *model.Car) error
	Delete(ctx context.Context, id int) error
}

type carRepository struct {
	db DB
}

// NewCarRepository creates a new CarRepository
func NewCarRepository(db DB) CarRepository {
	return &carRepository{db: db}
}

const carColumns = `id, make, model, year, type, fuel_type, transmission, seating_capacity, price_per_day, available, registration_number, image, features, description, created_at, updated_at`

func scanCar(row pgx.Row, c *model.Car) error {
	return row.Scan(
		&c.ID, &c.Make, &c.Model, &c.Year, &c.Type, &c.FuelType, &c.Transmission,
		&c.SeatingCapacity, &c.PricePerDay, &c.Available, &c.RegistrationNumber,
		&c.Image, &c.Features, &c.Description, &c.CreatedAt, &c.UpdatedAt,
	)
}

// Create inserts a new car into the catalog
func (r *carRepository) Create(ctx context.Context, c *model.Car) error {
	sql := `INSERT INTO cars (make, model, year, type, fuel_type, transmission, seating_capacity, price_per_day, available, registration_number, image, features, description)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql,
		c.Make, c.Model, c.Year, c.Type, c.FuelType, c.Transmission,
		c.SeatingCapacity, c.PricePerDay, c.Available, c.RegistrationNumber,
		c.Image, c.Features, c.Description,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to create car: %w", err)
	}
	return nil
}

// FindByID retrieves a car by its ID
func (r *carRepository) FindByID(ctx context.Context, id int) (*model.Car, error) {
	c := &model.Car{}
	sql := `SELECT ` + carColumns + ` FROM cars WHERE id = $1`
	err := scanCar(r.db.QueryRow(ctx, sql, id), c)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find car by ID: %w", err)
	}
	return c, nil
}

// FindAll retrieves cars matching the given filters
func (r *carRepository) FindAll(ctx context.Context, filters model.CarFilters) ([]model.Car, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + carColumns + ` FROM cars`)

	args := []interface{}{}
	argCount := 1
	var conditions []string

	if filters.Type != nil && *filters.Type != "" {
		conditions = append(conditions, fmt.Sprintf("type = $%d", argCount))
		args = append(args, *filters.Type)
		argCount++
	}
	if filters.FuelType != nil && *filters.FuelType != "" {
		conditions = append(conditions, fmt.Sprintf("fuel_type = $%d", argCount))
		args = append(args, *filters.FuelType)
		argCount++
	}
	if filters.Transmission != nil && *filters.Transmission != "" {
		conditions = append(conditions, fmt.Sprintf("transmission = $%d", argCount))
		args = append(args, *filters.Transmission)
		argCount++
	}
	if filters.Available != nil {
		conditions = append(conditions, fmt.Sprintf("available = $%d", argCount))
		args = append(args, *filters.Available)
		argCount++
	}
	if filters.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price_per_day <= $%d", argCount))
		args = append(args, *filters.MaxPrice)
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY created_at DESC")

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cars: %w", err)
	}
	defer rows.Close()

	var cars []model.Car
	for rows.Next() {
		var c model.Car
		if err := scanCar(rows, &c); err != nil {
			return nil, fmt.Errorf("failed to scan car row: %w", err)
		}
		cars = append(cars, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating car rows: %w", err)
	}
	return cars, nil
}

// Update modifies an existing car listing
func (r *carRepository) Update(ctx context.Context, c *model.Car) error {
	sql := `UPDATE cars
            SET make = $1, model = $2, year = $3, type = $4, fuel_type = $5, transmission = $6,
                seating_capacity = $7, price_per_day = $8, image = $9, features = $10, description = $11, updated_at = NOW()
            WHERE id = $12 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql,
		c.Make, c.Model, c.Year, c.Type, c.FuelType, c.Transmission,
		c.SeatingCapacity, c.PricePerDay, c.Image, c.Features, c.Description, c.ID,
	).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("car not found for update")
		}
		return fmt.Errorf("failed to update car: %w", err)
	}
	return nil
}

// Delete removes a car from the catalog
func (r *carRepository) Delete(ctx context.Context, id int) error {
	sql := `DELETE FROM cars WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to delete car: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("car not found for deletion")
	}
	return nil
}
