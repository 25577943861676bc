package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"car_rental/internal/model"

	"github.com/jackc/pgx/v5"
)

var (
	// ErrCarNotFound is returned when a booking references a car that does not exist.
	ErrCarNotFound = errors.New("car not found")
	// ErrCarUnavailable is returned when the conditional availability hold loses
	// to a concurrent booking (zero rows updated).
	ErrCarUnavailable = errors.New("car is not available")
	// ErrInvalidTransition is returned when a status update's precondition on the
	// current status does not hold.
	ErrInvalidTransition = errors.New("booking is not in a state that allows this transition")
)

// BookingRepository defines operations for booking data
type BookingRepository interface {
	// CreateWithHold inserts the booking and flips the car's available flag in a
	// single transaction. The flip is a conditional write, so of two racing
	// bookings for the same car exactly one commits.
	CreateWithHold(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id int64) (*model.Booking, error)
	FindByUser(ctx context.Context, userID int) ([]model.Booking, error)
	FindAll(ctx context.Context, filters model.BookingFilters) ([]model.Booking, error)
	Confirm(ctx context.Context, id int64) error
	CancelAndRelease(ctx context.Context, id int64) error
	CompleteAndRelease(ctx context.Context, id int64) error
}

type bookingRepository struct {
	db DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db DB) BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, reference, user_id, car_id, start_date, end_date, total_price, status, created_at, updated_at`

func scanBooking(row pgx.Row, b *model.Booking) error {
	return row.Scan(&b.ID, &b.Reference, &b.UserID, &b.CarID, &b.StartDate, &b.EndDate, &b.TotalPrice, &b.Status, &b.CreatedAt, &b.UpdatedAt)
}

// CreateWithHold books a car: conditional availability flip plus booking insert,
// both in one transaction.
func (r *bookingRepository) CreateWithHold(ctx context.Context, b *model.Booking) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin booking transaction: %w", err)
	}
	defer tx.Rollback(ctx) // No-op after a successful commit

	holdSQL := `UPDATE cars SET available = FALSE, updated_at = NOW() WHERE id = $1 AND available = TRUE`
	cmdTag, err := tx.Exec(ctx, holdSQL, b.CarID)
	if err != nil {
		return fmt.Errorf("failed to hold car availability: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Distinguish a missing car from one already held.
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM cars WHERE id = $1)`, b.CarID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check car existence: %w", err)
		}
		if !exists {
			return ErrCarNotFound
		}
		return ErrCarUnavailable
	}

	insertSQL := `INSERT INTO bookings (reference, user_id, car_id, start_date, end_date, total_price, status)
	              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at, updated_at`
	err = tx.QueryRow(ctx, insertSQL, b.Reference, b.UserID, b.CarID, b.StartDate, b.EndDate, b.TotalPrice, b.Status).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit booking transaction: %w", err)
	}
	return nil
}

// FindByID retrieves a booking by its ID
func (r *bookingRepository) FindByID(ctx context.Context, id int64) (*model.Booking, error) {
	b := &model.Booking{}
	sql := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	err := scanBooking(r.db.QueryRow(ctx, sql, id), b)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return b, nil
}

// FindByUser retrieves a user's bookings, newest first
func (r *bookingRepository) FindByUser(ctx context.Context, userID int) ([]model.Booking, error) {
	sql := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, sql, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings by user: %w", err)
	}
	defer rows.Close()
	return collectBookings(rows)
}

// FindAll retrieves all bookings with optional filters for admin
func (r *bookingRepository) FindAll(ctx context.Context, filters model.BookingFilters) ([]model.Booking, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + bookingColumns + ` FROM bookings`)

	args := []interface{}{}
	argCount := 1
	var conditions []string

	if filters.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argCount))
		args = append(args, *filters.UserID)
		argCount++
	}
	if filters.CarID != nil {
		conditions = append(conditions, fmt.Sprintf("car_id = $%d", argCount))
		args = append(args, *filters.CarID)
		argCount++
	}
	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCount))
		args = append(args, *filters.Status)
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY created_at DESC")

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query all bookings: %w", err)
	}
	defer rows.Close()
	return collectBookings(rows)
}

func collectBookings(rows pgx.Rows) ([]model.Booking, error) {
	var bookings []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, fmt.Errorf("failed to scan booking row: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating booking rows: %w", err)
	}
	return bookings, nil
}

// Confirm moves a pending booking to confirmed. The car stays held.
func (r *bookingRepository) Confirm(ctx context.Context, id int64) error {
	sql := `UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`
	cmdTag, err := r.db.Exec(ctx, sql, model.BookingStatusConfirmed, id, model.BookingStatusPending)
	if err != nil {
		return fmt.Errorf("failed to confirm booking: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrInvalidTransition
	}
	return nil
}

// CancelAndRelease cancels a pending or confirmed booking and returns its car to
// the available pool, atomically.
func (r *bookingRepository) CancelAndRelease(ctx context.Context, id int64) error {
	return r.closeAndRelease(ctx, id, model.BookingStatusCancelled,
		[]string{model.BookingStatusPending, model.BookingStatusConfirmed})
}

// CompleteAndRelease marks a confirmed booking completed and returns its car to
// the available pool, atomically.
func (r *bookingRepository) CompleteAndRelease(ctx context.Context, id int64) error {
	return r.closeAndRelease(ctx, id, model.BookingStatusCompleted,
		[]string{model.BookingStatusConfirmed})
}

func (r *bookingRepository) closeAndRelease(ctx context.Context, id int64, toStatus string, fromStatuses []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin release transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// The status guard makes a repeated cancel/complete a no-op conflict instead
	// of a double release.
	updateSQL := `UPDATE bookings SET status = $1, updated_at = NOW()
	              WHERE id = $2 AND status = ANY($3) RETURNING car_id`
	var carID int
	err = tx.QueryRow(ctx, updateSQL, toStatus, id, fromStatuses).Scan(&carID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrInvalidTransition
		}
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	releaseSQL := `UPDATE cars SET available = TRUE, updated_at = NOW() WHERE id = $1 AND available = FALSE`
	if _, err := tx.Exec(ctx, releaseSQL, carID); err != nil {
		return fmt.Errorf("failed to release car availability: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit release transaction: %w", err)
	}
	return nil
}
