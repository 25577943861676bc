package repository

import (
	"context"
	"testing"

	"car_rental/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarRepository_FindByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM cars WHERE id").
		WithArgs(99).
		WillReturnError(pgx.ErrNoRows)

	repo := NewCarRepository(mock)
	car, err := repo.FindByID(context.Background(), 99)

	assert.NoError(t, err)
	assert.Nil(t, car)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCarRepository_Create_DuplicateRegistration(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO cars").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "cars_registration_number_key"})

	repo := NewCarRepository(mock)
	err = repo.Create(context.Background(), &model.Car{
		Make: "Toyota", Model: "Corolla", Year: 2022, Type: "sedan",
		FuelType: "petrol", Transmission: "automatic", SeatingCapacity: 5,
		PricePerDay: 4500, Available: true, RegistrationNumber: "KA-01-AB-1234",
	})

	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCarRepository_Delete_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM cars").
		WithArgs(42).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewCarRepository(mock)
	err = repo.Delete(context.Background(), 42)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
