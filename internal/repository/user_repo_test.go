package repository

import (
	"context"
	"testing"
	"time"

	"car_rental/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("a@x.com", "hashed", model.RoleUser, "Alice", "555-0100", "DL-1", "1 Main St").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(1, now, now))

	repo := NewUserRepository(mock)
	user := &model.User{
		Email:         "a@x.com",
		PasswordHash:  "hashed",
		Role:          model.RoleUser,
		Name:          "Alice",
		Phone:         "555-0100",
		LicenseNumber: "DL-1",
		Address:       "1 Main St",
	}

	err = repo.Create(context.Background(), user)
	assert.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	repo := NewUserRepository(mock)
	err = repo.Create(context.Background(), &model.User{Email: "a@x.com", PasswordHash: "h", Role: model.RoleUser, Name: "Alice"})

	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("missing@x.com").
		WillReturnError(pgx.ErrNoRows)

	repo := NewUserRepository(mock)
	user, err := repo.FindByEmail(context.Background(), "missing@x.com")

	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs(3).
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "password_hash", "role", "name", "phone", "license_number", "address", "created_at", "updated_at"}).
			AddRow(3, "c@x.com", "hash", model.RoleAdmin, "Carol", "", "", "", now, now))

	repo := NewUserRepository(mock)
	user, err := repo.FindByID(context.Background(), 3)

	assert.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "c@x.com", user.Email)
	assert.Equal(t, model.RoleAdmin, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}
