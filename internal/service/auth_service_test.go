package service

import (
	"context"
	"testing"

	"car_rental/internal/model"
	"car_rental/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService() (AuthService, *memUserRepo) {
	repo := newMemUserRepo()
	return NewAuthService(repo, utils.NewJWTUtil("test-secret", 1)), repo
}

func registerReq(email string) model.RegisterRequest {
	return model.RegisterRequest{
		Email:    email,
		Password: "secret1",
		Name:     "Test User",
	}
}

func TestAuthService_Register(t *testing.T) {
	svc, _ := newAuthService()

	user, token, err := svc.Register(context.Background(), registerReq("A@X.com"))

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "a@x.com", user.Email, "email should be normalized to lower case")
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("secret1", user.PasswordHash))
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, repo := newAuthService()

	_, _, err := svc.Register(context.Background(), registerReq("a@x.com"))
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), registerReq("a@x.com"))
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	users, _ := repo.FindAll(context.Background())
	assert.Len(t, users, 1, "exactly one user record must exist after a duplicate registration")
}

func TestAuthService_Register_InitialAdmin(t *testing.T) {
	t.Setenv("INITIAL_ADMIN_EMAIL", "admin@x.com")
	svc, _ := newAuthService()

	user, _, err := svc.Register(context.Background(), registerReq("admin@x.com"))

	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)
}

func TestAuthService_Login(t *testing.T) {
	svc, _ := newAuthService()
	_, _, err := svc.Register(context.Background(), registerReq("a@x.com"))
	require.NoError(t, err)

	user, token, err := svc.Login(context.Background(), "a@x.com", "secret1")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "a@x.com", user.Email)
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newAuthService()
	_, _, err := svc.Register(context.Background(), registerReq("a@x.com"))
	require.NoError(t, err)

	_, _, wrongPassErr := svc.Login(context.Background(), "a@x.com", "wrongpass")
	_, _, unknownEmailErr := svc.Login(context.Background(), "nobody@x.com", "secret1")

	assert.ErrorIs(t, wrongPassErr, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmailErr, ErrInvalidCredentials)
	assert.Equal(t, wrongPassErr.Error(), unknownEmailErr.Error())
}

func TestAuthService_UpdateProfile(t *testing.T) {
	svc, _ := newAuthService()
	user, _, err := svc.Register(context.Background(), registerReq("a@x.com"))
	require.NoError(t, err)

	phone := "555-0100"
	updated, err := svc.UpdateProfile(context.Background(), user.ID, model.UpdateProfileRequest{Phone: &phone})

	require.NoError(t, err)
	assert.Equal(t, "555-0100", updated.Phone)
	assert.Equal(t, "Test User", updated.Name, "untouched fields must survive a partial update")
}

func TestAuthService_GetProfile_NotFound(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.GetProfile(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
