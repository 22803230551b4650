package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/jwilson7981/job-tracker-sub000/internal/auth"
	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/repository"
	"github.com/jwilson7981/job-tracker-sub000/internal/service"
	"github.com/jwilson7981/job-tracker-sub000/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newUserService(t *testing.T) (*service.UserService, *auth.TokenManager, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	tokens := auth.NewTokenManager("test-secret-key-with-enough-bytes", time.Hour)
	return service.NewUserService(repository.NewUserRepository(db), tokens, zap.NewNop()), tokens, db
}

func TestUserService_Login(t *testing.T) {
	svc, tokens, db := newUserService(t)
	ctx := context.Background()
	testutil.CreateTestUser(t, db, "dana", domain.RoleProjectManager)

	user, token, err := svc.Login(ctx, &domain.LoginRequest{Username: " dana ", Password: "dana"})
	require.NoError(t, err)
	assert.Equal(t, "dana", user.Username)

	claims, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleProjectManager, claims.Role)

	tests := []struct {
		name string
		req  domain.LoginRequest
	}{
		{"wrong password", domain.LoginRequest{Username: "dana", Password: "nope"}},
		{"unknown user", domain.LoginRequest{Username: "ghost", Password: "ghost"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Login(ctx, &tt.req)
			assert.ErrorIs(t, err, service.ErrInvalidCredentials)
		})
	}
}

func TestUserService_LoginInactive(t *testing.T) {
	svc, _, db := newUserService(t)
	ctx := context.Background()
	user := testutil.CreateTestUser(t, db, "former", domain.RoleEmployee)

	inactive := false
	_, err := svc.Update(ctx, user.ID, &domain.UpdateUserRequest{IsActive: &inactive})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, &domain.LoginRequest{Username: "former", Password: "former"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestUserService_Create(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, &domain.CreateUserRequest{
		Username: "tech1",
		Password: "pass1234",
		Role:     domain.RoleWarehouse,
	})
	require.NoError(t, err)
	assert.Equal(t, "tech1", user.DisplayName)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "pass1234", user.PasswordHash)

	_, err = svc.Create(ctx, &domain.CreateUserRequest{Username: "tech1", Password: "x1234", Role: domain.RoleEmployee})
	assert.ErrorIs(t, err, service.ErrUsernameTaken)

	_, err = svc.Create(ctx, &domain.CreateUserRequest{Username: "tech2", Password: "x1234", Role: "janitor"})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, _, err = svc.Login(ctx, &domain.LoginRequest{Username: "tech1", Password: "pass1234"})
	assert.NoError(t, err)
}

func TestUserService_UpdatePartial(t *testing.T) {
	svc, _, db := newUserService(t)
	ctx := context.Background()
	user := testutil.CreateTestUser(t, db, "sam", domain.RoleEmployee)

	name := "Sam Ortiz"
	rate := 31.5
	updated, err := svc.Update(ctx, user.ID, &domain.UpdateUserRequest{DisplayName: &name, HourlyRate: &rate})
	require.NoError(t, err)
	assert.Equal(t, "Sam Ortiz", updated.DisplayName)
	assert.Equal(t, 31.5, updated.HourlyRate)
	assert.Equal(t, domain.RoleEmployee, updated.Role)

	bad := domain.Role("janitor")
	_, err = svc.Update(ctx, user.ID, &domain.UpdateUserRequest{Role: &bad})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = svc.Update(ctx, 999, &domain.UpdateUserRequest{DisplayName: &name})
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestUserService_Current(t *testing.T) {
	svc, _, db := newUserService(t)
	user := testutil.CreateTestUser(t, db, "owner1", domain.RoleOwner)

	me, err := svc.Current(asUser(user))
	require.NoError(t, err)
	assert.Equal(t, user.ID, me.ID)
	assert.Equal(t, domain.RoleOwner, me.Role)

	_, err = svc.Current(context.Background())
	assert.ErrorIs(t, err, service.ErrUserContextRequired)
}
