package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"asset-desk/internal/dto"
	"asset-desk/internal/repositories"
	"asset-desk/pkg/config"
	"asset-desk/pkg/constants"
	apperrors "asset-desk/pkg/errors"
	"asset-desk/pkg/service"
)

func newAuthFixture() (*memStore, *fakeCache, service.JWTService, *AuthService) {
	store := newMemStore()
	cache := newFakeCache()
	jwtSvc := service.NewJWTService("test-secret", time.Hour)
	svc := NewAuthService(fakeUserRepo{store: store}, cache, jwtSvc, zap.NewNop(), config.AuthConfig{
		MaxLoginAttempts: 3,
		LockoutDuration:  15 * time.Minute,
	})
	return store, cache, jwtSvc, svc
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	_, _, _, svc := newAuthFixture()

	employee, err := svc.Register(ctx, dto.RegisterDTO{
		Name: "Ravi", Email: "Ravi@Company.com", Password: "secret1", Role: "employee",
		JoinDate: null.StringFrom("2024-02-01"),
	})
	require.NoError(t, err)
	assert.Equal(t, constants.RoleEmployee, employee.Role)
	assert.Equal(t, "ravi@company.com", employee.Email)
	assert.Equal(t, null.StringFrom("2024-02-01"), employee.JoinDate)
	assert.NotEqual(t, "secret1", employee.Password)

	admin, err := svc.Register(ctx, dto.RegisterDTO{
		Name: "Boss", Email: "admin.boss@company.com", Password: "secret1", Role: "ADMIN",
		JoinDate: null.StringFrom("2024-02-01"),
	})
	require.NoError(t, err)
	assert.False(t, admin.JoinDate.Valid)

	_, err = svc.Register(ctx, dto.RegisterDTO{Name: "Fake", Email: "boss@company.com", Password: "secret1", Role: "ADMIN"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Register(ctx, dto.RegisterDTO{Name: "Ravi", Email: "ravi@company.com", Password: "secret1", Role: "EMPLOYEE"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	_, cache, jwtSvc, svc := newAuthFixture()
	user, err := svc.Register(ctx, dto.RegisterDTO{Name: "Ravi", Email: "ravi@company.com", Password: "secret1", Role: "EMPLOYEE"})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, dto.LoginDTO{Username: "RAVI@company.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, constants.RoleEmployee, resp.Role)

	claims, err := jwtSvc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	me, err := svc.Me(ctx, claims.Session())
	require.NoError(t, err)
	assert.Equal(t, "Ravi", me.Name)

	_, err = svc.Login(ctx, dto.LoginDTO{Username: "nobody@company.com", Password: "secret1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	for i := 0; i < 3; i++ {
		_, err = svc.Login(ctx, dto.LoginDTO{Username: "ravi@company.com", Password: "wrong-pass"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}
	assert.True(t, cache.has(repositories.LockoutCacheKey(user.ID)))

	_, err = svc.Login(ctx, dto.LoginDTO{Username: "ravi@company.com", Password: "secret1"})
	assert.ErrorIs(t, err, apperrors.ErrTooManyAttempts)

	require.NoError(t, cache.Del(ctx, repositories.LockoutCacheKey(user.ID)))
	_, err = svc.Login(ctx, dto.LoginDTO{Username: "ravi@company.com", Password: "secret1"})
	require.NoError(t, err)
	assert.False(t, cache.has(repositories.LoginAttemptsCacheKey(user.ID)))
}

// brokenWriteCache читает и считает как обычно, но Set и Expire падают.
type brokenWriteCache struct {
	*fakeCache
}

var errCacheDown = errors.New("cache down")

func (c brokenWriteCache) Set(context.Context, string, interface{}, time.Duration) error {
	return errCacheDown
}

func (c brokenWriteCache) Expire(context.Context, string, time.Duration) (bool, error) {
	return false, errCacheDown
}

func TestLogin_LockoutWriteFailureIsLogged(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	cache := brokenWriteCache{fakeCache: newFakeCache()}
	core, logs := observer.New(zapcore.WarnLevel)
	svc := NewAuthService(fakeUserRepo{store: store}, cache, service.NewJWTService("test-secret", time.Hour), zap.New(core), config.AuthConfig{
		MaxLoginAttempts: 2,
		LockoutDuration:  15 * time.Minute,
	})
	user, err := svc.Register(ctx, dto.RegisterDTO{Name: "Ravi", Email: "ravi@company.com", Password: "secret1", Role: "EMPLOYEE"})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = svc.Login(ctx, dto.LoginDTO{Username: "ravi@company.com", Password: "wrong-pass"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}

	expireLogs := logs.FilterMessage("Не удалось задать срок счётчика попыток").All()
	require.Len(t, expireLogs, 1)
	assert.Equal(t, errCacheDown.Error(), expireLogs[0].ContextMap()["error"])
	assert.Equal(t, user.ID, expireLogs[0].ContextMap()["userID"])

	require.Len(t, logs.FilterMessage("Не удалось заблокировать аккаунт").All(), 1)
	assert.False(t, cache.has(repositories.LockoutCacheKey(user.ID)))
	// блокировка не записалась, поэтому счётчик сохраняется до следующей попытки
	assert.True(t, cache.has(repositories.LoginAttemptsCacheKey(user.ID)))
}
