package services

import (
	"context"
	"errors"
	"strings"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"asset-desk/internal/dto"
	"asset-desk/internal/entities"
	"asset-desk/internal/repositories"
	"asset-desk/pkg/config"
	"asset-desk/pkg/constants"
	apperrors "asset-desk/pkg/errors"
	"asset-desk/pkg/service"
	"asset-desk/pkg/types"
	"asset-desk/pkg/utils"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, payload dto.RegisterDTO) (*entities.User, error)
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error)
	Me(ctx context.Context, session types.Session) (*entities.User, error)
}

type AuthService struct {
	userRepo  repositories.UserRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	jwtSvc    service.JWTService
	logger    *zap.Logger
	cfg       config.AuthConfig
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtSvc service.JWTService,
	logger *zap.Logger,
	cfg config.AuthConfig,
) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
		jwtSvc:    jwtSvc,
		logger:    logger,
		cfg:       cfg,
	}
}

// Register - email администратора обязан содержать "admin",
// дата приёма хранится только у сотрудников.
func (s *AuthService) Register(ctx context.Context, payload dto.RegisterDTO) (*entities.User, error) {
	role := strings.ToUpper(strings.TrimSpace(payload.Role))
	if !constants.IsKnownRole(role) {
		return nil, apperrors.NewInvalidInputError("unknown role %q", payload.Role)
	}
	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if role == constants.RoleAdmin && !strings.Contains(email, "admin") {
		return nil, apperrors.NewInvalidInputError("admin accounts must use an admin email")
	}

	hashed, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	user := entities.User{
		Name:          strings.TrimSpace(payload.Name),
		Email:         email,
		Password:      hashed,
		ContactNumber: payload.ContactNumber,
		Department:    payload.Department,
		Designation:   payload.Designation,
		Role:          role,
	}
	if role == constants.RoleEmployee {
		user.JoinDate = payload.JoinDate
	} else {
		user.JoinDate = null.String{}
	}

	id, err := s.userRepo.Create(ctx, nil, user)
	if err != nil {
		return nil, err
	}
	user.ID = id
	s.logger.Info("Пользователь зарегистрирован", zap.Uint64("userID", id), zap.String("role", role))
	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(payload.Username))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.checkLockout(ctx, user.ID); err != nil {
		return nil, err
	}
	if err := utils.ComparePasswords(user.Password, payload.Password); err != nil {
		s.handleFailedLoginAttempt(ctx, user.ID)
		return nil, apperrors.ErrInvalidCredentials
	}
	s.resetLoginAttempts(ctx, user.ID)

	token, err := s.jwtSvc.GenerateToken(user.Session())
	if err != nil {
		return nil, err
	}
	s.logger.Info("Успешный вход", zap.Uint64("userID", user.ID))
	return &dto.LoginResponseDTO{Token: token, Role: user.Role}, nil
}

func (s *AuthService) Me(ctx context.Context, session types.Session) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, nil, session.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) checkLockout(ctx context.Context, userID uint64) error {
	// Если ключ существует, аккаунт заблокирован
	if _, err := s.cacheRepo.Get(ctx, repositories.LockoutCacheKey(userID)); err == nil {
		s.logger.Warn("Вход в заблокированный аккаунт", zap.Uint64("userID", userID))
		return apperrors.ErrTooManyAttempts
	}
	return nil
}

func (s *AuthService) handleFailedLoginAttempt(ctx context.Context, userID uint64) {
	attemptsKey := repositories.LoginAttemptsCacheKey(userID)
	attempts, err := s.cacheRepo.Incr(ctx, attemptsKey)
	if err != nil {
		s.logger.Warn("Не удалось учесть попытку входа", zap.Uint64("userID", userID), zap.Error(err))
		return
	}
	if attempts == 1 {
		if _, err := s.cacheRepo.Expire(ctx, attemptsKey, s.cfg.LockoutDuration); err != nil {
			s.logger.Warn("Не удалось задать срок счётчика попыток", zap.Uint64("userID", userID), zap.Error(err))
		}
	}
	if attempts >= int64(s.cfg.MaxLoginAttempts) {
		s.logger.Warn("Аккаунт заблокирован", zap.Uint64("userID", userID), zap.Int64("attempts", attempts))
		if err := s.cacheRepo.Set(ctx, repositories.LockoutCacheKey(userID), "locked", s.cfg.LockoutDuration); err != nil {
			// счётчик не сбрасываем: следующая неудачная попытка повторит блокировку
			s.logger.Warn("Не удалось заблокировать аккаунт", zap.Uint64("userID", userID), zap.Error(err))
			return
		}
		if err := s.cacheRepo.Del(ctx, attemptsKey); err != nil {
			s.logger.Warn("Не удалось сбросить счётчик попыток", zap.Uint64("userID", userID), zap.Error(err))
		}
	}
}

func (s *AuthService) resetLoginAttempts(ctx context.Context, userID uint64) {
	if err := s.cacheRepo.Del(ctx, repositories.LoginAttemptsCacheKey(userID), repositories.LockoutCacheKey(userID)); err != nil {
		s.logger.Warn("Не удалось сбросить счётчик попыток", zap.Uint64("userID", userID), zap.Error(err))
	}
}
