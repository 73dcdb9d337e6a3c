package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"asset-desk/internal/entities"
	"asset-desk/internal/repositories"
	"asset-desk/pkg/constants"
	apperrors "asset-desk/pkg/errors"
	"asset-desk/pkg/types"
)

type EmployeeServiceInterface interface {
	GetEmployees(ctx context.Context, session types.Session, role string) ([]entities.User, error)
}

type EmployeeService struct {
	userRepo repositories.UserRepositoryInterface
	logger   *zap.Logger
}

func NewEmployeeService(userRepo repositories.UserRepositoryInterface, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{userRepo: userRepo, logger: logger}
}

// GetEmployees - по умолчанию только сотрудники, role=ALL возвращает всех.
func (s *EmployeeService) GetEmployees(ctx context.Context, session types.Session, role string) ([]entities.User, error) {
	if !session.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	role = strings.ToUpper(strings.TrimSpace(role))
	switch role {
	case "":
		role = constants.RoleEmployee
	case "ALL":
		role = ""
	default:
		if !constants.IsKnownRole(role) {
			return nil, apperrors.NewInvalidInputError("unknown role %q", role)
		}
	}
	return s.userRepo.GetAll(ctx, role)
}
