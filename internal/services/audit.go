package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"asset-desk/internal/dto"
	"asset-desk/internal/entities"
	"asset-desk/internal/repositories"
	"asset-desk/pkg/constants"
	apperrors "asset-desk/pkg/errors"
	"asset-desk/pkg/types"
)

type AuditServiceInterface interface {
	GetLogs(ctx context.Context, session types.Session) ([]entities.AuditLog, error)
	CreateAuditRequest(ctx context.Context, session types.Session, payload dto.CreateAuditDTO) (*entities.AuditLog, error)
}

type AuditService struct {
	auditRepo repositories.AuditRepositoryInterface
	userRepo  repositories.UserRepositoryInterface
	assetRepo repositories.AssetRepositoryInterface
	logger    *zap.Logger
	now       func() time.Time
}

func NewAuditService(
	auditRepo repositories.AuditRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	assetRepo repositories.AssetRepositoryInterface,
	logger *zap.Logger,
) *AuditService {
	return &AuditService{auditRepo: auditRepo, userRepo: userRepo, assetRepo: assetRepo, logger: logger, now: time.Now}
}

func (s *AuditService) GetLogs(ctx context.Context, session types.Session) ([]entities.AuditLog, error) {
	if !session.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	return s.auditRepo.GetAll(ctx)
}

// CreateAuditRequest - проверка актива, закреплённого за сотрудником.
func (s *AuditService) CreateAuditRequest(ctx context.Context, session types.Session, payload dto.CreateAuditDTO) (*entities.AuditLog, error) {
	if !session.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	description := strings.TrimSpace(payload.Text())
	if payload.EmployeeID == 0 || payload.AssetID == 0 || description == "" {
		return nil, apperrors.NewInvalidInputError("employeeId, assetId and description are required")
	}

	employee, err := s.userRepo.FindByID(ctx, nil, payload.EmployeeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewInvalidInputError("employee %d not found", payload.EmployeeID)
		}
		return nil, err
	}
	asset, err := s.assetRepo.FindByID(ctx, nil, payload.AssetID)
	if err != nil {
		return nil, err
	}
	if !asset.AssignedToID.Valid || asset.AssignedToID.Uint64 != employee.ID {
		return nil, apperrors.NewInvalidInputError("asset %d is not assigned to employee %d", asset.ID, employee.ID)
	}

	adminNote := strings.TrimSpace(payload.AdminNote)
	if adminNote == "" {
		adminNote = description
	}

	created, err := s.auditRepo.Create(ctx, entities.AuditLog{
		EmployeeID:       employee.ID,
		EmployeeName:     employee.Name,
		AssetID:          asset.ID,
		AssetName:        asset.Name,
		PerformedBy:      session.Name,
		Status:           constants.RequestStatusPending,
		AuditDescription: description,
		AdminNote:        adminNote,
		AuditDate:        s.now(),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Запрос на аудит создан", zap.Uint64("auditID", created.ID), zap.Uint64("assetID", asset.ID))
	return created, nil
}
