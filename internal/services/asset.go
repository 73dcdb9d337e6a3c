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
	"asset-desk/internal/workflow"
	"asset-desk/pkg/constants"
	apperrors "asset-desk/pkg/errors"
	"asset-desk/pkg/types"
	"asset-desk/pkg/utils"
)

type AssetServiceInterface interface {
	GetAssets(ctx context.Context, filter types.Filter) ([]entities.Asset, uint64, error)
	FindAsset(ctx context.Context, id uint64) (*entities.Asset, error)
	GetAvailableForRequest(ctx context.Context, query dto.AvailableAssetsQuery) ([]entities.Asset, error)
	GetAssetsByStatus(ctx context.Context, status string) ([]entities.Asset, error)
	GetAssignedAssets(ctx context.Context, session types.Session, employeeID uint64) ([]entities.Asset, error)
	CreateAsset(ctx context.Context, session types.Session, payload dto.AssetDTO) (*entities.Asset, error)
	UpdateAsset(ctx context.Context, session types.Session, id uint64, payload dto.AssetDTO) (*entities.Asset, error)
	DeleteAsset(ctx context.Context, session types.Session, id uint64) error
}

type AssetService struct {
	assetRepo   repositories.AssetRepositoryInterface
	requestRepo repositories.RequestRepositoryInterface
	userRepo    repositories.UserRepositoryInterface
	cacheRepo   repositories.CacheRepositoryInterface
	logger      *zap.Logger
}

func NewAssetService(
	assetRepo repositories.AssetRepositoryInterface,
	requestRepo repositories.RequestRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
) *AssetService {
	return &AssetService{
		assetRepo:   assetRepo,
		requestRepo: requestRepo,
		userRepo:    userRepo,
		cacheRepo:   cacheRepo,
		logger:      logger,
	}
}

func (s *AssetService) GetAssets(ctx context.Context, filter types.Filter) ([]entities.Asset, uint64, error) {
	return s.assetRepo.GetAll(ctx, filter)
}

func (s *AssetService) FindAsset(ctx context.Context, id uint64) (*entities.Asset, error) {
	return s.assetRepo.FindByID(ctx, nil, id)
}

// GetAvailableForRequest - активы, которые сотрудник может запросить прямо сейчас.
func (s *AssetService) GetAvailableForRequest(ctx context.Context, query dto.AvailableAssetsQuery) ([]entities.Asset, error) {
	candidates, err := s.assetRepo.FindByStatus(ctx, constants.AssetStatusAvailable)
	if err != nil {
		return nil, err
	}
	blocking, err := s.requestRepo.GetBlocking(ctx, nil, 0)
	if err != nil {
		return nil, err
	}
	return workflow.AvailableForRequest(candidates, blocking, workflow.AssetQuery{
		Search:   query.Search,
		Category: query.Category,
	}), nil
}

func (s *AssetService) GetAssetsByStatus(ctx context.Context, status string) ([]entities.Asset, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if !constants.IsKnownAssetStatus(status) {
		return nil, apperrors.NewInvalidInputError("unknown asset status %q", status)
	}
	return s.assetRepo.FindByStatus(ctx, status)
}

func (s *AssetService) GetAssignedAssets(ctx context.Context, session types.Session, employeeID uint64) ([]entities.Asset, error) {
	if !session.CanAccessEmployee(employeeID) {
		return nil, apperrors.ErrForbidden
	}
	return s.assetRepo.FindAssignedTo(ctx, employeeID)
}

func (s *AssetService) CreateAsset(ctx context.Context, session types.Session, payload dto.AssetDTO) (*entities.Asset, error) {
	if !session.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	asset, err := s.toEntity(ctx, payload)
	if err != nil {
		return nil, err
	}

	id, err := s.assetRepo.Create(ctx, nil, asset)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Актив создан", zap.Uint64("assetID", id), zap.String("assetNumber", asset.AssetNumber))
	s.invalidate(ctx)
	return s.assetRepo.FindByID(ctx, nil, id)
}

// UpdateAsset - полная замена, как PUT в старом клиенте.
func (s *AssetService) UpdateAsset(ctx context.Context, session types.Session, id uint64, payload dto.AssetDTO) (*entities.Asset, error) {
	if !session.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	if payload.ID != 0 && payload.ID != id {
		return nil, apperrors.NewInvalidInputError("body id %d does not match path id %d", payload.ID, id)
	}
	previous, err := s.assetRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}

	asset, err := s.toEntity(ctx, payload)
	if err != nil {
		return nil, err
	}
	asset.ID = id
	if err := s.assetRepo.Update(ctx, nil, asset); err != nil {
		return nil, err
	}

	s.logger.Info("Актив обновлён", zap.Uint64("assetID", id),
		zap.String("previousStatus", previous.Status), zap.String("status", asset.Status))
	s.invalidate(ctx)
	return s.assetRepo.FindByID(ctx, nil, id)
}

func (s *AssetService) DeleteAsset(ctx context.Context, session types.Session, id uint64) error {
	if !session.IsAdmin() {
		return apperrors.ErrForbidden
	}
	previous, err := s.assetRepo.FindByID(ctx, nil, id)
	if err != nil {
		return err
	}
	if err := s.assetRepo.Delete(ctx, nil, id); err != nil {
		return err
	}
	s.logger.Info("Актив удалён", zap.Uint64("assetID", id), zap.String("assetNumber", previous.AssetNumber))
	s.invalidate(ctx)
	return nil
}

// toEntity нормализует поля и подставляет имя сотрудника по assignedToId.
func (s *AssetService) toEntity(ctx context.Context, payload dto.AssetDTO) (entities.Asset, error) {
	asset := entities.Asset{
		Name:           strings.TrimSpace(payload.Name),
		AssetNumber:    strings.TrimSpace(payload.AssetNumber),
		CategoryName:   strings.ToUpper(strings.TrimSpace(payload.CategoryName)),
		Status:         strings.ToUpper(strings.TrimSpace(payload.Status)),
		AssetCondition: strings.ToUpper(strings.TrimSpace(payload.AssetCondition)),
		AssignedToID:   payload.AssignedToID,
		AssignedToName: payload.AssignedToName,
		PurchasedDate:  payload.PurchasedDate,
	}

	switch {
	case asset.Name == "" || asset.AssetNumber == "" || asset.CategoryName == "":
		return asset, apperrors.NewInvalidInputError("name, assetNumber and categoryName are required")
	case !constants.IsKnownAssetStatus(asset.Status):
		return asset, apperrors.NewInvalidInputError("unknown asset status %q", asset.Status)
	case !constants.IsKnownAssetCondition(asset.AssetCondition):
		return asset, apperrors.NewInvalidInputError("unknown asset condition %q", asset.AssetCondition)
	}

	if asset.AssignedToID.Valid {
		user, err := s.userRepo.FindByID(ctx, nil, asset.AssignedToID.Uint64)
		if errors.Is(err, apperrors.ErrNotFound) {
			return asset, apperrors.NewInvalidInputError("assignedToId %d does not reference an existing employee", asset.AssignedToID.Uint64)
		}
		if err != nil {
			return asset, err
		}
		asset.AssignedToName = null.StringFrom(user.Name)
	} else {
		asset.AssignedToName = null.String{}
	}
	if d := strings.TrimSpace(asset.PurchasedDate.String); asset.PurchasedDate.Valid && d != "" {
		if _, err := utils.ParseDate(d); err != nil {
			return asset, apperrors.NewInvalidInputError("purchasedDate must be YYYY-MM-DD, got %q", d)
		}
		asset.PurchasedDate = null.StringFrom(d)
	} else {
		asset.PurchasedDate = null.String{}
	}
	return asset, nil
}

// invalidate сбрасывает кеш сводки и дашбордов сотрудников.
func (s *AssetService) invalidate(ctx context.Context) {
	if err := repositories.InvalidateDashboards(ctx, s.cacheRepo); err != nil {
		s.logger.Warn("Не удалось сбросить кеш дашборда", zap.Error(err))
	}
}
