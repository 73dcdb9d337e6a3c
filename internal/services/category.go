package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"asset-desk/internal/dto"
	"asset-desk/internal/entities"
	"asset-desk/internal/repositories"
	apperrors "asset-desk/pkg/errors"
	"asset-desk/pkg/types"
)

type CategoryServiceInterface interface {
	GetCategories(ctx context.Context) ([]entities.Category, error)
	CreateCategory(ctx context.Context, session types.Session, payload dto.CategoryDTO) (*entities.Category, error)
	UpdateCategory(ctx context.Context, session types.Session, id uint64, payload dto.CategoryDTO) (*entities.Category, error)
	DeleteCategory(ctx context.Context, session types.Session, id uint64) error
}

type CategoryService struct {
	categoryRepo repositories.CategoryRepositoryInterface
	cacheRepo    repositories.CacheRepositoryInterface
	cacheTTL     time.Duration
	logger       *zap.Logger
}

func NewCategoryService(
	categoryRepo repositories.CategoryRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, cacheRepo: cacheRepo, cacheTTL: cacheTTL, logger: logger}
}

// GetCategories - список читается из кеша, при промахе из БД.
func (s *CategoryService) GetCategories(ctx context.Context) ([]entities.Category, error) {
	if cached, err := s.cacheRepo.Get(ctx, repositories.CategoriesCacheKey); err == nil {
		var categories []entities.Category
		if err := json.Unmarshal([]byte(cached), &categories); err == nil {
			return categories, nil
		}
		s.logger.Warn("Повреждённый кеш категорий, читаем из БД")
	}

	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(categories); err == nil {
		if err := s.cacheRepo.Set(ctx, repositories.CategoriesCacheKey, data, s.cacheTTL); err != nil {
			s.logger.Warn("Не удалось записать категории в кеш", zap.Error(err))
		}
	}
	return categories, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, session types.Session, payload dto.CategoryDTO) (*entities.Category, error) {
	if !session.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	category, err := normalizeCategory(payload)
	if err != nil {
		return nil, err
	}
	created, err := s.categoryRepo.Create(ctx, category)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Категория создана", zap.String("name", created.Name))
	s.invalidate(ctx)
	return created, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, session types.Session, id uint64, payload dto.CategoryDTO) (*entities.Category, error) {
	if !session.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	category, err := normalizeCategory(payload)
	if err != nil {
		return nil, err
	}
	category.ID = id
	updated, err := s.categoryRepo.Update(ctx, category)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, session types.Session, id uint64) error {
	if !session.IsAdmin() {
		return apperrors.ErrForbidden
	}
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// normalizeCategory - название хранится без пробелов по краям и в верхнем регистре.
func normalizeCategory(payload dto.CategoryDTO) (entities.Category, error) {
	c := entities.Category{
		Name:        strings.ToUpper(strings.TrimSpace(payload.Name)),
		Description: strings.TrimSpace(payload.Description),
	}
	if c.Name == "" || c.Description == "" {
		return c, apperrors.NewInvalidInputError("both name and description are required")
	}
	return c, nil
}

func (s *CategoryService) invalidate(ctx context.Context) {
	if err := s.cacheRepo.Del(ctx, repositories.CategoriesCacheKey); err != nil {
		s.logger.Warn("Не удалось сбросить кеш категорий", zap.Error(err))
	}
}
