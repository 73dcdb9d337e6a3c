package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"asset-desk/internal/dto"
	"asset-desk/internal/repositories"
	apperrors "asset-desk/pkg/errors"
	"asset-desk/pkg/types"
)

type DashboardServiceInterface interface {
	GetDashboardStats(ctx context.Context, session types.Session, employeeID uint64) (*dto.DashboardStatsDTO, error)
	GetSummary(ctx context.Context, session types.Session) (*dto.DashboardSummaryDTO, error)
}

type DashboardService struct {
	repo      repositories.DashboardRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	ttl       time.Duration
	logger    *zap.Logger
}

func NewDashboardService(
	repo repositories.DashboardRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	ttl time.Duration,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{repo: repo, cacheRepo: cacheRepo, ttl: ttl, logger: logger}
}

func (s *DashboardService) GetDashboardStats(ctx context.Context, session types.Session, employeeID uint64) (*dto.DashboardStatsDTO, error) {
	if !session.CanAccessEmployee(employeeID) {
		return nil, apperrors.ErrForbidden
	}
	generation, cached := s.generation(ctx)
	key := repositories.DashboardStatsCacheKey(employeeID, generation)
	var stats dto.DashboardStatsDTO
	if cached && s.readCache(ctx, key, &stats) {
		return &stats, nil
	}

	fresh, err := s.repo.GetEmployeeStats(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if cached {
		s.writeCache(ctx, key, fresh)
	}
	return fresh, nil
}

func (s *DashboardService) GetSummary(ctx context.Context, session types.Session) (*dto.DashboardSummaryDTO, error) {
	if !session.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	generation, cached := s.generation(ctx)
	key := repositories.DashboardSummaryCacheKey(generation)
	var summary dto.DashboardSummaryDTO
	if cached && s.readCache(ctx, key, &summary) {
		return &summary, nil
	}

	fresh, err := s.repo.GetSummary(ctx)
	if err != nil {
		return nil, err
	}
	if cached {
		s.writeCache(ctx, key, fresh)
	}
	return fresh, nil
}

// generation читается до запроса в БД. Без поколения кеш не используется.
func (s *DashboardService) generation(ctx context.Context) (int64, bool) {
	generation, err := repositories.DashboardGeneration(ctx, s.cacheRepo)
	if err != nil {
		s.logger.Warn("Поколение кеша дашборда недоступно", zap.Error(err))
		return 0, false
	}
	return generation, true
}

func (s *DashboardService) readCache(ctx context.Context, key string, dst interface{}) bool {
	cached, err := s.cacheRepo.Get(ctx, key)
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(cached), dst); err != nil {
		s.logger.Warn("Повреждённый кеш дашборда", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// writeCache - ошибка кеша не ломает ответ.
func (s *DashboardService) writeCache(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cacheRepo.Set(ctx, key, data, s.ttl); err != nil {
		s.logger.Warn("Не удалось записать дашборд в кеш", zap.String("key", key), zap.Error(err))
	}
}
