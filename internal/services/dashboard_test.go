package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"asset-desk/internal/dto"
	"asset-desk/internal/repositories"
	apperrors "asset-desk/pkg/errors"
)

type fakeDashboardRepo struct {
	statsCalls   int
	summaryCalls int
	pending      uint64
	// afterRead вызывается между чтением из БД и записью в кеш.
	afterRead func()
}

func (r *fakeDashboardRepo) GetEmployeeStats(_ context.Context, employeeID uint64) (*dto.DashboardStatsDTO, error) {
	r.statsCalls++
	stats := &dto.DashboardStatsDTO{MyAssets: employeeID, PendingRequests: 1 + r.pending, TotalRequests: 3}
	if r.afterRead != nil {
		r.afterRead()
	}
	return stats, nil
}

func (r *fakeDashboardRepo) GetSummary(_ context.Context) (*dto.DashboardSummaryDTO, error) {
	r.summaryCalls++
	return &dto.DashboardSummaryDTO{
		AssetsByStatus:   map[string]uint64{"AVAILABLE": 2},
		RequestsByStatus: map[string]uint64{"PENDING": 1},
		TotalAssets:      2,
		TotalRequests:    1,
	}, nil
}

func TestDashboardService(t *testing.T) {
	ctx := context.Background()
	repo := &fakeDashboardRepo{}
	cache := newFakeCache()
	svc := NewDashboardService(repo, cache, time.Minute, zap.NewNop())

	stats, err := svc.GetDashboardStats(ctx, employeeSession, employeeSession.UserID)
	require.NoError(t, err)
	again, err := svc.GetDashboardStats(ctx, employeeSession, employeeSession.UserID)
	require.NoError(t, err)
	assert.Equal(t, stats, again)
	assert.Equal(t, 1, repo.statsCalls)

	require.NoError(t, repositories.InvalidateDashboards(ctx, cache))
	_, err = svc.GetDashboardStats(ctx, adminSession, employeeSession.UserID)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.statsCalls)

	_, err = svc.GetDashboardStats(ctx, otherSession, employeeSession.UserID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	summary, err := svc.GetSummary(ctx, adminSession)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), summary.AssetsByStatus["AVAILABLE"])
	_, err = svc.GetSummary(ctx, adminSession)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.summaryCalls)

	_, err = svc.GetSummary(ctx, employeeSession)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

// Изменение, закоммиченное пока считалась статистика, не оставляет
// в кеше старое значение.
func TestDashboardStats_InvalidationDuringRead(t *testing.T) {
	ctx := context.Background()
	repo := &fakeDashboardRepo{}
	cache := newFakeCache()
	svc := NewDashboardService(repo, cache, time.Minute, zap.NewNop())

	repo.afterRead = func() {
		repo.pending = 1
		require.NoError(t, repositories.InvalidateDashboards(ctx, cache))
	}
	stale, err := svc.GetDashboardStats(ctx, employeeSession, employeeSession.UserID)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), stale.PendingRequests)

	repo.afterRead = nil
	fresh, err := svc.GetDashboardStats(ctx, employeeSession, employeeSession.UserID)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), fresh.PendingRequests)
	assert.Equal(t, 2, repo.statsCalls)

	cached, err := svc.GetDashboardStats(ctx, employeeSession, employeeSession.UserID)
	require.NoError(t, err)
	assert.Equal(t, fresh, cached)
	assert.Equal(t, 2, repo.statsCalls)
}

func TestDashboardStats_GenerationUnavailable(t *testing.T) {
	ctx := context.Background()
	repo := &fakeDashboardRepo{}
	cache := newFakeCache()
	require.NoError(t, cache.Set(ctx, repositories.DashboardGenerationKey, "broken", 0))
	svc := NewDashboardService(repo, cache, time.Minute, zap.NewNop())

	for i := 0; i < 2; i++ {
		_, err := svc.GetDashboardStats(ctx, employeeSession, employeeSession.UserID)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, repo.statsCalls)
}
