package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"asset-desk/internal/dto"
)

type DashboardRepositoryInterface interface {
	GetEmployeeStats(ctx context.Context, employeeID uint64) (*dto.DashboardStatsDTO, error)
	GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error)
}

type DashboardRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDashboardRepository(storage *pgxpool.Pool, logger *zap.Logger) DashboardRepositoryInterface {
	return &DashboardRepository{storage: storage, logger: logger}
}

// GetEmployeeStats - карточки дашборда сотрудника, ожидающие считаются по эффективному статусу.
func (r *DashboardRepository) GetEmployeeStats(ctx context.Context, employeeID uint64) (*dto.DashboardStatsDTO, error) {
	myAssets := sq.Select("COUNT(*)").From(assetTable).Where(sq.Eq{"assigned_to_id": employeeID})
	requests := sq.Select(
		"COUNT(*)",
		fmt.Sprintf("COUNT(*) FILTER (WHERE %s = 'PENDING')", effectiveStatusExpr),
	).From(requestTable).Where(sq.Eq{"employee_id": employeeID})

	var stats dto.DashboardStatsDTO

	query, args, err := myAssets.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки SQL myAssets: %w", err)
	}
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&stats.MyAssets); err != nil {
		return nil, fmt.Errorf("ошибка подсчёта активов сотрудника: %w", err)
	}

	query, args, err = requests.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки SQL requests: %w", err)
	}
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&stats.TotalRequests, &stats.PendingRequests); err != nil {
		return nil, fmt.Errorf("ошибка подсчёта заявок сотрудника: %w", err)
	}
	return &stats, nil
}

// GetSummary - сводка для администратора.
func (r *DashboardRepository) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	assets, err := r.countBy(ctx, sq.Select("status", "COUNT(*)").From(assetTable).GroupBy("status"))
	if err != nil {
		return nil, err
	}
	requests, err := r.countBy(ctx, sq.Select(effectiveStatusExpr, "COUNT(*)").From(requestTable).GroupBy(effectiveStatusExpr))
	if err != nil {
		return nil, err
	}

	summary := &dto.DashboardSummaryDTO{AssetsByStatus: assets, RequestsByStatus: requests}
	for _, c := range assets {
		summary.TotalAssets += c
	}
	for _, c := range requests {
		summary.TotalRequests += c
	}
	return summary, nil
}

// countBy читает пары (ключ, количество).
func (r *DashboardRepository) countBy(ctx context.Context, builder sq.SelectBuilder) (map[string]uint64, error) {
	query, args, err := builder.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки SQL count: %w", err)
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения count: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]uint64)
	for rows.Next() {
		var key string
		var count uint64
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("ошибка сканирования count: %w", err)
		}
		counts[key] = count
	}
	return counts, rows.Err()
}
