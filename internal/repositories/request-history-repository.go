package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"asset-desk/internal/entities"
)

const (
	historyTable  = "request_history"
	historyFields = "id, request_id, actor_id, actor_name, old_status, new_status, asset_status, created_at"
)

type RequestHistoryRepositoryInterface interface {
	Create(ctx context.Context, tx pgx.Tx, item entities.RequestHistory) error
	GetByRequestID(ctx context.Context, requestID uint64) ([]entities.RequestHistory, error)
}

type requestHistoryRepository struct{ storage *pgxpool.Pool }

func NewRequestHistoryRepository(storage *pgxpool.Pool) RequestHistoryRepositoryInterface {
	return &requestHistoryRepository{storage: storage}
}

// Create пишется в той же транзакции, что и решение.
func (r *requestHistoryRepository) Create(ctx context.Context, tx pgx.Tx, item entities.RequestHistory) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Insert(historyTable).
		Columns("request_id", "actor_id", "actor_name", "old_status", "new_status", "asset_status", "created_at").
		Values(item.RequestID, item.ActorID, item.ActorName, item.OldStatus, item.NewStatus, item.AssetStatus, sq.Expr("NOW()")).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса Create: %w", err)
	}
	if _, err := pickQuerier(r.storage, tx).Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("ошибка записи request_history: %w", err)
	}
	return nil
}

func (r *requestHistoryRepository) GetByRequestID(ctx context.Context, requestID uint64) ([]entities.RequestHistory, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(historyFields).From(historyTable).
		Where(sq.Eq{"request_id": requestID}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки SQL select: %w", err)
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения select: %w", err)
	}
	defer rows.Close()

	items := make([]entities.RequestHistory, 0)
	for rows.Next() {
		var h entities.RequestHistory
		if err := rows.Scan(&h.ID, &h.RequestID, &h.ActorID, &h.ActorName, &h.OldStatus, &h.NewStatus, &h.AssetStatus, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования request_history: %w", err)
		}
		items = append(items, h)
	}
	return items, rows.Err()
}
