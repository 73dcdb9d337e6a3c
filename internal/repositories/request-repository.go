package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"asset-desk/internal/entities"
	"asset-desk/internal/workflow"
	"asset-desk/pkg/constants"
	apperrors "asset-desk/pkg/errors"
)

const (
	requestTable  = "asset_requests"
	requestFields = "id, issue_type, status, employee_id, employee_name, asset_id, asset_name, description, to_char(request_date, 'YYYY-MM-DD'), created_at, updated_at"

	// effectiveStatusExpr - NULL в старых записях читается как PENDING.
	effectiveStatusExpr = "COALESCE(status, 'PENDING')"

	activeRequestIndex = "uq_asset_requests_active_asset"
)

type RequestRepositoryInterface interface {
	GetAll(ctx context.Context, filter workflow.RequestFilter) ([]entities.AssetRequest, error)
	FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.AssetRequest, error)
	FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.AssetRequest, error)
	Create(ctx context.Context, tx pgx.Tx, req entities.AssetRequest) (uint64, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uint64, status string) error
	UpdateDescription(ctx context.Context, tx pgx.Tx, id uint64, description string) error

	// GetBlocking - заявки, которые держат актив (PENDING, UNDER_REVIEW, APPROVED).
	GetBlocking(ctx context.Context, tx pgx.Tx, assetID uint64) ([]entities.AssetRequest, error)
}

type requestRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewRequestRepository(storage *pgxpool.Pool, logger *zap.Logger) RequestRepositoryInterface {
	return &requestRepository{storage: storage, logger: logger}
}

func (r *requestRepository) getQuerier(tx pgx.Tx) Querier {
	return pickQuerier(r.storage, tx)
}

func scanRequest(row pgx.Row) (*entities.AssetRequest, error) {
	var req entities.AssetRequest
	err := row.Scan(
		&req.ID, &req.IssueType, &req.Status, &req.EmployeeID, &req.EmployeeName,
		&req.AssetID, &req.AssetName, &req.Description, &req.RequestDate,
		&req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования asset_requests: %w", err)
	}
	return &req, nil
}

func (r *requestRepository) queryList(ctx context.Context, q Querier, builder sq.SelectBuilder) ([]entities.AssetRequest, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки SQL select: %w", err)
	}
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения select: %w", err)
	}
	defer rows.Close()

	list := make([]entities.AssetRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *req)
	}
	return list, rows.Err()
}

// GetAll - порядок id DESC, повторный вызов без изменений даёт тот же результат.
func (r *requestRepository) GetAll(ctx context.Context, filter workflow.RequestFilter) ([]entities.AssetRequest, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := psql.Select(requestFields).From(requestTable)

	if filter.Status != "" {
		builder = builder.Where(sq.Eq{effectiveStatusExpr: filter.Status})
	}
	if filter.IssueType != "" {
		builder = builder.Where(sq.Eq{"issue_type": filter.IssueType})
	}
	if filter.EmployeeID != 0 {
		builder = builder.Where(sq.Eq{"employee_id": filter.EmployeeID})
	}

	return r.queryList(ctx, r.storage, builder.OrderBy("id DESC"))
}

func (r *requestRepository) findOne(ctx context.Context, q Querier, id uint64, suffix string) (*entities.AssetRequest, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := psql.Select(requestFields).From(requestTable).Where(sq.Eq{"id": id})
	if suffix != "" {
		builder = builder.Suffix(suffix)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки SQL для findOne: %w", err)
	}
	return scanRequest(q.QueryRow(ctx, query, args...))
}

func (r *requestRepository) FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.AssetRequest, error) {
	return r.findOne(ctx, r.getQuerier(tx), id, "")
}

// FindByIDForUpdate блокирует строку до конца транзакции.
func (r *requestRepository) FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.AssetRequest, error) {
	if tx == nil {
		return nil, errors.New("FindByIDForUpdate требует транзакцию")
	}
	return r.findOne(ctx, tx, id, "FOR UPDATE")
}

func (r *requestRepository) Create(ctx context.Context, tx pgx.Tx, req entities.AssetRequest) (uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Insert(requestTable).
		Columns("issue_type", "status", "employee_id", "employee_name", "asset_id", "asset_name", "description", "request_date", "created_at", "updated_at").
		Values(req.IssueType, constants.RequestStatusPending, req.EmployeeID, req.EmployeeName, req.AssetID, req.AssetName, req.Description,
			sq.Expr("?::date", req.RequestDate), sq.Expr("NOW()"), sq.Expr("NOW()")).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("ошибка сборки запроса Create: %w", err)
	}

	var newID uint64
	if err := r.getQuerier(tx).QueryRow(ctx, query, args...).Scan(&newID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch {
			case pgErr.Code == "23505" && pgErr.ConstraintName == activeRequestIndex:
				return 0, fmt.Errorf("на этот актив уже есть активная заявка: %w", apperrors.ErrConflict)
			case pgErr.Code == "23505":
				return 0, apperrors.ErrConflict
			case pgErr.Code == "23503":
				return 0, fmt.Errorf("актив или сотрудник не найден: %w", apperrors.ErrNotFound)
			}
		}
		return 0, fmt.Errorf("ошибка создания asset_requests: %w", err)
	}
	return newID, nil
}

func (r *requestRepository) update(ctx context.Context, tx pgx.Tx, id uint64, column string, value interface{}) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Update(requestTable).
		Set(column, value).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса Update: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("на этот актив уже есть активная заявка: %w", apperrors.ErrConflict)
		}
		return fmt.Errorf("ошибка обновления asset_requests: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *requestRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, id uint64, status string) error {
	return r.update(ctx, tx, id, "status", status)
}

func (r *requestRepository) UpdateDescription(ctx context.Context, tx pgx.Tx, id uint64, description string) error {
	return r.update(ctx, tx, id, "description", description)
}

// GetBlocking при assetID = 0 возвращает блокирующие заявки по всем активам.
func (r *requestRepository) GetBlocking(ctx context.Context, tx pgx.Tx, assetID uint64) ([]entities.AssetRequest, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := psql.Select(requestFields).
		From(requestTable).
		Where(sq.Eq{effectiveStatusExpr: workflow.BlockingRequestStatuses})
	if assetID != 0 {
		builder = builder.Where(sq.Eq{"asset_id": assetID})
	}
	return r.queryList(ctx, r.getQuerier(tx), builder.OrderBy("id DESC"))
}
