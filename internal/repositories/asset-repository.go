package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"asset-desk/internal/entities"
	apperrors "asset-desk/pkg/errors"
	"asset-desk/pkg/types"
)

const (
	assetTable  = "assets"
	assetFields = "id, name, asset_number, category_name, status, asset_condition, assigned_to_id, assigned_to_name, to_char(purchased_date, 'YYYY-MM-DD'), created_at, updated_at"
)

// allowedAssetFilters - белый список для фильтрации
var allowedAssetFilters = map[string]string{
	"id":             "id",
	"status":         "status",
	"category":       "category_name",
	"categoryName":   "category_name",
	"assetCondition": "asset_condition",
	"assignedToId":   "assigned_to_id",
}

// allowedAssetSortFields - белый список для сортировки
var allowedAssetSortFields = map[string]string{
	"id":           "id",
	"name":         "name",
	"assetNumber":  "asset_number",
	"categoryName": "category_name",
	"status":       "status",
	"createdAt":    "created_at",
}

type AssetRepositoryInterface interface {
	GetAll(ctx context.Context, filter types.Filter) ([]entities.Asset, uint64, error)
	FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Asset, error)
	FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Asset, error)
	FindByStatus(ctx context.Context, status string) ([]entities.Asset, error)
	FindAssignedTo(ctx context.Context, employeeID uint64) ([]entities.Asset, error)
	Create(ctx context.Context, tx pgx.Tx, a entities.Asset) (uint64, error)
	Update(ctx context.Context, tx pgx.Tx, a entities.Asset) error
	Delete(ctx context.Context, tx pgx.Tx, id uint64) error
}

type assetRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewAssetRepository(storage *pgxpool.Pool, logger *zap.Logger) AssetRepositoryInterface {
	return &assetRepository{storage: storage, logger: logger}
}

func (r *assetRepository) getQuerier(tx pgx.Tx) Querier {
	return pickQuerier(r.storage, tx)
}

func scanAsset(row pgx.Row) (*entities.Asset, error) {
	var a entities.Asset
	err := row.Scan(
		&a.ID, &a.Name, &a.AssetNumber, &a.CategoryName, &a.Status, &a.AssetCondition,
		&a.AssignedToID, &a.AssignedToName, &a.PurchasedDate, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования assets: %w", err)
	}
	return &a, nil
}

func (r *assetRepository) queryList(ctx context.Context, builder sq.SelectBuilder) ([]entities.Asset, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки SQL select: %w", err)
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения select: %w", err)
	}
	defer rows.Close()

	list := make([]entities.Asset, 0)
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *a)
	}
	return list, rows.Err()
}

func applyAssetFilter(builder sq.SelectBuilder, filter types.Filter) sq.SelectBuilder {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		builder = builder.Where(sq.Or{sq.ILike{"name": pattern}, sq.ILike{"asset_number": pattern}})
	}
	for key, value := range filter.Filter {
		dbColumn, ok := allowedAssetFilters[key]
		if !ok {
			continue
		}
		if items, ok := value.(string); ok && strings.Contains(items, ",") {
			builder = builder.Where(sq.Eq{dbColumn: strings.Split(items, ",")})
		} else {
			builder = builder.Where(sq.Eq{dbColumn: value})
		}
	}
	return builder
}

func (r *assetRepository) GetAll(ctx context.Context, filter types.Filter) ([]entities.Asset, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	countQuery, countArgs, err := applyAssetFilter(psql.Select("COUNT(id)").From(assetTable), filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки SQL count: %w", err)
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка выполнения count: %w", err)
	}
	if total == 0 {
		return []entities.Asset{}, 0, nil
	}

	selectBuilder := applyAssetFilter(psql.Select(assetFields).From(assetTable), filter)
	sorted := false
	for field, direction := range filter.Sort {
		if column, ok := allowedAssetSortFields[field]; ok {
			safeDirection := "ASC"
			if strings.ToUpper(direction) == "DESC" {
				safeDirection = "DESC"
			}
			selectBuilder = selectBuilder.OrderBy(column + " " + safeDirection)
			sorted = true
		}
	}
	if !sorted {
		selectBuilder = selectBuilder.OrderBy("id DESC")
	}

	if filter.WithPagination {
		if filter.Limit > 0 {
			selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
		}
		if filter.Offset > 0 {
			selectBuilder = selectBuilder.Offset(uint64(filter.Offset))
		}
	}

	list, err := r.queryList(ctx, selectBuilder)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *assetRepository) findOne(ctx context.Context, q Querier, id uint64, suffix string) (*entities.Asset, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := psql.Select(assetFields).From(assetTable).Where(sq.Eq{"id": id})
	if suffix != "" {
		builder = builder.Suffix(suffix)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки SQL для findOne: %w", err)
	}
	return scanAsset(q.QueryRow(ctx, query, args...))
}

func (r *assetRepository) FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Asset, error) {
	return r.findOne(ctx, r.getQuerier(tx), id, "")
}

func (r *assetRepository) FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Asset, error) {
	if tx == nil {
		return nil, errors.New("FindByIDForUpdate требует транзакцию")
	}
	return r.findOne(ctx, tx, id, "FOR UPDATE")
}

func (r *assetRepository) FindByStatus(ctx context.Context, status string) ([]entities.Asset, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	return r.queryList(ctx, psql.Select(assetFields).From(assetTable).Where(sq.Eq{"status": status}).OrderBy("id"))
}

func (r *assetRepository) FindAssignedTo(ctx context.Context, employeeID uint64) ([]entities.Asset, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	return r.queryList(ctx, psql.Select(assetFields).From(assetTable).Where(sq.Eq{"assigned_to_id": employeeID}).OrderBy("id"))
}

func (r *assetRepository) Create(ctx context.Context, tx pgx.Tx, a entities.Asset) (uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Insert(assetTable).
		Columns("name", "asset_number", "category_name", "status", "asset_condition", "assigned_to_id", "assigned_to_name", "purchased_date", "created_at", "updated_at").
		Values(a.Name, a.AssetNumber, a.CategoryName, a.Status, a.AssetCondition, a.AssignedToID, a.AssignedToName,
			sq.Expr("?::date", a.PurchasedDate), sq.Expr("NOW()"), sq.Expr("NOW()")).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("ошибка сборки запроса Create: %w", err)
	}

	var newID uint64
	if err := r.getQuerier(tx).QueryRow(ctx, query, args...).Scan(&newID); err != nil {
		return 0, mapAssetWriteError(err)
	}
	return newID, nil
}

// Update - полная замена полей, в том числе при проекции решения по заявке.
func (r *assetRepository) Update(ctx context.Context, tx pgx.Tx, a entities.Asset) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Update(assetTable).
		Set("name", a.Name).
		Set("asset_number", a.AssetNumber).
		Set("category_name", a.CategoryName).
		Set("status", a.Status).
		Set("asset_condition", a.AssetCondition).
		Set("assigned_to_id", a.AssignedToID).
		Set("assigned_to_name", a.AssignedToName).
		Set("purchased_date", sq.Expr("?::date", a.PurchasedDate)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": a.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса Update: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		return mapAssetWriteError(err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *assetRepository) Delete(ctx context.Context, tx pgx.Tx, id uint64) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Delete(assetTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса Delete: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("актив используется в заявках или аудите: %w", apperrors.ErrConflict)
		}
		return fmt.Errorf("ошибка удаления assets: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func mapAssetWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("актив с таким инвентарным номером уже существует: %w", apperrors.ErrConflict)
		case "23503":
			return apperrors.NewInvalidInputError("assignedToId does not reference an existing employee")
		}
	}
	return fmt.Errorf("ошибка записи assets: %w", err)
}
