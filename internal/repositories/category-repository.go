package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"asset-desk/internal/entities"
	apperrors "asset-desk/pkg/errors"
)

const (
	categoryTable  = "categories"
	categoryFields = "id, name, description, created_at, updated_at"
)

type CategoryRepositoryInterface interface {
	GetAll(ctx context.Context) ([]entities.Category, error)
	FindByID(ctx context.Context, id uint64) (*entities.Category, error)
	Create(ctx context.Context, c entities.Category) (*entities.Category, error)
	Update(ctx context.Context, c entities.Category) (*entities.Category, error)
	Delete(ctx context.Context, id uint64) error
}

type categoryRepository struct{ storage *pgxpool.Pool }

func NewCategoryRepository(storage *pgxpool.Pool) CategoryRepositoryInterface {
	return &categoryRepository{storage: storage}
}

func scanCategory(row pgx.Row) (*entities.Category, error) {
	var c entities.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, mapCategoryWriteError(err)
	}
	return &c, nil
}

func (r *categoryRepository) GetAll(ctx context.Context) ([]entities.Category, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(categoryFields).From(categoryTable).OrderBy("name").ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки SQL select: %w", err)
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения select: %w", err)
	}
	defer rows.Close()

	categories := make([]entities.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint64) (*entities.Category, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(categoryFields).From(categoryTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки SQL для FindByID: %w", err)
	}
	return scanCategory(r.storage.QueryRow(ctx, query, args...))
}

func (r *categoryRepository) Create(ctx context.Context, c entities.Category) (*entities.Category, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Insert(categoryTable).
		Columns("name", "description").
		Values(c.Name, c.Description).
		Suffix("RETURNING " + categoryFields).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса Create: %w", err)
	}
	return scanCategory(r.storage.QueryRow(ctx, query, args...))
}

func (r *categoryRepository) Update(ctx context.Context, c entities.Category) (*entities.Category, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Update(categoryTable).
		Set("name", c.Name).
		Set("description", c.Description).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": c.ID}).
		Suffix("RETURNING " + categoryFields).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса Update: %w", err)
	}
	return scanCategory(r.storage.QueryRow(ctx, query, args...))
}

func (r *categoryRepository) Delete(ctx context.Context, id uint64) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Delete(categoryTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса Delete: %w", err)
	}
	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return mapCategoryWriteError(err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func mapCategoryWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("категория с таким названием уже существует: %w", apperrors.ErrConflict)
		case "23503":
			return fmt.Errorf("категория используется: %w", apperrors.ErrConflict)
		}
	}
	return fmt.Errorf("ошибка записи categories: %w", err)
}
