package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"asset-desk/internal/entities"
)

const (
	auditTable  = "audit_logs"
	auditFields = "id, employee_id, employee_name, asset_id, asset_name, performed_by, status, audit_description, admin_note, audit_date"
)

type AuditRepositoryInterface interface {
	GetAll(ctx context.Context) ([]entities.AuditLog, error)
	Create(ctx context.Context, log entities.AuditLog) (*entities.AuditLog, error)
}

type auditRepository struct{ storage *pgxpool.Pool }

func NewAuditRepository(storage *pgxpool.Pool) AuditRepositoryInterface {
	return &auditRepository{storage: storage}
}

// GetAll - новые записи первыми.
func (r *auditRepository) GetAll(ctx context.Context) ([]entities.AuditLog, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(auditFields).From(auditTable).OrderBy("audit_date DESC", "id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки SQL select: %w", err)
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения select: %w", err)
	}
	defer rows.Close()

	logs := make([]entities.AuditLog, 0)
	for rows.Next() {
		var l entities.AuditLog
		if err := rows.Scan(&l.ID, &l.EmployeeID, &l.EmployeeName, &l.AssetID, &l.AssetName,
			&l.PerformedBy, &l.Status, &l.AuditDescription, &l.AdminNote, &l.AuditDate); err != nil {
			return nil, fmt.Errorf("ошибка сканирования audit_logs: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (r *auditRepository) Create(ctx context.Context, l entities.AuditLog) (*entities.AuditLog, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Insert(auditTable).
		Columns("employee_id", "employee_name", "asset_id", "asset_name", "performed_by", "status", "audit_description", "admin_note", "audit_date").
		Values(l.EmployeeID, l.EmployeeName, l.AssetID, l.AssetName, l.PerformedBy, l.Status, l.AuditDescription, l.AdminNote, l.AuditDate).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса Create: %w", err)
	}
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&l.ID); err != nil {
		return nil, fmt.Errorf("ошибка создания audit_logs: %w", err)
	}
	return &l, nil
}
