package repositories

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"asset-desk/internal/entities"
	"asset-desk/internal/workflow"
	"asset-desk/migrations"
	"asset-desk/pkg/constants"
	apperrors "asset-desk/pkg/errors"
)

var testPool *pgxpool.Pool

// TestMain применяет миграции к тестовой БД из TEST_DATABASE_URL.
// Без переменной интеграционные тесты пропускаются.
func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn != "" {
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			log.Fatalf("Не удалось открыть тестовую БД: %v", err)
		}
		if err := migrations.Up(context.Background(), db); err != nil {
			log.Fatalf("Не удалось применить миграции: %v", err)
		}
		_ = db.Close()

		testPool, err = pgxpool.New(context.Background(), dsn)
		if err != nil {
			log.Fatalf("Не удалось подключиться к тестовой БД: %v", err)
		}
	}

	code := m.Run()
	if testPool != nil {
		testPool.Close()
	}
	os.Exit(code)
}

func requireDB(t *testing.T) {
	t.Helper()
	if testPool == nil {
		t.Skip("TEST_DATABASE_URL не задан")
	}
}

// cleanupTables очищает таблицы для изоляции тестов.
func cleanupTables(t *testing.T) {
	t.Helper()
	_, err := testPool.Exec(context.Background(),
		`TRUNCATE TABLE request_history, audit_logs, asset_requests, assets, categories, users RESTART IDENTITY CASCADE;`)
	require.NoError(t, err, "Не удалось очистить таблицы")
}

func seedEmployeeAndAsset(t *testing.T) (uint64, uint64) {
	t.Helper()
	ctx := context.Background()
	users := NewUserRepository(testPool, zap.NewNop())
	assets := NewAssetRepository(testPool, zap.NewNop())

	employeeID, err := users.Create(ctx, nil, entities.User{
		Name: "Alice", Email: "alice@example.com", Password: "hash", Role: constants.RoleEmployee,
	})
	require.NoError(t, err)

	assetID, err := assets.Create(ctx, nil, entities.Asset{
		Name: "Dell Latitude", AssetNumber: "LT-0001", CategoryName: "LAPTOP",
		Status: constants.AssetStatusAvailable, AssetCondition: constants.AssetConditionGood,
	})
	require.NoError(t, err)
	return employeeID, assetID
}

func TestRequestRepository_Integration_ActiveRequestIsUnique(t *testing.T) {
	requireDB(t)
	cleanupTables(t)
	ctx := context.Background()
	employeeID, assetID := seedEmployeeAndAsset(t)
	repo := NewRequestRepository(testPool, zap.NewNop())

	req := entities.AssetRequest{
		IssueType: constants.IssueTypeRequest, EmployeeID: employeeID, EmployeeName: "Alice",
		AssetID: assetID, AssetName: "Dell Latitude", Description: "need a laptop", RequestDate: "2026-10-16",
	}
	id, err := repo.Create(ctx, nil, req)
	require.NoError(t, err)

	_, err = repo.Create(ctx, nil, req)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	created, err := repo.FindByID(ctx, nil, id)
	require.NoError(t, err)
	assert.Equal(t, constants.RequestStatusPending, created.EffectiveStatus())
	assert.Equal(t, "2026-10-16", created.RequestDate)

	// отклонённая заявка освобождает актив для новой
	require.NoError(t, repo.UpdateStatus(ctx, nil, id, constants.RequestStatusRejected))
	_, err = repo.Create(ctx, nil, req)
	assert.NoError(t, err)
}

func TestRequestRepository_Integration_NullStatusReadsAsPending(t *testing.T) {
	requireDB(t)
	cleanupTables(t)
	ctx := context.Background()
	employeeID, assetID := seedEmployeeAndAsset(t)

	_, err := testPool.Exec(ctx, `INSERT INTO asset_requests
		(issue_type, status, employee_id, employee_name, asset_id, asset_name, description, request_date)
		VALUES ('REQUEST', NULL, $1, 'Alice', $2, 'Dell Latitude', 'legacy row', '2024-01-01')`, employeeID, assetID)
	require.NoError(t, err)

	repo := NewRequestRepository(testPool, zap.NewNop())
	pending, err := repo.GetAll(ctx, workflow.RequestFilter{Status: constants.RequestStatusPending})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.False(t, pending[0].Status.Valid)

	blocking, err := repo.GetBlocking(ctx, nil, assetID)
	require.NoError(t, err)
	assert.Len(t, blocking, 1)
}

func TestTxManager_Integration_RollbackKeepsRequestUnchanged(t *testing.T) {
	requireDB(t)
	cleanupTables(t)
	ctx := context.Background()
	employeeID, assetID := seedEmployeeAndAsset(t)
	requests := NewRequestRepository(testPool, zap.NewNop())
	assets := NewAssetRepository(testPool, zap.NewNop())
	txManager := NewTxManager(testPool)

	id, err := requests.Create(ctx, nil, entities.AssetRequest{
		IssueType: constants.IssueTypeRequest, EmployeeID: employeeID, EmployeeName: "Alice",
		AssetID: assetID, AssetName: "Dell Latitude", Description: "need a laptop", RequestDate: "2026-10-16",
	})
	require.NoError(t, err)

	err = txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := requests.FindByIDForUpdate(ctx, tx, id); err != nil {
			return err
		}
		if err := requests.UpdateStatus(ctx, tx, id, constants.RequestStatusApproved); err != nil {
			return err
		}
		_, err := assets.FindByIDForUpdate(ctx, tx, assetID+100)
		return err
	})
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	after, err := requests.FindByID(ctx, nil, id)
	require.NoError(t, err)
	assert.Equal(t, constants.RequestStatusPending, after.EffectiveStatus())
}

func TestAssetRepository_Integration_UpdateAndFilters(t *testing.T) {
	requireDB(t)
	cleanupTables(t)
	ctx := context.Background()
	employeeID, assetID := seedEmployeeAndAsset(t)
	repo := NewAssetRepository(testPool, zap.NewNop())

	asset, err := repo.FindByID(ctx, nil, assetID)
	require.NoError(t, err)
	assert.False(t, asset.PurchasedDate.Valid)

	asset.Status = constants.AssetStatusAssigned
	asset.AssignedToID = null.Uint64From(employeeID)
	asset.AssignedToName = null.StringFrom("Alice")
	asset.PurchasedDate = null.StringFrom("2026-10-16")
	require.NoError(t, repo.Update(ctx, nil, *asset))

	assigned, err := repo.FindAssignedTo(ctx, employeeID)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, "2026-10-16", assigned[0].PurchasedDate.String)

	available, err := repo.FindByStatus(ctx, constants.AssetStatusAvailable)
	require.NoError(t, err)
	assert.Empty(t, available)

	_, err = repo.Create(ctx, nil, entities.Asset{
		Name: "Copy", AssetNumber: "LT-0001", CategoryName: "LAPTOP",
		Status: constants.AssetStatusAvailable, AssetCondition: constants.AssetConditionGood,
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}
