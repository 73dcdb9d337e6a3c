package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"asset-desk/internal/dto"
	"asset-desk/internal/entities"
	"asset-desk/internal/repositories"
	"asset-desk/pkg/constants"
	apperrors "asset-desk/pkg/errors"
)

func newAssetFixture() (*memStore, *fakeCache, *AssetService) {
	store := newMemStore()
	cache := newFakeCache()
	svc := NewAssetService(fakeAssetRepo{store: store}, fakeRequestRepo{store: store}, fakeUserRepo{store: store}, cache, zap.NewNop())
	return store, cache, svc
}

func laptop(id uint64, number string) entities.Asset {
	return entities.Asset{
		ID:             id,
		Name:           "Laptop " + number,
		AssetNumber:    number,
		CategoryName:   "LAPTOP",
		Status:         constants.AssetStatusAvailable,
		AssetCondition: constants.AssetConditionGood,
	}
}

func TestGetAvailableForRequest(t *testing.T) {
	store, _, svc := newAssetFixture()
	store.assets[1] = laptop(1, "LT-1")
	store.assets[2] = laptop(2, "LT-2")
	store.assets[3] = laptop(3, "LT-3")
	monitor := laptop(4, "MN-4")
	monitor.CategoryName = "MONITOR"
	store.assets[4] = monitor
	purchased := laptop(5, "LT-5")
	purchased.PurchasedDate = null.StringFrom("2025-01-10")
	store.assets[5] = purchased

	store.requests[10] = entities.AssetRequest{ID: 10, IssueType: constants.IssueTypeRequest, AssetID: 1}
	store.requests[11] = entities.AssetRequest{ID: 11, IssueType: constants.IssueTypeRequest, AssetID: 2, Status: null.StringFrom(constants.RequestStatusApproved)}
	store.requests[12] = entities.AssetRequest{ID: 12, IssueType: constants.IssueTypeRequest, AssetID: 3, Status: null.StringFrom(constants.RequestStatusRejected)}

	got, err := svc.GetAvailableForRequest(context.Background(), dto.AvailableAssetsQuery{})
	require.NoError(t, err)
	assert.Equal(t, []uint64{3, 4}, assetIDs(got))

	got, err = svc.GetAvailableForRequest(context.Background(), dto.AvailableAssetsQuery{Category: "monitor"})
	require.NoError(t, err)
	assert.Equal(t, []uint64{4}, assetIDs(got))

	got, err = svc.GetAvailableForRequest(context.Background(), dto.AvailableAssetsQuery{Search: "lt-3"})
	require.NoError(t, err)
	assert.Equal(t, []uint64{3}, assetIDs(got))
}

// Открытое сервисное обращение тоже держит актив, как и заявка на выдачу.
func TestGetAvailableForRequest_OpenServiceTicketBlocksAsset(t *testing.T) {
	store, _, svc := newAssetFixture()
	store.assets[1] = laptop(1, "LT-1")
	store.assets[2] = laptop(2, "LT-2")
	store.assets[3] = laptop(3, "LT-3")

	store.requests[10] = entities.AssetRequest{ID: 10, IssueType: constants.IssueTypeHardware, AssetID: 1}
	store.requests[11] = entities.AssetRequest{ID: 11, IssueType: constants.IssueTypeSoftware, AssetID: 2, Status: null.StringFrom(constants.RequestStatusApproved)}
	store.requests[12] = entities.AssetRequest{ID: 12, IssueType: constants.IssueTypeOther, AssetID: 3, Status: null.StringFrom(constants.RequestStatusRejected)}

	got, err := svc.GetAvailableForRequest(context.Background(), dto.AvailableAssetsQuery{})
	require.NoError(t, err)
	assert.Equal(t, []uint64{3}, assetIDs(got))
}

func TestCreateAsset(t *testing.T) {
	ctx := context.Background()
	store, cache, svc := newAssetFixture()
	store.users[7] = entities.User{ID: 7, Name: "Ravi", Role: constants.RoleEmployee}

	created, err := svc.CreateAsset(ctx, adminSession, dto.AssetDTO{
		Name: " ThinkPad ", AssetNumber: "LT-9", CategoryName: "laptop",
		Status: "assigned", AssetCondition: "good", AssignedToID: null.Uint64From(7),
	})
	require.NoError(t, err)
	assert.Equal(t, "ThinkPad", created.Name)
	assert.Equal(t, "LAPTOP", created.CategoryName)
	assert.Equal(t, constants.AssetStatusAssigned, created.Status)
	assert.Equal(t, null.StringFrom("Ravi"), created.AssignedToName)
	generation, err := repositories.DashboardGeneration(ctx, cache)
	require.NoError(t, err)
	assert.Equal(t, int64(1), generation)

	_, err = svc.CreateAsset(ctx, adminSession, dto.AssetDTO{
		Name: "Other", AssetNumber: "LT-9", CategoryName: "LAPTOP", Status: "AVAILABLE", AssetCondition: "GOOD",
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = svc.CreateAsset(ctx, adminSession, dto.AssetDTO{
		Name: "Ghost", AssetNumber: "LT-10", CategoryName: "LAPTOP", Status: "AVAILABLE", AssetCondition: "GOOD",
		AssignedToID: null.Uint64From(404),
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.CreateAsset(ctx, adminSession, dto.AssetDTO{
		Name: "Bad", AssetNumber: "LT-11", CategoryName: "LAPTOP", Status: "LOST", AssetCondition: "GOOD",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.CreateAsset(ctx, adminSession, dto.AssetDTO{
		Name: "Dated", AssetNumber: "LT-12", CategoryName: "LAPTOP", Status: "AVAILABLE", AssetCondition: "GOOD",
		PurchasedDate: null.StringFrom("12/01/2025"),
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	dated, err := svc.CreateAsset(ctx, adminSession, dto.AssetDTO{
		Name: "Dated", AssetNumber: "LT-13", CategoryName: "LAPTOP", Status: "RETIRED", AssetCondition: "GOOD",
		PurchasedDate: null.StringFrom(" 2025-12-01 "),
	})
	require.NoError(t, err)
	assert.Equal(t, null.StringFrom("2025-12-01"), dated.PurchasedDate)

	_, err = svc.CreateAsset(ctx, employeeSession, dto.AssetDTO{})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestUpdateAndDeleteAsset(t *testing.T) {
	ctx := context.Background()
	store, _, svc := newAssetFixture()
	store.assets[1] = laptop(1, "LT-1")
	store.assets[2] = laptop(2, "LT-2")
	store.requests[10] = entities.AssetRequest{ID: 10, IssueType: constants.IssueTypeRequest, AssetID: 2}

	updated, err := svc.UpdateAsset(ctx, adminSession, 1, dto.AssetDTO{
		ID: 1, Name: "Laptop LT-1", AssetNumber: "LT-1", CategoryName: "LAPTOP",
		Status: "UNDER_REPAIR", AssetCondition: "REPAIR",
	})
	require.NoError(t, err)
	assert.Equal(t, constants.AssetStatusUnderRepair, updated.Status)

	_, err = svc.UpdateAsset(ctx, adminSession, 1, dto.AssetDTO{ID: 2})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	require.NoError(t, svc.DeleteAsset(ctx, adminSession, 1))
	assert.ErrorIs(t, svc.DeleteAsset(ctx, adminSession, 2), apperrors.ErrConflict)
	assert.ErrorIs(t, svc.DeleteAsset(ctx, adminSession, 1), apperrors.ErrNotFound)
}

func TestGetAssignedAssets(t *testing.T) {
	store, _, svc := newAssetFixture()
	a := laptop(1, "LT-1")
	a.Status = constants.AssetStatusAssigned
	a.AssignedToID = null.Uint64From(employeeSession.UserID)
	store.assets[1] = a
	store.assets[2] = laptop(2, "LT-2")

	got, err := svc.GetAssignedAssets(context.Background(), employeeSession, employeeSession.UserID)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1}, assetIDs(got))

	_, err = svc.GetAssignedAssets(context.Background(), otherSession, employeeSession.UserID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	byStatus, err := svc.GetAssetsByStatus(context.Background(), "available")
	require.NoError(t, err)
	assert.Equal(t, []uint64{2}, assetIDs(byStatus))
}

func TestAssetImporter(t *testing.T) {
	store, _, svc := newAssetFixture()
	store.assets[1] = laptop(1, "LT-1")
	importer := NewAssetImporter(svc, zap.NewNop())

	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Inventory export"},
		{"Name", "Asset Number", "Category", "Status", "Condition", "Purchased Date"},
		{"Dell Monitor", "MN-1", "monitor", "", "", ""},
		{"Old laptop", "LT-1", "LAPTOP", "AVAILABLE", "GOOD", ""},
		{"Broken", "LT-2", "LAPTOP", "LOST", "GOOD", ""},
		{"Bad date", "LT-3", "LAPTOP", "RETIRED", "GOOD", "01.02.2024"},
		{"", "", "", "", "", ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	result, err := importer.Import(context.Background(), adminSession, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 2, result.Failed)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "row 5")
	assert.Contains(t, result.Errors[1], "row 6")
	assert.Contains(t, result.Errors[1], "purchasedDate")

	monitors, err := svc.GetAssetsByStatus(context.Background(), constants.AssetStatusAvailable)
	require.NoError(t, err)
	assert.Len(t, monitors, 2)
}

func assetIDs(assets []entities.Asset) []uint64 {
	out := make([]uint64, 0, len(assets))
	for _, a := range assets {
		out = append(out, a.ID)
	}
	return out
}
