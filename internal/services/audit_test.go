package services

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"asset-desk/internal/dto"
	"asset-desk/internal/entities"
	"asset-desk/pkg/constants"
	apperrors "asset-desk/pkg/errors"
)

type fakeAuditRepo struct{ logs []entities.AuditLog }

func (r *fakeAuditRepo) GetAll(_ context.Context) ([]entities.AuditLog, error) {
	return r.logs, nil
}

func (r *fakeAuditRepo) Create(_ context.Context, log entities.AuditLog) (*entities.AuditLog, error) {
	log.ID = uint64(len(r.logs) + 1)
	r.logs = append([]entities.AuditLog{log}, r.logs...)
	return &log, nil
}

func TestAuditService(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.users[7] = entities.User{ID: 7, Name: "Ravi", Role: constants.RoleEmployee}
	a := laptop(11, "LT-11")
	a.Status = constants.AssetStatusAssigned
	a.AssignedToID = null.Uint64From(7)
	store.assets[11] = a
	store.assets[12] = laptop(12, "LT-12")

	repo := &fakeAuditRepo{}
	svc := NewAuditService(repo, fakeUserRepo{store: store}, fakeAssetRepo{store: store}, zap.NewNop())
	svc.now = func() time.Time { return fixedNow }

	created, err := svc.CreateAuditRequest(ctx, adminSession, dto.CreateAuditDTO{
		EmployeeID: 7, AssetID: 11, LegacyDescription: "yearly check",
	})
	require.NoError(t, err)
	assert.Equal(t, constants.RequestStatusPending, created.Status)
	assert.Equal(t, adminSession.Name, created.PerformedBy)
	assert.Equal(t, "yearly check", created.AuditDescription)
	assert.Equal(t, "Ravi", created.EmployeeName)
	assert.Equal(t, fixedNow, created.AuditDate)

	_, err = svc.CreateAuditRequest(ctx, adminSession, dto.CreateAuditDTO{EmployeeID: 7, AssetID: 12, Description: "not theirs"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.CreateAuditRequest(ctx, adminSession, dto.CreateAuditDTO{EmployeeID: 99, AssetID: 11, Description: "ghost"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.CreateAuditRequest(ctx, adminSession, dto.CreateAuditDTO{EmployeeID: 7, AssetID: 11})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.CreateAuditRequest(ctx, employeeSession, dto.CreateAuditDTO{EmployeeID: 7, AssetID: 11, Description: "x"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	logs, err := svc.GetLogs(ctx, adminSession)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestEmployeeService(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.users[1] = entities.User{ID: 1, Name: "Admin", Role: constants.RoleAdmin}
	store.users[7] = entities.User{ID: 7, Name: "Ravi", Role: constants.RoleEmployee}
	svc := NewEmployeeService(fakeUserRepo{store: store}, zap.NewNop())

	employees, err := svc.GetEmployees(ctx, adminSession, "")
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "Ravi", employees[0].Name)

	all, err := svc.GetEmployees(ctx, adminSession, "all")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.GetEmployees(ctx, adminSession, "intern")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.GetEmployees(ctx, employeeSession, "")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
