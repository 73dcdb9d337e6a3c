package workflow

import (
	"github.com/aarondl/null/v8"

	"asset-desk/internal/entities"
	"asset-desk/pkg/constants"
)

// ProjectedAssetStatus - статус актива, следующий из нового статуса заявки.
func ProjectedAssetStatus(next string) (string, bool) {
	switch next {
	case constants.RequestStatusApproved:
		return constants.AssetStatusAssigned, true
	case constants.RequestStatusRejected:
		return constants.AssetStatusAvailable, true
	case constants.RequestStatusUnderReview:
		return constants.AssetStatusRequested, true
	}
	return "", false
}

// Projects - статус актива меняют только заявки на выдачу.
// Сервисные обращения относятся к уже выданному активу и его не трогают.
func Projects(req entities.AssetRequest) bool {
	return req.IsAssetRequest()
}

// ProjectAsset применяет решение по заявке к активу.
// today - дата в формате YYYY-MM-DD. Второе значение false, если актив не меняется.
func ProjectAsset(asset entities.Asset, req entities.AssetRequest, next, today string) (entities.Asset, bool) {
	if !Projects(req) {
		return asset, false
	}
	status, ok := ProjectedAssetStatus(next)
	if !ok {
		return asset, false
	}

	asset.Status = status
	if status == constants.AssetStatusAssigned {
		asset.AssignedToID = null.Uint64From(req.EmployeeID)
		asset.AssignedToName = null.StringFrom(req.EmployeeName)
		asset.PurchasedDate = null.StringFrom(today)
	}
	return asset, true
}
