package dto

import "github.com/aarondl/null/v8"

// AssetDTO - тело POST /assets и PUT /assets/:id (полная замена).
type AssetDTO struct {
	ID             uint64      `json:"id"`
	Name           string      `json:"name" validate:"required,notblank,max=255"`
	AssetNumber    string      `json:"assetNumber" validate:"required,notblank,max=100"`
	CategoryName   string      `json:"categoryName" validate:"required,notblank,max=255"`
	Status         string      `json:"status" validate:"required,asset_status"`
	AssetCondition string      `json:"assetCondition" validate:"required,asset_condition"`
	AssignedToID   null.Uint64 `json:"assignedToId"`
	AssignedToName null.String `json:"assignedToName" validate:"omitempty,max=255"`
	PurchasedDate  null.String `json:"purchasedDate" validate:"omitempty,date_ymd"`
}

// AvailableAssetsQuery - GET /assets/available.
type AvailableAssetsQuery struct {
	Search   string `query:"search"`
	Category string `query:"category"`
}
