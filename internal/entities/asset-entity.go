package entities

import (
	"github.com/aarondl/null/v8"

	"asset-desk/pkg/types"
)

type Asset struct {
	ID             uint64      `json:"id" db:"id"`
	Name           string      `json:"name" db:"name"`
	AssetNumber    string      `json:"assetNumber" db:"asset_number"`
	CategoryName   string      `json:"categoryName" db:"category_name"`
	Status         string      `json:"status" db:"status"`
	AssetCondition string      `json:"assetCondition" db:"asset_condition"`
	AssignedToID   null.Uint64 `json:"assignedToId" db:"assigned_to_id"`
	AssignedToName null.String `json:"assignedToName" db:"assigned_to_name"`
	PurchasedDate  null.String `json:"purchasedDate" db:"purchased_date"`

	types.BaseEntity
}
