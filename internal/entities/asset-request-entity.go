package entities

import (
	"github.com/aarondl/null/v8"

	"asset-desk/pkg/constants"
	"asset-desk/pkg/types"
)

// AssetRequest - заявка сотрудника на актив или сервисное обращение по уже выданному активу.
type AssetRequest struct {
	ID           uint64      `json:"id" db:"id"`
	IssueType    string      `json:"issueType" db:"issue_type"`
	Status       null.String `json:"status" db:"status"`
	EmployeeID   uint64      `json:"employeeId" db:"employee_id"`
	EmployeeName string      `json:"employeeName" db:"employee_name"`
	AssetID      uint64      `json:"assetId" db:"asset_id"`
	AssetName    string      `json:"assetName" db:"asset_name"`
	Description  string      `json:"description" db:"description"`
	RequestDate  string      `json:"requestDate" db:"request_date"`

	types.BaseEntity
}

// EffectiveStatus - пустой статус в старых записях считается PENDING.
func (r AssetRequest) EffectiveStatus() string {
	if !r.Status.Valid || r.Status.String == "" {
		return constants.RequestStatusPending
	}
	return r.Status.String
}

// IsAssetRequest - заявка на выдачу актива, а не сервисное обращение.
func (r AssetRequest) IsAssetRequest() bool {
	return r.IssueType == constants.IssueTypeRequest
}
