package dto

import "github.com/aarondl/null/v8"

// CreateRequestDTO - статус и данные сотрудника из тела игнорируются:
// сотрудник берётся из сессии, статус всегда PENDING.
type CreateRequestDTO struct {
	IssueType   string `json:"issueType" validate:"required,issue_type"`
	AssetID     uint64 `json:"assetId" validate:"required,gt=0"`
	Description string `json:"description" validate:"required,notblank,max=2000"`
}

// UpdateRequestDTO - тело PUT /requests/:id.
type UpdateRequestDTO struct {
	ID          uint64      `json:"id"`
	Status      null.String `json:"status" validate:"omitempty,request_status"`
	Description null.String `json:"description" validate:"omitempty,notblank,max=2000"`
	Confirm     bool        `json:"confirm"`
}

// DecisionDTO - решение администратора.
type DecisionDTO struct {
	Status  string `json:"status" validate:"required,decision_status"`
	Confirm bool   `json:"confirm"`
}

// RequestListQuery - фильтр GET /requests.
type RequestListQuery struct {
	Status     string `query:"status" validate:"omitempty,request_status"`
	IssueType  string `query:"issueType" validate:"omitempty,issue_type"`
	EmployeeID uint64 `query:"employeeId"`
}
