package entities

import "time"

type AuditLog struct {
	ID               uint64    `json:"id" db:"id"`
	EmployeeID       uint64    `json:"employeeId" db:"employee_id"`
	EmployeeName     string    `json:"employeeName" db:"employee_name"`
	AssetID          uint64    `json:"assetId" db:"asset_id"`
	AssetName        string    `json:"assetName" db:"asset_name"`
	PerformedBy      string    `json:"performedBy" db:"performed_by"`
	Status           string    `json:"status" db:"status"`
	AuditDescription string    `json:"auditDescription" db:"audit_description"`
	AdminNote        string    `json:"adminNote" db:"admin_note"`
	AuditDate        time.Time `json:"auditDate" db:"audit_date"`
}
