package dto

// CreateAuditDTO - POST /audit/request. Старый клиент шлёт описание
// в поле auditDescrption, оно принимается наравне с description.
type CreateAuditDTO struct {
	EmployeeID        uint64 `json:"employeeId" validate:"required,gt=0"`
	AssetID           uint64 `json:"assetId" validate:"required,gt=0"`
	Description       string `json:"description"`
	LegacyDescription string `json:"auditDescrption"`
	AdminNote         string `json:"adminNote" validate:"max=2000"`
}

// Text - описание проверки с учётом старого имени поля.
func (d CreateAuditDTO) Text() string {
	if d.Description != "" {
		return d.Description
	}
	return d.LegacyDescription
}
