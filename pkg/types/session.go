package types

import "asset-desk/pkg/constants"

// Session - аутентифицированный пользователь текущего запроса.
// Передаётся в сервисы явно, а не читается из глобального состояния.
type Session struct {
	UserID uint64 `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func (s Session) IsAdmin() bool {
	return s.Role == constants.RoleAdmin
}

// CanAccessEmployee - администратор видит всех, сотрудник только себя.
func (s Session) CanAccessEmployee(employeeID uint64) bool {
	return s.IsAdmin() || s.UserID == employeeID
}
