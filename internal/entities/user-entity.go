package entities

import (
	"github.com/aarondl/null/v8"

	"asset-desk/pkg/types"
)

// User - сотрудник или администратор (таблица users).
type User struct {
	ID            uint64      `json:"id" db:"id"`
	Name          string      `json:"name" db:"name"`
	Email         string      `json:"email" db:"email"`
	Password      string      `json:"-" db:"password"`
	ContactNumber null.String `json:"contactNumber" db:"contact_number"`
	Department    null.String `json:"department" db:"department"`
	Designation   null.String `json:"designation" db:"designation"`
	JoinDate      null.String `json:"joinDate" db:"join_date"`
	Role          string      `json:"role" db:"role"`

	types.BaseEntity
}

func (u User) Session() types.Session {
	return types.Session{UserID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
