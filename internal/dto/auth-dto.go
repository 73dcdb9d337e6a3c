package dto

import "github.com/aarondl/null/v8"

// LoginDTO - username это email пользователя.
type LoginDTO struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginResponseDTO struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

type RegisterDTO struct {
	Name          string      `json:"name" validate:"required,notblank,max=255"`
	Email         string      `json:"email" validate:"required,custom_email"`
	Password      string      `json:"password" validate:"required,min=6"`
	ContactNumber null.String `json:"contactNumber" validate:"omitempty,max=50"`
	Department    null.String `json:"department" validate:"omitempty,max=255"`
	Designation   null.String `json:"designation" validate:"omitempty,max=255"`
	JoinDate      null.String `json:"joinDate" validate:"omitempty,date_ymd"`
	Role          string      `json:"role" validate:"required,role"`
}
