package constants

const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"
)

func IsKnownRole(role string) bool {
	return role == RoleAdmin || role == RoleEmployee
}

// DateLayout - формат календарной даты в API и БД.
const DateLayout = "2006-01-02"
