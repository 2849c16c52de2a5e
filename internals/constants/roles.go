package constants

import "fmt"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess = "Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyUsersCanAccess  = "Silakan login untuk mengakses fitur %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorUser(feature string) string {
	return fmt.Sprintf(ErrOnlyUsersCanAccess, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleUser,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

func IsValidRole(r string) bool {
	for _, x := range AllRoles {
		if x == r {
			return true
		}
	}
	return false
}
