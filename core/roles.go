package core

// Role identifies which dashboard and API scope a session may access.
// Values are the exact strings the backend issues at login; comparison is
// case-sensitive with no hierarchy between roles.
type Role string

const (
	RoleAdmin   Role = "administrador"
	RoleWaiter  Role = "mesero"
	RoleKitchen Role = "cocina"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleWaiter, RoleKitchen:
		return true
	}
	return false
}
