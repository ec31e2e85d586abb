package auth

// Role is the closed set of privilege levels a user can hold.
type Role string

const (
	RoleAnonymous     Role = "ANONYMOUS"
	RoleAuthenticated Role = "AUTHENTICATED"
	RoleManager       Role = "MANAGER"
	RoleAdmin         Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAnonymous, RoleAuthenticated, RoleManager, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// In reports whether r is a member of the allowed set.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// ManagementRoles is the role set required by the user directory endpoints.
var ManagementRoles = []Role{RoleAdmin, RoleManager}
