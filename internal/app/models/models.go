package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "student"
	RoleCR      RoleType = "cr"
	RoleAdmin   RoleType = "admin"
)

// IsModerator reports whether the role may approve or reject notes.
func (r RoleType) IsModerator() bool {
	return r == RoleCR || r == RoleAdmin
}

// Valid reports whether the role is one of the known role values.
func (r RoleType) Valid() bool {
	switch r {
	case RoleStudent, RoleCR, RoleAdmin:
		return true
	}
	return false
}
