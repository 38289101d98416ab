package model

// Role is the closed set of roles an actor can hold. It is stored inline
// as a string but must never take a value outside this set.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleUser     Role = "user"
	RoleEmployee Role = "employee"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleEmployee:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }
