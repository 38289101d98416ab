// Package actor defines the resolved identity a request acts as. The
// session middleware resolves the tagged identity (AppUser or Employee)
// once per request into a uniform Actor; nothing downstream branches on
// the identity type except through the helpers here.
package actor

import "github.com/dkhromov/stafftests/internal/model"

// Kind tags which identity table the actor was resolved from.
type Kind string

const (
	KindUser     Kind = "user"
	KindEmployee Kind = "employee"
)

// Actor is the resolved identity and role performing a request.
type Actor struct {
	Kind        Kind
	ID          uint
	DisplayName string
	Role        model.Role

	// UserID is the AppUser identity this actor can record results against:
	// the actor's own id for user actors, the linked AppUser id for employee
	// actors, nil when the employee has no linked user identity.
	UserID *uint

	// EmployeeID is set for employee-kind actors.
	EmployeeID *uint
}

// FromUser builds an Actor for an AppUser session.
func FromUser(u *model.AppUser, role model.Role) *Actor {
	id := u.ID
	return &Actor{
		Kind:        KindUser,
		ID:          u.ID,
		DisplayName: u.FullName,
		Role:        role,
		UserID:      &id,
	}
}

// FromEmployee builds an Actor for an Employee session.
func FromEmployee(e *model.Employee, role model.Role) *Actor {
	id := e.ID
	return &Actor{
		Kind:        KindEmployee,
		ID:          e.ID,
		DisplayName: e.FullName,
		Role:        role,
		UserID:      e.AppUserID,
		EmployeeID:  &id,
	}
}

// HasRole reports whether the actor's role is in the given set.
func (a *Actor) HasRole(roles ...model.Role) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}
