package service

import (
	"errors"
	"testing"

	"github.com/dkhromov/stafftests/internal/apperr"
	"github.com/dkhromov/stafftests/internal/dto"
	"github.com/dkhromov/stafftests/internal/model"
	"github.com/dkhromov/stafftests/internal/repository"
	"gorm.io/gorm"
)

func newEmployeeService(db *gorm.DB) EmployeeService {
	return NewEmployeeService(
		repository.NewEmployeeRepository(db),
		repository.NewUserRepository(db),
		db,
	)
}

func TestEmployeeValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newEmployeeService(db)

	tests := []struct {
		name      string
		req       dto.EmployeeRequest
		wantField string
	}{
		{
			name:      "experience exceeding age",
			req:       dto.EmployeeRequest{FullName: "A", Email: "a@example.com", Age: 25, YearsOfExperience: 30, Position: "Clerk"},
			wantField: "years_of_experience",
		},
		{
			name:      "negative salary",
			req:       dto.EmployeeRequest{FullName: "A", Email: "a@example.com", Age: 25, Position: "Clerk", Salary: -1},
			wantField: "salary",
		},
		{
			name:      "bad email",
			req:       dto.EmployeeRequest{FullName: "A", Email: "not-an-email", Age: 25, Position: "Clerk"},
			wantField: "email",
		},
		{
			name:      "missing position",
			req:       dto.EmployeeRequest{FullName: "A", Email: "a@example.com", Age: 25},
			wantField: "position",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(tt.req)
			fe, ok := apperr.AsFieldErrors(err)
			if !ok {
				t.Fatalf("Create() error = %v, want field errors", err)
			}
			if _, found := fe[tt.wantField]; !found {
				t.Errorf("missing field error for %q: %v", tt.wantField, fe)
			}
		})
	}
}

func TestEmployeeEmailUniqueness(t *testing.T) {
	db := newTestDB(t)
	svc := newEmployeeService(db)
	seedEmployee(t, db, "taken@example.com", nil)
	seedUser(t, db, "user-taken@example.com")

	// Same table.
	_, err := svc.Create(dto.EmployeeRequest{FullName: "B", Email: "taken@example.com", Age: 30, Position: "Clerk"})
	if fe, ok := apperr.AsFieldErrors(err); !ok || fe["email"] == nil {
		t.Fatalf("Create(duplicate employee email) error = %v, want email field error", err)
	}

	// Cross-table: an email held by an AppUser is also rejected.
	_, err = svc.Create(dto.EmployeeRequest{FullName: "B", Email: "user-taken@example.com", Age: 30, Position: "Clerk"})
	if fe, ok := apperr.AsFieldErrors(err); !ok || fe["email"] == nil {
		t.Fatalf("Create(user-held email) error = %v, want email field error", err)
	}

	// Updating a record keeping its own email is not a duplicate.
	existing := seedEmployee(t, db, "self@example.com", nil)
	_, err = svc.Update(existing.ID, dto.EmployeeRequest{
		FullName: "Renamed", Email: "self@example.com", Age: 41,
		YearsOfExperience: 10, Position: "Senior Inspector", Salary: 1200,
	})
	if err != nil {
		t.Fatalf("Update(own email) error = %v", err)
	}
}

func TestFireIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newEmployeeService(db)
	employee := seedEmployee(t, db, "fired@example.com", nil)

	resp, err := svc.Fire(employee.ID)
	if err != nil {
		t.Fatalf("Fire() error = %v", err)
	}
	if resp.Warning != "" {
		t.Errorf("first Fire() warning = %q, want none", resp.Warning)
	}

	// Re-firing is a soft warning, never an error, and changes nothing.
	resp, err = svc.Fire(employee.ID)
	if err != nil {
		t.Fatalf("Fire() again error = %v", err)
	}
	if resp.Warning == "" {
		t.Error("second Fire() returned no warning")
	}

	var reloaded model.Employee
	if err := db.First(&reloaded, employee.ID).Error; err != nil {
		t.Fatal(err)
	}
	if !reloaded.IsFired {
		t.Error("employee not marked fired")
	}
}

func TestHardDeleteRequiresFired(t *testing.T) {
	db := newTestDB(t)
	svc := newEmployeeService(db)
	employee := seedEmployee(t, db, "keep@example.com", nil)

	if err := svc.HardDelete(employee.ID); !apperr.IsConflict(err) {
		t.Fatalf("HardDelete(not fired) error = %v, want conflict", err)
	}
	var count int64
	db.Model(&model.Employee{}).Where("id = ?", employee.ID).Count(&count)
	if count != 1 {
		t.Error("employee was deleted despite the precondition failure")
	}
}

func TestHardDeleteRemovesLinkedUser(t *testing.T) {
	db := newTestDB(t)
	svc := newEmployeeService(db)
	user := seedUser(t, db, "linked@example.com")
	employee := seedEmployee(t, db, "gone@example.com", &user.ID)

	if _, err := svc.Fire(employee.ID); err != nil {
		t.Fatal(err)
	}
	if err := svc.HardDelete(employee.ID); err != nil {
		t.Fatalf("HardDelete() error = %v", err)
	}

	if err := db.First(&model.Employee{}, employee.ID).Error; !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("employee still present: err = %v", err)
	}
	if err := db.First(&model.AppUser{}, user.ID).Error; !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("linked user still present: err = %v", err)
	}
}

func TestHardDeleteUnknownEmployee(t *testing.T) {
	db := newTestDB(t)
	svc := newEmployeeService(db)
	if err := svc.HardDelete(404); !apperr.IsNotFound(err) {
		t.Fatalf("HardDelete(missing) error = %v, want not found", err)
	}
}
