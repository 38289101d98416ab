package service

import (
	"testing"

	"github.com/dkhromov/stafftests/internal/apperr"
	"github.com/dkhromov/stafftests/internal/model"
	"github.com/dkhromov/stafftests/internal/repository"
	"gorm.io/gorm"
)

func newApprovalService(db *gorm.DB) ApprovalService {
	return NewApprovalService(
		repository.NewResultRepository(db),
		repository.NewDeletionRequestRepository(db),
		repository.NewTestRepository(db),
		db,
	)
}

func seedResult(t *testing.T, db *gorm.DB, userID uint, testID *uint, attempt int) *model.TestResult {
	t.Helper()
	result := model.TestResult{
		UserID:        userID,
		TestID:        testID,
		ScoreAchieved: 1,
		Status:        model.StatusPassed,
		AttemptNumber: attempt,
	}
	if err := db.Create(&result).Error; err != nil {
		t.Fatalf("seeding test result: %v", err)
	}
	return &result
}

func TestApproveResult(t *testing.T) {
	db := newTestDB(t)
	svc := newApprovalService(db)
	user := seedUser(t, db, "taker@example.com")
	employee := seedEmployee(t, db, "reviewer@example.com", nil)
	test, _, _ := seedTest(t, db, 1, 1)
	result := seedResult(t, db, user.ID, &test.ID, 1)

	resp, err := svc.ApproveResult(employeeActor(employee), result.ID)
	if err != nil {
		t.Fatalf("ApproveResult() error = %v", err)
	}
	if resp.Approved == nil || !*resp.Approved {
		t.Error("result not marked approved")
	}

	var reloaded model.TestResult
	if err := db.First(&reloaded, result.ID).Error; err != nil {
		t.Fatal(err)
	}
	if reloaded.Approved == nil || !*reloaded.Approved {
		t.Error("stored result not approved")
	}
	if reloaded.EmployeeID == nil || *reloaded.EmployeeID != employee.ID {
		t.Errorf("reviewer not recorded: got %v, want %d", reloaded.EmployeeID, employee.ID)
	}

	// Resolved results cannot be touched again.
	if _, err := svc.ApproveResult(employeeActor(employee), result.ID); !apperr.IsConflict(err) {
		t.Errorf("re-approve error = %v, want conflict", err)
	}
	if err := svc.DeclineResult(employeeActor(employee), result.ID); !apperr.IsConflict(err) {
		t.Errorf("decline after approve error = %v, want conflict", err)
	}
}

func TestDeclineResultDeletes(t *testing.T) {
	db := newTestDB(t)
	svc := newApprovalService(db)
	user := seedUser(t, db, "taker@example.com")
	employee := seedEmployee(t, db, "reviewer@example.com", nil)
	test, _, _ := seedTest(t, db, 1, 1)
	result := seedResult(t, db, user.ID, &test.ID, 1)

	if err := svc.DeclineResult(employeeActor(employee), result.ID); err != nil {
		t.Fatalf("DeclineResult() error = %v", err)
	}

	var count int64
	db.Model(&model.TestResult{}).Where("id = ?", result.ID).Count(&count)
	if count != 0 {
		t.Error("declined result still present")
	}
	if err := svc.DeclineResult(employeeActor(employee), result.ID); !apperr.IsNotFound(err) {
		t.Errorf("decline of removed result error = %v, want not found", err)
	}
}

func TestPendingResultsExcludesResolved(t *testing.T) {
	db := newTestDB(t)
	svc := newApprovalService(db)
	user := seedUser(t, db, "taker@example.com")
	employee := seedEmployee(t, db, "reviewer@example.com", nil)
	test, _, _ := seedTest(t, db, 1, 1)

	pendingResult := seedResult(t, db, user.ID, &test.ID, 1)
	resolved := seedResult(t, db, user.ID, &test.ID, 2)
	if _, err := svc.ApproveResult(employeeActor(employee), resolved.ID); err != nil {
		t.Fatal(err)
	}

	pending, err := svc.PendingResults()
	if err != nil {
		t.Fatalf("PendingResults() error = %v", err)
	}
	if len(pending) != 1 || pending[0].ID != pendingResult.ID {
		t.Errorf("PendingResults() = %+v, want the single unresolved result %d", pending, pendingResult.ID)
	}
}

func TestRequestDeletion(t *testing.T) {
	db := newTestDB(t)
	svc := newApprovalService(db)
	user := seedUser(t, db, "linked@example.com")
	employee := seedEmployee(t, db, "staff@example.com", &user.ID)
	test, _, _ := seedTest(t, db, 1, 1)

	resp, err := svc.RequestDeletion(employeeActor(employee), test.ID)
	if err != nil {
		t.Fatalf("RequestDeletion() error = %v", err)
	}
	if resp.Approved != nil {
		t.Error("fresh request is not pending")
	}
	if resp.RequestedByID != user.ID {
		t.Errorf("RequestedByID = %d, want linked user %d", resp.RequestedByID, user.ID)
	}
	if resp.TestTitle != test.Title {
		t.Errorf("TestTitle = %q, want %q", resp.TestTitle, test.Title)
	}

	// Only one open request per test.
	if _, err := svc.RequestDeletion(employeeActor(employee), test.ID); !apperr.IsConflict(err) {
		t.Errorf("duplicate request error = %v, want conflict", err)
	}

	// An employee without a linked user identity cannot file one.
	unlinked := seedEmployee(t, db, "unlinked@example.com", nil)
	_, err = svc.RequestDeletion(employeeActor(unlinked), test.ID)
	if _, ok := apperr.AsFieldErrors(err); !ok {
		t.Errorf("unlinked actor error = %v, want field errors", err)
	}

	if _, err := svc.RequestDeletion(employeeActor(employee), 12345); !apperr.IsNotFound(err) {
		t.Errorf("unknown test error = %v, want not found", err)
	}
}

func TestApproveDeletionCascades(t *testing.T) {
	db := newTestDB(t)
	svc := newApprovalService(db)
	user := seedUser(t, db, "linked@example.com")
	employee := seedEmployee(t, db, "staff@example.com", &user.ID)
	admin := seedEmployee(t, db, "admin@example.com", nil)
	test, _, _ := seedTest(t, db, 1, 2)
	result := seedResult(t, db, user.ID, &test.ID, 1)

	req, err := svc.RequestDeletion(employeeActor(employee), test.ID)
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.ApproveDeletion(employeeActor(admin), req.ID); err != nil {
		t.Fatalf("ApproveDeletion() error = %v", err)
	}

	counts := []struct {
		name  string
		model any
		where string
		arg   uint
	}{
		{"tests", &model.Test{}, "id = ?", test.ID},
		{"questions", &model.Question{}, "test_id = ?", test.ID},
		{"deletion requests", &model.TestDeletionRequest{}, "test_id = ?", test.ID},
	}
	for _, c := range counts {
		var n int64
		db.Model(c.model).Where(c.where, c.arg).Count(&n)
		if n != 0 {
			t.Errorf("%s left behind after cascade: %d", c.name, n)
		}
	}
	var answers int64
	db.Model(&model.Answer{}).Count(&answers)
	if answers != 0 {
		t.Errorf("answers left behind after cascade: %d", answers)
	}

	// The result survives, unhooked from the deleted test.
	var reloaded model.TestResult
	if err := db.First(&reloaded, result.ID).Error; err != nil {
		t.Fatalf("result gone after test deletion: %v", err)
	}
	if reloaded.TestID != nil {
		t.Errorf("result test reference = %v, want NULL", *reloaded.TestID)
	}
}

func TestDeclineDeletionPersists(t *testing.T) {
	db := newTestDB(t)
	svc := newApprovalService(db)
	user := seedUser(t, db, "linked@example.com")
	employee := seedEmployee(t, db, "staff@example.com", &user.ID)
	admin := seedEmployee(t, db, "admin@example.com", nil)
	test, _, _ := seedTest(t, db, 1, 1)

	req, err := svc.RequestDeletion(employeeActor(employee), test.ID)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := svc.DeclineDeletion(employeeActor(admin), req.ID)
	if err != nil {
		t.Fatalf("DeclineDeletion() error = %v", err)
	}
	if resp.Approved == nil || *resp.Approved {
		t.Error("declined request not marked approved=false")
	}

	// The test stays, and the refused request remains on record.
	if err := db.First(&model.Test{}, test.ID).Error; err != nil {
		t.Errorf("test removed by a declined request: %v", err)
	}
	var reloaded model.TestDeletionRequest
	if err := db.First(&reloaded, req.ID).Error; err != nil {
		t.Fatal(err)
	}
	if reloaded.Approved == nil || *reloaded.Approved {
		t.Error("stored request not marked declined")
	}

	// A refused request no longer blocks a new one.
	if _, err := svc.RequestDeletion(employeeActor(employee), test.ID); err != nil {
		t.Errorf("new request after decline error = %v", err)
	}

	if _, err := svc.DeclineDeletion(employeeActor(admin), req.ID); !apperr.IsConflict(err) {
		t.Errorf("re-decline error = %v, want conflict", err)
	}
}
