package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dkhromov/stafftests/internal/actor"
	"github.com/dkhromov/stafftests/internal/model"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a per-test in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	err = db.AutoMigrate(
		&model.AppUser{},
		&model.Employee{},
		&model.Test{},
		&model.Question{},
		&model.Answer{},
		&model.TestResult{},
		&model.TestDeletionRequest{},
		&model.Session{},
	)
	if err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *model.AppUser {
	t.Helper()
	user := &model.AppUser{FullName: "Test User", Email: email, Age: 30, Role: model.RoleUser, IsActive: true}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return user
}

func seedEmployee(t *testing.T, db *gorm.DB, email string, appUserID *uint) *model.Employee {
	t.Helper()
	employee := &model.Employee{
		FullName:          "Test Employee",
		Email:             email,
		Age:               40,
		Role:              model.RoleEmployee,
		YearsOfExperience: 10,
		Position:          "Inspector",
		Salary:            1000,
		AppUserID:         appUserID,
	}
	if err := db.Create(employee).Error; err != nil {
		t.Fatalf("seeding employee: %v", err)
	}
	return employee
}

// seedTest creates a test with the given number of questions, each with
// one correct and one wrong answer. Returns the test plus the correct and
// wrong answer ids, index-aligned with the questions.
func seedTest(t *testing.T, db *gorm.DB, passingScore, questions int) (*model.Test, []uint, []uint) {
	t.Helper()
	test := &model.Test{Title: "Safety rules", PassingScore: passingScore, TimeToComplete: 30}
	if err := db.Create(test).Error; err != nil {
		t.Fatalf("seeding test: %v", err)
	}
	var correct, wrong []uint
	for i := 0; i < questions; i++ {
		q := &model.Question{TestID: test.ID, QuestionText: fmt.Sprintf("Question %d", i+1)}
		if err := db.Create(q).Error; err != nil {
			t.Fatalf("seeding question: %v", err)
		}
		right := &model.Answer{QuestionID: q.ID, AnswerText: "right", IsCorrect: true}
		bad := &model.Answer{QuestionID: q.ID, AnswerText: "wrong"}
		if err := db.Create(right).Error; err != nil {
			t.Fatalf("seeding answer: %v", err)
		}
		if err := db.Create(bad).Error; err != nil {
			t.Fatalf("seeding answer: %v", err)
		}
		correct = append(correct, right.ID)
		wrong = append(wrong, bad.ID)
	}
	return test, correct, wrong
}

func userActor(u *model.AppUser) *actor.Actor {
	return actor.FromUser(u, model.RoleUser)
}

func employeeActor(e *model.Employee) *actor.Actor {
	return actor.FromEmployee(e, model.RoleEmployee)
}
