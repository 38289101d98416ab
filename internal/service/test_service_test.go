package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dkhromov/stafftests/internal/apperr"
	"github.com/dkhromov/stafftests/internal/dto"
	"github.com/dkhromov/stafftests/internal/model"
	"github.com/dkhromov/stafftests/internal/repository"
	"gorm.io/gorm"
)

func newContentService(db *gorm.DB) TestService {
	return NewTestService(
		repository.NewTestRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewAnswerRepository(db),
		db,
	)
}

func TestCreateTestValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newContentService(db)

	_, err := svc.CreateTest(dto.TestRequest{Title: "", TimeToComplete: 0})
	fe, ok := apperr.AsFieldErrors(err)
	if !ok {
		t.Fatalf("CreateTest() error = %v, want field errors", err)
	}
	if _, found := fe["title"]; !found {
		t.Errorf("missing field error for title: %v", fe)
	}
	if _, found := fe["time_to_complete"]; !found {
		t.Errorf("missing field error for time_to_complete: %v", fe)
	}

	resp, err := svc.CreateTest(dto.TestRequest{Title: "Onboarding", PassingScore: 3, TimeToComplete: 45})
	if err != nil {
		t.Fatalf("CreateTest() error = %v", err)
	}
	if resp.ID == 0 || resp.Title != "Onboarding" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestSingleCorrectAnswerInvariant(t *testing.T) {
	db := newTestDB(t)
	svc := newContentService(db)

	test, err := svc.CreateTest(dto.TestRequest{Title: "Onboarding", PassingScore: 1, TimeToComplete: 45})
	if err != nil {
		t.Fatal(err)
	}
	question, err := svc.AddQuestion(test.ID, dto.QuestionRequest{QuestionText: "2+2?"})
	if err != nil {
		t.Fatal(err)
	}

	right, err := svc.AddAnswer(question.ID, dto.AnswerRequest{AnswerText: "4", IsCorrect: true})
	if err != nil {
		t.Fatalf("AddAnswer(correct) error = %v", err)
	}
	if _, err := svc.AddAnswer(question.ID, dto.AnswerRequest{AnswerText: "5"}); err != nil {
		t.Fatalf("AddAnswer(wrong) error = %v", err)
	}

	// A second correct answer for the same question must be rejected.
	if _, err := svc.AddAnswer(question.ID, dto.AnswerRequest{AnswerText: "four", IsCorrect: true}); !apperr.IsConflict(err) {
		t.Fatalf("AddAnswer(second correct) error = %v, want conflict", err)
	}

	// Editing the correct answer itself keeps IsCorrect without tripping
	// over its own row.
	if _, err := svc.UpdateAnswer(right.ID, dto.AnswerRequest{AnswerText: "four", IsCorrect: true}); err != nil {
		t.Fatalf("UpdateAnswer(self) error = %v", err)
	}

	// Promoting a sibling while the correct one stands is a conflict.
	var wrongAnswer model.Answer
	if err := db.Where("question_id = ? AND is_correct = ?", question.ID, false).First(&wrongAnswer).Error; err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdateAnswer(wrongAnswer.ID, dto.AnswerRequest{AnswerText: "5", IsCorrect: true}); !apperr.IsConflict(err) {
		t.Fatalf("UpdateAnswer(promote sibling) error = %v, want conflict", err)
	}

	// Demoting the correct answer frees the slot for the sibling.
	if _, err := svc.UpdateAnswer(right.ID, dto.AnswerRequest{AnswerText: "four", IsCorrect: false}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdateAnswer(wrongAnswer.ID, dto.AnswerRequest{AnswerText: "5", IsCorrect: true}); err != nil {
		t.Fatalf("UpdateAnswer(promote after demotion) error = %v", err)
	}
}

func TestAnswerOnDifferentQuestionsIndependent(t *testing.T) {
	db := newTestDB(t)
	svc := newContentService(db)

	test, err := svc.CreateTest(dto.TestRequest{Title: "Onboarding", PassingScore: 1, TimeToComplete: 45})
	if err != nil {
		t.Fatal(err)
	}
	q1, err := svc.AddQuestion(test.ID, dto.QuestionRequest{QuestionText: "first"})
	if err != nil {
		t.Fatal(err)
	}
	q2, err := svc.AddQuestion(test.ID, dto.QuestionRequest{QuestionText: "second"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.AddAnswer(q1.ID, dto.AnswerRequest{AnswerText: "a", IsCorrect: true}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddAnswer(q2.ID, dto.AnswerRequest{AnswerText: "b", IsCorrect: true}); err != nil {
		t.Fatalf("correct answers on different questions must not conflict: %v", err)
	}
}

func TestGetTestLoadsHierarchy(t *testing.T) {
	db := newTestDB(t)
	svc := newContentService(db)
	test, _, _ := seedTest(t, db, 1, 2)

	resp, err := svc.GetTest(test.ID)
	if err != nil {
		t.Fatalf("GetTest() error = %v", err)
	}
	if len(resp.Questions) != 2 {
		t.Fatalf("Questions = %d, want 2", len(resp.Questions))
	}
	for _, q := range resp.Questions {
		if len(q.Answers) != 2 {
			t.Errorf("question %d: Answers = %d, want 2", q.ID, len(q.Answers))
		}
	}

	if _, err := svc.GetTest(999); !apperr.IsNotFound(err) {
		t.Fatalf("GetTest(missing) error = %v, want not found", err)
	}
}

func TestListTestsQuestionCount(t *testing.T) {
	db := newTestDB(t)
	svc := newContentService(db)
	seedTest(t, db, 1, 3)

	summaries, err := svc.ListTests()
	if err != nil {
		t.Fatalf("ListTests() error = %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("ListTests() = %d tests, want 1", len(summaries))
	}
	if summaries[0].QuestionCount != 3 {
		t.Errorf("QuestionCount = %d, want 3", summaries[0].QuestionCount)
	}
}

// The partial unique index must hold the invariant even for a writer that
// never ran the sibling check, e.g. a competing transaction whose check
// read a snapshot from before the winner committed.
func TestCorrectAnswerUniqueIndex(t *testing.T) {
	db := newTestDB(t)
	_, correct, _ := seedTest(t, db, 1, 1)

	var existing model.Answer
	if err := db.First(&existing, correct[0]).Error; err != nil {
		t.Fatal(err)
	}
	dup := model.Answer{QuestionID: existing.QuestionID, AnswerText: "also right", IsCorrect: true}
	if err := db.Create(&dup).Error; !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("second correct answer insert error = %v, want duplicated key", err)
	}

	// Wrong answers stay unconstrained.
	if err := db.Create(&model.Answer{QuestionID: existing.QuestionID, AnswerText: "still wrong"}).Error; err != nil {
		t.Errorf("extra wrong answer rejected: %v", err)
	}
}

func TestConcurrentCorrectAnswerWriters(t *testing.T) {
	db := newTestDB(t)
	svc := newContentService(db)

	test, err := svc.CreateTest(dto.TestRequest{Title: "Onboarding", PassingScore: 1, TimeToComplete: 45})
	if err != nil {
		t.Fatal(err)
	}
	question, err := svc.AddQuestion(test.ID, dto.QuestionRequest{QuestionText: "2+2?"})
	if err != nil {
		t.Fatal(err)
	}

	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func(n int) {
			_, err := svc.AddAnswer(question.ID, dto.AnswerRequest{
				AnswerText: fmt.Sprintf("candidate %d", n),
				IsCorrect:  true,
			})
			errs <- err
		}(i)
	}

	var successes, conflicts int
	for i := 0; i < 2; i++ {
		switch err := <-errs; {
		case err == nil:
			successes++
		case apperr.IsConflict(err):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 || conflicts != 1 {
		t.Fatalf("successes = %d conflicts = %d, want exactly one of each", successes, conflicts)
	}

	var n int64
	db.Model(&model.Answer{}).Where("question_id = ? AND is_correct", question.ID).Count(&n)
	if n != 1 {
		t.Fatalf("correct answers stored = %d, want 1", n)
	}
}
