package repository

import (
	"github.com/dkhromov/stafftests/internal/model"
	"gorm.io/gorm"
)

type TestRepository interface {
	Create(test *model.Test) error
	FindByID(id uint) (*model.Test, error)
	FindByIDWithQuestions(id uint) (*model.Test, error)
	FindAllWithQuestionCount() ([]TestWithQuestionCount, error)
	Update(test *model.Test) error
	DeleteCascade(tx *gorm.DB, id uint) error
	CountQuestions(id uint) (int64, error)
}

// TestWithQuestionCount is a Test row joined with its question count.
type TestWithQuestionCount struct {
	model.Test
	QuestionCount int
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func (r *testRepository) Create(test *model.Test) error {
	return r.db.Create(test).Error
}

func (r *testRepository) FindByID(id uint) (*model.Test, error) {
	var test model.Test
	if err := r.db.First(&test, id).Error; err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindByIDWithQuestions(id uint) (*model.Test, error) {
	var test model.Test
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.id ASC")
	}).Preload("Questions.Answers", func(db *gorm.DB) *gorm.DB {
		return db.Order("answers.id ASC")
	}).First(&test, id).Error
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindAllWithQuestionCount() ([]TestWithQuestionCount, error) {
	var results []TestWithQuestionCount
	err := r.db.Model(&model.Test{}).
		Select("tests.*, (SELECT COUNT(*) FROM questions WHERE questions.test_id = tests.id) as question_count").
		Order("tests.id ASC").
		Scan(&results).Error
	return results, err
}

func (r *testRepository) Update(test *model.Test) error {
	return r.db.Save(test).Error
}

// DeleteCascade removes a test and everything hanging off it inside the
// caller's transaction. Referential rules are applied explicitly rather
// than left to the schema: answers and questions cascade, deletion
// requests cascade, results keep a NULL test reference.
func (r *testRepository) DeleteCascade(tx *gorm.DB, id uint) error {
	questionIDs := tx.Model(&model.Question{}).Select("id").Where("test_id = ?", id)
	if err := tx.Where("question_id IN (?)", questionIDs).Delete(&model.Answer{}).Error; err != nil {
		return err
	}
	if err := tx.Where("test_id = ?", id).Delete(&model.Question{}).Error; err != nil {
		return err
	}
	if err := tx.Where("test_id = ?", id).Delete(&model.TestDeletionRequest{}).Error; err != nil {
		return err
	}
	if err := tx.Model(&model.TestResult{}).Where("test_id = ?", id).Update("test_id", nil).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Test{}, id).Error
}

func (r *testRepository) CountQuestions(id uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Question{}).Where("test_id = ?", id).Count(&count).Error
	return count, err
}
