package repository

import (
	"github.com/dkhromov/stafftests/internal/model"
	"gorm.io/gorm"
)

type AnswerRepository interface {
	FindByID(id uint) (*model.Answer, error)
	FindByQuestionID(questionID uint) ([]model.Answer, error)
	// CorrectAnswerExists checks, inside the caller's transaction, whether
	// the question already has a correct answer other than excludeID.
	CorrectAnswerExists(tx *gorm.DB, questionID, excludeID uint) (bool, error)
	// CorrectAnswerIDsForTest returns the ids of all correct answers
	// belonging to the test's questions, inside the caller's transaction.
	CorrectAnswerIDsForTest(tx *gorm.DB, testID uint) ([]uint, error)
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) FindByID(id uint) (*model.Answer, error) {
	var answer model.Answer
	if err := r.db.First(&answer, id).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *answerRepository) FindByQuestionID(questionID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.Where("question_id = ?", questionID).Order("id ASC").Find(&answers).Error
	return answers, err
}

func (r *answerRepository) CorrectAnswerExists(tx *gorm.DB, questionID, excludeID uint) (bool, error) {
	var count int64
	err := tx.Model(&model.Answer{}).
		Where("question_id = ? AND is_correct = ? AND id <> ?", questionID, true, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *answerRepository) CorrectAnswerIDsForTest(tx *gorm.DB, testID uint) ([]uint, error) {
	var ids []uint
	err := tx.Model(&model.Answer{}).
		Joins("JOIN questions ON questions.id = answers.question_id").
		Where("questions.test_id = ? AND answers.is_correct = ?", testID, true).
		Pluck("answers.id", &ids).Error
	return ids, err
}
