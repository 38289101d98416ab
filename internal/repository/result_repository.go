package repository

import (
	"github.com/dkhromov/stafftests/internal/model"
	"gorm.io/gorm"
)

type ResultRepository interface {
	FindByID(id uint) (*model.TestResult, error)
	FindPending() ([]model.TestResult, error)
	FindApprovedByUser(userID uint) ([]model.TestResult, error)
	Update(result *model.TestResult) error
	Delete(id uint) error
	// CountAttempts counts existing results for (user, test) inside the
	// caller's transaction; attempt numbering depends on it.
	CountAttempts(tx *gorm.DB, userID, testID uint) (int64, error)
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) FindByID(id uint) (*model.TestResult, error) {
	var result model.TestResult
	if err := r.db.Preload("Test").First(&result, id).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *resultRepository) FindPending() ([]model.TestResult, error) {
	var results []model.TestResult
	err := r.db.Preload("Test").Where("approved IS NULL").Order("id ASC").Find(&results).Error
	return results, err
}

func (r *resultRepository) FindApprovedByUser(userID uint) ([]model.TestResult, error) {
	var results []model.TestResult
	err := r.db.Preload("Test").
		Where("user_id = ? AND approved = ?", userID, true).
		Order("id ASC").
		Find(&results).Error
	return results, err
}

func (r *resultRepository) Update(result *model.TestResult) error {
	return r.db.Save(result).Error
}

func (r *resultRepository) Delete(id uint) error {
	return r.db.Delete(&model.TestResult{}, id).Error
}

func (r *resultRepository) CountAttempts(tx *gorm.DB, userID, testID uint) (int64, error) {
	var count int64
	err := tx.Model(&model.TestResult{}).
		Where("user_id = ? AND test_id = ?", userID, testID).
		Count(&count).Error
	return count, err
}
