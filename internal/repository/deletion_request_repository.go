package repository

import (
	"github.com/dkhromov/stafftests/internal/model"
	"gorm.io/gorm"
)

type DeletionRequestRepository interface {
	Create(request *model.TestDeletionRequest) error
	FindByID(id uint) (*model.TestDeletionRequest, error)
	FindPending() ([]model.TestDeletionRequest, error)
	PendingExistsForTest(testID uint) (bool, error)
	Update(request *model.TestDeletionRequest) error
}

type deletionRequestRepository struct {
	db *gorm.DB
}

func NewDeletionRequestRepository(db *gorm.DB) DeletionRequestRepository {
	return &deletionRequestRepository{db: db}
}

func (r *deletionRequestRepository) Create(request *model.TestDeletionRequest) error {
	return r.db.Create(request).Error
}

func (r *deletionRequestRepository) FindByID(id uint) (*model.TestDeletionRequest, error) {
	var request model.TestDeletionRequest
	if err := r.db.Preload("Test").First(&request, id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *deletionRequestRepository) FindPending() ([]model.TestDeletionRequest, error) {
	var requests []model.TestDeletionRequest
	err := r.db.Preload("Test").Where("approved IS NULL").Order("id ASC").Find(&requests).Error
	return requests, err
}

func (r *deletionRequestRepository) PendingExistsForTest(testID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.TestDeletionRequest{}).
		Where("test_id = ? AND approved IS NULL", testID).
		Count(&count).Error
	return count > 0, err
}

func (r *deletionRequestRepository) Update(request *model.TestDeletionRequest) error {
	return r.db.Save(request).Error
}
