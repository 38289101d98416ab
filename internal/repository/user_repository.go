package repository

import (
	"github.com/dkhromov/stafftests/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.AppUser) error
	FindByID(id uint) (*model.AppUser, error)
	FindAll(limit, offset int) ([]model.AppUser, error)
	Count() (int64, error)
	Update(user *model.AppUser) error
	Delete(id uint) error
	EmailInUse(email string, excludeID uint) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.AppUser) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id uint) (*model.AppUser, error) {
	var user model.AppUser
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAll(limit, offset int) ([]model.AppUser, error) {
	var users []model.AppUser
	err := r.db.Order("id ASC").Limit(limit).Offset(offset).Find(&users).Error
	return users, err
}

func (r *userRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.AppUser{}).Count(&count).Error
	return count, err
}

func (r *userRepository) Update(user *model.AppUser) error {
	return r.db.Save(user).Error
}

func (r *userRepository) Delete(id uint) error {
	return r.db.Delete(&model.AppUser{}, id).Error
}

func (r *userRepository) EmailInUse(email string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.AppUser{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error
	return count > 0, err
}
