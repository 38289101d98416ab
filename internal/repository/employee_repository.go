package repository

import (
	"github.com/dkhromov/stafftests/internal/model"
	"gorm.io/gorm"
)

type EmployeeRepository interface {
	Create(employee *model.Employee) error
	FindByID(id uint) (*model.Employee, error)
	FindByPosition(position string) (*model.Employee, error)
	FindAll(limit, offset int) ([]model.Employee, error)
	Count() (int64, error)
	Update(employee *model.Employee) error
	EmailInUse(email string, excludeID uint) (bool, error)
}

type employeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(employee *model.Employee) error {
	return r.db.Create(employee).Error
}

func (r *employeeRepository) FindByID(id uint) (*model.Employee, error) {
	var employee model.Employee
	if err := r.db.First(&employee, id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) FindByPosition(position string) (*model.Employee, error) {
	var employee model.Employee
	if err := r.db.Where("position = ?", position).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) FindAll(limit, offset int) ([]model.Employee, error) {
	var employees []model.Employee
	err := r.db.Order("id ASC").Limit(limit).Offset(offset).Find(&employees).Error
	return employees, err
}

func (r *employeeRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Employee{}).Count(&count).Error
	return count, err
}

func (r *employeeRepository) Update(employee *model.Employee) error {
	return r.db.Save(employee).Error
}

func (r *employeeRepository) EmailInUse(email string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Employee{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error
	return count > 0, err
}
