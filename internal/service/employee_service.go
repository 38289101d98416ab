package service

import (
	"errors"
	"fmt"

	"github.com/dkhromov/stafftests/internal/apperr"
	"github.com/dkhromov/stafftests/internal/dto"
	"github.com/dkhromov/stafftests/internal/model"
	"github.com/dkhromov/stafftests/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type EmployeeService interface {
	Create(req dto.EmployeeRequest) (*dto.EmployeeResponse, error)
	Get(id uint) (*dto.EmployeeResponse, error)
	List(page, pageSize int) (*dto.EmployeeListResponse, error)
	Update(id uint, req dto.EmployeeRequest) (*dto.EmployeeResponse, error)
	// Fire flips the one-way is_fired flag. Re-firing is an idempotent
	// no-op reported as a warning, not an error.
	Fire(id uint) (*dto.MessageResponse, error)
	// HardDelete permanently removes a fired employee together with its
	// linked AppUser identity. Fails with a conflict when not fired.
	HardDelete(id uint) error
}

type employeeService struct {
	employeeRepo repository.EmployeeRepository
	userRepo     repository.UserRepository
	db           *gorm.DB
}

func NewEmployeeService(employeeRepo repository.EmployeeRepository, userRepo repository.UserRepository, db *gorm.DB) EmployeeService {
	return &employeeService{employeeRepo: employeeRepo, userRepo: userRepo, db: db}
}

func (s *employeeService) validateRequest(req *dto.EmployeeRequest, excludeID uint) (apperr.FieldErrors, error) {
	fe := validateStruct(req)
	if fe == nil {
		fe = apperr.FieldErrors{}
	}
	if _, bad := fe["years_of_experience"]; !bad && req.YearsOfExperience > req.Age {
		fe.Add("years_of_experience", "Years of experience cannot exceed age.")
	}
	if req.Email != "" {
		taken, err := s.employeeRepo.EmailInUse(req.Email, excludeID)
		if err != nil {
			return nil, fmt.Errorf("checking employee email uniqueness: %w", err)
		}
		if !taken {
			taken, err = s.userRepo.EmailInUse(req.Email, 0)
			if err != nil {
				return nil, fmt.Errorf("checking user email uniqueness: %w", err)
			}
		}
		if taken {
			fe.Add("email", "An employee with this email already exists.")
		}
	}
	if req.AppUserID != nil {
		if _, err := s.userRepo.FindByID(*req.AppUserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				fe.Add("app_user_id", "Linked user does not exist.")
			} else {
				return nil, fmt.Errorf("loading linked user %d: %w", *req.AppUserID, err)
			}
		}
	}
	return fe, nil
}

func (s *employeeService) Create(req dto.EmployeeRequest) (*dto.EmployeeResponse, error) {
	fe, err := s.validateRequest(&req, 0)
	if err != nil {
		return nil, err
	}
	if err := fe.OrNil(); err != nil {
		return nil, err
	}

	employee := model.Employee{
		FullName:          req.FullName,
		Email:             req.Email,
		Age:               req.Age,
		Role:              model.RoleEmployee,
		YearsOfExperience: req.YearsOfExperience,
		Position:          req.Position,
		Salary:            req.Salary,
		Photo:             req.Photo,
		AppUserID:         req.AppUserID,
	}
	if err := s.employeeRepo.Create(&employee); err != nil {
		log.Error().Err(err).Msg("Failed to create employee")
		return nil, fmt.Errorf("creating employee: %w", err)
	}

	var resp dto.EmployeeResponse
	copier.Copy(&resp, &employee)
	return &resp, nil
}

func (s *employeeService) Get(id uint) (*dto.EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("employee", id)
		}
		return nil, fmt.Errorf("loading employee %d: %w", id, err)
	}
	var resp dto.EmployeeResponse
	copier.Copy(&resp, employee)
	return &resp, nil
}

func (s *employeeService) List(page, pageSize int) (*dto.EmployeeListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	total, err := s.employeeRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("counting employees: %w", err)
	}
	employees, err := s.employeeRepo.FindAll(pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	items := make([]dto.EmployeeResponse, len(employees))
	for i := range employees {
		copier.Copy(&items[i], &employees[i])
	}
	return &dto.EmployeeListResponse{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *employeeService) Update(id uint, req dto.EmployeeRequest) (*dto.EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("employee", id)
		}
		return nil, fmt.Errorf("loading employee %d: %w", id, err)
	}

	fe, err := s.validateRequest(&req, id)
	if err != nil {
		return nil, err
	}
	if err := fe.OrNil(); err != nil {
		return nil, err
	}

	employee.FullName = req.FullName
	employee.Email = req.Email
	employee.Age = req.Age
	employee.YearsOfExperience = req.YearsOfExperience
	employee.Position = req.Position
	employee.Salary = req.Salary
	employee.AppUserID = req.AppUserID
	if req.Photo != nil {
		// An empty upload keeps the stored photo.
		employee.Photo = req.Photo
	}
	if err := s.employeeRepo.Update(employee); err != nil {
		log.Error().Err(err).Uint("employeeID", id).Msg("Failed to update employee")
		return nil, fmt.Errorf("updating employee %d: %w", id, err)
	}

	var resp dto.EmployeeResponse
	copier.Copy(&resp, employee)
	return &resp, nil
}

func (s *employeeService) Fire(id uint) (*dto.MessageResponse, error) {
	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("employee", id)
		}
		return nil, fmt.Errorf("loading employee %d: %w", id, err)
	}

	if employee.IsFired {
		log.Warn().Uint("employeeID", id).Msg("Fire requested for an already fired employee")
		return &dto.MessageResponse{
			Message: "No changes made.",
			Warning: fmt.Sprintf("Employee %d is already fired.", id),
		}, nil
	}

	employee.IsFired = true
	if err := s.employeeRepo.Update(employee); err != nil {
		log.Error().Err(err).Uint("employeeID", id).Msg("Failed to fire employee")
		return nil, fmt.Errorf("firing employee %d: %w", id, err)
	}
	return &dto.MessageResponse{Message: fmt.Sprintf("Employee %d fired.", id)}, nil
}

func (s *employeeService) HardDelete(id uint) error {
	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("employee", id)
		}
		return fmt.Errorf("loading employee %d: %w", id, err)
	}
	if !employee.IsFired {
		return apperr.Conflict("employee %d is not fired and cannot be deleted", id)
	}

	// The employee and its linked user identity go together.
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Employee{}, id).Error; err != nil {
			return fmt.Errorf("deleting employee %d: %w", id, err)
		}
		if employee.AppUserID != nil {
			if err := tx.Delete(&model.AppUser{}, *employee.AppUserID).Error; err != nil {
				return fmt.Errorf("deleting linked user %d: %w", *employee.AppUserID, err)
			}
		}
		return nil
	})
}
