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

const defaultPageSize = 10

type UserService interface {
	Create(req dto.UserRequest) (*dto.UserResponse, error)
	Get(id uint) (*dto.UserResponse, error)
	List(page, pageSize int) (*dto.UserListResponse, error)
	Update(id uint, req dto.UserRequest) (*dto.UserResponse, error)
	Delete(id uint) error
}

type userService struct {
	userRepo     repository.UserRepository
	employeeRepo repository.EmployeeRepository
}

func NewUserService(userRepo repository.UserRepository, employeeRepo repository.EmployeeRepository) UserService {
	return &userService{userRepo: userRepo, employeeRepo: employeeRepo}
}

// checkUserEmail enforces email uniqueness across both identity tables,
// excluding the user's own row on update.
func (s *userService) checkUserEmail(fe apperr.FieldErrors, email string, excludeID uint) error {
	taken, err := s.userRepo.EmailInUse(email, excludeID)
	if err != nil {
		return fmt.Errorf("checking user email uniqueness: %w", err)
	}
	if !taken {
		taken, err = s.employeeRepo.EmailInUse(email, 0)
		if err != nil {
			return fmt.Errorf("checking employee email uniqueness: %w", err)
		}
	}
	if taken {
		fe.Add("email", "A user with this email already exists.")
	}
	return nil
}

func (s *userService) Create(req dto.UserRequest) (*dto.UserResponse, error) {
	fe := validateStruct(&req)
	if fe == nil {
		fe = apperr.FieldErrors{}
	}
	if req.Email != "" {
		if err := s.checkUserEmail(fe, req.Email, 0); err != nil {
			return nil, err
		}
	}
	if err := fe.OrNil(); err != nil {
		return nil, err
	}

	user := model.AppUser{
		FullName: req.FullName,
		Email:    req.Email,
		Age:      req.Age,
		Role:     model.RoleUser,
		IsActive: true,
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if err := s.userRepo.Create(&user); err != nil {
		log.Error().Err(err).Msg("Failed to create user")
		return nil, fmt.Errorf("creating user: %w", err)
	}

	var resp dto.UserResponse
	copier.Copy(&resp, &user)
	return &resp, nil
}

func (s *userService) Get(id uint) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user", id)
		}
		return nil, fmt.Errorf("loading user %d: %w", id, err)
	}
	var resp dto.UserResponse
	copier.Copy(&resp, user)
	return &resp, nil
}

func (s *userService) List(page, pageSize int) (*dto.UserListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	total, err := s.userRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("counting users: %w", err)
	}
	users, err := s.userRepo.FindAll(pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	items := make([]dto.UserResponse, len(users))
	for i := range users {
		copier.Copy(&items[i], &users[i])
	}
	return &dto.UserListResponse{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *userService) Update(id uint, req dto.UserRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user", id)
		}
		return nil, fmt.Errorf("loading user %d: %w", id, err)
	}

	fe := validateStruct(&req)
	if fe == nil {
		fe = apperr.FieldErrors{}
	}
	if req.Email != "" {
		if err := s.checkUserEmail(fe, req.Email, id); err != nil {
			return nil, err
		}
	}
	if err := fe.OrNil(); err != nil {
		return nil, err
	}

	user.FullName = req.FullName
	user.Email = req.Email
	user.Age = req.Age
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if err := s.userRepo.Update(user); err != nil {
		log.Error().Err(err).Uint("userID", id).Msg("Failed to update user")
		return nil, fmt.Errorf("updating user %d: %w", id, err)
	}

	var resp dto.UserResponse
	copier.Copy(&resp, user)
	return &resp, nil
}

func (s *userService) Delete(id uint) error {
	if _, err := s.userRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user", id)
		}
		return fmt.Errorf("loading user %d: %w", id, err)
	}
	return s.userRepo.Delete(id)
}
