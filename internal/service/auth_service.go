package service

import (
	"errors"
	"fmt"

	"github.com/dkhromov/stafftests/internal/actor"
	"github.com/dkhromov/stafftests/internal/apperr"
	"github.com/dkhromov/stafftests/internal/dto"
	"github.com/dkhromov/stafftests/internal/model"
	"github.com/dkhromov/stafftests/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const adminPosition = "Administrator"

// AuthService implements the login-selection flow: a request picks a role
// and the identity to act as, and receives an opaque session token. There
// are no credentials; this mirrors the role-simulation login the system
// was designed with.
type AuthService interface {
	Login(req dto.LoginRequest) (string, *dto.SessionResponse, error)
	// Resolve maps a session token to the acting identity. Any failure is
	// reported as ErrUnauthenticated.
	Resolve(token string) (*actor.Actor, error)
	Logout(token string) error
}

type authService struct {
	sessionRepo  repository.SessionRepository
	userRepo     repository.UserRepository
	employeeRepo repository.EmployeeRepository
}

func NewAuthService(
	sessionRepo repository.SessionRepository,
	userRepo repository.UserRepository,
	employeeRepo repository.EmployeeRepository,
) AuthService {
	return &authService{
		sessionRepo:  sessionRepo,
		userRepo:     userRepo,
		employeeRepo: employeeRepo,
	}
}

func (s *authService) Login(req dto.LoginRequest) (string, *dto.SessionResponse, error) {
	role := model.Role(req.Role)
	if !role.Valid() {
		fe := apperr.FieldErrors{}
		fe.Add("role", "Role must be one of: admin, user, employee.")
		return "", nil, fe
	}

	session := model.Session{
		Token: uuid.New().String(),
		Role:  role,
	}
	resp := dto.SessionResponse{Role: role.String()}

	switch role {
	case model.RoleUser:
		if req.UserID == nil {
			fe := apperr.FieldErrors{}
			fe.Add("user_id", "A user id is required for the user role.")
			return "", nil, fe
		}
		user, err := s.userRepo.FindByID(*req.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", nil, apperr.NotFound("user", *req.UserID)
			}
			return "", nil, fmt.Errorf("loading user %d: %w", *req.UserID, err)
		}
		session.UserID = &user.ID
		resp.UserID = &user.ID
		resp.DisplayName = user.FullName

	case model.RoleEmployee:
		if req.EmployeeID == nil {
			fe := apperr.FieldErrors{}
			fe.Add("employee_id", "An employee id is required for the employee role.")
			return "", nil, fe
		}
		employee, err := s.employeeRepo.FindByID(*req.EmployeeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", nil, apperr.NotFound("employee", *req.EmployeeID)
			}
			return "", nil, fmt.Errorf("loading employee %d: %w", *req.EmployeeID, err)
		}
		session.EmployeeID = &employee.ID
		resp.EmployeeID = &employee.ID
		resp.DisplayName = employee.FullName

	case model.RoleAdmin:
		employee, err := s.adminEmployee(req.EmployeeID)
		if err != nil {
			return "", nil, err
		}
		session.EmployeeID = &employee.ID
		resp.EmployeeID = &employee.ID
		resp.DisplayName = employee.FullName
	}

	if err := s.sessionRepo.Create(&session); err != nil {
		log.Error().Err(err).Msg("Failed to create session")
		return "", nil, fmt.Errorf("creating session: %w", err)
	}
	log.Info().Str("role", resp.Role).Str("name", resp.DisplayName).Msg("Session opened")
	return session.Token, &resp, nil
}

// adminEmployee resolves the employee record for an admin session. When no
// employee id is given and no Administrator exists yet, one is provisioned.
func (s *authService) adminEmployee(employeeID *uint) (*model.Employee, error) {
	if employeeID != nil {
		employee, err := s.employeeRepo.FindByID(*employeeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("employee", *employeeID)
			}
			return nil, fmt.Errorf("loading employee %d: %w", *employeeID, err)
		}
		return employee, nil
	}

	employee, err := s.employeeRepo.FindByPosition(adminPosition)
	if err == nil {
		return employee, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("looking up administrator: %w", err)
	}

	admin := model.Employee{
		FullName: "Admin",
		Email:    "admin@stafftests.local",
		Age:      30,
		Role:     model.RoleAdmin,
		Position: adminPosition,
	}
	if err := s.employeeRepo.Create(&admin); err != nil {
		log.Error().Err(err).Msg("Failed to provision administrator")
		return nil, fmt.Errorf("provisioning administrator: %w", err)
	}
	log.Info().Uint("employeeID", admin.ID).Msg("Administrator provisioned")
	return &admin, nil
}

func (s *authService) Resolve(token string) (*actor.Actor, error) {
	if token == "" {
		return nil, apperr.ErrUnauthenticated
	}
	session, err := s.sessionRepo.FindByToken(token)
	if err != nil {
		return nil, apperr.ErrUnauthenticated
	}

	switch {
	case session.UserID != nil && session.User != nil:
		return actor.FromUser(session.User, session.Role), nil
	case session.EmployeeID != nil && session.Employee != nil:
		return actor.FromEmployee(session.Employee, session.Role), nil
	}
	// Identity row deleted out from under the session.
	return nil, apperr.ErrUnauthenticated
}

func (s *authService) Logout(token string) error {
	if token == "" {
		return nil
	}
	return s.sessionRepo.DeleteByToken(token)
}
