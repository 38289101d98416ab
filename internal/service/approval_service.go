package service

import (
	"errors"
	"fmt"

	"github.com/dkhromov/stafftests/internal/actor"
	"github.com/dkhromov/stafftests/internal/apperr"
	"github.com/dkhromov/stafftests/internal/dto"
	"github.com/dkhromov/stafftests/internal/model"
	"github.com/dkhromov/stafftests/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ApprovalService runs the two approval workflows. Both share the pending →
// approved/declined shape but differ on decline: a declined test result is
// deleted outright ("this attempt never happened"), a declined deletion
// request is kept with Approved=false ("considered and refused").
type ApprovalService interface {
	PendingResults() ([]dto.TestResultResponse, error)
	ApproveResult(act *actor.Actor, resultID uint) (*dto.TestResultResponse, error)
	DeclineResult(act *actor.Actor, resultID uint) error

	RequestDeletion(act *actor.Actor, testID uint) (*dto.DeletionRequestResponse, error)
	PendingDeletions() ([]dto.DeletionRequestResponse, error)
	ApproveDeletion(act *actor.Actor, requestID uint) error
	DeclineDeletion(act *actor.Actor, requestID uint) (*dto.DeletionRequestResponse, error)
}

type approvalService struct {
	resultRepo  repository.ResultRepository
	requestRepo repository.DeletionRequestRepository
	testRepo    repository.TestRepository
	db          *gorm.DB
}

func NewApprovalService(
	resultRepo repository.ResultRepository,
	requestRepo repository.DeletionRequestRepository,
	testRepo repository.TestRepository,
	db *gorm.DB,
) ApprovalService {
	return &approvalService{
		resultRepo:  resultRepo,
		requestRepo: requestRepo,
		testRepo:    testRepo,
		db:          db,
	}
}

func (s *approvalService) PendingResults() ([]dto.TestResultResponse, error) {
	results, err := s.resultRepo.FindPending()
	if err != nil {
		return nil, fmt.Errorf("listing pending results: %w", err)
	}
	return resultsToDTOs(results), nil
}

func (s *approvalService) ApproveResult(act *actor.Actor, resultID uint) (*dto.TestResultResponse, error) {
	result, err := s.resultRepo.FindByID(resultID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("test result", resultID)
		}
		return nil, fmt.Errorf("loading result %d: %w", resultID, err)
	}
	if result.Approved != nil {
		return nil, apperr.Conflict("test result %d is already resolved", resultID)
	}

	approved := true
	result.Approved = &approved
	result.EmployeeID = act.EmployeeID
	if err := s.resultRepo.Update(result); err != nil {
		log.Error().Err(err).Uint("resultID", resultID).Msg("Failed to approve test result")
		return nil, fmt.Errorf("approving result %d: %w", resultID, err)
	}
	return resultToDTO(result), nil
}

// DeclineResult removes the result entirely; a declined attempt leaves no trace.
func (s *approvalService) DeclineResult(act *actor.Actor, resultID uint) error {
	result, err := s.resultRepo.FindByID(resultID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("test result", resultID)
		}
		return fmt.Errorf("loading result %d: %w", resultID, err)
	}
	if result.Approved != nil {
		return apperr.Conflict("test result %d is already resolved", resultID)
	}
	if err := s.resultRepo.Delete(resultID); err != nil {
		log.Error().Err(err).Uint("resultID", resultID).Msg("Failed to decline test result")
		return fmt.Errorf("declining result %d: %w", resultID, err)
	}
	log.Info().Uint("resultID", resultID).Uint("employeeID", deref(act.EmployeeID)).Msg("Test result declined and removed")
	return nil
}

func (s *approvalService) RequestDeletion(act *actor.Actor, testID uint) (*dto.DeletionRequestResponse, error) {
	if act.UserID == nil {
		fe := apperr.FieldErrors{}
		fe.Add("actor", "Employee identity is not linked to a user identity; cannot file a deletion request.")
		return nil, fe
	}
	test, err := s.testRepo.FindByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("test", testID)
		}
		return nil, fmt.Errorf("loading test %d: %w", testID, err)
	}
	pending, err := s.requestRepo.PendingExistsForTest(testID)
	if err != nil {
		return nil, fmt.Errorf("checking pending requests for test %d: %w", testID, err)
	}
	if pending {
		return nil, apperr.Conflict("test %d already has a pending deletion request", testID)
	}

	request := model.TestDeletionRequest{
		TestID:        testID,
		RequestedByID: *act.UserID,
	}
	if err := s.requestRepo.Create(&request); err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("Failed to create deletion request")
		return nil, fmt.Errorf("creating deletion request: %w", err)
	}
	resp := requestToDTO(&request)
	resp.TestTitle = test.Title
	return resp, nil
}

func (s *approvalService) PendingDeletions() ([]dto.DeletionRequestResponse, error) {
	requests, err := s.requestRepo.FindPending()
	if err != nil {
		return nil, fmt.Errorf("listing pending deletion requests: %w", err)
	}
	out := make([]dto.DeletionRequestResponse, len(requests))
	for i := range requests {
		out[i] = *requestToDTO(&requests[i])
	}
	return out, nil
}

// ApproveDeletion removes the test and, through the cascade, its questions,
// answers and the request itself. Results keep a NULL test reference.
func (s *approvalService) ApproveDeletion(act *actor.Actor, requestID uint) error {
	request, err := s.requestRepo.FindByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("deletion request", requestID)
		}
		return fmt.Errorf("loading deletion request %d: %w", requestID, err)
	}
	if request.Approved != nil {
		return apperr.Conflict("deletion request %d is already resolved", requestID)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.testRepo.DeleteCascade(tx, request.TestID)
	})
	if err != nil {
		log.Error().Err(err).Uint("requestID", requestID).Uint("testID", request.TestID).Msg("Failed to approve deletion request")
		return fmt.Errorf("approving deletion request %d: %w", requestID, err)
	}
	log.Info().Uint("requestID", requestID).Uint("testID", request.TestID).Msg("Deletion request approved, test removed")
	return nil
}

// DeclineDeletion keeps the request as an auditable refusal.
func (s *approvalService) DeclineDeletion(act *actor.Actor, requestID uint) (*dto.DeletionRequestResponse, error) {
	request, err := s.requestRepo.FindByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("deletion request", requestID)
		}
		return nil, fmt.Errorf("loading deletion request %d: %w", requestID, err)
	}
	if request.Approved != nil {
		return nil, apperr.Conflict("deletion request %d is already resolved", requestID)
	}

	declined := false
	request.Approved = &declined
	if err := s.requestRepo.Update(request); err != nil {
		log.Error().Err(err).Uint("requestID", requestID).Msg("Failed to decline deletion request")
		return nil, fmt.Errorf("declining deletion request %d: %w", requestID, err)
	}
	return requestToDTO(request), nil
}

func requestToDTO(r *model.TestDeletionRequest) *dto.DeletionRequestResponse {
	resp := &dto.DeletionRequestResponse{
		ID:            r.ID,
		TestID:        r.TestID,
		RequestedByID: r.RequestedByID,
		RequestedAt:   r.RequestedAt,
		Approved:      r.Approved,
	}
	if r.Test != nil {
		resp.TestTitle = r.Test.Title
	}
	return resp
}

func deref(v *uint) uint {
	if v == nil {
		return 0
	}
	return *v
}
