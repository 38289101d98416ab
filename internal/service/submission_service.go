package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/dkhromov/stafftests/internal/actor"
	"github.com/dkhromov/stafftests/internal/apperr"
	"github.com/dkhromov/stafftests/internal/dto"
	"github.com/dkhromov/stafftests/internal/model"
	"github.com/dkhromov/stafftests/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const maxSubmitRetries = 3

// SubmissionService scores submitted attempts. A submission is a set of
// picked answer ids; the score is how many of them are correct answers of
// the test's questions. Every fresh result is pending approval.
type SubmissionService interface {
	Submit(act *actor.Actor, testID uint, req dto.SubmitAttemptRequest) (*dto.TestResultResponse, error)
	MyResults(act *actor.Actor) ([]dto.TestResultResponse, error)
}

type submissionService struct {
	testRepo   repository.TestRepository
	answerRepo repository.AnswerRepository
	resultRepo repository.ResultRepository
	db         *gorm.DB
}

func NewSubmissionService(
	testRepo repository.TestRepository,
	answerRepo repository.AnswerRepository,
	resultRepo repository.ResultRepository,
	db *gorm.DB,
) SubmissionService {
	return &submissionService{
		testRepo:   testRepo,
		answerRepo: answerRepo,
		resultRepo: resultRepo,
		db:         db,
	}
}

// resultUserID maps an actor to the AppUser identity a result is recorded
// against. Employee actors must carry a linked user identity.
func resultUserID(act *actor.Actor) (uint, error) {
	if act.UserID == nil {
		fe := apperr.FieldErrors{}
		fe.Add("actor", "Employee identity is not linked to a user identity; cannot record a test result.")
		return 0, fe
	}
	return *act.UserID, nil
}

func (s *submissionService) Submit(act *actor.Actor, testID uint, req dto.SubmitAttemptRequest) (*dto.TestResultResponse, error) {
	userID, err := resultUserID(act)
	if err != nil {
		return nil, err
	}

	test, err := s.testRepo.FindByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("test", testID)
		}
		return nil, fmt.Errorf("loading test %d: %w", testID, err)
	}

	// Submitted ids are treated as a set: duplicates never score twice.
	submitted := make(map[uint]struct{}, len(req.AnswerIDs))
	for _, id := range req.AnswerIDs {
		submitted[id] = struct{}{}
	}

	result := model.TestResult{
		UserID:     userID,
		TestID:     &test.ID,
		EmployeeID: nil,
		TestDate:   datatypes.Date(time.Now()),
		Approved:   nil,
	}

	// Scoring and attempt numbering run inside one transaction with the
	// insert. The attempt count is a read on shared rows, so a concurrent
	// submission by the same user can race it to the same number; the
	// (user, test, attempt) unique index rejects the loser and the
	// transaction is retried with a fresh count.
	for try := 0; ; try++ {
		err = s.db.Transaction(func(tx *gorm.DB) error {
			correctIDs, err := s.answerRepo.CorrectAnswerIDsForTest(tx, test.ID)
			if err != nil {
				return fmt.Errorf("loading correct answers for test %d: %w", test.ID, err)
			}
			score := 0
			for _, id := range correctIDs {
				if _, ok := submitted[id]; ok {
					score++
				}
			}
			result.ScoreAchieved = score
			if score >= test.PassingScore {
				result.Status = model.StatusPassed
			} else {
				result.Status = model.StatusFailed
			}

			prior, err := s.resultRepo.CountAttempts(tx, userID, test.ID)
			if err != nil {
				return fmt.Errorf("counting prior attempts: %w", err)
			}
			result.AttemptNumber = int(prior) + 1

			return tx.Create(&result).Error
		})
		if errors.Is(err, gorm.ErrDuplicatedKey) && try < maxSubmitRetries {
			continue
		}
		break
	}
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Uint("userID", userID).Msg("Failed to record test attempt")
		return nil, err
	}

	log.Info().
		Uint("testID", testID).
		Uint("userID", userID).
		Int("score", result.ScoreAchieved).
		Str("status", result.Status).
		Int("attempt", result.AttemptNumber).
		Msg("Test attempt scored")

	resp := resultToDTO(&result)
	resp.TestTitle = test.Title
	return resp, nil
}

func (s *submissionService) MyResults(act *actor.Actor) ([]dto.TestResultResponse, error) {
	userID, err := resultUserID(act)
	if err != nil {
		return nil, err
	}
	results, err := s.resultRepo.FindApprovedByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("listing results for user %d: %w", userID, err)
	}
	return resultsToDTOs(results), nil
}

func resultToDTO(r *model.TestResult) *dto.TestResultResponse {
	resp := &dto.TestResultResponse{
		ID:            r.ID,
		UserID:        r.UserID,
		TestID:        r.TestID,
		EmployeeID:    r.EmployeeID,
		TestDate:      time.Time(r.TestDate).Format("2006-01-02"),
		ScoreAchieved: r.ScoreAchieved,
		Status:        r.Status,
		AttemptNumber: r.AttemptNumber,
		Approved:      r.Approved,
		CreatedAt:     r.CreatedAt,
	}
	if r.Test != nil {
		resp.TestTitle = r.Test.Title
	}
	return resp
}

func resultsToDTOs(results []model.TestResult) []dto.TestResultResponse {
	out := make([]dto.TestResultResponse, len(results))
	for i := range results {
		out[i] = *resultToDTO(&results[i])
	}
	return out
}
