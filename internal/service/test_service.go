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

// TestService manages the test content hierarchy: tests, their questions
// and the answers under each question.
type TestService interface {
	CreateTest(req dto.TestRequest) (*dto.TestResponse, error)
	UpdateTest(id uint, req dto.TestRequest) (*dto.TestResponse, error)
	GetTest(id uint) (*dto.TestResponse, error)
	ListTests() ([]dto.TestSummaryResponse, error)
	AddQuestion(testID uint, req dto.QuestionRequest) (*dto.QuestionResponse, error)
	UpdateQuestion(questionID uint, req dto.QuestionRequest) (*dto.QuestionResponse, error)
	AddAnswer(questionID uint, req dto.AnswerRequest) (*dto.AnswerResponse, error)
	UpdateAnswer(answerID uint, req dto.AnswerRequest) (*dto.AnswerResponse, error)
}

type testService struct {
	testRepo     repository.TestRepository
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	db           *gorm.DB
}

func NewTestService(
	testRepo repository.TestRepository,
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	db *gorm.DB,
) TestService {
	return &testService{
		testRepo:     testRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		db:           db,
	}
}

func (s *testService) CreateTest(req dto.TestRequest) (*dto.TestResponse, error) {
	if err := validateStruct(&req).OrNil(); err != nil {
		return nil, err
	}
	test := model.Test{
		Title:          req.Title,
		PassingScore:   req.PassingScore,
		Description:    req.Description,
		TimeToComplete: req.TimeToComplete,
	}
	if err := s.testRepo.Create(&test); err != nil {
		log.Error().Err(err).Msg("Failed to create test")
		return nil, fmt.Errorf("creating test: %w", err)
	}
	var resp dto.TestResponse
	copier.Copy(&resp, &test)
	return &resp, nil
}

func (s *testService) UpdateTest(id uint, req dto.TestRequest) (*dto.TestResponse, error) {
	test, err := s.testRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("test", id)
		}
		return nil, fmt.Errorf("loading test %d: %w", id, err)
	}
	if err := validateStruct(&req).OrNil(); err != nil {
		return nil, err
	}
	test.Title = req.Title
	test.PassingScore = req.PassingScore
	test.Description = req.Description
	test.TimeToComplete = req.TimeToComplete
	if err := s.testRepo.Update(test); err != nil {
		log.Error().Err(err).Uint("testID", id).Msg("Failed to update test")
		return nil, fmt.Errorf("updating test %d: %w", id, err)
	}
	var resp dto.TestResponse
	copier.Copy(&resp, test)
	return &resp, nil
}

func (s *testService) GetTest(id uint) (*dto.TestResponse, error) {
	test, err := s.testRepo.FindByIDWithQuestions(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("test", id)
		}
		return nil, fmt.Errorf("loading test %d: %w", id, err)
	}
	var resp dto.TestResponse
	if err := copier.Copy(&resp, test); err != nil {
		return nil, fmt.Errorf("preparing test response: %w", err)
	}
	return &resp, nil
}

func (s *testService) ListTests() ([]dto.TestSummaryResponse, error) {
	tests, err := s.testRepo.FindAllWithQuestionCount()
	if err != nil {
		return nil, fmt.Errorf("listing tests: %w", err)
	}
	summaries := make([]dto.TestSummaryResponse, len(tests))
	for i, t := range tests {
		copier.Copy(&summaries[i], &t.Test)
		summaries[i].QuestionCount = t.QuestionCount
	}
	return summaries, nil
}

func (s *testService) AddQuestion(testID uint, req dto.QuestionRequest) (*dto.QuestionResponse, error) {
	if _, err := s.testRepo.FindByID(testID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("test", testID)
		}
		return nil, fmt.Errorf("loading test %d: %w", testID, err)
	}
	if err := validateStruct(&req).OrNil(); err != nil {
		return nil, err
	}
	question := model.Question{
		TestID:       testID,
		QuestionText: req.QuestionText,
		Image:        req.Image,
	}
	if err := s.questionRepo.Create(&question); err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("Failed to create question")
		return nil, fmt.Errorf("creating question: %w", err)
	}
	var resp dto.QuestionResponse
	copier.Copy(&resp, &question)
	return &resp, nil
}

func (s *testService) UpdateQuestion(questionID uint, req dto.QuestionRequest) (*dto.QuestionResponse, error) {
	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("question", questionID)
		}
		return nil, fmt.Errorf("loading question %d: %w", questionID, err)
	}
	if err := validateStruct(&req).OrNil(); err != nil {
		return nil, err
	}
	question.QuestionText = req.QuestionText
	if req.Image != nil {
		question.Image = req.Image
	}
	if err := s.questionRepo.Update(question); err != nil {
		log.Error().Err(err).Uint("questionID", questionID).Msg("Failed to update question")
		return nil, fmt.Errorf("updating question %d: %w", questionID, err)
	}
	var resp dto.QuestionResponse
	copier.Copy(&resp, question)
	return &resp, nil
}

// AddAnswer creates an answer under a question. When the answer is marked
// correct, the sibling check runs in the same transaction as the insert
// for a readable error; a concurrent writer that slips past the check
// hits the partial unique index instead and is mapped to the same conflict.
func (s *testService) AddAnswer(questionID uint, req dto.AnswerRequest) (*dto.AnswerResponse, error) {
	if _, err := s.questionRepo.FindByID(questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("question", questionID)
		}
		return nil, fmt.Errorf("loading question %d: %w", questionID, err)
	}
	if err := validateStruct(&req).OrNil(); err != nil {
		return nil, err
	}

	answer := model.Answer{
		QuestionID: questionID,
		AnswerText: req.AnswerText,
		IsCorrect:  req.IsCorrect,
		Image:      req.Image,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if req.IsCorrect {
			exists, err := s.answerRepo.CorrectAnswerExists(tx, questionID, 0)
			if err != nil {
				return fmt.Errorf("checking for existing correct answer: %w", err)
			}
			if exists {
				return apperr.Conflict("question %d already has a correct answer", questionID)
			}
		}
		return tx.Create(&answer).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, apperr.Conflict("question %d already has a correct answer", questionID)
	}
	if err != nil {
		return nil, err
	}

	var resp dto.AnswerResponse
	copier.Copy(&resp, &answer)
	return &resp, nil
}

// UpdateAnswer edits an answer, enforcing the same single-correct-answer
// invariant while excluding the answer's own row from the sibling check.
func (s *testService) UpdateAnswer(answerID uint, req dto.AnswerRequest) (*dto.AnswerResponse, error) {
	answer, err := s.answerRepo.FindByID(answerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("answer", answerID)
		}
		return nil, fmt.Errorf("loading answer %d: %w", answerID, err)
	}
	if err := validateStruct(&req).OrNil(); err != nil {
		return nil, err
	}

	answer.AnswerText = req.AnswerText
	answer.IsCorrect = req.IsCorrect
	if req.Image != nil {
		answer.Image = req.Image
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if req.IsCorrect {
			exists, err := s.answerRepo.CorrectAnswerExists(tx, answer.QuestionID, answerID)
			if err != nil {
				return fmt.Errorf("checking for existing correct answer: %w", err)
			}
			if exists {
				return apperr.Conflict("question %d already has a correct answer", answer.QuestionID)
			}
		}
		return tx.Save(answer).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, apperr.Conflict("question %d already has a correct answer", answer.QuestionID)
	}
	if err != nil {
		return nil, err
	}

	var resp dto.AnswerResponse
	copier.Copy(&resp, answer)
	return &resp, nil
}
