package staff

import (
	"net/http"

	"github.com/dkhromov/stafftests/internal/controller"
	"github.com/dkhromov/stafftests/internal/dto"
	"github.com/dkhromov/stafftests/internal/middleware"
	"github.com/dkhromov/stafftests/internal/service"
	"github.com/gin-gonic/gin"
)

// StaffController exposes the surface shared by employees and admins:
// test content management, result approval, and deletion requests.
type StaffController struct {
	testSvc     service.TestService
	approvalSvc service.ApprovalService
}

func NewStaffController(testSvc service.TestService, approvalSvc service.ApprovalService) *StaffController {
	return &StaffController{testSvc: testSvc, approvalSvc: approvalSvc}
}

// CreateTest godoc
// @Summary Create a test
// @Tags staff
// @Accept json
// @Produce json
// @Param test body dto.TestRequest true "Test data"
// @Success 201 {object} dto.TestResponse
// @Failure 422 {object} dto.ValidationErrorResponse
// @Router /staff/tests [post]
func (ctrl *StaffController) CreateTest(c *gin.Context) {
	var req dto.TestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.testSvc.CreateTest(req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateTest godoc
// @Summary Update test metadata
// @Tags staff
// @Accept json
// @Produce json
// @Param id path int true "Test ID"
// @Param test body dto.TestRequest true "Test data"
// @Success 200 {object} dto.TestResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /staff/tests/{id} [put]
func (ctrl *StaffController) UpdateTest(c *gin.Context) {
	id, ok := controller.UintParam(c, "id")
	if !ok {
		return
	}
	var req dto.TestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.testSvc.UpdateTest(id, req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetTest godoc
// @Summary Get a test with its questions and answers
// @Tags staff
// @Produce json
// @Param id path int true "Test ID"
// @Success 200 {object} dto.TestResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /staff/tests/{id} [get]
func (ctrl *StaffController) GetTest(c *gin.Context) {
	id, ok := controller.UintParam(c, "id")
	if !ok {
		return
	}
	resp, err := ctrl.testSvc.GetTest(id)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AddQuestion godoc
// @Summary Add a question to a test
// @Tags staff
// @Accept json
// @Produce json
// @Param id path int true "Test ID"
// @Param question body dto.QuestionRequest true "Question data"
// @Success 201 {object} dto.QuestionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /staff/tests/{id}/questions [post]
func (ctrl *StaffController) AddQuestion(c *gin.Context) {
	id, ok := controller.UintParam(c, "id")
	if !ok {
		return
	}
	var req dto.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.testSvc.AddQuestion(id, req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateQuestion godoc
// @Summary Edit a question
// @Tags staff
// @Accept json
// @Produce json
// @Param id path int true "Question ID"
// @Param question body dto.QuestionRequest true "Question data"
// @Success 200 {object} dto.QuestionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /staff/questions/{id} [put]
func (ctrl *StaffController) UpdateQuestion(c *gin.Context) {
	id, ok := controller.UintParam(c, "id")
	if !ok {
		return
	}
	var req dto.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.testSvc.UpdateQuestion(id, req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AddAnswer godoc
// @Summary Add an answer to a question
// @Tags staff
// @Accept json
// @Produce json
// @Param id path int true "Question ID"
// @Param answer body dto.AnswerRequest true "Answer data"
// @Success 201 {object} dto.AnswerResponse
// @Failure 409 {object} dto.ErrorResponse "Question already has a correct answer"
// @Router /staff/questions/{id}/answers [post]
func (ctrl *StaffController) AddAnswer(c *gin.Context) {
	id, ok := controller.UintParam(c, "id")
	if !ok {
		return
	}
	var req dto.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.testSvc.AddAnswer(id, req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateAnswer godoc
// @Summary Edit an answer
// @Tags staff
// @Accept json
// @Produce json
// @Param id path int true "Answer ID"
// @Param answer body dto.AnswerRequest true "Answer data"
// @Success 200 {object} dto.AnswerResponse
// @Failure 409 {object} dto.ErrorResponse "Question already has a correct answer"
// @Router /staff/answers/{id} [put]
func (ctrl *StaffController) UpdateAnswer(c *gin.Context) {
	id, ok := controller.UintParam(c, "id")
	if !ok {
		return
	}
	var req dto.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.testSvc.UpdateAnswer(id, req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PendingResults godoc
// @Summary List results awaiting approval
// @Tags staff
// @Produce json
// @Success 200 {array} dto.TestResultResponse
// @Router /staff/results [get]
func (ctrl *StaffController) PendingResults(c *gin.Context) {
	resp, err := ctrl.approvalSvc.PendingResults()
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ApproveResult godoc
// @Summary Approve a test result
// @Tags staff
// @Produce json
// @Param id path int true "Result ID"
// @Success 200 {object} dto.TestResultResponse
// @Failure 409 {object} dto.ErrorResponse "Result already resolved"
// @Router /staff/results/{id}/approve [post]
func (ctrl *StaffController) ApproveResult(c *gin.Context) {
	id, ok := controller.UintParam(c, "id")
	if !ok {
		return
	}
	act, _ := middleware.ActorFrom(c)
	resp, err := ctrl.approvalSvc.ApproveResult(act, id)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeclineResult godoc
// @Summary Decline a test result, removing it
// @Tags staff
// @Produce json
// @Param id path int true "Result ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 409 {object} dto.ErrorResponse "Result already resolved"
// @Router /staff/results/{id}/decline [post]
func (ctrl *StaffController) DeclineResult(c *gin.Context) {
	id, ok := controller.UintParam(c, "id")
	if !ok {
		return
	}
	act, _ := middleware.ActorFrom(c)
	if err := ctrl.approvalSvc.DeclineResult(act, id); err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Test result declined and removed."})
}

// RequestDeletion godoc
// @Summary File a request to delete a test
// @Tags staff
// @Produce json
// @Param id path int true "Test ID"
// @Success 201 {object} dto.DeletionRequestResponse
// @Failure 409 {object} dto.ErrorResponse "A pending request already exists"
// @Router /staff/tests/{id}/deletion-request [post]
func (ctrl *StaffController) RequestDeletion(c *gin.Context) {
	id, ok := controller.UintParam(c, "id")
	if !ok {
		return
	}
	act, _ := middleware.ActorFrom(c)
	resp, err := ctrl.approvalSvc.RequestDeletion(act, id)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
