package user

import (
	"net/http"

	"github.com/dkhromov/stafftests/internal/controller"
	"github.com/dkhromov/stafftests/internal/dto"
	"github.com/dkhromov/stafftests/internal/middleware"
	"github.com/dkhromov/stafftests/internal/service"
	"github.com/gin-gonic/gin"
)

// UserController exposes the test-taking surface to user-role actors.
type UserController struct {
	testSvc       service.TestService
	submissionSvc service.SubmissionService
}

func NewUserController(testSvc service.TestService, submissionSvc service.SubmissionService) *UserController {
	return &UserController{testSvc: testSvc, submissionSvc: submissionSvc}
}

// ListTests godoc
// @Summary List available tests
// @Tags user
// @Produce json
// @Success 200 {array} dto.TestSummaryResponse
// @Router /tests [get]
func (ctrl *UserController) ListTests(c *gin.Context) {
	resp, err := ctrl.testSvc.ListTests()
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetTest godoc
// @Summary Get a test to take, without the answer key
// @Tags user
// @Produce json
// @Param id path int true "Test ID"
// @Success 200 {object} dto.TestResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tests/{id} [get]
func (ctrl *UserController) GetTest(c *gin.Context) {
	id, ok := controller.UintParam(c, "id")
	if !ok {
		return
	}
	resp, err := ctrl.testSvc.GetTest(id)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	// Test takers never see which answer is the correct one.
	for i := range resp.Questions {
		for j := range resp.Questions[i].Answers {
			resp.Questions[i].Answers[j].IsCorrect = false
		}
	}
	c.JSON(http.StatusOK, resp)
}

// SubmitAttempt godoc
// @Summary Submit answers for a test
// @Tags user
// @Accept json
// @Produce json
// @Param id path int true "Test ID"
// @Param submission body dto.SubmitAttemptRequest true "Picked answer ids"
// @Success 201 {object} dto.TestResultResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tests/{id}/attempts [post]
func (ctrl *UserController) SubmitAttempt(c *gin.Context) {
	id, ok := controller.UintParam(c, "id")
	if !ok {
		return
	}
	var req dto.SubmitAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	act, _ := middleware.ActorFrom(c)
	resp, err := ctrl.submissionSvc.Submit(act, id, req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// MyResults godoc
// @Summary List the actor's approved results
// @Tags user
// @Produce json
// @Success 200 {array} dto.TestResultResponse
// @Router /my/results [get]
func (ctrl *UserController) MyResults(c *gin.Context) {
	act, _ := middleware.ActorFrom(c)
	resp, err := ctrl.submissionSvc.MyResults(act)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
