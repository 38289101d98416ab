package public

import (
	"net/http"

	"github.com/dkhromov/stafftests/config"
	"github.com/dkhromov/stafftests/internal/controller"
	"github.com/dkhromov/stafftests/internal/dto"
	"github.com/dkhromov/stafftests/internal/service"
	"github.com/gin-gonic/gin"
)

// PublicController exposes the ungated surface: the login-selection flow
// and the read-only JSON projections of users and employees.
type PublicController struct {
	authSvc     service.AuthService
	userSvc     service.UserService
	employeeSvc service.EmployeeService
	cfg         *config.Config
}

func NewPublicController(
	authSvc service.AuthService,
	userSvc service.UserService,
	employeeSvc service.EmployeeService,
	cfg *config.Config,
) *PublicController {
	return &PublicController{
		authSvc:     authSvc,
		userSvc:     userSvc,
		employeeSvc: employeeSvc,
		cfg:         cfg,
	}
}

// Login godoc
// @Summary Open a session as a chosen role and identity
// @Tags session
// @Accept json
// @Produce json
// @Param selection body dto.LoginRequest true "Role and identity selection"
// @Success 201 {object} dto.SessionResponse
// @Failure 422 {object} dto.ValidationErrorResponse
// @Router /session [post]
func (ctrl *PublicController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	token, resp, err := ctrl.authSvc.Login(req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.SetCookie(ctrl.cfg.Session.CookieName, token, ctrl.cfg.Session.MaxAge, "/", "", false, true)
	c.JSON(http.StatusCreated, resp)
}

// Logout godoc
// @Summary Close the current session
// @Tags session
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /session [delete]
func (ctrl *PublicController) Logout(c *gin.Context) {
	token, _ := c.Cookie(ctrl.cfg.Session.CookieName)
	if err := ctrl.authSvc.Logout(token); err != nil {
		controller.RespondError(c, err)
		return
	}
	c.SetCookie(ctrl.cfg.Session.CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Session closed."})
}

// ListUsers godoc
// @Summary Read-only user projection
// @Tags api
// @Produce json
// @Success 200 {array} dto.UserResponse
// @Router /users [get]
func (ctrl *PublicController) ListUsers(c *gin.Context) {
	page, pageSize := controller.PageParams(c)
	resp, err := ctrl.userSvc.List(page, pageSize)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.Items)
}

// GetUser godoc
// @Summary Read-only user projection by id
// @Tags api
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{id} [get]
func (ctrl *PublicController) GetUser(c *gin.Context) {
	id, ok := controller.UintParam(c, "id")
	if !ok {
		return
	}
	resp, err := ctrl.userSvc.Get(id)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListEmployees godoc
// @Summary Read-only employee projection
// @Tags api
// @Produce json
// @Success 200 {array} dto.EmployeeResponse
// @Router /employees [get]
func (ctrl *PublicController) ListEmployees(c *gin.Context) {
	page, pageSize := controller.PageParams(c)
	resp, err := ctrl.employeeSvc.List(page, pageSize)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.Items)
}

// GetEmployee godoc
// @Summary Read-only employee projection by id
// @Tags api
// @Produce json
// @Param id path int true "Employee ID"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /employees/{id} [get]
func (ctrl *PublicController) GetEmployee(c *gin.Context) {
	id, ok := controller.UintParam(c, "id")
	if !ok {
		return
	}
	resp, err := ctrl.employeeSvc.Get(id)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
