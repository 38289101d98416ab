package admin

import (
	"net/http"

	"github.com/dkhromov/stafftests/internal/controller"
	"github.com/dkhromov/stafftests/internal/dto"
	"github.com/dkhromov/stafftests/internal/middleware"
	"github.com/dkhromov/stafftests/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// AdminController exposes the admin-only surface: identity management and
// the test-deletion approval workflow.
type AdminController struct {
	userSvc     service.UserService
	employeeSvc service.EmployeeService
	approvalSvc service.ApprovalService
}

func NewAdminController(
	userSvc service.UserService,
	employeeSvc service.EmployeeService,
	approvalSvc service.ApprovalService,
) *AdminController {
	return &AdminController{
		userSvc:     userSvc,
		employeeSvc: employeeSvc,
		approvalSvc: approvalSvc,
	}
}

// CreateUser godoc
// @Summary Create an application user
// @Tags admin
// @Accept json
// @Produce json
// @Param user body dto.UserRequest true "User data"
// @Success 201 {object} dto.UserResponse
// @Failure 422 {object} dto.ValidationErrorResponse
// @Router /admin/users [post]
func (ctrl *AdminController) CreateUser(c *gin.Context) {
	var req dto.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.userSvc.Create(req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListUsers godoc
// @Summary List application users
// @Tags admin
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.UserListResponse
// @Router /admin/users [get]
func (ctrl *AdminController) ListUsers(c *gin.Context) {
	page, pageSize := controller.PageParams(c)
	resp, err := ctrl.userSvc.List(page, pageSize)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetUser godoc
// @Summary Get an application user
// @Tags admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/users/{id} [get]
func (ctrl *AdminController) GetUser(c *gin.Context) {
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

// UpdateUser godoc
// @Summary Update an application user
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body dto.UserRequest true "User data"
// @Success 200 {object} dto.UserResponse
// @Failure 422 {object} dto.ValidationErrorResponse
// @Router /admin/users/{id} [put]
func (ctrl *AdminController) UpdateUser(c *gin.Context) {
	id, ok := controller.UintParam(c, "id")
	if !ok {
		return
	}
	var req dto.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.userSvc.Update(id, req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteUser godoc
// @Summary Delete an application user
// @Tags admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/users/{id} [delete]
func (ctrl *AdminController) DeleteUser(c *gin.Context) {
	id, ok := controller.UintParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.userSvc.Delete(id); err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "User deleted."})
}

// CreateEmployee godoc
// @Summary Create an employee
// @Tags admin
// @Accept json
// @Produce json
// @Param employee body dto.EmployeeRequest true "Employee data"
// @Success 201 {object} dto.EmployeeResponse
// @Failure 422 {object} dto.ValidationErrorResponse
// @Router /admin/employees [post]
func (ctrl *AdminController) CreateEmployee(c *gin.Context) {
	var req dto.EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.employeeSvc.Create(req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListEmployees godoc
// @Summary List employees
// @Tags admin
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.EmployeeListResponse
// @Router /admin/employees [get]
func (ctrl *AdminController) ListEmployees(c *gin.Context) {
	page, pageSize := controller.PageParams(c)
	resp, err := ctrl.employeeSvc.List(page, pageSize)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetEmployee godoc
// @Summary Get an employee
// @Tags admin
// @Produce json
// @Param id path int true "Employee ID"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/employees/{id} [get]
func (ctrl *AdminController) GetEmployee(c *gin.Context) {
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

// UpdateEmployee godoc
// @Summary Update an employee
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Employee ID"
// @Param employee body dto.EmployeeRequest true "Employee data"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 422 {object} dto.ValidationErrorResponse
// @Router /admin/employees/{id} [put]
func (ctrl *AdminController) UpdateEmployee(c *gin.Context) {
	id, ok := controller.UintParam(c, "id")
	if !ok {
		return
	}
	var req dto.EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.employeeSvc.Update(id, req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// FireEmployee godoc
// @Summary Fire an employee (one-way, idempotent)
// @Tags admin
// @Produce json
// @Param id path int true "Employee ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/employees/{id}/fire [post]
func (ctrl *AdminController) FireEmployee(c *gin.Context) {
	id, ok := controller.UintParam(c, "id")
	if !ok {
		return
	}
	resp, err := ctrl.employeeSvc.Fire(id)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HardDeleteEmployee godoc
// @Summary Permanently delete a fired employee and its linked user
// @Tags admin
// @Produce json
// @Param id path int true "Employee ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 409 {object} dto.ErrorResponse "Employee is not fired"
// @Router /admin/employees/{id} [delete]
func (ctrl *AdminController) HardDeleteEmployee(c *gin.Context) {
	id, ok := controller.UintParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.employeeSvc.HardDelete(id); err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Employee deleted."})
}

// PendingDeletions godoc
// @Summary List pending test deletion requests
// @Tags admin
// @Produce json
// @Success 200 {array} dto.DeletionRequestResponse
// @Router /admin/deletion-requests [get]
func (ctrl *AdminController) PendingDeletions(c *gin.Context) {
	resp, err := ctrl.approvalSvc.PendingDeletions()
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ApproveDeletion godoc
// @Summary Approve a deletion request, removing the test
// @Tags admin
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 409 {object} dto.ErrorResponse "Request already resolved"
// @Router /admin/deletion-requests/{id}/approve [post]
func (ctrl *AdminController) ApproveDeletion(c *gin.Context) {
	id, ok := controller.UintParam(c, "id")
	if !ok {
		return
	}
	act, _ := middleware.ActorFrom(c)
	if err := ctrl.approvalSvc.ApproveDeletion(act, id); err != nil {
		controller.RespondError(c, err)
		return
	}
	log.Info().Uint("requestID", id).Msg("Deletion request approved")
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Deletion request approved; test removed."})
}

// DeclineDeletion godoc
// @Summary Decline a deletion request, keeping the test
// @Tags admin
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} dto.DeletionRequestResponse
// @Failure 409 {object} dto.ErrorResponse "Request already resolved"
// @Router /admin/deletion-requests/{id}/decline [post]
func (ctrl *AdminController) DeclineDeletion(c *gin.Context) {
	id, ok := controller.UintParam(c, "id")
	if !ok {
		return
	}
	act, _ := middleware.ActorFrom(c)
	resp, err := ctrl.approvalSvc.DeclineDeletion(act, id)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
