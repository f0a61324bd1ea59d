package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"netops/internal/models/request_models"
	"netops/internal/repositories"
	"netops/internal/services"
	"netops/pkg/middleware"
	"netops/pkg/utils"
)

type StaffController struct {
	staffService services.StaffServiceInterface
}

func NewStaffController(staffService services.StaffServiceInterface) *StaffController {
	return &StaffController{staffService: staffService}
}

// ListStaff godoc
// @Summary List users
// @Tags Staff
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 20, max: 100)"
// @Param role query string false "ADMIN or STAFF"
// @Param active query bool false "Active flag"
// @Param search query string false "Name or email contains"
// @Success 200 {object} utils.APIResponse{data=response_models.PagedResponse[response_models.UserResponse]}
// @Security CookieAuth
// @Router /staff [get]
func (s *StaffController) ListStaff(c *gin.Context) {
	page, pageSize, ok := pagination(c)
	if !ok {
		return
	}
	active, ok := queryBool(c, "active")
	if !ok {
		return
	}

	filter := repositories.UserFilter{
		Role:     strings.ToUpper(c.Query("role")),
		Keyword:  c.Query("search"),
		IsActive: active,
	}
	users, err := s.staffService.List(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, users, "Users fetched successfully")
}

// GetStaff godoc
// @Summary Get user
// @Tags Staff
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} utils.APIResponse{data=response_models.UserResponse}
// @Failure 404 {object} utils.APIResponse
// @Security CookieAuth
// @Router /staff/{id} [get]
func (s *StaffController) GetStaff(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := s.staffService.Get(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, user, "User fetched successfully")
}

// CreateStaff godoc
// @Summary Create user
// @Description The assigned district must belong to the assigned province
// @Tags Staff
// @Accept json
// @Produce json
// @Param request body request_models.CreateStaffRequest true "User"
// @Success 201 {object} utils.APIResponse{data=response_models.UserResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security CookieAuth
// @Router /staff [post]
func (s *StaffController) CreateStaff(c *gin.Context) {
	var req request_models.CreateStaffRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := s.staffService.Create(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, user, "User created successfully")
}

// UpdateStaff godoc
// @Summary Update user
// @Tags Staff
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body request_models.UpdateStaffRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse{data=response_models.UserResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security CookieAuth
// @Router /staff/{id} [put]
func (s *StaffController) UpdateStaff(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req request_models.UpdateStaffRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := s.staffService.Update(c.Request.Context(), middleware.CurrentActor(c), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, user, "User updated successfully")
}

// SetStaffActive godoc
// @Summary Activate or deactivate user
// @Tags Staff
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body request_models.SetActiveRequest true "Active flag"
// @Success 200 {object} utils.APIResponse{data=response_models.UserResponse}
// @Failure 404 {object} utils.APIResponse
// @Security CookieAuth
// @Router /staff/{id}/active [patch]
func (s *StaffController) SetStaffActive(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req request_models.SetActiveRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := s.staffService.SetActive(c.Request.Context(), middleware.CurrentActor(c), id, *req.IsActive)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, user, "User updated successfully")
}

// DeleteStaff godoc
// @Summary Delete user
// @Tags Staff
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security CookieAuth
// @Router /staff/{id} [delete]
func (s *StaffController) DeleteStaff(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.staffService.Delete(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "User deleted successfully")
}
