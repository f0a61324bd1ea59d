package controllers

import (
	"github.com/gin-gonic/gin"

	"netops/internal/models/request_models"
	"netops/internal/repositories"
	"netops/internal/services"
	"netops/pkg/middleware"
	"netops/pkg/utils"
)

type ConnectedUsersController struct {
	deviceService services.ConnectedUserServiceInterface
}

func NewConnectedUsersController(deviceService services.ConnectedUserServiceInterface) *ConnectedUsersController {
	return &ConnectedUsersController{deviceService: deviceService}
}

// ListConnectedUsers godoc
// @Summary List connected devices
// @Tags ConnectedUsers
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 20, max: 100)"
// @Param routerId query string false "Router ID"
// @Param blocked query bool false "Blocked flag"
// @Param search query string false "Device, hostname, IP or MAC contains"
// @Success 200 {object} utils.APIResponse{data=response_models.PagedResponse[response_models.ConnectedUserResponse]}
// @Security CookieAuth
// @Router /connected-users [get]
func (d *ConnectedUsersController) ListConnectedUsers(c *gin.Context) {
	page, pageSize, ok := pagination(c)
	if !ok {
		return
	}
	routerID, ok := queryUUID(c, "routerId")
	if !ok {
		return
	}
	blocked, ok := queryBool(c, "blocked")
	if !ok {
		return
	}

	filter := repositories.ConnectedUserFilter{RouterID: routerID, Blocked: blocked, Keyword: c.Query("search")}
	devices, err := d.deviceService.List(c.Request.Context(), middleware.CurrentActor(c), filter, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, devices, "Connected users fetched successfully")
}

// GetConnectedUser godoc
// @Summary Get connected device
// @Tags ConnectedUsers
// @Produce json
// @Param id path string true "Device ID"
// @Success 200 {object} utils.APIResponse{data=response_models.ConnectedUserResponse}
// @Failure 404 {object} utils.APIResponse
// @Security CookieAuth
// @Router /connected-users/{id} [get]
func (d *ConnectedUsersController) GetConnectedUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	device, err := d.deviceService.Get(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, device, "Connected user fetched successfully")
}

// CreateConnectedUser godoc
// @Summary Register connected device
// @Tags ConnectedUsers
// @Accept json
// @Produce json
// @Param request body request_models.CreateConnectedUserRequest true "Device"
// @Success 201 {object} utils.APIResponse{data=response_models.ConnectedUserResponse}
// @Failure 400 {object} utils.APIResponse
// @Security CookieAuth
// @Router /connected-users [post]
func (d *ConnectedUsersController) CreateConnectedUser(c *gin.Context) {
	var req request_models.CreateConnectedUserRequest
	if !bindJSON(c, &req) {
		return
	}

	device, err := d.deviceService.Create(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, device, "Connected user created successfully")
}

// DeleteConnectedUser godoc
// @Summary Remove connected device
// @Tags ConnectedUsers
// @Produce json
// @Param id path string true "Device ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security CookieAuth
// @Router /connected-users/{id} [delete]
func (d *ConnectedUsersController) DeleteConnectedUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := d.deviceService.Delete(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Connected user deleted successfully")
}

// BlockConnectedUser godoc
// @Summary Block device on the firewall
// @Description Adds the device address to the firewall block alias, then records the block. Firewall failures answer 502 and change nothing.
// @Tags ConnectedUsers
// @Produce json
// @Param id path string true "Device ID"
// @Success 200 {object} utils.APIResponse{data=response_models.BlockResult}
// @Failure 404 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Security CookieAuth
// @Router /connected-users/{id}/block [post]
func (d *ConnectedUsersController) BlockConnectedUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := d.deviceService.Block(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, result, "Device blocked")
}

// UnblockConnectedUser godoc
// @Summary Unblock device on the firewall
// @Tags ConnectedUsers
// @Produce json
// @Param id path string true "Device ID"
// @Success 200 {object} utils.APIResponse{data=response_models.BlockResult}
// @Failure 404 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Security CookieAuth
// @Router /connected-users/{id}/unblock [post]
func (d *ConnectedUsersController) UnblockConnectedUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := d.deviceService.Unblock(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, result, "Device unblocked")
}

// FirewallStatus godoc
// @Summary Firewall appliance status
// @Tags ConnectedUsers
// @Produce json
// @Success 200 {object} utils.APIResponse{data=response_models.FirewallStatusResponse}
// @Security CookieAuth
// @Router /firewall/status [get]
func (d *ConnectedUsersController) FirewallStatus(c *gin.Context) {
	utils.RespondSuccess(c, d.deviceService.FirewallStatus(c.Request.Context()), "Firewall status fetched")
}
