package controllers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"netops/internal/models/request_models"
	"netops/internal/repositories"
	"netops/internal/services"
	"netops/pkg/middleware"
	"netops/pkg/utils"
)

type AlertsController struct {
	alertService services.AlertServiceInterface
}

func NewAlertsController(alertService services.AlertServiceInterface) *AlertsController {
	return &AlertsController{alertService: alertService}
}

// ListAlerts godoc
// @Summary List alerts
// @Tags Alerts
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 20, max: 100)"
// @Param status query string false "ACTIVE, RESOLVED or DISMISSED"
// @Param severity query string false "LOW, MEDIUM, HIGH or CRITICAL"
// @Param routerId query string false "Router ID"
// @Success 200 {object} utils.APIResponse{data=response_models.PagedResponse[response_models.AlertResponse]}
// @Security CookieAuth
// @Router /alerts [get]
func (a *AlertsController) ListAlerts(c *gin.Context) {
	page, pageSize, ok := pagination(c)
	if !ok {
		return
	}
	routerID, ok := queryUUID(c, "routerId")
	if !ok {
		return
	}

	filter := repositories.AlertFilter{
		Status:   strings.ToUpper(c.Query("status")),
		Severity: strings.ToUpper(c.Query("severity")),
		RouterID: routerID,
	}
	alerts, err := a.alertService.List(c.Request.Context(), middleware.CurrentActor(c), filter, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, alerts, "Alerts fetched successfully")
}

// GetAlert godoc
// @Summary Get alert
// @Tags Alerts
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {object} utils.APIResponse{data=response_models.AlertResponse}
// @Failure 404 {object} utils.APIResponse
// @Security CookieAuth
// @Router /alerts/{id} [get]
func (a *AlertsController) GetAlert(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	alert, err := a.alertService.Get(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, alert, "Alert fetched successfully")
}

// CreateAlert godoc
// @Summary Raise alert
// @Tags Alerts
// @Accept json
// @Produce json
// @Param request body request_models.CreateAlertRequest true "Alert"
// @Success 201 {object} utils.APIResponse{data=response_models.AlertResponse}
// @Failure 400 {object} utils.APIResponse
// @Security CookieAuth
// @Router /alerts [post]
func (a *AlertsController) CreateAlert(c *gin.Context) {
	var req request_models.CreateAlertRequest
	if !bindJSON(c, &req) {
		return
	}

	alert, err := a.alertService.Create(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, alert, "Alert created successfully")
}

// ResolveAlert godoc
// @Summary Resolve alert
// @Description Moves an ACTIVE alert to RESOLVED. Any other state answers 409.
// @Tags Alerts
// @Accept json
// @Produce json
// @Param id path string true "Alert ID"
// @Param request body request_models.ResolveAlertRequest false "Resolution note"
// @Success 200 {object} utils.APIResponse{data=response_models.AlertResponse}
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security CookieAuth
// @Router /alerts/{id}/resolve [post]
func (a *AlertsController) ResolveAlert(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	// The body is optional.
	var req request_models.ResolveAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	alert, err := a.alertService.Resolve(c.Request.Context(), middleware.CurrentActor(c), id, req.Resolution)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, alert, "Alert resolved")
}

// DismissAlert godoc
// @Summary Dismiss alert
// @Description Moves an ACTIVE alert to DISMISSED. Any other state answers 409.
// @Tags Alerts
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {object} utils.APIResponse{data=response_models.AlertResponse}
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security CookieAuth
// @Router /alerts/{id}/dismiss [post]
func (a *AlertsController) DismissAlert(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	alert, err := a.alertService.Dismiss(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, alert, "Alert dismissed")
}

// DeleteAlert godoc
// @Summary Delete alert
// @Tags Alerts
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security CookieAuth
// @Router /alerts/{id} [delete]
func (a *AlertsController) DeleteAlert(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := a.alertService.Delete(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Alert deleted successfully")
}
