package controllers

import (
	"github.com/gin-gonic/gin"

	"netops/internal/services"
	"netops/pkg/middleware"
	"netops/pkg/utils"
)

type DashboardController struct {
	svc services.DashboardService
}

func NewDashboardController(svc services.DashboardService) *DashboardController {
	return &DashboardController{svc: svc}
}

// GetStats godoc
// @Summary      Dashboard statistics
// @Description  Router, staff, alert, location and device figures for the caller's area. Cached for 30 seconds per area.
// @Tags         Dashboard
// @Produce      json
// @Success      200 {object} utils.APIResponse{data=response_models.DashboardStats}
// @Failure      401 {object} utils.APIResponse
// @Security     CookieAuth
// @Router       /dashboard/stats [get]
func (h *DashboardController) GetStats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, stats, "Dashboard stats fetched successfully")
}

// ClearCache godoc
// @Summary      Clear dashboard cache
// @Tags         Dashboard
// @Produce      json
// @Success      200 {object} utils.APIResponse
// @Security     CookieAuth
// @Router       /dashboard/stats/clear-cache [post]
func (h *DashboardController) ClearCache(c *gin.Context) {
	if err := h.svc.ClearCache(c.Request.Context(), middleware.CurrentActor(c)); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Dashboard cache cleared")
}
