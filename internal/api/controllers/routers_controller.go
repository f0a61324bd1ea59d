package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"netops/internal/models/db_models"
	"netops/internal/models/request_models"
	"netops/internal/repositories"
	"netops/internal/services"
	"netops/pkg/middleware"
	"netops/pkg/utils"
)

type RoutersController struct {
	routerService services.RouterServiceInterface
}

func NewRoutersController(routerService services.RouterServiceInterface) *RoutersController {
	return &RoutersController{routerService: routerService}
}

// ListRouters godoc
// @Summary List routers
// @Description Paginated routers within the caller's area, with connected device counts
// @Tags Routers
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 20, max: 100)"
// @Param status query string false "ONLINE, OFFLINE, MAINTENANCE or ERROR"
// @Param townId query string false "Town ID"
// @Param search query string false "Name, IP or serial contains"
// @Success 200 {object} utils.APIResponse{data=response_models.PagedResponse[response_models.RouterResponse]}
// @Failure 400 {object} utils.APIResponse
// @Security CookieAuth
// @Router /routers [get]
func (r *RoutersController) ListRouters(c *gin.Context) {
	page, pageSize, ok := pagination(c)
	if !ok {
		return
	}
	townID, ok := queryUUID(c, "townId")
	if !ok {
		return
	}

	filter := repositories.RouterFilter{
		Status:  strings.ToUpper(c.Query("status")),
		TownID:  townID,
		Keyword: c.Query("search"),
	}
	if filter.Status != "" && !db_models.RouterStatus(filter.Status).Valid() {
		utils.HandleServiceError(c, utils.NewValidationError("status", "unknown router status"))
		return
	}

	routers, err := r.routerService.List(c.Request.Context(), middleware.CurrentActor(c), filter, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, routers, "Routers fetched successfully")
}

// GetRouter godoc
// @Summary Get router
// @Tags Routers
// @Produce json
// @Param id path string true "Router ID"
// @Success 200 {object} utils.APIResponse{data=response_models.RouterResponse}
// @Failure 404 {object} utils.APIResponse
// @Security CookieAuth
// @Router /routers/{id} [get]
func (r *RoutersController) GetRouter(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	router, err := r.routerService.Get(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, router, "Router fetched successfully")
}

// CreateRouter godoc
// @Summary Create router
// @Tags Routers
// @Accept json
// @Produce json
// @Param request body request_models.CreateRouterRequest true "Router"
// @Success 201 {object} utils.APIResponse{data=response_models.RouterResponse}
// @Failure 400 {object} utils.APIResponse
// @Security CookieAuth
// @Router /routers [post]
func (r *RoutersController) CreateRouter(c *gin.Context) {
	var req request_models.CreateRouterRequest
	if !bindJSON(c, &req) {
		return
	}

	router, err := r.routerService.Create(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, router, "Router created successfully")
}

// UpdateRouter godoc
// @Summary Update router
// @Description Only fields present in the body change. An empty town_id detaches the router.
// @Tags Routers
// @Accept json
// @Produce json
// @Param id path string true "Router ID"
// @Param request body request_models.UpdateRouterRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse{data=response_models.RouterResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security CookieAuth
// @Router /routers/{id} [put]
func (r *RoutersController) UpdateRouter(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req request_models.UpdateRouterRequest
	if !bindJSON(c, &req) {
		return
	}

	router, err := r.routerService.Update(c.Request.Context(), middleware.CurrentActor(c), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, router, "Router updated successfully")
}

// UpdateRouterStatus godoc
// @Summary Change router status
// @Description Staff may change the status of routers in their area. ONLINE stamps last_seen_at.
// @Tags Routers
// @Accept json
// @Produce json
// @Param id path string true "Router ID"
// @Param request body request_models.UpdateRouterStatusRequest true "New status"
// @Success 200 {object} utils.APIResponse{data=response_models.RouterResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security CookieAuth
// @Router /routers/{id}/status [patch]
func (r *RoutersController) UpdateRouterStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req request_models.UpdateRouterStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	router, err := r.routerService.UpdateStatus(c.Request.Context(), middleware.CurrentActor(c), id, db_models.RouterStatus(req.Status))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, router, "Router status updated successfully")
}

// DeleteRouter godoc
// @Summary Delete router
// @Description Removes the router with its connected devices and alerts
// @Tags Routers
// @Produce json
// @Param id path string true "Router ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security CookieAuth
// @Router /routers/{id} [delete]
func (r *RoutersController) DeleteRouter(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := r.routerService.Delete(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Router deleted successfully")
}
