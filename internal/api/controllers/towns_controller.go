package controllers

import (
	"github.com/gin-gonic/gin"

	"netops/internal/models/request_models"
	"netops/internal/services"
	"netops/pkg/middleware"
	"netops/pkg/utils"
)

type TownsController struct {
	townService services.TownServiceInterface
}

func NewTownsController(townService services.TownServiceInterface) *TownsController {
	return &TownsController{
		townService: townService,
	}
}

// ListTowns godoc
// @Summary List towns
// @Description Fetch a paginated list of towns visible to the caller
// @Tags Towns
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 20, max: 100)"
// @Param districtId query string false "District ID filter"
// @Param search query string false "Name contains"
// @Success 200 {object} utils.APIResponse{data=response_models.PagedResponse[response_models.TownResponse]}
// @Failure 400 {object} utils.APIResponse
// @Security CookieAuth
// @Router /towns [get]
func (t *TownsController) ListTowns(c *gin.Context) {
	page, pageSize, ok := pagination(c)
	if !ok {
		return
	}

	parentID, ok := queryUUID(c, "districtId")
	if !ok {
		return
	}

	towns, err := t.townService.List(c.Request.Context(), middleware.CurrentActor(c), parentID, c.Query("search"), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, towns, "Towns fetched successfully")
}

// GetTown godoc
// @Summary Get town
// @Tags Towns
// @Produce json
// @Param id path string true "Town ID"
// @Success 200 {object} utils.APIResponse{data=response_models.TownResponse}
// @Failure 404 {object} utils.APIResponse
// @Security CookieAuth
// @Router /towns/{id} [get]
func (t *TownsController) GetTown(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	town, err := t.townService.Get(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, town, "Town fetched successfully")
}

// CreateTown godoc
// @Summary Create town
// @Tags Towns
// @Accept json
// @Produce json
// @Param request body request_models.CreateTownRequest true "Town"
// @Success 201 {object} utils.APIResponse{data=response_models.TownResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security CookieAuth
// @Router /towns [post]
func (t *TownsController) CreateTown(c *gin.Context) {
	var req request_models.CreateTownRequest
	if !bindJSON(c, &req) {
		return
	}

	town, err := t.townService.Create(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, town, "Town created successfully")
}

// UpdateTown godoc
// @Summary Update town
// @Tags Towns
// @Accept json
// @Produce json
// @Param id path string true "Town ID"
// @Param request body request_models.UpdateTownRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse{data=response_models.TownResponse}
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security CookieAuth
// @Router /towns/{id} [put]
func (t *TownsController) UpdateTown(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req request_models.UpdateTownRequest
	if !bindJSON(c, &req) {
		return
	}

	town, err := t.townService.Update(c.Request.Context(), middleware.CurrentActor(c), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, town, "Town updated successfully")
}

// DeleteTown godoc
// @Summary Delete town
// @Description Fails with 409 while routers still reference it
// @Tags Towns
// @Produce json
// @Param id path string true "Town ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security CookieAuth
// @Router /towns/{id} [delete]
func (t *TownsController) DeleteTown(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := t.townService.Delete(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Town deleted successfully")
}
