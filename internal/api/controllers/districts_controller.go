package controllers

import (
	"github.com/gin-gonic/gin"

	"netops/internal/models/request_models"
	"netops/internal/services"
	"netops/pkg/middleware"
	"netops/pkg/utils"
)

type DistrictsController struct {
	districtService services.DistrictServiceInterface
}

func NewDistrictsController(districtService services.DistrictServiceInterface) *DistrictsController {
	return &DistrictsController{
		districtService: districtService,
	}
}

// ListDistricts godoc
// @Summary List districts
// @Description Fetch a paginated list of districts visible to the caller
// @Tags Districts
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 20, max: 100)"
// @Param provinceId query string false "Province ID filter"
// @Param search query string false "Name contains"
// @Success 200 {object} utils.APIResponse{data=response_models.PagedResponse[response_models.DistrictResponse]}
// @Failure 400 {object} utils.APIResponse
// @Security CookieAuth
// @Router /districts [get]
func (d *DistrictsController) ListDistricts(c *gin.Context) {
	page, pageSize, ok := pagination(c)
	if !ok {
		return
	}

	parentID, ok := queryUUID(c, "provinceId")
	if !ok {
		return
	}

	districts, err := d.districtService.List(c.Request.Context(), middleware.CurrentActor(c), parentID, c.Query("search"), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, districts, "Districts fetched successfully")
}

// GetDistrict godoc
// @Summary Get district
// @Tags Districts
// @Produce json
// @Param id path string true "District ID"
// @Success 200 {object} utils.APIResponse{data=response_models.DistrictResponse}
// @Failure 404 {object} utils.APIResponse
// @Security CookieAuth
// @Router /districts/{id} [get]
func (d *DistrictsController) GetDistrict(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	district, err := d.districtService.Get(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, district, "District fetched successfully")
}

// CreateDistrict godoc
// @Summary Create district
// @Tags Districts
// @Accept json
// @Produce json
// @Param request body request_models.CreateDistrictRequest true "District"
// @Success 201 {object} utils.APIResponse{data=response_models.DistrictResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security CookieAuth
// @Router /districts [post]
func (d *DistrictsController) CreateDistrict(c *gin.Context) {
	var req request_models.CreateDistrictRequest
	if !bindJSON(c, &req) {
		return
	}

	district, err := d.districtService.Create(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, district, "District created successfully")
}

// UpdateDistrict godoc
// @Summary Update district
// @Tags Districts
// @Accept json
// @Produce json
// @Param id path string true "District ID"
// @Param request body request_models.UpdateDistrictRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse{data=response_models.DistrictResponse}
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security CookieAuth
// @Router /districts/{id} [put]
func (d *DistrictsController) UpdateDistrict(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req request_models.UpdateDistrictRequest
	if !bindJSON(c, &req) {
		return
	}

	district, err := d.districtService.Update(c.Request.Context(), middleware.CurrentActor(c), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, district, "District updated successfully")
}

// DeleteDistrict godoc
// @Summary Delete district
// @Description Fails with 409 while towns or staff still reference it
// @Tags Districts
// @Produce json
// @Param id path string true "District ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security CookieAuth
// @Router /districts/{id} [delete]
func (d *DistrictsController) DeleteDistrict(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := d.districtService.Delete(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "District deleted successfully")
}
