package controllers

import (
	"github.com/gin-gonic/gin"

	"netops/internal/models/request_models"
	"netops/internal/services"
	"netops/pkg/middleware"
	"netops/pkg/utils"
)

type ProvincesController struct {
	provinceService services.ProvinceServiceInterface
}

func NewProvincesController(provinceService services.ProvinceServiceInterface) *ProvincesController {
	return &ProvincesController{
		provinceService: provinceService,
	}
}

// ListProvinces godoc
// @Summary List provinces
// @Description Fetch a paginated list of provinces visible to the caller
// @Tags Provinces
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 20, max: 100)"
// @Param search query string false "Name or code contains"
// @Success 200 {object} utils.APIResponse{data=response_models.PagedResponse[response_models.ProvinceResponse]}
// @Failure 400 {object} utils.APIResponse
// @Security CookieAuth
// @Router /provinces [get]
func (p *ProvincesController) ListProvinces(c *gin.Context) {
	page, pageSize, ok := pagination(c)
	if !ok {
		return
	}

	provinces, err := p.provinceService.List(c.Request.Context(), middleware.CurrentActor(c), c.Query("search"), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, provinces, "Provinces fetched successfully")
}

// GetProvince godoc
// @Summary Get province
// @Tags Provinces
// @Produce json
// @Param id path string true "Province ID"
// @Success 200 {object} utils.APIResponse{data=response_models.ProvinceResponse}
// @Failure 404 {object} utils.APIResponse
// @Security CookieAuth
// @Router /provinces/{id} [get]
func (p *ProvincesController) GetProvince(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	province, err := p.provinceService.Get(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, province, "Province fetched successfully")
}

// CreateProvince godoc
// @Summary Create province
// @Tags Provinces
// @Accept json
// @Produce json
// @Param request body request_models.CreateProvinceRequest true "Province"
// @Success 201 {object} utils.APIResponse{data=response_models.ProvinceResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security CookieAuth
// @Router /provinces [post]
func (p *ProvincesController) CreateProvince(c *gin.Context) {
	var req request_models.CreateProvinceRequest
	if !bindJSON(c, &req) {
		return
	}

	province, err := p.provinceService.Create(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, province, "Province created successfully")
}

// UpdateProvince godoc
// @Summary Update province
// @Tags Provinces
// @Accept json
// @Produce json
// @Param id path string true "Province ID"
// @Param request body request_models.UpdateProvinceRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse{data=response_models.ProvinceResponse}
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security CookieAuth
// @Router /provinces/{id} [put]
func (p *ProvincesController) UpdateProvince(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req request_models.UpdateProvinceRequest
	if !bindJSON(c, &req) {
		return
	}

	province, err := p.provinceService.Update(c.Request.Context(), middleware.CurrentActor(c), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, province, "Province updated successfully")
}

// DeleteProvince godoc
// @Summary Delete province
// @Description Fails with 409 while districts or staff still reference it
// @Tags Provinces
// @Produce json
// @Param id path string true "Province ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security CookieAuth
// @Router /provinces/{id} [delete]
func (p *ProvincesController) DeleteProvince(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := p.provinceService.Delete(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Province deleted successfully")
}
