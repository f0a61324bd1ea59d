package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"netops/internal/models/request_models"
	"netops/internal/services"
	"netops/pkg/middleware"
	"netops/pkg/utils"
)

type SettingsController struct {
	settingService services.SettingServiceInterface
}

func NewSettingsController(settingService services.SettingServiceInterface) *SettingsController {
	return &SettingsController{settingService: settingService}
}

// ListSettings godoc
// @Summary List settings grouped by category
// @Tags Settings
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security CookieAuth
// @Router /settings [get]
func (s *SettingsController) ListSettings(c *gin.Context) {
	grouped, err := s.settingService.Grouped(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, grouped, "Settings fetched successfully")
}

// ListSettingsByCategory godoc
// @Summary List settings of one category
// @Tags Settings
// @Produce json
// @Param category path string true "Category"
// @Success 200 {object} utils.APIResponse{data=[]response_models.SettingResponse}
// @Security CookieAuth
// @Router /settings/{category} [get]
func (s *SettingsController) ListSettingsByCategory(c *gin.Context) {
	settings, err := s.settingService.ByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, settings, "Settings fetched successfully")
}

// UpsertSettings godoc
// @Summary Create or update settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body request_models.UpsertSettingsRequest true "Settings"
// @Success 200 {object} utils.APIResponse{data=[]response_models.SettingResponse}
// @Failure 400 {object} utils.APIResponse
// @Security CookieAuth
// @Router /settings [put]
func (s *SettingsController) UpsertSettings(c *gin.Context) {
	var req request_models.UpsertSettingsRequest
	if !bindJSON(c, &req) {
		return
	}

	settings, err := s.settingService.Upsert(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, settings, "Settings saved successfully")
}

// DeleteSetting godoc
// @Summary Delete setting
// @Tags Settings
// @Produce json
// @Param key path string true "Setting key"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security CookieAuth
// @Router /settings/{key} [delete]
func (s *SettingsController) DeleteSetting(c *gin.Context) {
	if err := s.settingService.Delete(c.Request.Context(), middleware.CurrentActor(c), c.Param("key")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Setting deleted successfully")
}

// ExportSettings godoc
// @Summary Export settings as YAML
// @Tags Settings
// @Produce application/x-yaml
// @Success 200 {string} string "YAML document"
// @Security CookieAuth
// @Router /settings/export [get]
func (s *SettingsController) ExportSettings(c *gin.Context) {
	doc, err := s.settingService.ExportYAML(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="settings.yaml"`)
	c.Data(http.StatusOK, "application/x-yaml", doc)
}
