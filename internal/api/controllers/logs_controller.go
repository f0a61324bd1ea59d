package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"netops/internal/repositories"
	"netops/internal/services"
	"netops/pkg/utils"
)

type LogsController struct {
	auditService services.AuditServiceInterface
}

func NewLogsController(auditService services.AuditServiceInterface) *LogsController {
	return &LogsController{auditService: auditService}
}

// ListLogs godoc
// @Summary Audit log
// @Tags Logs
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 20, max: 100)"
// @Param action query string false "Action, e.g. LOGIN or RESOLVE_ALERT"
// @Param userId query string false "User ID"
// @Param entityType query string false "Entity type, e.g. router"
// @Success 200 {object} utils.APIResponse{data=response_models.PagedResponse[response_models.LogResponse]}
// @Security CookieAuth
// @Router /logs [get]
func (l *LogsController) ListLogs(c *gin.Context) {
	page, pageSize, ok := pagination(c)
	if !ok {
		return
	}
	userID, ok := queryUUID(c, "userId")
	if !ok {
		return
	}

	filter := repositories.LogFilter{
		Action:     strings.ToUpper(c.Query("action")),
		UserID:     userID,
		EntityType: strings.ToLower(c.Query("entityType")),
	}
	logs, err := l.auditService.List(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, logs, "Logs fetched successfully")
}
