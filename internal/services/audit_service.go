package services

import (
	"context"
	"encoding/json"

	"gorm.io/datatypes"

	"netops/internal/models/db_models"
	"netops/internal/models/response_models"
	"netops/internal/repositories"
	"netops/pkg/logger"
	"netops/pkg/utils"
)

const (
	ActionLogin          = "LOGIN"
	ActionLogout         = "LOGOUT"
	ActionUpdateProfile  = "UPDATE_PROFILE"
	ActionChangePassword = "CHANGE_PASSWORD"

	ActionCreate       = "CREATE"
	ActionUpdate       = "UPDATE"
	ActionDelete       = "DELETE"
	ActionUpdateStatus = "UPDATE_STATUS"
	ActionActivate     = "ACTIVATE"
	ActionDeactivate   = "DEACTIVATE"

	ActionResolveAlert  = "RESOLVE_ALERT"
	ActionDismissAlert  = "DISMISS_ALERT"
	ActionBlockDevice   = "BLOCK_DEVICE"
	ActionUnblockDevice = "UNBLOCK_DEVICE"

	ActionUpdateSettings = "UPDATE_SETTINGS"
	ActionClearCache     = "CLEAR_STATS_CACHE"
	ActionRouterOffline  = "ROUTER_OFFLINE"
)

const (
	EntityProvince      = "province"
	EntityDistrict      = "district"
	EntityTown          = "town"
	EntityRouter        = "router"
	EntityUser          = "user"
	EntityAlert         = "alert"
	EntityConnectedUser = "connected_user"
	EntitySetting       = "setting"
	EntityDashboard     = "dashboard"
)

type AuditServiceInterface interface {
	Record(ctx context.Context, actor Actor, action, entityType, entityID string, details map[string]interface{})
	List(ctx context.Context, filter repositories.LogFilter, page, pageSize int) (*response_models.PagedResponse[*response_models.LogResponse], error)
	Purge(ctx context.Context, cutoff int64) (int64, error)
}

type AuditService struct {
	logRepo repositories.LogRepository
}

func NewAuditService(logRepo repositories.LogRepository) AuditServiceInterface {
	return &AuditService{logRepo: logRepo}
}

// newLogEntry builds an audit row without persisting it.
func newLogEntry(actor Actor, action, entityType, entityID string, details map[string]interface{}) *db_models.Log {
	entry := &db_models.Log{
		UserID:     actor.UserID(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		IPAddress:  actor.IP,
	}
	if len(details) > 0 {
		if raw, err := json.Marshal(details); err == nil {
			entry.Details = datatypes.JSON(raw)
		}
	}
	return entry
}

// Record never fails the calling operation; a lost audit row is logged.
func (a *AuditService) Record(ctx context.Context, actor Actor, action, entityType, entityID string, details map[string]interface{}) {
	entry := newLogEntry(actor, action, entityType, entityID, details)
	if err := a.logRepo.Insert(ctx, entry); err != nil {
		logger.Error("Failed to write audit log", "action", action, "entity", entityType, "entity_id", entityID, "error", err)
	}
}

func (a *AuditService) List(ctx context.Context, filter repositories.LogFilter, page, pageSize int) (*response_models.PagedResponse[*response_models.LogResponse], error) {
	logs, total, err := a.logRepo.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	items := make([]*response_models.LogResponse, 0, len(logs))
	for i := range logs {
		items = append(items, response_models.ToLogResponse(&logs[i]))
	}
	result := response_models.NewPage(items, total, page, pageSize)
	return &result, nil
}

func (a *AuditService) Purge(ctx context.Context, cutoff int64) (int64, error) {
	n, err := a.logRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, utils.ErrDatabaseError
	}
	return n, nil
}
