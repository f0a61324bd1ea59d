package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"netops/internal/models/db_models"
	"netops/internal/models/request_models"
	"netops/internal/models/response_models"
	"netops/internal/repositories"
	"netops/pkg/utils"
)

type AlertServiceInterface interface {
	List(ctx context.Context, actor Actor, filter repositories.AlertFilter, page, pageSize int) (*response_models.PagedResponse[*response_models.AlertResponse], error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*response_models.AlertResponse, error)
	Create(ctx context.Context, actor Actor, request request_models.CreateAlertRequest) (*response_models.AlertResponse, error)
	Resolve(ctx context.Context, actor Actor, id uuid.UUID, resolution string) (*response_models.AlertResponse, error)
	Dismiss(ctx context.Context, actor Actor, id uuid.UUID) (*response_models.AlertResponse, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type AlertService struct {
	alertRepository  repositories.AlertRepository
	routerRepository repositories.RouterRepository
	audit            AuditServiceInterface
	now              func() time.Time
}

func NewAlertService(alertRepository repositories.AlertRepository, routerRepository repositories.RouterRepository, audit AuditServiceInterface) AlertServiceInterface {
	return &AlertService{
		alertRepository:  alertRepository,
		routerRepository: routerRepository,
		audit:            audit,
		now:              time.Now,
	}
}

func (a *AlertService) List(ctx context.Context, actor Actor, filter repositories.AlertFilter, page, pageSize int) (*response_models.PagedResponse[*response_models.AlertResponse], error) {
	alerts, total, err := a.alertRepository.List(ctx, actor.Scope, filter, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	items := make([]*response_models.AlertResponse, 0, len(alerts))
	for i := range alerts {
		items = append(items, response_models.ToAlertResponse(&alerts[i]))
	}
	result := response_models.NewPage(items, total, page, pageSize)
	return &result, nil
}

func (a *AlertService) find(ctx context.Context, actor Actor, id uuid.UUID) (*db_models.Alert, error) {
	alert, err := a.alertRepository.FindByID(ctx, id, actor.Scope)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if alert == nil {
		return nil, utils.ErrAlertNotFound
	}
	return alert, nil
}

func (a *AlertService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*response_models.AlertResponse, error) {
	alert, err := a.find(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return response_models.ToAlertResponse(alert), nil
}

func (a *AlertService) Create(ctx context.Context, actor Actor, request request_models.CreateAlertRequest) (*response_models.AlertResponse, error) {
	routerID, err := uuid.Parse(request.RouterID)
	if err != nil {
		return nil, utils.NewValidationError("router_id", "must be a valid UUID")
	}
	router, err := a.routerRepository.FindByID(ctx, routerID, actor.Scope)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if router == nil {
		return nil, utils.NewValidationError("router_id", "router does not exist")
	}

	severity := db_models.AlertSeverity(request.Severity)
	if severity == "" {
		severity = db_models.AlertSeverityMedium
	}

	alert := &db_models.Alert{
		RouterID:    router.ID,
		Router:      router,
		Type:        strings.ToUpper(strings.TrimSpace(request.Type)),
		Severity:    severity,
		Title:       utils.SanitizeText(request.Title),
		Message:     utils.SanitizeText(request.Message),
		Status:      db_models.AlertStatusActive,
		CreatedByID: actor.UserID(),
	}
	if err := a.alertRepository.Insert(ctx, alert); err != nil {
		return nil, utils.ErrDatabaseError
	}

	a.audit.Record(ctx, actor, ActionCreate, EntityAlert, alert.ID.String(),
		map[string]interface{}{"router_id": router.ID.String(), "type": alert.Type, "severity": alert.Severity})
	return response_models.ToAlertResponse(alert), nil
}

// transition applies a terminal status. Only ACTIVE alerts move; any other
// state yields ErrAlertNotActive and leaves the row untouched.
func (a *AlertService) transition(ctx context.Context, actor Actor, id uuid.UUID, action string, fields map[string]interface{}, details map[string]interface{}) (*response_models.AlertResponse, error) {
	alert, err := a.find(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if alert.Status != db_models.AlertStatusActive {
		return nil, utils.ErrAlertNotActive
	}

	entry := newLogEntry(actor, action, EntityAlert, alert.ID.String(), details)
	applied, err := a.alertRepository.Transition(ctx, alert.ID, fields, entry)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if !applied {
		return nil, utils.ErrAlertNotActive
	}

	updated, err := a.find(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return response_models.ToAlertResponse(updated), nil
}

func (a *AlertService) Resolve(ctx context.Context, actor Actor, id uuid.UUID, resolution string) (*response_models.AlertResponse, error) {
	resolution = utils.SanitizeText(resolution)
	fields := map[string]interface{}{
		"status":         db_models.AlertStatusResolved,
		"resolved_at":    a.now().Unix(),
		"resolved_by_id": uuidString(actor.UserID()),
		"resolution":     resolution,
	}
	details := map[string]interface{}{}
	if resolution != "" {
		details["resolution"] = resolution
	}
	return a.transition(ctx, actor, id, ActionResolveAlert, fields, details)
}

func (a *AlertService) Dismiss(ctx context.Context, actor Actor, id uuid.UUID) (*response_models.AlertResponse, error) {
	fields := map[string]interface{}{
		"status":       db_models.AlertStatusDismissed,
		"dismissed_at": a.now().Unix(),
	}
	return a.transition(ctx, actor, id, ActionDismissAlert, fields, nil)
}

func (a *AlertService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	alert, err := a.find(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := a.alertRepository.Delete(ctx, alert.ID); err != nil {
		return utils.ErrDatabaseError
	}
	a.audit.Record(ctx, actor, ActionDelete, EntityAlert, alert.ID.String(), map[string]interface{}{"title": alert.Title})
	return nil
}
