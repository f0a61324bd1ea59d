package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"netops/internal/models/db_models"
	"netops/internal/models/request_models"
	"netops/internal/models/response_models"
	"netops/internal/repositories"
	"netops/pkg/logger"
	"netops/pkg/utils"
)

type RouterServiceInterface interface {
	List(ctx context.Context, actor Actor, filter repositories.RouterFilter, page, pageSize int) (*response_models.PagedResponse[*response_models.RouterResponse], error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*response_models.RouterResponse, error)
	Create(ctx context.Context, actor Actor, request request_models.CreateRouterRequest) (*response_models.RouterResponse, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, request request_models.UpdateRouterRequest) (*response_models.RouterResponse, error)
	UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, status db_models.RouterStatus) (*response_models.RouterResponse, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error

	// MarkStaleOffline flips ONLINE routers not seen within maxSilence to
	// OFFLINE and raises a ROUTER_OFFLINE alert for each.
	MarkStaleOffline(ctx context.Context, maxSilence time.Duration) (int, error)
}

type RouterService struct {
	routerRepository repositories.RouterRepository
	townRepository   repositories.TownRepository
	alertRepository  repositories.AlertRepository
	audit            AuditServiceInterface
	now              func() time.Time
}

func NewRouterService(
	routerRepository repositories.RouterRepository,
	townRepository repositories.TownRepository,
	alertRepository repositories.AlertRepository,
	audit AuditServiceInterface,
) RouterServiceInterface {
	return &RouterService{
		routerRepository: routerRepository,
		townRepository:   townRepository,
		alertRepository:  alertRepository,
		audit:            audit,
		now:              time.Now,
	}
}

func (r *RouterService) List(ctx context.Context, actor Actor, filter repositories.RouterFilter, page, pageSize int) (*response_models.PagedResponse[*response_models.RouterResponse], error) {
	filter.Keyword = strings.TrimSpace(filter.Keyword)
	routers, total, err := r.routerRepository.List(ctx, actor.Scope, filter, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	ids := make([]uuid.UUID, 0, len(routers))
	for _, router := range routers {
		ids = append(ids, router.ID)
	}
	counts, err := r.routerRepository.CountConnectedUsers(ctx, ids)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	items := make([]*response_models.RouterResponse, 0, len(routers))
	for i := range routers {
		items = append(items, response_models.ToRouterResponse(&routers[i], counts[routers[i].ID]))
	}
	result := response_models.NewPage(items, total, page, pageSize)
	return &result, nil
}

func (r *RouterService) find(ctx context.Context, actor Actor, id uuid.UUID) (*db_models.Router, error) {
	router, err := r.routerRepository.FindByID(ctx, id, actor.Scope)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if router == nil {
		return nil, utils.ErrRouterNotFound
	}
	return router, nil
}

func (r *RouterService) respond(ctx context.Context, router *db_models.Router) (*response_models.RouterResponse, error) {
	counts, err := r.routerRepository.CountConnectedUsers(ctx, []uuid.UUID{router.ID})
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return response_models.ToRouterResponse(router, counts[router.ID]), nil
}

func (r *RouterService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*response_models.RouterResponse, error) {
	router, err := r.find(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return r.respond(ctx, router)
}

func (r *RouterService) resolveTown(ctx context.Context, raw *string) (*db_models.Town, error) {
	townID, err := parseOptionalUUID("town_id", raw)
	if err != nil || townID == nil {
		return nil, err
	}
	town, err := r.townRepository.FindByID(ctx, *townID, repositories.GlobalScope())
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if town == nil {
		return nil, utils.NewValidationError("town_id", "town does not exist")
	}
	return town, nil
}

func (r *RouterService) Create(ctx context.Context, actor Actor, request request_models.CreateRouterRequest) (*response_models.RouterResponse, error) {
	town, err := r.resolveTown(ctx, request.TownID)
	if err != nil {
		return nil, err
	}

	status := db_models.RouterStatus(request.Status)
	if status == "" {
		status = db_models.RouterStatusOffline
	}

	router := &db_models.Router{
		Name:         strings.TrimSpace(request.Name),
		Model:        strings.TrimSpace(request.Model),
		SerialNumber: strings.TrimSpace(request.SerialNumber),
		IPAddress:    request.IPAddress,
		MACAddress:   strings.ToUpper(request.MACAddress),
		Status:       status,
		Capacity:     request.Capacity,
		Bandwidth:    request.Bandwidth,
		Uptime:       request.Uptime,
		Latitude:     request.Latitude,
		Longitude:    request.Longitude,
		Description:  utils.SanitizeText(request.Description),
		Tags:         pq.StringArray(utils.SanitizeList(request.Tags)),
		IsActive:     true,
	}
	if town != nil {
		router.TownID = &town.ID
		router.Town = town
	}
	if status == db_models.RouterStatusOnline {
		router.LastSeenAt = utils.UnixPtr(r.now())
	}

	if err := r.routerRepository.Insert(ctx, router); err != nil {
		return nil, utils.ErrDatabaseError
	}

	r.audit.Record(ctx, actor, ActionCreate, EntityRouter, router.ID.String(),
		map[string]interface{}{"name": router.Name, "status": router.Status})
	return response_models.ToRouterResponse(router, 0), nil
}

func (r *RouterService) Update(ctx context.Context, actor Actor, id uuid.UUID, request request_models.UpdateRouterRequest) (*response_models.RouterResponse, error) {
	router, err := r.find(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	changed := map[string]interface{}{}
	if request.TownID != nil {
		town, err := r.resolveTown(ctx, request.TownID)
		if err != nil {
			return nil, err
		}
		if town == nil {
			router.TownID = nil
			router.Town = nil
			changed["town_id"] = nil
		} else {
			router.TownID = &town.ID
			router.Town = town
			changed["town_id"] = town.ID.String()
		}
	}
	if request.Name != nil {
		router.Name = strings.TrimSpace(*request.Name)
		changed["name"] = router.Name
	}
	if request.Model != nil {
		router.Model = strings.TrimSpace(*request.Model)
		changed["model"] = router.Model
	}
	if request.SerialNumber != nil {
		router.SerialNumber = strings.TrimSpace(*request.SerialNumber)
		changed["serial_number"] = router.SerialNumber
	}
	if request.IPAddress != nil {
		router.IPAddress = *request.IPAddress
		changed["ip_address"] = router.IPAddress
	}
	if request.MACAddress != nil {
		router.MACAddress = strings.ToUpper(*request.MACAddress)
		changed["mac_address"] = router.MACAddress
	}
	if request.Status != nil {
		status := db_models.RouterStatus(*request.Status)
		if status == db_models.RouterStatusOnline && router.Status != status {
			router.LastSeenAt = utils.UnixPtr(r.now())
		}
		router.Status = status
		changed["status"] = status
	}
	if request.Capacity != nil {
		router.Capacity = *request.Capacity
		changed["capacity"] = router.Capacity
	}
	if request.Bandwidth != nil {
		router.Bandwidth = *request.Bandwidth
		changed["bandwidth"] = router.Bandwidth
	}
	if request.Uptime != nil {
		router.Uptime = *request.Uptime
		changed["uptime"] = router.Uptime
	}
	if request.Latitude != nil {
		router.Latitude = *request.Latitude
		changed["latitude"] = router.Latitude
	}
	if request.Longitude != nil {
		router.Longitude = *request.Longitude
		changed["longitude"] = router.Longitude
	}
	if request.Description != nil {
		router.Description = utils.SanitizeText(*request.Description)
		changed["description"] = router.Description
	}
	if request.Tags != nil {
		router.Tags = pq.StringArray(utils.SanitizeList(*request.Tags))
		changed["tags"] = []string(router.Tags)
	}
	if request.IsActive != nil {
		router.IsActive = *request.IsActive
		changed["is_active"] = router.IsActive
	}

	if err := r.routerRepository.Update(ctx, router); err != nil {
		return nil, utils.ErrDatabaseError
	}

	r.audit.Record(ctx, actor, ActionUpdate, EntityRouter, router.ID.String(), changed)
	return r.respond(ctx, router)
}

func (r *RouterService) UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, status db_models.RouterStatus) (*response_models.RouterResponse, error) {
	if !status.Valid() {
		return nil, utils.NewValidationError("status", "must be one of ONLINE, OFFLINE, MAINTENANCE, ERROR")
	}
	router, err := r.find(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	var lastSeen *int64
	if status == db_models.RouterStatusOnline {
		lastSeen = utils.UnixPtr(r.now())
		router.LastSeenAt = lastSeen
	}
	previous := router.Status
	if err := r.routerRepository.UpdateStatus(ctx, router.ID, status, lastSeen); err != nil {
		return nil, utils.ErrDatabaseError
	}
	router.Status = status

	r.audit.Record(ctx, actor, ActionUpdateStatus, EntityRouter, router.ID.String(),
		map[string]interface{}{"from": previous, "to": status})
	return r.respond(ctx, router)
}

func (r *RouterService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	router, err := r.find(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := r.routerRepository.Delete(ctx, router.ID); err != nil {
		return utils.ErrDatabaseError
	}
	r.audit.Record(ctx, actor, ActionDelete, EntityRouter, router.ID.String(), map[string]interface{}{"name": router.Name})
	return nil
}

func (r *RouterService) MarkStaleOffline(ctx context.Context, maxSilence time.Duration) (int, error) {
	cutoff := r.now().Add(-maxSilence).Unix()
	stale, err := r.routerRepository.FindStaleOnline(ctx, cutoff)
	if err != nil {
		return 0, utils.ErrDatabaseError
	}

	system := SystemActor()
	marked := 0
	for _, router := range stale {
		changed, err := r.routerRepository.MarkOfflineIfStale(ctx, router.ID, cutoff)
		if err != nil {
			logger.Error("Failed to mark router offline", "router_id", router.ID, "error", err)
			continue
		}
		if !changed {
			continue
		}
		marked++
		r.audit.Record(ctx, system, ActionRouterOffline, EntityRouter, router.ID.String(), nil)

		active, err := r.alertRepository.HasActive(ctx, router.ID, db_models.AlertTypeRouterOffline)
		if err != nil {
			logger.Error("Failed to check router alerts", "router_id", router.ID, "error", err)
			continue
		}
		if active {
			continue
		}

		alert := &db_models.Alert{
			RouterID: router.ID,
			Type:     db_models.AlertTypeRouterOffline,
			Severity: db_models.AlertSeverityHigh,
			Title:    fmt.Sprintf("Router %s is offline", router.Name),
			Message:  fmt.Sprintf("%s stopped reporting. Last heartbeat: %s.", router.Name, lastSeenText(router.LastSeenAt)),
			Status:   db_models.AlertStatusActive,
		}
		if err := r.alertRepository.Insert(ctx, alert); err != nil {
			logger.Error("Failed to raise offline alert", "router_id", router.ID, "error", err)
		}
	}
	return marked, nil
}

func lastSeenText(ts *int64) string {
	if ts == nil {
		return "never"
	}
	return time.Unix(*ts, 0).UTC().Format(time.RFC3339)
}
