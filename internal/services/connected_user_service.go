package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"netops/internal/models/db_models"
	"netops/internal/models/request_models"
	"netops/internal/models/response_models"
	"netops/internal/repositories"
	"netops/pkg/logger"
	"netops/pkg/utils"
)

type ConnectedUserServiceInterface interface {
	List(ctx context.Context, actor Actor, filter repositories.ConnectedUserFilter, page, pageSize int) (*response_models.PagedResponse[*response_models.ConnectedUserResponse], error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*response_models.ConnectedUserResponse, error)
	Create(ctx context.Context, actor Actor, request request_models.CreateConnectedUserRequest) (*response_models.ConnectedUserResponse, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error

	Block(ctx context.Context, actor Actor, id uuid.UUID) (*response_models.BlockResult, error)
	Unblock(ctx context.Context, actor Actor, id uuid.UUID) (*response_models.BlockResult, error)
	FirewallStatus(ctx context.Context) *response_models.FirewallStatusResponse
}

type ConnectedUserService struct {
	deviceRepository repositories.ConnectedUserRepository
	routerRepository repositories.RouterRepository
	firewall         FirewallClient
	audit            AuditServiceInterface
	now              func() time.Time
}

func NewConnectedUserService(
	deviceRepository repositories.ConnectedUserRepository,
	routerRepository repositories.RouterRepository,
	firewall FirewallClient,
	audit AuditServiceInterface,
) ConnectedUserServiceInterface {
	return &ConnectedUserService{
		deviceRepository: deviceRepository,
		routerRepository: routerRepository,
		firewall:         firewall,
		audit:            audit,
		now:              time.Now,
	}
}

func (s *ConnectedUserService) List(ctx context.Context, actor Actor, filter repositories.ConnectedUserFilter, page, pageSize int) (*response_models.PagedResponse[*response_models.ConnectedUserResponse], error) {
	filter.Keyword = strings.TrimSpace(filter.Keyword)
	devices, total, err := s.deviceRepository.List(ctx, actor.Scope, filter, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	items := make([]*response_models.ConnectedUserResponse, 0, len(devices))
	for i := range devices {
		items = append(items, response_models.ToConnectedUserResponse(&devices[i]))
	}
	result := response_models.NewPage(items, total, page, pageSize)
	return &result, nil
}

func (s *ConnectedUserService) find(ctx context.Context, actor Actor, id uuid.UUID) (*db_models.ConnectedUser, error) {
	device, err := s.deviceRepository.FindByID(ctx, id, actor.Scope)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if device == nil {
		return nil, utils.ErrConnectedUserNotFound
	}
	return device, nil
}

func (s *ConnectedUserService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*response_models.ConnectedUserResponse, error) {
	device, err := s.find(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return response_models.ToConnectedUserResponse(device), nil
}

func (s *ConnectedUserService) Create(ctx context.Context, actor Actor, request request_models.CreateConnectedUserRequest) (*response_models.ConnectedUserResponse, error) {
	routerID, err := uuid.Parse(request.RouterID)
	if err != nil {
		return nil, utils.NewValidationError("router_id", "must be a valid UUID")
	}
	router, err := s.routerRepository.FindByID(ctx, routerID, actor.Scope)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if router == nil {
		return nil, utils.NewValidationError("router_id", "router does not exist")
	}

	now := s.now().Unix()
	device := &db_models.ConnectedUser{
		RouterID:    router.ID,
		Router:      router,
		DeviceName:  utils.SanitizeText(request.DeviceName),
		Hostname:    utils.SanitizeText(request.Hostname),
		MACAddress:  strings.ToUpper(request.MACAddress),
		IPAddress:   request.IPAddress,
		DataUsage:   request.DataUsage,
		ConnectedAt: now,
		LastSeenAt:  &now,
	}
	if err := s.deviceRepository.Insert(ctx, device); err != nil {
		return nil, utils.ErrDatabaseError
	}

	s.audit.Record(ctx, actor, ActionCreate, EntityConnectedUser, device.ID.String(),
		map[string]interface{}{"router_id": router.ID.String(), "ip_address": device.IPAddress})
	return response_models.ToConnectedUserResponse(device), nil
}

func (s *ConnectedUserService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	device, err := s.find(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.deviceRepository.Delete(ctx, device.ID); err != nil {
		return utils.ErrDatabaseError
	}
	s.audit.Record(ctx, actor, ActionDelete, EntityConnectedUser, device.ID.String(),
		map[string]interface{}{"ip_address": device.IPAddress})
	return nil
}

// Block pushes the device address to the firewall before recording it. A
// firewall failure leaves the device untouched. With the integration
// disabled the block is recorded locally and reported as not applied.
func (s *ConnectedUserService) Block(ctx context.Context, actor Actor, id uuid.UUID) (*response_models.BlockResult, error) {
	device, err := s.find(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if device.IsBlocked {
		return &response_models.BlockResult{
			Device:          response_models.ToConnectedUserResponse(device),
			FirewallApplied: s.firewall.Enabled(),
		}, nil
	}

	applied, err := s.apply(func() error {
		return s.firewall.Block(ctx, device.IPAddress, blockDescription(device))
	})
	if err != nil {
		logger.Warn("Firewall block failed", "device_id", device.ID, "ip", device.IPAddress, "error", err)
		return nil, err
	}

	at := s.now().Unix()
	if err := s.deviceRepository.SetBlocked(ctx, device.ID, true, &at, actor.UserID()); err != nil {
		return nil, utils.ErrDatabaseError
	}
	device.IsBlocked = true
	device.BlockedAt = &at
	device.BlockedByID = actor.UserID()

	s.audit.Record(ctx, actor, ActionBlockDevice, EntityConnectedUser, device.ID.String(),
		map[string]interface{}{"ip_address": device.IPAddress, "firewall_applied": applied})
	return &response_models.BlockResult{
		Device:          response_models.ToConnectedUserResponse(device),
		FirewallApplied: applied,
	}, nil
}

// Unblock is the exact inverse of Block.
func (s *ConnectedUserService) Unblock(ctx context.Context, actor Actor, id uuid.UUID) (*response_models.BlockResult, error) {
	device, err := s.find(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !device.IsBlocked {
		return &response_models.BlockResult{
			Device:          response_models.ToConnectedUserResponse(device),
			FirewallApplied: s.firewall.Enabled(),
		}, nil
	}

	applied, err := s.apply(func() error {
		return s.firewall.Unblock(ctx, device.IPAddress)
	})
	if err != nil {
		logger.Warn("Firewall unblock failed", "device_id", device.ID, "ip", device.IPAddress, "error", err)
		return nil, err
	}

	if err := s.deviceRepository.SetBlocked(ctx, device.ID, false, nil, nil); err != nil {
		return nil, utils.ErrDatabaseError
	}
	device.IsBlocked = false
	device.BlockedAt = nil
	device.BlockedByID = nil

	s.audit.Record(ctx, actor, ActionUnblockDevice, EntityConnectedUser, device.ID.String(),
		map[string]interface{}{"ip_address": device.IPAddress, "firewall_applied": applied})
	return &response_models.BlockResult{
		Device:          response_models.ToConnectedUserResponse(device),
		FirewallApplied: applied,
	}, nil
}

// apply runs a firewall call and reports whether the appliance took it.
func (s *ConnectedUserService) apply(call func() error) (bool, error) {
	err := call()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, utils.ErrFirewallDisabled):
		return false, nil
	case errors.Is(err, utils.ErrFirewallUnavailable):
		return false, err
	default:
		return false, fmt.Errorf("%w: %v", utils.ErrFirewallUnavailable, err)
	}
}

func (s *ConnectedUserService) FirewallStatus(ctx context.Context) *response_models.FirewallStatusResponse {
	resp := &response_models.FirewallStatusResponse{
		Enabled: s.firewall.Enabled(),
		Host:    s.firewall.Host(),
	}
	if !resp.Enabled {
		return resp
	}
	status, err := s.firewall.Status(ctx)
	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	resp.Reachable = status.Reachable
	resp.Version = status.Version
	return resp
}

func blockDescription(device *db_models.ConnectedUser) string {
	name := device.DeviceName
	if name == "" {
		name = device.Hostname
	}
	if name == "" {
		name = device.MACAddress
	}
	return fmt.Sprintf("netops: %s", name)
}
