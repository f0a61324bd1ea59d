package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"netops/internal/models/db_models"
)

type ConnectedUserFilter struct {
	RouterID *uuid.UUID
	Blocked  *bool
	Keyword  string
}

type ConnectedUserRepository interface {
	Insert(ctx context.Context, device *db_models.ConnectedUser) error
	SetBlocked(ctx context.Context, id uuid.UUID, blocked bool, at *int64, by *uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error

	FindByID(ctx context.Context, id uuid.UUID, scope GeoScope) (*db_models.ConnectedUser, error)
	List(ctx context.Context, scope GeoScope, filter ConnectedUserFilter, page, pageSize int) ([]db_models.ConnectedUser, int64, error)
}

type connectedUserRepository struct {
	db *gorm.DB
}

func NewConnectedUserRepository(db *gorm.DB) ConnectedUserRepository {
	return &connectedUserRepository{db: db}
}

func (c *connectedUserRepository) Insert(ctx context.Context, device *db_models.ConnectedUser) error {
	return c.db.WithContext(ctx).Create(device).Error
}

// SetBlocked writes the three block columns together; unblocking passes nil
// for at and by so they are cleared.
func (c *connectedUserRepository) SetBlocked(ctx context.Context, id uuid.UUID, blocked bool, at *int64, by *uuid.UUID) error {
	fields := map[string]interface{}{
		"is_blocked":    blocked,
		"blocked_at":    nil,
		"blocked_by_id": nil,
	}
	if at != nil {
		fields["blocked_at"] = *at
	}
	if by != nil {
		fields["blocked_by_id"] = *by
	}
	res := c.db.WithContext(ctx).
		Model(&db_models.ConnectedUser{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (c *connectedUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return c.db.WithContext(ctx).Delete(&db_models.ConnectedUser{}, "id = ?", id).Error
}

func (c *connectedUserRepository) FindByID(ctx context.Context, id uuid.UUID, scope GeoScope) (*db_models.ConnectedUser, error) {
	var device db_models.ConnectedUser
	err := c.db.WithContext(ctx).
		Preload("Router").
		Scopes(ScopeByRouter(scope, "connected_users.router_id")).
		First(&device, "connected_users.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &device, nil
}

func (c *connectedUserRepository) List(ctx context.Context, scope GeoScope, filter ConnectedUserFilter, page, pageSize int) ([]db_models.ConnectedUser, int64, error) {
	query := c.db.WithContext(ctx).
		Model(&db_models.ConnectedUser{}).
		Scopes(ScopeByRouter(scope, "connected_users.router_id"))
	if filter.RouterID != nil {
		query = query.Where("connected_users.router_id = ?", *filter.RouterID)
	}
	if filter.Blocked != nil {
		query = query.Where("connected_users.is_blocked = ?", *filter.Blocked)
	}
	if filter.Keyword != "" {
		kw := likePattern(filter.Keyword)
		query = query.Where(
			"connected_users.device_name LIKE ? OR connected_users.hostname LIKE ? OR connected_users.ip_address LIKE ? OR connected_users.mac_address LIKE ?",
			kw, kw, kw, kw)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var devices []db_models.ConnectedUser
	err := query.
		Preload("Router").
		Order("connected_users.connected_at DESC").
		Scopes(paginate(page, pageSize)).
		Find(&devices).Error
	if err != nil {
		return nil, 0, err
	}
	return devices, total, nil
}
