package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"netops/internal/models/db_models"
)

type RouterFilter struct {
	Status  string
	TownID  *uuid.UUID
	Keyword string
}

type RouterRepository interface {
	Insert(ctx context.Context, router *db_models.Router) error
	Update(ctx context.Context, router *db_models.Router) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.RouterStatus, lastSeenAt *int64) error
	Delete(ctx context.Context, id uuid.UUID) error

	FindByID(ctx context.Context, id uuid.UUID, scope GeoScope) (*db_models.Router, error)
	List(ctx context.Context, scope GeoScope, filter RouterFilter, page, pageSize int) ([]db_models.Router, int64, error)
	CountConnectedUsers(ctx context.Context, routerIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	FindStaleOnline(ctx context.Context, seenBefore int64) ([]db_models.Router, error)
	MarkOfflineIfStale(ctx context.Context, id uuid.UUID, seenBefore int64) (bool, error)
}

type routerRepository struct {
	db *gorm.DB
}

func NewRouterRepository(db *gorm.DB) RouterRepository {
	return &routerRepository{db: db}
}

func (r *routerRepository) Insert(ctx context.Context, router *db_models.Router) error {
	return r.db.WithContext(ctx).Create(router).Error
}

func (r *routerRepository) Update(ctx context.Context, router *db_models.Router) error {
	return r.db.WithContext(ctx).
		Model(router).
		Select("Name", "Model", "SerialNumber", "IPAddress", "MACAddress", "TownID", "Status",
			"Capacity", "Bandwidth", "Uptime", "LastSeenAt", "Latitude", "Longitude",
			"Description", "Tags", "IsActive").
		Updates(router).Error
}

func (r *routerRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.RouterStatus, lastSeenAt *int64) error {
	fields := map[string]interface{}{"status": status}
	if lastSeenAt != nil {
		fields["last_seen_at"] = *lastSeenAt
	}
	return r.db.WithContext(ctx).
		Model(&db_models.Router{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// Delete removes the router together with its connected users and alerts.
func (r *routerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("router_id = ?", id).Delete(&db_models.ConnectedUser{}).Error; err != nil {
			return err
		}
		if err := tx.Where("router_id = ?", id).Delete(&db_models.Alert{}).Error; err != nil {
			return err
		}
		return tx.Delete(&db_models.Router{}, "id = ?", id).Error
	})
}

func (r *routerRepository) FindByID(ctx context.Context, id uuid.UUID, scope GeoScope) (*db_models.Router, error) {
	var router db_models.Router
	err := r.db.WithContext(ctx).
		Preload("Town.District.Province").
		Scopes(ScopeRouters(scope)).
		First(&router, "routers.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &router, nil
}

func (r *routerRepository) List(ctx context.Context, scope GeoScope, filter RouterFilter, page, pageSize int) ([]db_models.Router, int64, error) {
	query := r.db.WithContext(ctx).Model(&db_models.Router{}).Scopes(ScopeRouters(scope))
	if filter.Status != "" {
		query = query.Where("routers.status = ?", filter.Status)
	}
	if filter.TownID != nil {
		query = query.Where("routers.town_id = ?", *filter.TownID)
	}
	if filter.Keyword != "" {
		kw := likePattern(filter.Keyword)
		query = query.Where("routers.name LIKE ? OR routers.ip_address LIKE ? OR routers.serial_number LIKE ?", kw, kw, kw)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var routers []db_models.Router
	err := query.
		Preload("Town.District.Province").
		Order("routers.created_at DESC").
		Scopes(paginate(page, pageSize)).
		Find(&routers).Error
	if err != nil {
		return nil, 0, err
	}
	return routers, total, nil
}

type routerCountRow struct {
	RouterID uuid.UUID `gorm:"column:router_id"`
	Count    int64     `gorm:"column:count"`
}

func (r *routerRepository) CountConnectedUsers(ctx context.Context, routerIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(routerIDs))
	if len(routerIDs) == 0 {
		return counts, nil
	}
	var rows []routerCountRow
	err := r.db.WithContext(ctx).
		Model(&db_models.ConnectedUser{}).
		Select("router_id, COUNT(*) AS count").
		Where("router_id IN ?", routerIDs).
		Group("router_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.RouterID] = row.Count
	}
	return counts, nil
}

// FindStaleOnline returns ONLINE routers not seen since seenBefore. Routers
// that were never seen count as stale.
func (r *routerRepository) FindStaleOnline(ctx context.Context, seenBefore int64) ([]db_models.Router, error) {
	var routers []db_models.Router
	err := r.db.WithContext(ctx).
		Where("status = ?", db_models.RouterStatusOnline).
		Where("last_seen_at IS NULL OR last_seen_at < ?", seenBefore).
		Find(&routers).Error
	return routers, err
}

// MarkOfflineIfStale flips the router to OFFLINE only while it is still ONLINE
// and unseen since seenBefore. It reports whether a row changed, so a status
// written between the read and this update is left alone.
func (r *routerRepository) MarkOfflineIfStale(ctx context.Context, id uuid.UUID, seenBefore int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&db_models.Router{}).
		Where("id = ?", id).
		Where("status = ?", db_models.RouterStatusOnline).
		Where("last_seen_at IS NULL OR last_seen_at < ?", seenBefore).
		Update("status", db_models.RouterStatusOffline)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
