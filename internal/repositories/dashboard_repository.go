package repositories

import (
	"context"

	"gorm.io/gorm"

	dbm "netops/internal/models/db_models"
)

type DashboardRepository interface {
	CountRoutersByStatus(ctx context.Context, scope GeoScope) ([]StatusCountRow, error)
	RouterAggregates(ctx context.Context, scope GeoScope) (RouterAggregateRow, error)
	CountStaff(ctx context.Context, scope GeoScope) (int64, error)
	CountActiveAlerts(ctx context.Context, scope GeoScope) (int64, error)
	CountLocations(ctx context.Context, scope GeoScope) (LocationCountRow, error)
	CountDevices(ctx context.Context, scope GeoScope) (DeviceCountRow, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// ---------- Row helpers ----------
type StatusCountRow struct {
	Status dbm.RouterStatus `gorm:"column:status"`
	Count  int64            `gorm:"column:count"`
}

type RouterAggregateRow struct {
	AverageUptime  float64 `gorm:"column:average_uptime"`
	TotalBandwidth float64 `gorm:"column:total_bandwidth"`
}

type LocationCountRow struct {
	Provinces int64
	Districts int64
	Towns     int64
}

type DeviceCountRow struct {
	Connected int64 `gorm:"column:connected"`
	Blocked   int64 `gorm:"column:blocked"`
}

// ---------- Routers ----------
func (r *dashboardRepository) CountRoutersByStatus(ctx context.Context, scope GeoScope) ([]StatusCountRow, error) {
	var rows []StatusCountRow
	err := r.db.WithContext(ctx).
		Model(&dbm.Router{}).
		Scopes(ScopeRouters(scope)).
		Select("routers.status AS status, COUNT(*) AS count").
		Group("routers.status").
		Find(&rows).Error
	return rows, err
}

func (r *dashboardRepository) RouterAggregates(ctx context.Context, scope GeoScope) (RouterAggregateRow, error) {
	var row RouterAggregateRow
	err := r.db.WithContext(ctx).
		Model(&dbm.Router{}).
		Scopes(ScopeRouters(scope)).
		Select("COALESCE(AVG(routers.uptime), 0) AS average_uptime, COALESCE(SUM(routers.bandwidth), 0) AS total_bandwidth").
		Scan(&row).Error
	return row, err
}

// ---------- People ----------
func (r *dashboardRepository) CountStaff(ctx context.Context, scope GeoScope) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.User{}).
		Scopes(ScopeStaff(scope)).
		Where("users.role = ? AND users.is_active = ?", dbm.RoleStaff, true).
		Count(&n).Error
	return n, err
}

// ---------- Alerts ----------
func (r *dashboardRepository) CountActiveAlerts(ctx context.Context, scope GeoScope) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.Alert{}).
		Scopes(ScopeByRouter(scope, "alerts.router_id")).
		Where("alerts.status = ?", dbm.AlertStatusActive).
		Count(&n).Error
	return n, err
}

// ---------- Locations ----------
func (r *dashboardRepository) CountLocations(ctx context.Context, scope GeoScope) (LocationCountRow, error) {
	var row LocationCountRow
	db := r.db.WithContext(ctx)
	if err := db.Model(&dbm.Province{}).Scopes(ScopeProvinces(scope)).Count(&row.Provinces).Error; err != nil {
		return row, err
	}
	if err := db.Model(&dbm.District{}).Scopes(ScopeDistricts(scope)).Count(&row.Districts).Error; err != nil {
		return row, err
	}
	if err := db.Model(&dbm.Town{}).Scopes(ScopeTowns(scope)).Count(&row.Towns).Error; err != nil {
		return row, err
	}
	return row, nil
}

// ---------- Devices ----------
func (r *dashboardRepository) CountDevices(ctx context.Context, scope GeoScope) (DeviceCountRow, error) {
	var row DeviceCountRow
	err := r.db.WithContext(ctx).
		Model(&dbm.ConnectedUser{}).
		Scopes(ScopeByRouter(scope, "connected_users.router_id")).
		Select("COUNT(*) AS connected, COALESCE(SUM(CASE WHEN connected_users.is_blocked THEN 1 ELSE 0 END), 0) AS blocked").
		Scan(&row).Error
	return row, err
}
