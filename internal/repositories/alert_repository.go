package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"netops/internal/models/db_models"
)

type AlertFilter struct {
	Status   string
	Severity string
	RouterID *uuid.UUID
}

type AlertRepository interface {
	Insert(ctx context.Context, alert *db_models.Alert) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Transition moves an ACTIVE alert to a terminal status and appends the
	// audit entry in the same transaction. It returns false when the alert
	// was no longer ACTIVE.
	Transition(ctx context.Context, id uuid.UUID, fields map[string]interface{}, entry *db_models.Log) (bool, error)

	FindByID(ctx context.Context, id uuid.UUID, scope GeoScope) (*db_models.Alert, error)
	List(ctx context.Context, scope GeoScope, filter AlertFilter, page, pageSize int) ([]db_models.Alert, int64, error)
	HasActive(ctx context.Context, routerID uuid.UUID, alertType string) (bool, error)
}

type alertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

func (a *alertRepository) Insert(ctx context.Context, alert *db_models.Alert) error {
	return a.db.WithContext(ctx).Create(alert).Error
}

func (a *alertRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return a.db.WithContext(ctx).Delete(&db_models.Alert{}, "id = ?", id).Error
}

func (a *alertRepository) Transition(ctx context.Context, id uuid.UUID, fields map[string]interface{}, entry *db_models.Log) (bool, error) {
	applied := false
	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&db_models.Alert{}).
			Where("id = ? AND status = ?", id, db_models.AlertStatusActive).
			Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		applied = true
		if entry == nil {
			return nil
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return false, err
	}
	return applied, nil
}

func (a *alertRepository) FindByID(ctx context.Context, id uuid.UUID, scope GeoScope) (*db_models.Alert, error) {
	var alert db_models.Alert
	err := a.db.WithContext(ctx).
		Preload("Router").
		Preload("ResolvedBy").
		Scopes(ScopeByRouter(scope, "alerts.router_id")).
		First(&alert, "alerts.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &alert, nil
}

func (a *alertRepository) List(ctx context.Context, scope GeoScope, filter AlertFilter, page, pageSize int) ([]db_models.Alert, int64, error) {
	query := a.db.WithContext(ctx).
		Model(&db_models.Alert{}).
		Scopes(ScopeByRouter(scope, "alerts.router_id"))
	if filter.Status != "" {
		query = query.Where("alerts.status = ?", filter.Status)
	}
	if filter.Severity != "" {
		query = query.Where("alerts.severity = ?", filter.Severity)
	}
	if filter.RouterID != nil {
		query = query.Where("alerts.router_id = ?", *filter.RouterID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var alerts []db_models.Alert
	err := query.
		Preload("Router").
		Preload("ResolvedBy").
		Order("alerts.created_at DESC").
		Scopes(paginate(page, pageSize)).
		Find(&alerts).Error
	if err != nil {
		return nil, 0, err
	}
	return alerts, total, nil
}

func (a *alertRepository) HasActive(ctx context.Context, routerID uuid.UUID, alertType string) (bool, error) {
	var n int64
	err := a.db.WithContext(ctx).
		Model(&db_models.Alert{}).
		Where("router_id = ? AND type = ? AND status = ?", routerID, alertType, db_models.AlertStatusActive).
		Count(&n).Error
	return n > 0, err
}
