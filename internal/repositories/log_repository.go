package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"netops/internal/models/db_models"
)

type LogFilter struct {
	Action     string
	UserID     *uuid.UUID
	EntityType string
}

type LogRepository interface {
	Insert(ctx context.Context, entry *db_models.Log) error
	List(ctx context.Context, filter LogFilter, page, pageSize int) ([]db_models.Log, int64, error)
	DeleteOlderThan(ctx context.Context, cutoff int64) (int64, error)
}

type logRepository struct {
	db *gorm.DB
}

func NewLogRepository(db *gorm.DB) LogRepository {
	return &logRepository{db: db}
}

func (l *logRepository) Insert(ctx context.Context, entry *db_models.Log) error {
	return l.db.WithContext(ctx).Create(entry).Error
}

func (l *logRepository) List(ctx context.Context, filter LogFilter, page, pageSize int) ([]db_models.Log, int64, error) {
	query := l.db.WithContext(ctx).Model(&db_models.Log{})
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []db_models.Log
	err := query.
		Preload("User").
		Order("created_at DESC").
		Scopes(paginate(page, pageSize)).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (l *logRepository) DeleteOlderThan(ctx context.Context, cutoff int64) (int64, error) {
	res := l.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&db_models.Log{})
	return res.RowsAffected, res.Error
}
