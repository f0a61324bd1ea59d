package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"netops/internal/models/db_models"
)

type SettingRepository interface {
	UpsertMany(ctx context.Context, settings []db_models.Setting) error
	DeleteByKey(ctx context.Context, key string) (bool, error)

	FindByKey(ctx context.Context, key string) (*db_models.Setting, error)
	ListAll(ctx context.Context) ([]db_models.Setting, error)
	ListByCategory(ctx context.Context, category string) ([]db_models.Setting, error)
}

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

// UpsertMany inserts or overwrites settings by key in one transaction.
func (s *settingRepository) UpsertMany(ctx context.Context, settings []db_models.Setting) error {
	if len(settings) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range settings {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "category", "description", "updated_at"}),
			}).Create(&settings[i]).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *settingRepository) DeleteByKey(ctx context.Context, key string) (bool, error) {
	res := s.db.WithContext(ctx).Where(&db_models.Setting{Key: key}).Delete(&db_models.Setting{})
	return res.RowsAffected > 0, res.Error
}

func (s *settingRepository) FindByKey(ctx context.Context, key string) (*db_models.Setting, error) {
	var setting db_models.Setting
	err := s.db.WithContext(ctx).Where(&db_models.Setting{Key: key}).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

func (s *settingRepository) ListAll(ctx context.Context) ([]db_models.Setting, error) {
	var settings []db_models.Setting
	err := s.db.WithContext(ctx).Order(byKey("category", "key")).Find(&settings).Error
	return settings, err
}

func (s *settingRepository) ListByCategory(ctx context.Context, category string) ([]db_models.Setting, error) {
	var settings []db_models.Setting
	err := s.db.WithContext(ctx).
		Where("category = ?", category).
		Order(byKey("key")).
		Find(&settings).Error
	return settings, err
}

// byKey orders by quoted columns; "key" is reserved in MySQL.
func byKey(columns ...string) clause.OrderBy {
	order := clause.OrderBy{}
	for _, c := range columns {
		order.Columns = append(order.Columns, clause.OrderByColumn{Column: clause.Column{Name: c}})
	}
	return order
}
