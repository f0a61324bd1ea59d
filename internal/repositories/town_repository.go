package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"netops/internal/models/db_models"
)

type TownRepository interface {
	Insert(ctx context.Context, town *db_models.Town) error
	Update(ctx context.Context, town *db_models.Town) error
	Delete(ctx context.Context, id uuid.UUID) error

	FindByID(ctx context.Context, id uuid.UUID, scope GeoScope) (*db_models.Town, error)
	FindByName(ctx context.Context, districtID uuid.UUID, name string) (*db_models.Town, error)
	List(ctx context.Context, scope GeoScope, districtID *uuid.UUID, keyword string, page, pageSize int) ([]db_models.Town, int64, error)
	CountRouters(ctx context.Context, id uuid.UUID) (int64, error)
}

type townRepository struct {
	db *gorm.DB
}

func NewTownRepository(db *gorm.DB) TownRepository {
	return &townRepository{db: db}
}

func (t *townRepository) Insert(ctx context.Context, town *db_models.Town) error {
	return t.db.WithContext(ctx).Create(town).Error
}

func (t *townRepository) Update(ctx context.Context, town *db_models.Town) error {
	return t.db.WithContext(ctx).
		Model(town).
		Select("Name", "DistrictID", "Latitude", "Longitude").
		Updates(town).Error
}

func (t *townRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return t.db.WithContext(ctx).Delete(&db_models.Town{}, "id = ?", id).Error
}

func (t *townRepository) FindByID(ctx context.Context, id uuid.UUID, scope GeoScope) (*db_models.Town, error) {
	var town db_models.Town
	err := t.db.WithContext(ctx).
		Preload("District.Province").
		Scopes(ScopeTowns(scope)).
		First(&town, "towns.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &town, nil
}

func (t *townRepository) FindByName(ctx context.Context, districtID uuid.UUID, name string) (*db_models.Town, error) {
	var town db_models.Town
	err := t.db.WithContext(ctx).
		Where("district_id = ? AND name = ?", districtID, name).
		First(&town).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &town, nil
}

func (t *townRepository) List(ctx context.Context, scope GeoScope, districtID *uuid.UUID, keyword string, page, pageSize int) ([]db_models.Town, int64, error) {
	query := t.db.WithContext(ctx).Model(&db_models.Town{}).Scopes(ScopeTowns(scope))
	if districtID != nil {
		query = query.Where("towns.district_id = ?", *districtID)
	}
	if keyword != "" {
		query = query.Where("towns.name LIKE ?", likePattern(keyword))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var towns []db_models.Town
	err := query.
		Preload("District.Province").
		Order("towns.name ASC").
		Scopes(paginate(page, pageSize)).
		Find(&towns).Error
	if err != nil {
		return nil, 0, err
	}
	return towns, total, nil
}

func (t *townRepository) CountRouters(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := t.db.WithContext(ctx).Model(&db_models.Router{}).Where("town_id = ?", id).Count(&n).Error
	return n, err
}
