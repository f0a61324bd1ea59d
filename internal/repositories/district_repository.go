package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"netops/internal/models/db_models"
)

type DistrictRepository interface {
	Insert(ctx context.Context, district *db_models.District) error
	Update(ctx context.Context, district *db_models.District) error
	Delete(ctx context.Context, id uuid.UUID) error

	FindByID(ctx context.Context, id uuid.UUID, scope GeoScope) (*db_models.District, error)
	FindByName(ctx context.Context, provinceID uuid.UUID, name string) (*db_models.District, error)
	List(ctx context.Context, scope GeoScope, provinceID *uuid.UUID, keyword string, page, pageSize int) ([]db_models.District, int64, error)
	CountTowns(ctx context.Context, id uuid.UUID) (int64, error)
}

type districtRepository struct {
	db *gorm.DB
}

func NewDistrictRepository(db *gorm.DB) DistrictRepository {
	return &districtRepository{db: db}
}

func (d *districtRepository) Insert(ctx context.Context, district *db_models.District) error {
	return d.db.WithContext(ctx).Create(district).Error
}

// Update saves the district and moves staff assigned to it into its
// province, so a district never disagrees with its users' province.
func (d *districtRepository) Update(ctx context.Context, district *db_models.District) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(district).
			Select("Name", "ProvinceID").
			Updates(district).Error
		if err != nil {
			return err
		}
		return tx.Model(&db_models.User{}).
			Where("assigned_district_id = ?", district.ID).
			Where("assigned_province_id IS NULL OR assigned_province_id <> ?", district.ProvinceID).
			Update("assigned_province_id", district.ProvinceID).Error
	})
}

func (d *districtRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return d.db.WithContext(ctx).Delete(&db_models.District{}, "id = ?", id).Error
}

func (d *districtRepository) FindByID(ctx context.Context, id uuid.UUID, scope GeoScope) (*db_models.District, error) {
	var district db_models.District
	err := d.db.WithContext(ctx).
		Preload("Province").
		Scopes(ScopeDistricts(scope)).
		First(&district, "districts.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &district, nil
}

func (d *districtRepository) FindByName(ctx context.Context, provinceID uuid.UUID, name string) (*db_models.District, error) {
	var district db_models.District
	err := d.db.WithContext(ctx).
		Where("province_id = ? AND name = ?", provinceID, name).
		First(&district).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &district, nil
}

func (d *districtRepository) List(ctx context.Context, scope GeoScope, provinceID *uuid.UUID, keyword string, page, pageSize int) ([]db_models.District, int64, error) {
	query := d.db.WithContext(ctx).Model(&db_models.District{}).Scopes(ScopeDistricts(scope))
	if provinceID != nil {
		query = query.Where("districts.province_id = ?", *provinceID)
	}
	if keyword != "" {
		query = query.Where("districts.name LIKE ?", likePattern(keyword))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var districts []db_models.District
	err := query.
		Preload("Province").
		Order("districts.name ASC").
		Scopes(paginate(page, pageSize)).
		Find(&districts).Error
	if err != nil {
		return nil, 0, err
	}
	return districts, total, nil
}

func (d *districtRepository) CountTowns(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := d.db.WithContext(ctx).Model(&db_models.Town{}).Where("district_id = ?", id).Count(&n).Error
	return n, err
}
