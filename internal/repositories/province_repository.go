package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"netops/internal/models/db_models"
)

type ProvinceRepository interface {
	Insert(ctx context.Context, province *db_models.Province) error
	Update(ctx context.Context, province *db_models.Province) error
	Delete(ctx context.Context, id uuid.UUID) error

	FindByID(ctx context.Context, id uuid.UUID, scope GeoScope) (*db_models.Province, error)
	FindByName(ctx context.Context, name string) (*db_models.Province, error)
	List(ctx context.Context, scope GeoScope, keyword string, page, pageSize int) ([]db_models.Province, int64, error)
	CountDistricts(ctx context.Context, id uuid.UUID) (int64, error)
}

type provinceRepository struct {
	db *gorm.DB
}

func NewProvinceRepository(db *gorm.DB) ProvinceRepository {
	return &provinceRepository{db: db}
}

func (p *provinceRepository) Insert(ctx context.Context, province *db_models.Province) error {
	return p.db.WithContext(ctx).Create(province).Error
}

func (p *provinceRepository) Update(ctx context.Context, province *db_models.Province) error {
	return p.db.WithContext(ctx).
		Model(province).
		Select("Name", "Code").
		Updates(province).Error
}

func (p *provinceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return p.db.WithContext(ctx).Delete(&db_models.Province{}, "id = ?", id).Error
}

func (p *provinceRepository) FindByID(ctx context.Context, id uuid.UUID, scope GeoScope) (*db_models.Province, error) {
	var province db_models.Province
	err := p.db.WithContext(ctx).
		Scopes(ScopeProvinces(scope)).
		First(&province, "provinces.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &province, nil
}

func (p *provinceRepository) FindByName(ctx context.Context, name string) (*db_models.Province, error) {
	var province db_models.Province
	err := p.db.WithContext(ctx).First(&province, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &province, nil
}

func (p *provinceRepository) List(ctx context.Context, scope GeoScope, keyword string, page, pageSize int) ([]db_models.Province, int64, error) {
	query := p.db.WithContext(ctx).Model(&db_models.Province{}).Scopes(ScopeProvinces(scope))
	if keyword != "" {
		query = query.Where("provinces.name LIKE ? OR provinces.code LIKE ?", likePattern(keyword), likePattern(keyword))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var provinces []db_models.Province
	err := query.
		Order("provinces.name ASC").
		Scopes(paginate(page, pageSize)).
		Find(&provinces).Error
	if err != nil {
		return nil, 0, err
	}
	return provinces, total, nil
}

func (p *provinceRepository) CountDistricts(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := p.db.WithContext(ctx).Model(&db_models.District{}).Where("province_id = ?", id).Count(&n).Error
	return n, err
}
