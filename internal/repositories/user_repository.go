package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"netops/internal/models/db_models"
)

type UserFilter struct {
	Role     string
	Keyword  string
	IsActive *bool
}

type UserRepository interface {
	Insert(ctx context.Context, user *db_models.User) error
	Update(ctx context.Context, user *db_models.User) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error

	FindByID(ctx context.Context, id uuid.UUID) (*db_models.User, error)
	FindByEmail(ctx context.Context, email string) (*db_models.User, error)
	List(ctx context.Context, filter UserFilter, page, pageSize int) ([]db_models.User, int64, error)
	CountByAssignment(ctx context.Context, provinceID, districtID *uuid.UUID) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (u *userRepository) Insert(ctx context.Context, user *db_models.User) error {
	return u.db.WithContext(ctx).Create(user).Error
}

// Update writes every editable column, including cleared assignments.
func (u *userRepository) Update(ctx context.Context, user *db_models.User) error {
	return u.db.WithContext(ctx).
		Model(user).
		Select("Name", "Email", "PasswordHash", "Phone", "Role",
			"AssignedProvinceID", "AssignedDistrictID", "IsActive").
		Updates(user).Error
}

func (u *userRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return u.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (u *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return u.db.WithContext(ctx).Delete(&db_models.User{}, "id = ?", id).Error
}

func (u *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.User, error) {
	var user db_models.User
	err := u.db.WithContext(ctx).
		Preload("AssignedProvince").
		Preload("AssignedDistrict").
		First(&user, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (u *userRepository) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	var user db_models.User
	err := u.db.WithContext(ctx).First(&user, "email = ?", email).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (u *userRepository) List(ctx context.Context, filter UserFilter, page, pageSize int) ([]db_models.User, int64, error) {
	query := u.db.WithContext(ctx).Model(&db_models.User{})
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.Keyword != "" {
		kw := likePattern(filter.Keyword)
		query = query.Where("name LIKE ? OR email LIKE ?", kw, kw)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []db_models.User
	err := query.
		Preload("AssignedProvince").
		Preload("AssignedDistrict").
		Order("created_at DESC").
		Scopes(paginate(page, pageSize)).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// CountByAssignment counts users pinned to a province or district, used to
// refuse deleting a region that still has staff.
func (u *userRepository) CountByAssignment(ctx context.Context, provinceID, districtID *uuid.UUID) (int64, error) {
	query := u.db.WithContext(ctx).Model(&db_models.User{})
	switch {
	case districtID != nil:
		query = query.Where("assigned_district_id = ?", *districtID)
	case provinceID != nil:
		query = query.Where("assigned_province_id = ?", *provinceID)
	default:
		return 0, nil
	}
	var n int64
	err := query.Count(&n).Error
	return n, err
}
