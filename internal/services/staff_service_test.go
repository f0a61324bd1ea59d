package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"netops/internal/models/db_models"
	"netops/internal/models/request_models"
	"netops/internal/repositories"
	"netops/pkg/utils"
)

func newStaffService(db *gorm.DB) StaffServiceInterface {
	return NewStaffService(
		repositories.NewUserRepository(db),
		repositories.NewProvinceRepository(db),
		repositories.NewDistrictRepository(db),
		newAudit(db),
	)
}

func TestStaffService_Assignment(t *testing.T) {
	db := setupTestDB(t)
	f := seedGeo(t, db)
	svc := newStaffService(db)

	t.Run("district alone fills in its province", func(t *testing.T) {
		district := f.districtB.ID.String()
		got, err := svc.Create(bg, f.adminActor(), request_models.CreateStaffRequest{
			Name: "Tech B", Email: "tech.b@example.com", Password: "password-1", AssignedDistrictID: &district,
		})
		require.NoError(t, err)
		assert.Equal(t, string(db_models.RoleStaff), got.Role)
		require.NotNil(t, got.AssignedProvinceID)
		assert.Equal(t, f.provinceB.ID.String(), *got.AssignedProvinceID)
	})

	t.Run("district from another province is rejected", func(t *testing.T) {
		province := f.provinceA.ID.String()
		district := f.districtB.ID.String()
		_, err := svc.Create(bg, f.adminActor(), request_models.CreateStaffRequest{
			Name: "Tech C", Email: "tech.c@example.com", Password: "password-1",
			AssignedProvinceID: &province, AssignedDistrictID: &district,
		})
		var validationErr *utils.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "assigned_district_id", validationErr.Field)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Create(bg, f.adminActor(), request_models.CreateStaffRequest{
			Name: "Dup", Email: "STAFF.A@example.com", Password: "password-1",
		})
		assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)
	})
}

func TestStaffService_SelfProtection(t *testing.T) {
	db := setupTestDB(t)
	f := seedGeo(t, db)
	svc := newStaffService(db)
	admin := f.adminActor()

	assert.ErrorIs(t, svc.Delete(bg, admin, f.admin.ID), utils.ErrCannotDeleteSelf)

	_, err := svc.SetActive(bg, admin, f.admin.ID, false)
	var validationErr *utils.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	staffRole := string(db_models.RoleStaff)
	_, err = svc.Update(bg, admin, f.admin.ID, request_models.UpdateStaffRequest{Role: &staffRole})
	assert.ErrorAs(t, err, &validationErr)

	got, err := svc.SetActive(bg, admin, f.staffA.ID, false)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.Equal(t, int64(1), countLogs(t, db, ActionDeactivate))

	require.NoError(t, svc.Delete(bg, admin, f.staffA.ID))
	_, err = svc.Get(bg, f.staffA.ID)
	assert.ErrorIs(t, err, utils.ErrUserNotFound)
}
