package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netops/internal/models/db_models"
	"netops/internal/models/request_models"
	"netops/internal/repositories"
	"netops/pkg/utils"
)

func TestGeoServices_Hierarchy(t *testing.T) {
	db := setupTestDB(t)
	f := seedGeo(t, db)
	audit := newAudit(db)

	provinceRepo := repositories.NewProvinceRepository(db)
	districtRepo := repositories.NewDistrictRepository(db)
	townRepo := repositories.NewTownRepository(db)
	userRepo := repositories.NewUserRepository(db)

	provinces := NewProvinceService(provinceRepo, userRepo, audit)
	districts := NewDistrictService(districtRepo, provinceRepo, userRepo, audit)
	towns := NewTownService(townRepo, districtRepo, audit)
	admin := f.adminActor()

	t.Run("children block deletion", func(t *testing.T) {
		assert.ErrorIs(t, provinces.Delete(bg, admin, f.provinceB.ID), utils.ErrHasChildren)
		assert.ErrorIs(t, districts.Delete(bg, admin, f.districtB.ID), utils.ErrHasChildren)
		assert.ErrorIs(t, towns.Delete(bg, admin, f.townB.ID), utils.ErrHasChildren)
	})

	t.Run("district requires an existing province", func(t *testing.T) {
		_, err := districts.Create(bg, admin, request_models.CreateDistrictRequest{Name: "Nowhere", ProvinceID: uuid.NewString()})
		var validationErr *utils.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("names are unique within the parent", func(t *testing.T) {
		_, err := districts.Create(bg, admin, request_models.CreateDistrictRequest{Name: "Ba Dinh", ProvinceID: f.provinceA.ID.String()})
		assert.ErrorIs(t, err, utils.ErrDuplicateName)

		got, err := districts.Create(bg, admin, request_models.CreateDistrictRequest{Name: "Ba Dinh", ProvinceID: f.provinceB.ID.String()})
		require.NoError(t, err)
		assert.Equal(t, "Ba Dinh", got.Name)

		_, err = provinces.Create(bg, admin, request_models.CreateProvinceRequest{Name: "Hanoi"})
		assert.ErrorIs(t, err, utils.ErrDuplicateName)
	})

	t.Run("empty leaf can be deleted", func(t *testing.T) {
		town, err := towns.Create(bg, admin, request_models.CreateTownRequest{Name: "Empty", DistrictID: f.districtA.ID.String()})
		require.NoError(t, err)
		id, err := uuid.Parse(town.ID)
		require.NoError(t, err)
		require.NoError(t, towns.Delete(bg, admin, id))
		_, err = towns.Get(bg, admin, id)
		assert.ErrorIs(t, err, utils.ErrTownNotFound)
	})

	t.Run("district staff see their branch only", func(t *testing.T) {
		staff := f.staffActor()

		page, err := provinces.List(bg, staff, "", 1, 20)
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "Hanoi", page.Items[0].Name)

		districtPage, err := districts.List(bg, staff, nil, "", 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(1), districtPage.Total)

		_, err = towns.Get(bg, staff, f.townB.ID)
		assert.ErrorIs(t, err, utils.ErrTownNotFound)
	})
}

func TestDistrictService_MoveKeepsStaffAssignment(t *testing.T) {
	db := setupTestDB(t)
	f := seedGeo(t, db)
	audit := newAudit(db)

	userRepo := repositories.NewUserRepository(db)
	provinceRepo := repositories.NewProvinceRepository(db)
	districtRepo := repositories.NewDistrictRepository(db)
	districts := NewDistrictService(districtRepo, provinceRepo, userRepo, audit)
	staff := NewStaffService(userRepo, provinceRepo, districtRepo, audit)

	target := f.provinceB.ID.String()
	moved, err := districts.Update(bg, f.adminActor(), f.districtA.ID, request_models.UpdateDistrictRequest{ProvinceID: &target})
	require.NoError(t, err)
	assert.Equal(t, target, moved.ProvinceID)

	stored, err := userRepo.FindByID(bg, f.staffA.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.AssignedProvinceID)
	require.NotNil(t, stored.AssignedDistrict)
	assert.Equal(t, f.provinceB.ID, *stored.AssignedProvinceID)
	assert.Equal(t, stored.AssignedDistrict.ProvinceID, *stored.AssignedProvinceID)

	// Re-sending the district alone must still pass the consistency check.
	district := f.districtA.ID.String()
	_, err = staff.Update(bg, f.adminActor(), f.staffA.ID, request_models.UpdateStaffRequest{AssignedDistrictID: &district})
	require.NoError(t, err)

	var untouched db_models.User
	require.NoError(t, db.First(&untouched, "id = ?", f.admin.ID).Error)
	assert.Nil(t, untouched.AssignedProvinceID)
}
