package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"netops/internal/infra"
	"netops/internal/models/db_models"
	"netops/internal/repositories"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, infra.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// geoFixture is two provinces with one district and town each, and one
// router per town.
type geoFixture struct {
	provinceA, provinceB db_models.Province
	districtA, districtB db_models.District
	townA, townB         db_models.Town
	routerA, routerB     db_models.Router
	admin, staffA        db_models.User
}

func seedGeo(t *testing.T, db *gorm.DB) *geoFixture {
	t.Helper()
	f := &geoFixture{}

	f.provinceA = db_models.Province{Name: "Hanoi"}
	f.provinceB = db_models.Province{Name: "Da Nang"}
	require.NoError(t, db.Create(&f.provinceA).Error)
	require.NoError(t, db.Create(&f.provinceB).Error)

	f.districtA = db_models.District{Name: "Ba Dinh", ProvinceID: f.provinceA.ID}
	f.districtB = db_models.District{Name: "Hai Chau", ProvinceID: f.provinceB.ID}
	require.NoError(t, db.Create(&f.districtA).Error)
	require.NoError(t, db.Create(&f.districtB).Error)

	f.townA = db_models.Town{Name: "Kim Ma", DistrictID: f.districtA.ID}
	f.townB = db_models.Town{Name: "Thach Thang", DistrictID: f.districtB.ID}
	require.NoError(t, db.Create(&f.townA).Error)
	require.NoError(t, db.Create(&f.townB).Error)

	f.routerA = db_models.Router{Name: "rt-hanoi-01", TownID: &f.townA.ID, Status: db_models.RouterStatusOnline, Uptime: 99, Bandwidth: 100}
	f.routerB = db_models.Router{Name: "rt-danang-01", TownID: &f.townB.ID, Status: db_models.RouterStatusOffline, Uptime: 90, Bandwidth: 50}
	require.NoError(t, db.Create(&f.routerA).Error)
	require.NoError(t, db.Create(&f.routerB).Error)

	f.admin = db_models.User{Name: "Admin", Email: "admin@example.com", PasswordHash: "x", Role: db_models.RoleAdmin, IsActive: true}
	f.staffA = db_models.User{
		Name: "Staff A", Email: "staff.a@example.com", PasswordHash: "x", Role: db_models.RoleStaff, IsActive: true,
		AssignedProvinceID: &f.provinceA.ID, AssignedDistrictID: &f.districtA.ID,
	}
	require.NoError(t, db.Create(&f.admin).Error)
	require.NoError(t, db.Create(&f.staffA).Error)

	return f
}

func (f *geoFixture) adminActor() Actor {
	return Actor{User: &f.admin, Scope: ScopeFor(&f.admin, true), IP: "127.0.0.1"}
}

func (f *geoFixture) staffActor() Actor {
	return Actor{User: &f.staffA, Scope: ScopeFor(&f.staffA, true), IP: "127.0.0.1"}
}

func countLogs(t *testing.T, db *gorm.DB, action string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&db_models.Log{}).Where("action = ?", action).Count(&n).Error)
	return n
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func (c *fixedClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newAudit(db *gorm.DB) AuditServiceInterface {
	return NewAuditService(repositories.NewLogRepository(db))
}

var bg = context.Background()
