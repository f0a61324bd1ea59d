package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"netops/internal/models/db_models"
	"netops/internal/models/request_models"
	"netops/internal/repositories"
	"netops/pkg/utils"
)

func newAlertService(db *gorm.DB, clock *fixedClock) *AlertService {
	svc := NewAlertService(
		repositories.NewAlertRepository(db),
		repositories.NewRouterRepository(db),
		newAudit(db),
	).(*AlertService)
	if clock != nil {
		svc.now = clock.Now
	}
	return svc
}

func seedAlert(t *testing.T, db *gorm.DB, router db_models.Router) db_models.Alert {
	t.Helper()
	alert := db_models.Alert{
		RouterID: router.ID,
		Type:     "HIGH_CPU",
		Severity: db_models.AlertSeverityHigh,
		Title:    "CPU above 90%",
		Status:   db_models.AlertStatusActive,
	}
	require.NoError(t, db.Create(&alert).Error)
	return alert
}

func TestAlertService_Resolve(t *testing.T) {
	db := setupTestDB(t)
	f := seedGeo(t, db)
	clock := &fixedClock{now: time.Unix(1_700_000_000, 0)}
	svc := newAlertService(db, clock)
	alert := seedAlert(t, db, f.routerA)

	got, err := svc.Resolve(bg, f.staffActor(), alert.ID, "Rebooted <i>the</i> router")
	require.NoError(t, err)
	assert.Equal(t, string(db_models.AlertStatusResolved), got.Status)
	assert.Equal(t, "Rebooted the router", got.Resolution)
	require.NotNil(t, got.ResolvedByID)
	assert.Equal(t, f.staffA.ID.String(), *got.ResolvedByID)
	assert.Equal(t, f.staffA.Name, got.ResolvedBy)

	var stored db_models.Alert
	require.NoError(t, db.First(&stored, "id = ?", alert.ID).Error)
	require.NotNil(t, stored.ResolvedAt)
	assert.Equal(t, clock.now.Unix(), *stored.ResolvedAt)
	assert.Nil(t, stored.DismissedAt)
	assert.Equal(t, int64(1), countLogs(t, db, ActionResolveAlert))

	t.Run("second resolve is rejected without changes", func(t *testing.T) {
		clock.Advance(time.Hour)
		_, err := svc.Resolve(bg, f.adminActor(), alert.ID, "again")
		assert.ErrorIs(t, err, utils.ErrAlertNotActive)

		var again db_models.Alert
		require.NoError(t, db.First(&again, "id = ?", alert.ID).Error)
		assert.Equal(t, *stored.ResolvedAt, *again.ResolvedAt)
		assert.Equal(t, "Rebooted the router", again.Resolution)
		assert.Equal(t, int64(1), countLogs(t, db, ActionResolveAlert))
	})

	t.Run("resolved alert cannot be dismissed", func(t *testing.T) {
		_, err := svc.Dismiss(bg, f.adminActor(), alert.ID)
		assert.ErrorIs(t, err, utils.ErrAlertNotActive)
		assert.Equal(t, int64(0), countLogs(t, db, ActionDismissAlert))
	})
}

func TestAlertService_Dismiss(t *testing.T) {
	db := setupTestDB(t)
	f := seedGeo(t, db)
	svc := newAlertService(db, nil)
	alert := seedAlert(t, db, f.routerB)

	got, err := svc.Dismiss(bg, f.adminActor(), alert.ID)
	require.NoError(t, err)
	assert.Equal(t, string(db_models.AlertStatusDismissed), got.Status)
	assert.NotNil(t, got.DismissedAt)
	assert.Nil(t, got.ResolvedAt)
	assert.Nil(t, got.ResolvedByID)

	_, err = svc.Dismiss(bg, f.adminActor(), alert.ID)
	assert.ErrorIs(t, err, utils.ErrAlertNotActive)
	assert.Equal(t, int64(1), countLogs(t, db, ActionDismissAlert))
}

func TestAlertService_Scope(t *testing.T) {
	db := setupTestDB(t)
	f := seedGeo(t, db)
	svc := newAlertService(db, nil)
	seedAlert(t, db, f.routerA)
	other := seedAlert(t, db, f.routerB)

	page, err := svc.List(bg, f.staffActor(), repositories.AlertFilter{}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	page, err = svc.List(bg, f.adminActor(), repositories.AlertFilter{Status: string(db_models.AlertStatusActive)}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	_, err = svc.Resolve(bg, f.staffActor(), other.ID, "")
	assert.ErrorIs(t, err, utils.ErrAlertNotFound)

	_, err = svc.Create(bg, f.staffActor(), request_models.CreateAlertRequest{
		RouterID: f.routerB.ID.String(), Type: "manual", Title: "Check cabling",
	})
	var validationErr *utils.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestAlertService_Create(t *testing.T) {
	db := setupTestDB(t)
	f := seedGeo(t, db)
	svc := newAlertService(db, nil)

	got, err := svc.Create(bg, f.staffActor(), request_models.CreateAlertRequest{
		RouterID: f.routerA.ID.String(),
		Type:     "manual",
		Title:    "<b>Check</b> cabling",
		Message:  "Port 3 <script>x()</script>flapping",
	})
	require.NoError(t, err)
	assert.Equal(t, "MANUAL", got.Type)
	assert.Equal(t, string(db_models.AlertSeverityMedium), got.Severity)
	assert.Equal(t, string(db_models.AlertStatusActive), got.Status)
	assert.Equal(t, "Check cabling", got.Title)
	assert.Equal(t, "Port 3 flapping", got.Message)
	require.NotNil(t, got.CreatedByID)
	assert.Equal(t, f.staffA.ID.String(), *got.CreatedByID)
}
