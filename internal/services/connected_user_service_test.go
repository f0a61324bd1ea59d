package services

import (
	"context"
	"fmt"
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

type fakeFirewall struct {
	enabled   bool
	failWith  error
	blocked   map[string]bool
	calls     []string
	reachable bool
}

func newFakeFirewall() *fakeFirewall {
	return &fakeFirewall{enabled: true, blocked: map[string]bool{}, reachable: true}
}

func (f *fakeFirewall) Enabled() bool { return f.enabled }

func (f *fakeFirewall) Host() string { return "fw.test" }

func (f *fakeFirewall) Block(_ context.Context, address, _ string) error {
	f.calls = append(f.calls, "block "+address)
	if !f.enabled {
		return utils.ErrFirewallDisabled
	}
	if f.failWith != nil {
		return f.failWith
	}
	f.blocked[address] = true
	return nil
}

func (f *fakeFirewall) Unblock(_ context.Context, address string) error {
	f.calls = append(f.calls, "unblock "+address)
	if !f.enabled {
		return utils.ErrFirewallDisabled
	}
	if f.failWith != nil {
		return f.failWith
	}
	delete(f.blocked, address)
	return nil
}

func (f *fakeFirewall) Status(context.Context) (FirewallStatus, error) {
	if f.failWith != nil {
		return FirewallStatus{}, f.failWith
	}
	return FirewallStatus{Reachable: f.reachable, Version: "2.7.2"}, nil
}

func newDeviceService(db *gorm.DB, firewall FirewallClient, clock *fixedClock) *ConnectedUserService {
	svc := NewConnectedUserService(
		repositories.NewConnectedUserRepository(db),
		repositories.NewRouterRepository(db),
		firewall,
		newAudit(db),
	).(*ConnectedUserService)
	if clock != nil {
		svc.now = clock.Now
	}
	return svc
}

func seedDevice(t *testing.T, db *gorm.DB, router db_models.Router, ip string) db_models.ConnectedUser {
	t.Helper()
	device := db_models.ConnectedUser{
		RouterID:    router.ID,
		DeviceName:  "laptop",
		MACAddress:  "AA:BB:CC:DD:EE:01",
		IPAddress:   ip,
		ConnectedAt: time.Now().Unix(),
	}
	require.NoError(t, db.Create(&device).Error)
	return device
}

func loadDevice(t *testing.T, db *gorm.DB, device db_models.ConnectedUser) db_models.ConnectedUser {
	t.Helper()
	var stored db_models.ConnectedUser
	require.NoError(t, db.First(&stored, "id = ?", device.ID).Error)
	return stored
}

func TestConnectedUserService_BlockUnblockSymmetry(t *testing.T) {
	db := setupTestDB(t)
	f := seedGeo(t, db)
	firewall := newFakeFirewall()
	clock := &fixedClock{now: time.Unix(1_700_000_000, 0)}
	svc := newDeviceService(db, firewall, clock)
	device := seedDevice(t, db, f.routerA, "10.0.0.15")
	before := loadDevice(t, db, device)

	blocked, err := svc.Block(bg, f.staffActor(), device.ID)
	require.NoError(t, err)
	assert.True(t, blocked.FirewallApplied)
	assert.True(t, blocked.Device.IsBlocked)
	assert.True(t, firewall.blocked["10.0.0.15"])

	stored := loadDevice(t, db, device)
	assert.True(t, stored.IsBlocked)
	require.NotNil(t, stored.BlockedAt)
	assert.Equal(t, clock.now.Unix(), *stored.BlockedAt)
	require.NotNil(t, stored.BlockedByID)
	assert.Equal(t, f.staffA.ID, *stored.BlockedByID)

	unblocked, err := svc.Unblock(bg, f.staffActor(), device.ID)
	require.NoError(t, err)
	assert.True(t, unblocked.FirewallApplied)
	assert.False(t, unblocked.Device.IsBlocked)
	assert.Empty(t, firewall.blocked)

	after := loadDevice(t, db, device)
	assert.Equal(t, before.IsBlocked, after.IsBlocked)
	assert.Equal(t, before.BlockedAt, after.BlockedAt)
	assert.Equal(t, before.BlockedByID, after.BlockedByID)

	assert.Equal(t, int64(1), countLogs(t, db, ActionBlockDevice))
	assert.Equal(t, int64(1), countLogs(t, db, ActionUnblockDevice))
	assert.Equal(t, []string{"block 10.0.0.15", "unblock 10.0.0.15"}, firewall.calls)
}

func TestConnectedUserService_BlockIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	f := seedGeo(t, db)
	firewall := newFakeFirewall()
	svc := newDeviceService(db, firewall, nil)
	device := seedDevice(t, db, f.routerA, "10.0.0.16")

	_, err := svc.Block(bg, f.adminActor(), device.ID)
	require.NoError(t, err)
	again, err := svc.Block(bg, f.adminActor(), device.ID)
	require.NoError(t, err)
	assert.True(t, again.Device.IsBlocked)
	assert.Len(t, firewall.calls, 1)
	assert.Equal(t, int64(1), countLogs(t, db, ActionBlockDevice))
}

func TestConnectedUserService_FirewallFailureLeavesStateUnchanged(t *testing.T) {
	db := setupTestDB(t)
	f := seedGeo(t, db)
	firewall := newFakeFirewall()
	firewall.failWith = fmt.Errorf("%w: connection refused", utils.ErrFirewallUnavailable)
	svc := newDeviceService(db, firewall, nil)
	device := seedDevice(t, db, f.routerA, "10.0.0.17")

	_, err := svc.Block(bg, f.adminActor(), device.ID)
	assert.ErrorIs(t, err, utils.ErrFirewallUnavailable)

	stored := loadDevice(t, db, device)
	assert.False(t, stored.IsBlocked)
	assert.Nil(t, stored.BlockedAt)
	assert.Equal(t, int64(0), countLogs(t, db, ActionBlockDevice))

	t.Run("unexpected errors are reported as unavailable", func(t *testing.T) {
		firewall.failWith = fmt.Errorf("boom")
		_, err := svc.Block(bg, f.adminActor(), device.ID)
		assert.ErrorIs(t, err, utils.ErrFirewallUnavailable)
	})

	t.Run("unblock failure keeps the block", func(t *testing.T) {
		firewall.failWith = nil
		_, err := svc.Block(bg, f.adminActor(), device.ID)
		require.NoError(t, err)

		firewall.failWith = fmt.Errorf("%w: timeout", utils.ErrFirewallUnavailable)
		_, err = svc.Unblock(bg, f.adminActor(), device.ID)
		assert.ErrorIs(t, err, utils.ErrFirewallUnavailable)
		assert.True(t, loadDevice(t, db, device).IsBlocked)
	})
}

func TestConnectedUserService_DisabledFirewall(t *testing.T) {
	db := setupTestDB(t)
	f := seedGeo(t, db)
	firewall := newFakeFirewall()
	firewall.enabled = false
	svc := newDeviceService(db, firewall, nil)
	device := seedDevice(t, db, f.routerA, "10.0.0.18")

	blocked, err := svc.Block(bg, f.adminActor(), device.ID)
	require.NoError(t, err)
	assert.False(t, blocked.FirewallApplied)
	assert.True(t, loadDevice(t, db, device).IsBlocked)

	unblocked, err := svc.Unblock(bg, f.adminActor(), device.ID)
	require.NoError(t, err)
	assert.False(t, unblocked.FirewallApplied)
	assert.False(t, loadDevice(t, db, device).IsBlocked)

	status := svc.FirewallStatus(bg)
	assert.False(t, status.Enabled)
	assert.False(t, status.Reachable)
}

func TestConnectedUserService_ScopeAndCreate(t *testing.T) {
	db := setupTestDB(t)
	f := seedGeo(t, db)
	svc := newDeviceService(db, newFakeFirewall(), nil)
	seedDevice(t, db, f.routerA, "10.0.0.20")
	foreign := seedDevice(t, db, f.routerB, "10.1.0.20")

	page, err := svc.List(bg, f.staffActor(), repositories.ConnectedUserFilter{}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	_, err = svc.Block(bg, f.staffActor(), foreign.ID)
	assert.ErrorIs(t, err, utils.ErrConnectedUserNotFound)

	created, err := svc.Create(bg, f.staffActor(), request_models.CreateConnectedUserRequest{
		RouterID:   f.routerA.ID.String(),
		DeviceName: "phone",
		MACAddress: "aa:bb:cc:dd:ee:02",
		IPAddress:  "10.0.0.21",
	})
	require.NoError(t, err)
	assert.Equal(t, "AA:BB:CC:DD:EE:02", created.MACAddress)
	assert.False(t, created.IsBlocked)

	blocked := true
	page, err = svc.List(bg, f.adminActor(), repositories.ConnectedUserFilter{Blocked: &blocked}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Total)
}

func TestConnectedUserService_FirewallStatus(t *testing.T) {
	db := setupTestDB(t)
	firewall := newFakeFirewall()
	svc := newDeviceService(db, firewall, nil)

	status := svc.FirewallStatus(bg)
	assert.True(t, status.Enabled)
	assert.True(t, status.Reachable)
	assert.Equal(t, "2.7.2", status.Version)

	firewall.failWith = fmt.Errorf("%w: no route to host", utils.ErrFirewallUnavailable)
	status = svc.FirewallStatus(bg)
	assert.False(t, status.Reachable)
	assert.NotEmpty(t, status.Error)
}
