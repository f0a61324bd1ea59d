package services

import (
	"context"
	"time"

	dbm "netops/internal/models/db_models"
	resp "netops/internal/models/response_models"
	"netops/internal/repositories"
	"netops/pkg/logger"
	mem "netops/pkg/memcache"
	"netops/pkg/metrics"
	"netops/pkg/utils"
)

const DefaultStatsTTL = 30 * time.Second

type DashboardService interface {
	Stats(ctx context.Context, actor Actor) (*resp.DashboardStats, error)
	ClearCache(ctx context.Context, actor Actor) error
}

type dashboardService struct {
	repo  repositories.DashboardRepository
	cache mem.StatsStore
	ttl   time.Duration
	now   func() time.Time
	audit AuditServiceInterface
}

func NewDashboardService(repo repositories.DashboardRepository, cache mem.StatsStore, ttl time.Duration, audit AuditServiceInterface) DashboardService {
	if ttl <= 0 {
		ttl = DefaultStatsTTL
	}
	return &dashboardService{repo: repo, cache: cache, ttl: ttl, now: time.Now, audit: audit}
}

// Stats serves the cached figures for the caller's scope while they are
// younger than the TTL. When recomputing fails, the last cached value is
// returned with a warning, or zeroed figures when there is none.
func (s *dashboardService) Stats(ctx context.Context, actor Actor) (*resp.DashboardStats, error) {
	key := actor.Scope.Key()
	now := s.now()

	entry, found := s.cache.Get(ctx, key)
	if found && now.Sub(entry.StoredAt) < s.ttl {
		metrics.StatsCacheResult("hit")
		stats := entry.Stats
		stats.Cached = true
		return &stats, nil
	}

	stats, err := s.compute(ctx, actor.Scope)
	if err != nil {
		logger.Error("Failed to compute dashboard stats", "scope", key, "error", err)
		if found {
			metrics.StatsCacheResult("stale")
			stale := entry.Stats
			stale.Cached = true
			stale.Warning = "Showing cached statistics; live figures are unavailable"
			return &stale, nil
		}
		metrics.StatsCacheResult("miss")
		return &resp.DashboardStats{
			GeneratedAt: now.UTC().Format(time.RFC3339),
			Warning:     "Statistics are temporarily unavailable",
		}, nil
	}

	metrics.StatsCacheResult("miss")
	stats.GeneratedAt = now.UTC().Format(time.RFC3339)
	s.cache.Set(ctx, key, mem.StatsEntry{Stats: *stats, StoredAt: now})
	return stats, nil
}

func (s *dashboardService) compute(ctx context.Context, scope repositories.GeoScope) (*resp.DashboardStats, error) {
	out := &resp.DashboardStats{}

	// ---------- Routers ----------
	byStatus, err := s.repo.CountRoutersByStatus(ctx, scope)
	if err != nil {
		return nil, err
	}
	for _, row := range byStatus {
		out.TotalRouters += row.Count
		switch row.Status {
		case dbm.RouterStatusOnline:
			out.RoutersByStatus.Online = row.Count
		case dbm.RouterStatusOffline:
			out.RoutersByStatus.Offline = row.Count
		case dbm.RouterStatusMaintenance:
			out.RoutersByStatus.Maintenance = row.Count
		case dbm.RouterStatusError:
			out.RoutersByStatus.Error = row.Count
		}
	}

	agg, err := s.repo.RouterAggregates(ctx, scope)
	if err != nil {
		return nil, err
	}
	out.AverageUptime = agg.AverageUptime
	out.TotalBandwidth = agg.TotalBandwidth

	// ---------- People & alerts ----------
	if out.StaffCount, err = s.repo.CountStaff(ctx, scope); err != nil {
		return nil, err
	}
	if out.ActiveAlerts, err = s.repo.CountActiveAlerts(ctx, scope); err != nil {
		return nil, err
	}

	// ---------- Locations & devices ----------
	locations, err := s.repo.CountLocations(ctx, scope)
	if err != nil {
		return nil, err
	}
	out.Locations = resp.LocationCounts{
		Provinces: locations.Provinces,
		Districts: locations.Districts,
		Towns:     locations.Towns,
	}

	devices, err := s.repo.CountDevices(ctx, scope)
	if err != nil {
		return nil, err
	}
	out.ConnectedDevices = devices.Connected
	out.BlockedDevices = devices.Blocked

	return out, nil
}

func (s *dashboardService) ClearCache(ctx context.Context, actor Actor) error {
	if err := s.cache.Clear(ctx); err != nil {
		logger.Error("Failed to clear stats cache", "error", err)
		return utils.ErrDatabaseError
	}
	s.audit.Record(ctx, actor, ActionClearCache, EntityDashboard, "", nil)
	return nil
}
