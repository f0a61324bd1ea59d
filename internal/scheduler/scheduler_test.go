package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netops/internal/infra"
	"netops/internal/services"
)

type fakeRouterService struct {
	services.RouterServiceInterface
	silence time.Duration
	marked  int
	err     error
}

func (f *fakeRouterService) MarkStaleOffline(_ context.Context, maxSilence time.Duration) (int, error) {
	f.silence = maxSilence
	return f.marked, f.err
}

type fakeAuditService struct {
	services.AuditServiceInterface
	cutoff int64
}

func (f *fakeAuditService) Purge(_ context.Context, cutoff int64) (int64, error) {
	f.cutoff = cutoff
	return 3, nil
}

func TestScheduler_Jobs(t *testing.T) {
	routers := &fakeRouterService{marked: 2}
	audit := &fakeAuditService{}
	cfg := infra.SchedulerConfig{RouterOfflineAfter: 5 * time.Minute, LogRetention: 30 * 24 * time.Hour}
	s := NewScheduler(cfg, routers, audit)
	now := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.SweepOfflineRouters(context.Background()))
	assert.Equal(t, 5*time.Minute, routers.silence)

	require.NoError(t, s.PurgeLogs(context.Background()))
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC).Unix(), audit.cutoff)

	routers.err = errors.New("db down")
	assert.Error(t, s.SweepOfflineRouters(context.Background()))
}

func TestScheduler_StartRegistersConfiguredJobs(t *testing.T) {
	tests := []struct {
		name string
		cfg  infra.SchedulerConfig
		jobs int
	}{
		{"both", infra.SchedulerConfig{RouterOfflineAfter: time.Minute, LogRetention: time.Hour}, 2},
		{"sweep only", infra.SchedulerConfig{RouterOfflineAfter: time.Minute}, 1},
		{"disabled", infra.SchedulerConfig{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScheduler(tt.cfg, &fakeRouterService{}, &fakeAuditService{})
			require.NoError(t, s.Start())
			assert.Len(t, s.cron.Entries(), tt.jobs)

			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			s.Stop(ctx)
		})
	}
}
