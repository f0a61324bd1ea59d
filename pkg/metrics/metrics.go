package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	firewallRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netops_firewall_requests_total",
			Help: "Firewall appliance calls by operation and result.",
		},
		[]string{"op", "result"},
	)
	firewallLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "netops_firewall_request_duration_seconds",
			Help:    "Latency of firewall appliance calls.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)
	statsCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netops_stats_cache_total",
			Help: "Dashboard stats cache lookups by result (hit, miss, stale).",
		},
		[]string{"result"},
	)
	schedulerRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netops_scheduler_runs_total",
			Help: "Background job runs by job and result.",
		},
		[]string{"job", "result"},
	)
)

func init() {
	prometheus.MustRegister(firewallRequests)
	prometheus.MustRegister(firewallLatency)
	prometheus.MustRegister(statsCache)
	prometheus.MustRegister(schedulerRuns)
}

func ObserveFirewall(op string, started time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	firewallRequests.WithLabelValues(op, result).Inc()
	firewallLatency.WithLabelValues(op).Observe(time.Since(started).Seconds())
}

func StatsCacheResult(result string) {
	statsCache.WithLabelValues(result).Inc()
}

func SchedulerRun(job string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	schedulerRuns.WithLabelValues(job, result).Inc()
}
