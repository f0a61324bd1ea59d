package response_models

type RouterStatusCounts struct {
	Online      int64 `json:"online"`
	Offline     int64 `json:"offline"`
	Maintenance int64 `json:"maintenance"`
	Error       int64 `json:"error"`
}

type LocationCounts struct {
	Provinces int64 `json:"provinces"`
	Districts int64 `json:"districts"`
	Towns     int64 `json:"towns"`
}

type DashboardStats struct {
	TotalRouters     int64              `json:"total_routers"`
	RoutersByStatus  RouterStatusCounts `json:"routers_by_status"`
	StaffCount       int64              `json:"staff_count"`
	ActiveAlerts     int64              `json:"active_alerts"`
	Locations        LocationCounts     `json:"locations"`
	AverageUptime    float64            `json:"average_uptime"`
	TotalBandwidth   float64            `json:"total_bandwidth"`
	ConnectedDevices int64              `json:"connected_devices"`
	BlockedDevices   int64              `json:"blocked_devices"`
	GeneratedAt      string             `json:"generated_at"`

	Cached  bool   `json:"cached"`
	Warning string `json:"warning,omitempty"`
}
