package response_models

import "netops/internal/models/db_models"

type RouterResponse struct {
	ID                  string        `json:"id"`
	Name                string        `json:"name"`
	Model               string        `json:"model,omitempty"`
	SerialNumber        string        `json:"serial_number,omitempty"`
	IPAddress           string        `json:"ip_address,omitempty"`
	MACAddress          string        `json:"mac_address,omitempty"`
	TownID              *string       `json:"town_id"`
	Town                *TownResponse `json:"town,omitempty"`
	Status              string        `json:"status"`
	Capacity            int           `json:"capacity"`
	Bandwidth           float64       `json:"bandwidth"`
	Uptime              float64       `json:"uptime"`
	LastSeenAt          *string       `json:"last_seen_at"`
	Latitude            float64       `json:"latitude"`
	Longitude           float64       `json:"longitude"`
	Description         string        `json:"description,omitempty"`
	Tags                []string      `json:"tags"`
	IsActive            bool          `json:"is_active"`
	ConnectedUsersCount int64         `json:"connected_users_count"`
	CreatedAt           string        `json:"created_at"`
	UpdatedAt           string        `json:"updated_at"`
}

func ToRouterResponse(r *db_models.Router, connectedCount int64) *RouterResponse {
	if r == nil {
		return nil
	}
	tags := []string(r.Tags)
	if tags == nil {
		tags = []string{}
	}
	return &RouterResponse{
		ID:                  r.ID.String(),
		Name:                r.Name,
		Model:               r.Model,
		SerialNumber:        r.SerialNumber,
		IPAddress:           r.IPAddress,
		MACAddress:          r.MACAddress,
		TownID:              uuidPtrString(r.TownID),
		Town:                ToTownResponse(r.Town),
		Status:              string(r.Status),
		Capacity:            r.Capacity,
		Bandwidth:           r.Bandwidth,
		Uptime:              r.Uptime,
		LastSeenAt:          formatUnixPtr(r.LastSeenAt),
		Latitude:            r.Latitude,
		Longitude:           r.Longitude,
		Description:         r.Description,
		Tags:                tags,
		IsActive:            r.IsActive,
		ConnectedUsersCount: connectedCount,
		CreatedAt:           formatUnix(r.CreatedAt),
		UpdatedAt:           formatUnix(r.UpdatedAt),
	}
}

type ConnectedUserResponse struct {
	ID          string  `json:"id"`
	RouterID    string  `json:"router_id"`
	RouterName  string  `json:"router_name,omitempty"`
	DeviceName  string  `json:"device_name,omitempty"`
	Hostname    string  `json:"hostname,omitempty"`
	MACAddress  string  `json:"mac_address,omitempty"`
	IPAddress   string  `json:"ip_address"`
	DataUsage   int64   `json:"data_usage"`
	IsBlocked   bool    `json:"is_blocked"`
	BlockedAt   *string `json:"blocked_at"`
	BlockedByID *string `json:"blocked_by_id"`
	ConnectedAt string  `json:"connected_at"`
	LastSeenAt  *string `json:"last_seen_at"`
}

func ToConnectedUserResponse(u *db_models.ConnectedUser) *ConnectedUserResponse {
	if u == nil {
		return nil
	}
	resp := &ConnectedUserResponse{
		ID:          u.ID.String(),
		RouterID:    u.RouterID.String(),
		DeviceName:  u.DeviceName,
		Hostname:    u.Hostname,
		MACAddress:  u.MACAddress,
		IPAddress:   u.IPAddress,
		DataUsage:   u.DataUsage,
		IsBlocked:   u.IsBlocked,
		BlockedAt:   formatUnixPtr(u.BlockedAt),
		BlockedByID: uuidPtrString(u.BlockedByID),
		ConnectedAt: formatUnix(u.ConnectedAt),
		LastSeenAt:  formatUnixPtr(u.LastSeenAt),
	}
	if u.Router != nil {
		resp.RouterName = u.Router.Name
	}
	return resp
}

// BlockResult reports a block/unblock outcome. FirewallApplied is false when
// the appliance integration is disabled and only local state changed.
type BlockResult struct {
	Device          *ConnectedUserResponse `json:"device"`
	FirewallApplied bool                   `json:"firewall_applied"`
}

type FirewallStatusResponse struct {
	Enabled   bool   `json:"enabled"`
	Reachable bool   `json:"reachable"`
	Host      string `json:"host,omitempty"`
	Version   string `json:"version,omitempty"`
	Error     string `json:"error,omitempty"`
}
