package request_models

type CreateRouterRequest struct {
	Name         string   `json:"name" binding:"required,min=2,max=150"`
	Model        string   `json:"model" binding:"omitempty,max=100"`
	SerialNumber string   `json:"serial_number" binding:"omitempty,max=100"`
	IPAddress    string   `json:"ip_address" binding:"omitempty,ip"`
	MACAddress   string   `json:"mac_address" binding:"omitempty,mac"`
	TownID       *string  `json:"town_id" binding:"omitempty,uuid"`
	Status       string   `json:"status" binding:"omitempty,router_status"`
	Capacity     int      `json:"capacity" binding:"gte=0"`
	Bandwidth    float64  `json:"bandwidth" binding:"gte=0"`
	Uptime       float64  `json:"uptime" binding:"gte=0,lte=100"`
	Latitude     float64  `json:"latitude" binding:"gte=-90,lte=90"`
	Longitude    float64  `json:"longitude" binding:"gte=-180,lte=180"`
	Description  string   `json:"description"`
	Tags         []string `json:"tags" binding:"omitempty,max=20,dive,max=50"`
}

// UpdateRouterRequest only touches the fields that are present. An empty
// town_id detaches the router from its town.
type UpdateRouterRequest struct {
	Name         *string   `json:"name" binding:"omitempty,min=2,max=150"`
	Model        *string   `json:"model" binding:"omitempty,max=100"`
	SerialNumber *string   `json:"serial_number" binding:"omitempty,max=100"`
	IPAddress    *string   `json:"ip_address" binding:"omitempty,ip"`
	MACAddress   *string   `json:"mac_address" binding:"omitempty,mac"`
	TownID       *string   `json:"town_id" binding:"omitempty,uuid"`
	Status       *string   `json:"status" binding:"omitempty,router_status"`
	Capacity     *int      `json:"capacity" binding:"omitempty,gte=0"`
	Bandwidth    *float64  `json:"bandwidth" binding:"omitempty,gte=0"`
	Uptime       *float64  `json:"uptime" binding:"omitempty,gte=0,lte=100"`
	Latitude     *float64  `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude    *float64  `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	Description  *string   `json:"description"`
	Tags         *[]string `json:"tags" binding:"omitempty,max=20,dive,max=50"`
	IsActive     *bool     `json:"is_active"`
}

type UpdateRouterStatusRequest struct {
	Status string `json:"status" binding:"required,router_status"`
}

type CreateConnectedUserRequest struct {
	RouterID   string `json:"router_id" binding:"required,uuid"`
	DeviceName string `json:"device_name" binding:"omitempty,max=150"`
	Hostname   string `json:"hostname" binding:"omitempty,max=150"`
	MACAddress string `json:"mac_address" binding:"omitempty,mac"`
	IPAddress  string `json:"ip_address" binding:"required,ip"`
	DataUsage  int64  `json:"data_usage" binding:"gte=0"`
}
