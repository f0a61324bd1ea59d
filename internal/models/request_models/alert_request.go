package request_models

type CreateAlertRequest struct {
	RouterID string `json:"router_id" binding:"required,uuid"`
	Type     string `json:"type" binding:"required,max=50"`
	Severity string `json:"severity" binding:"omitempty,alert_severity"`
	Title    string `json:"title" binding:"required,max=200"`
	Message  string `json:"message" binding:"omitempty,max=5000"`
}

type ResolveAlertRequest struct {
	Resolution string `json:"resolution" binding:"omitempty,max=2000"`
}

type SettingItem struct {
	Key         string `json:"key" binding:"required,max=100"`
	Value       string `json:"value"`
	Category    string `json:"category" binding:"omitempty,max=50"`
	Description string `json:"description" binding:"omitempty,max=255"`
}

type UpsertSettingsRequest struct {
	Settings []SettingItem `json:"settings" binding:"required,min=1,dive"`
}
