package response_models

import (
	"encoding/json"

	"netops/internal/models/db_models"
)

type AlertResponse struct {
	ID           string  `json:"id"`
	RouterID     string  `json:"router_id"`
	RouterName   string  `json:"router_name,omitempty"`
	Type         string  `json:"type"`
	Severity     string  `json:"severity"`
	Title        string  `json:"title"`
	Message      string  `json:"message,omitempty"`
	Status       string  `json:"status"`
	ResolvedAt   *string `json:"resolved_at"`
	ResolvedByID *string `json:"resolved_by_id"`
	ResolvedBy   string  `json:"resolved_by,omitempty"`
	Resolution   string  `json:"resolution,omitempty"`
	DismissedAt  *string `json:"dismissed_at"`
	CreatedByID  *string `json:"created_by_id"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func ToAlertResponse(a *db_models.Alert) *AlertResponse {
	if a == nil {
		return nil
	}
	resp := &AlertResponse{
		ID:           a.ID.String(),
		RouterID:     a.RouterID.String(),
		Type:         a.Type,
		Severity:     string(a.Severity),
		Title:        a.Title,
		Message:      a.Message,
		Status:       string(a.Status),
		ResolvedAt:   formatUnixPtr(a.ResolvedAt),
		ResolvedByID: uuidPtrString(a.ResolvedByID),
		Resolution:   a.Resolution,
		DismissedAt:  formatUnixPtr(a.DismissedAt),
		CreatedByID:  uuidPtrString(a.CreatedByID),
		CreatedAt:    formatUnix(a.CreatedAt),
		UpdatedAt:    formatUnix(a.UpdatedAt),
	}
	if a.Router != nil {
		resp.RouterName = a.Router.Name
	}
	if a.ResolvedBy != nil {
		resp.ResolvedBy = a.ResolvedBy.Name
	}
	return resp
}

type LogResponse struct {
	ID         string          `json:"id"`
	UserID     *string         `json:"user_id"`
	UserName   string          `json:"user_name,omitempty"`
	Action     string          `json:"action"`
	EntityType string          `json:"entity_type,omitempty"`
	EntityID   string          `json:"entity_id,omitempty"`
	Details    json.RawMessage `json:"details,omitempty"`
	IPAddress  string          `json:"ip_address,omitempty"`
	CreatedAt  string          `json:"created_at"`
}

func ToLogResponse(l *db_models.Log) *LogResponse {
	resp := &LogResponse{
		ID:         l.ID.String(),
		UserID:     uuidPtrString(l.UserID),
		Action:     l.Action,
		EntityType: l.EntityType,
		EntityID:   l.EntityID,
		IPAddress:  l.IPAddress,
		CreatedAt:  formatUnix(l.CreatedAt),
	}
	if len(l.Details) > 0 {
		resp.Details = json.RawMessage(l.Details)
	}
	if l.User != nil {
		resp.UserName = l.User.Name
	}
	return resp
}

type SettingResponse struct {
	Key         string `json:"key" yaml:"key"`
	Value       string `json:"value" yaml:"value"`
	Category    string `json:"category" yaml:"category"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	UpdatedAt   string `json:"updated_at" yaml:"-"`
}

func ToSettingResponse(s *db_models.Setting) SettingResponse {
	return SettingResponse{
		Key:         s.Key,
		Value:       s.Value,
		Category:    s.Category,
		Description: s.Description,
		UpdatedAt:   formatUnix(s.UpdatedAt),
	}
}
