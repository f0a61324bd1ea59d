package db_models

import "github.com/google/uuid"

type AlertStatus string

const (
	AlertStatusActive    AlertStatus = "ACTIVE"
	AlertStatusResolved  AlertStatus = "RESOLVED"
	AlertStatusDismissed AlertStatus = "DISMISSED"
)

type AlertSeverity string

const (
	AlertSeverityLow      AlertSeverity = "LOW"
	AlertSeverityMedium   AlertSeverity = "MEDIUM"
	AlertSeverityHigh     AlertSeverity = "HIGH"
	AlertSeverityCritical AlertSeverity = "CRITICAL"
)

func (s AlertSeverity) Valid() bool {
	switch s {
	case AlertSeverityLow, AlertSeverityMedium, AlertSeverityHigh, AlertSeverityCritical:
		return true
	}
	return false
}

const AlertTypeRouterOffline = "ROUTER_OFFLINE"

type Alert struct {
	BaseModel
	RouterID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Router       *Router
	Type         string        `gorm:"size:50;not null;index"`
	Severity     AlertSeverity `gorm:"size:10;not null;default:MEDIUM"`
	Title        string        `gorm:"size:200;not null"`
	Message      string        `gorm:"type:text"`
	Status       AlertStatus   `gorm:"size:10;not null;default:ACTIVE;index"`
	ResolvedAt   *int64
	ResolvedByID *uuid.UUID `gorm:"type:uuid"`
	ResolvedBy   *User
	Resolution   string `gorm:"type:text"`
	DismissedAt  *int64
	CreatedByID  *uuid.UUID `gorm:"type:uuid"`
	CreatedBy    *User
}
