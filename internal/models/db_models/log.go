package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Log is an audit trail row. A nil UserID marks a system action.
type Log struct {
	BaseModel
	UserID     *uuid.UUID `gorm:"type:uuid;index"`
	User       *User
	Action     string         `gorm:"size:50;not null;index"`
	EntityType string         `gorm:"size:50"`
	EntityID   string         `gorm:"size:64"`
	Details    datatypes.JSON
	IPAddress  string         `gorm:"size:45"`
}

type Setting struct {
	BaseModel
	Key         string `gorm:"size:100;not null;uniqueIndex"`
	Value       string `gorm:"type:text"`
	Category    string `gorm:"size:50;not null;default:general;index"`
	Description string `gorm:"size:255"`
}
