package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type RouterStatus string

const (
	RouterStatusOnline      RouterStatus = "ONLINE"
	RouterStatusOffline     RouterStatus = "OFFLINE"
	RouterStatusMaintenance RouterStatus = "MAINTENANCE"
	RouterStatusError       RouterStatus = "ERROR"
)

var RouterStatuses = []RouterStatus{
	RouterStatusOnline, RouterStatusOffline, RouterStatusMaintenance, RouterStatusError,
}

func (s RouterStatus) Valid() bool {
	for _, v := range RouterStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type Router struct {
	BaseModel
	Name         string     `gorm:"size:150;not null"`
	Model        string     `gorm:"size:100"`
	SerialNumber string     `gorm:"size:100;index"`
	IPAddress    string     `gorm:"size:45;index"`
	MACAddress   string     `gorm:"size:17"`
	TownID       *uuid.UUID `gorm:"type:uuid;index"`
	Town         *Town
	Status       RouterStatus `gorm:"size:20;not null;default:OFFLINE;index"`
	Capacity     int          // max simultaneous devices
	Bandwidth    float64      // Mbps
	Uptime       float64      // percent
	LastSeenAt   *int64
	Latitude     float64
	Longitude    float64
	Description  string         `gorm:"type:text"`
	Tags         pq.StringArray `gorm:"type:text"`
	IsActive     bool           `gorm:"not null;default:true"`

	ConnectedUsers []ConnectedUser `gorm:"foreignKey:RouterID"`
	Alerts         []Alert         `gorm:"foreignKey:RouterID"`
}

type ConnectedUser struct {
	BaseModel
	RouterID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Router      *Router
	DeviceName  string `gorm:"size:150"`
	Hostname    string `gorm:"size:150"`
	MACAddress  string `gorm:"size:17;index"`
	IPAddress   string `gorm:"size:45;not null;index"`
	DataUsage   int64  // bytes
	IsBlocked   bool   `gorm:"not null;default:false;index"`
	BlockedAt   *int64
	BlockedByID *uuid.UUID `gorm:"type:uuid"`
	ConnectedAt int64
	LastSeenAt  *int64
}
