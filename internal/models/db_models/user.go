package db_models

import "github.com/google/uuid"

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleStaff Role = "STAFF"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStaff
}

type User struct {
	BaseModel
	Name               string     `gorm:"size:100;not null"`
	Email              string     `gorm:"size:191;not null;uniqueIndex"`
	PasswordHash       string     `gorm:"not null"`
	Phone              string     `gorm:"size:30"`
	Role               Role       `gorm:"size:10;not null;default:STAFF;index"`
	AssignedProvinceID *uuid.UUID `gorm:"type:uuid;index"`
	AssignedProvince   *Province
	AssignedDistrictID *uuid.UUID `gorm:"type:uuid;index"`
	AssignedDistrict   *District
	IsActive           bool `gorm:"not null;default:true"`
	LastLoginAt        *int64
}
