package db_models

import "github.com/google/uuid"

type Province struct {
	BaseModel
	Name      string     `gorm:"size:100;not null;uniqueIndex"`
	Code      string     `gorm:"size:20"`
	Districts []District `gorm:"foreignKey:ProvinceID"`
}

type District struct {
	BaseModel
	Name       string    `gorm:"size:100;not null;index:idx_district_province_name,unique,priority:2"`
	ProvinceID uuid.UUID `gorm:"type:uuid;not null;index:idx_district_province_name,unique,priority:1"`
	Province   *Province
	Towns      []Town `gorm:"foreignKey:DistrictID"`
}

type Town struct {
	BaseModel
	Name       string    `gorm:"size:100;not null;index:idx_town_district_name,unique,priority:2"`
	DistrictID uuid.UUID `gorm:"type:uuid;not null;index:idx_town_district_name,unique,priority:1"`
	District   *District
	Latitude   float64
	Longitude  float64
	Routers    []Router `gorm:"foreignKey:TownID"`
}
