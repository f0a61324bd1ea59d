package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GeoScope restricts queries to part of the Province > District > Town
// hierarchy. The zero value is global. A district takes precedence over a
// province; Deny matches nothing.
type GeoScope struct {
	DistrictID *uuid.UUID
	ProvinceID *uuid.UUID
	Deny       bool
}

func GlobalScope() GeoScope { return GeoScope{} }

func (s GeoScope) IsGlobal() bool {
	return !s.Deny && s.DistrictID == nil && s.ProvinceID == nil
}

// Key identifies the scope in caches.
func (s GeoScope) Key() string {
	switch {
	case s.Deny:
		return "none"
	case s.DistrictID != nil:
		return "district:" + s.DistrictID.String()
	case s.ProvinceID != nil:
		return "province:" + s.ProvinceID.String()
	}
	return "all"
}

// townIDs returns a sub-select of the town ids visible in a restricted scope.
func (s GeoScope) townIDs() (string, []interface{}) {
	if s.DistrictID != nil {
		return "SELECT towns.id FROM towns WHERE towns.district_id = ?", []interface{}{*s.DistrictID}
	}
	return "SELECT towns.id FROM towns JOIN districts ON districts.id = towns.district_id WHERE districts.province_id = ?",
		[]interface{}{*s.ProvinceID}
}

func denyAll(db *gorm.DB) *gorm.DB {
	return db.Where("1 = 0")
}

// ScopeRouters filters the routers table. Routers without a town are only
// visible in the global scope.
func ScopeRouters(s GeoScope) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if s.Deny {
			return denyAll(db)
		}
		if s.IsGlobal() {
			return db
		}
		q, args := s.townIDs()
		return db.Where("routers.town_id IN ("+q+")", args...)
	}
}

// ScopeByRouter filters any table whose column references routers.id.
func ScopeByRouter(s GeoScope, column string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if s.Deny {
			return denyAll(db)
		}
		if s.IsGlobal() {
			return db
		}
		q, args := s.townIDs()
		return db.Where(column+" IN (SELECT routers.id FROM routers WHERE routers.town_id IN ("+q+"))", args...)
	}
}

func ScopeTowns(s GeoScope) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case s.Deny:
			return denyAll(db)
		case s.DistrictID != nil:
			return db.Where("towns.district_id = ?", *s.DistrictID)
		case s.ProvinceID != nil:
			return db.Where("towns.district_id IN (SELECT districts.id FROM districts WHERE districts.province_id = ?)", *s.ProvinceID)
		}
		return db
	}
}

func ScopeDistricts(s GeoScope) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case s.Deny:
			return denyAll(db)
		case s.DistrictID != nil:
			return db.Where("districts.id = ?", *s.DistrictID)
		case s.ProvinceID != nil:
			return db.Where("districts.province_id = ?", *s.ProvinceID)
		}
		return db
	}
}

func ScopeProvinces(s GeoScope) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case s.Deny:
			return denyAll(db)
		case s.DistrictID != nil:
			return db.Where("provinces.id IN (SELECT districts.province_id FROM districts WHERE districts.id = ?)", *s.DistrictID)
		case s.ProvinceID != nil:
			return db.Where("provinces.id = ?", *s.ProvinceID)
		}
		return db
	}
}

// ScopeStaff filters users by their own assignment. A district-scoped viewer
// sees users assigned to that district; a province-scoped viewer sees users
// assigned to the province or any of its districts.
func ScopeStaff(s GeoScope) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case s.Deny:
			return denyAll(db)
		case s.DistrictID != nil:
			return db.Where("users.assigned_district_id = ?", *s.DistrictID)
		case s.ProvinceID != nil:
			return db.Where("users.assigned_province_id = ? OR users.assigned_district_id IN (SELECT districts.id FROM districts WHERE districts.province_id = ?)",
				*s.ProvinceID, *s.ProvinceID)
		}
		return db
	}
}

func paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		offset := (page - 1) * pageSize
		return db.Offset(offset).Limit(pageSize)
	}
}

func likePattern(keyword string) string {
	return "%" + keyword + "%"
}
