package services

import (
	"github.com/google/uuid"

	"netops/internal/models/db_models"
	"netops/internal/repositories"
	"netops/pkg/utils"
)

// Actor is the authenticated caller a service operation runs for.
type Actor struct {
	User  *db_models.User
	Scope repositories.GeoScope
	IP    string
}

func (a Actor) UserID() *uuid.UUID {
	if a.User == nil {
		return nil
	}
	id := a.User.ID
	return &id
}

func (a Actor) IsAdmin() bool {
	return a.User != nil && a.User.Role == db_models.RoleAdmin
}

// SystemActor is used by background jobs.
func SystemActor() Actor {
	return Actor{Scope: repositories.GlobalScope()}
}

// ScopeFor derives the geographic scope of a user. Admins are global. Staff
// are limited to their district, else their province. Unassigned staff are
// global when unassignedSeesAll is set and see nothing otherwise.
func ScopeFor(user *db_models.User, unassignedSeesAll bool) repositories.GeoScope {
	if user == nil {
		return repositories.GeoScope{Deny: true}
	}
	if user.Role == db_models.RoleAdmin {
		return repositories.GlobalScope()
	}
	if user.AssignedDistrictID != nil {
		id := *user.AssignedDistrictID
		return repositories.GeoScope{DistrictID: &id}
	}
	if user.AssignedProvinceID != nil {
		id := *user.AssignedProvinceID
		return repositories.GeoScope{ProvinceID: &id}
	}
	if unassignedSeesAll {
		return repositories.GlobalScope()
	}
	return repositories.GeoScope{Deny: true}
}

func parseOptionalUUID(field string, raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, utils.NewValidationError(field, "must be a valid UUID")
	}
	return &id, nil
}
