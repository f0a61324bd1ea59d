package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"netops/internal/models/db_models"
	"netops/internal/models/request_models"
	"netops/internal/models/response_models"
	"netops/internal/repositories"
	"netops/pkg/utils"
)

type TownServiceInterface interface {
	List(ctx context.Context, actor Actor, districtID *uuid.UUID, keyword string, page, pageSize int) (*response_models.PagedResponse[*response_models.TownResponse], error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*response_models.TownResponse, error)
	Create(ctx context.Context, actor Actor, request request_models.CreateTownRequest) (*response_models.TownResponse, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, request request_models.UpdateTownRequest) (*response_models.TownResponse, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type TownService struct {
	townRepository     repositories.TownRepository
	districtRepository repositories.DistrictRepository
	audit              AuditServiceInterface
}

func NewTownService(townRepository repositories.TownRepository, districtRepository repositories.DistrictRepository, audit AuditServiceInterface) TownServiceInterface {
	return &TownService{
		townRepository:     townRepository,
		districtRepository: districtRepository,
		audit:              audit,
	}
}

func (t *TownService) List(ctx context.Context, actor Actor, districtID *uuid.UUID, keyword string, page, pageSize int) (*response_models.PagedResponse[*response_models.TownResponse], error) {
	towns, total, err := t.townRepository.List(ctx, actor.Scope, districtID, strings.TrimSpace(keyword), page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	items := make([]*response_models.TownResponse, 0, len(towns))
	for i := range towns {
		items = append(items, response_models.ToTownResponse(&towns[i]))
	}
	result := response_models.NewPage(items, total, page, pageSize)
	return &result, nil
}

func (t *TownService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*response_models.TownResponse, error) {
	town, err := t.townRepository.FindByID(ctx, id, actor.Scope)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if town == nil {
		return nil, utils.ErrTownNotFound
	}
	return response_models.ToTownResponse(town), nil
}

func (t *TownService) requireDistrict(ctx context.Context, raw string) (*db_models.District, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, utils.NewValidationError("district_id", "must be a valid UUID")
	}
	district, err := t.districtRepository.FindByID(ctx, id, repositories.GlobalScope())
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if district == nil {
		return nil, utils.NewValidationError("district_id", "district does not exist")
	}
	return district, nil
}

func (t *TownService) ensureUniqueName(ctx context.Context, districtID uuid.UUID, name string, self *uuid.UUID) error {
	existing, err := t.townRepository.FindByName(ctx, districtID, name)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing != nil && (self == nil || existing.ID != *self) {
		return utils.ErrDuplicateName
	}
	return nil
}

func (t *TownService) Create(ctx context.Context, actor Actor, request request_models.CreateTownRequest) (*response_models.TownResponse, error) {
	district, err := t.requireDistrict(ctx, request.DistrictID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(request.Name)
	if err := t.ensureUniqueName(ctx, district.ID, name, nil); err != nil {
		return nil, err
	}

	town := &db_models.Town{
		Name:       name,
		DistrictID: district.ID,
		Latitude:   request.Latitude,
		Longitude:  request.Longitude,
	}
	if err := t.townRepository.Insert(ctx, town); err != nil {
		return nil, utils.ErrDatabaseError
	}
	town.District = district

	t.audit.Record(ctx, actor, ActionCreate, EntityTown, town.ID.String(),
		map[string]interface{}{"name": town.Name, "district_id": district.ID.String()})
	return response_models.ToTownResponse(town), nil
}

func (t *TownService) Update(ctx context.Context, actor Actor, id uuid.UUID, request request_models.UpdateTownRequest) (*response_models.TownResponse, error) {
	town, err := t.townRepository.FindByID(ctx, id, actor.Scope)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if town == nil {
		return nil, utils.ErrTownNotFound
	}

	if request.DistrictID != nil && *request.DistrictID != town.DistrictID.String() {
		district, err := t.requireDistrict(ctx, *request.DistrictID)
		if err != nil {
			return nil, err
		}
		town.DistrictID = district.ID
		town.District = district
	}
	if request.Name != nil {
		town.Name = strings.TrimSpace(*request.Name)
	}
	if request.Latitude != nil {
		town.Latitude = *request.Latitude
	}
	if request.Longitude != nil {
		town.Longitude = *request.Longitude
	}
	if err := t.ensureUniqueName(ctx, town.DistrictID, town.Name, &town.ID); err != nil {
		return nil, err
	}

	if err := t.townRepository.Update(ctx, town); err != nil {
		return nil, utils.ErrDatabaseError
	}

	t.audit.Record(ctx, actor, ActionUpdate, EntityTown, town.ID.String(),
		map[string]interface{}{"name": town.Name, "district_id": town.DistrictID.String()})
	return response_models.ToTownResponse(town), nil
}

func (t *TownService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	town, err := t.townRepository.FindByID(ctx, id, actor.Scope)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if town == nil {
		return utils.ErrTownNotFound
	}

	routers, err := t.townRepository.CountRouters(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if routers > 0 {
		return utils.ErrHasChildren
	}

	if err := t.townRepository.Delete(ctx, id); err != nil {
		return utils.ErrDatabaseError
	}

	t.audit.Record(ctx, actor, ActionDelete, EntityTown, id.String(), map[string]interface{}{"name": town.Name})
	return nil
}
