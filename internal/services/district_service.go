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

type DistrictServiceInterface interface {
	List(ctx context.Context, actor Actor, provinceID *uuid.UUID, keyword string, page, pageSize int) (*response_models.PagedResponse[*response_models.DistrictResponse], error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*response_models.DistrictResponse, error)
	Create(ctx context.Context, actor Actor, request request_models.CreateDistrictRequest) (*response_models.DistrictResponse, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, request request_models.UpdateDistrictRequest) (*response_models.DistrictResponse, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type DistrictService struct {
	districtRepository repositories.DistrictRepository
	provinceRepository repositories.ProvinceRepository
	userRepository     repositories.UserRepository
	audit              AuditServiceInterface
}

func NewDistrictService(
	districtRepository repositories.DistrictRepository,
	provinceRepository repositories.ProvinceRepository,
	userRepository repositories.UserRepository,
	audit AuditServiceInterface,
) DistrictServiceInterface {
	return &DistrictService{
		districtRepository: districtRepository,
		provinceRepository: provinceRepository,
		userRepository:     userRepository,
		audit:              audit,
	}
}

func (d *DistrictService) List(ctx context.Context, actor Actor, provinceID *uuid.UUID, keyword string, page, pageSize int) (*response_models.PagedResponse[*response_models.DistrictResponse], error) {
	districts, total, err := d.districtRepository.List(ctx, actor.Scope, provinceID, strings.TrimSpace(keyword), page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	items := make([]*response_models.DistrictResponse, 0, len(districts))
	for i := range districts {
		items = append(items, response_models.ToDistrictResponse(&districts[i]))
	}
	result := response_models.NewPage(items, total, page, pageSize)
	return &result, nil
}

func (d *DistrictService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*response_models.DistrictResponse, error) {
	district, err := d.districtRepository.FindByID(ctx, id, actor.Scope)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if district == nil {
		return nil, utils.ErrDistrictNotFound
	}
	return response_models.ToDistrictResponse(district), nil
}

func (d *DistrictService) requireProvince(ctx context.Context, raw string) (*db_models.Province, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, utils.NewValidationError("province_id", "must be a valid UUID")
	}
	province, err := d.provinceRepository.FindByID(ctx, id, repositories.GlobalScope())
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if province == nil {
		return nil, utils.NewValidationError("province_id", "province does not exist")
	}
	return province, nil
}

func (d *DistrictService) ensureUniqueName(ctx context.Context, provinceID uuid.UUID, name string, self *uuid.UUID) error {
	existing, err := d.districtRepository.FindByName(ctx, provinceID, name)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing != nil && (self == nil || existing.ID != *self) {
		return utils.ErrDuplicateName
	}
	return nil
}

func (d *DistrictService) Create(ctx context.Context, actor Actor, request request_models.CreateDistrictRequest) (*response_models.DistrictResponse, error) {
	province, err := d.requireProvince(ctx, request.ProvinceID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(request.Name)
	if err := d.ensureUniqueName(ctx, province.ID, name, nil); err != nil {
		return nil, err
	}

	district := &db_models.District{Name: name, ProvinceID: province.ID}
	if err := d.districtRepository.Insert(ctx, district); err != nil {
		return nil, utils.ErrDatabaseError
	}
	district.Province = province

	d.audit.Record(ctx, actor, ActionCreate, EntityDistrict, district.ID.String(),
		map[string]interface{}{"name": district.Name, "province_id": province.ID.String()})
	return response_models.ToDistrictResponse(district), nil
}

func (d *DistrictService) Update(ctx context.Context, actor Actor, id uuid.UUID, request request_models.UpdateDistrictRequest) (*response_models.DistrictResponse, error) {
	district, err := d.districtRepository.FindByID(ctx, id, actor.Scope)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if district == nil {
		return nil, utils.ErrDistrictNotFound
	}

	if request.ProvinceID != nil && *request.ProvinceID != district.ProvinceID.String() {
		province, err := d.requireProvince(ctx, *request.ProvinceID)
		if err != nil {
			return nil, err
		}
		district.ProvinceID = province.ID
		district.Province = province
	}
	if request.Name != nil {
		district.Name = strings.TrimSpace(*request.Name)
	}
	if err := d.ensureUniqueName(ctx, district.ProvinceID, district.Name, &district.ID); err != nil {
		return nil, err
	}

	if err := d.districtRepository.Update(ctx, district); err != nil {
		return nil, utils.ErrDatabaseError
	}

	d.audit.Record(ctx, actor, ActionUpdate, EntityDistrict, district.ID.String(),
		map[string]interface{}{"name": district.Name, "province_id": district.ProvinceID.String()})
	return response_models.ToDistrictResponse(district), nil
}

func (d *DistrictService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	district, err := d.districtRepository.FindByID(ctx, id, actor.Scope)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if district == nil {
		return utils.ErrDistrictNotFound
	}

	towns, err := d.districtRepository.CountTowns(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	staff, err := d.userRepository.CountByAssignment(ctx, nil, &id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if towns > 0 || staff > 0 {
		return utils.ErrHasChildren
	}

	if err := d.districtRepository.Delete(ctx, id); err != nil {
		return utils.ErrDatabaseError
	}

	d.audit.Record(ctx, actor, ActionDelete, EntityDistrict, id.String(), map[string]interface{}{"name": district.Name})
	return nil
}
