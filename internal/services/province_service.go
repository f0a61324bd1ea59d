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

type ProvinceServiceInterface interface {
	List(ctx context.Context, actor Actor, keyword string, page, pageSize int) (*response_models.PagedResponse[*response_models.ProvinceResponse], error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*response_models.ProvinceResponse, error)
	Create(ctx context.Context, actor Actor, request request_models.CreateProvinceRequest) (*response_models.ProvinceResponse, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, request request_models.UpdateProvinceRequest) (*response_models.ProvinceResponse, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type ProvinceService struct {
	provinceRepository repositories.ProvinceRepository
	userRepository     repositories.UserRepository
	audit              AuditServiceInterface
}

func NewProvinceService(provinceRepository repositories.ProvinceRepository, userRepository repositories.UserRepository, audit AuditServiceInterface) ProvinceServiceInterface {
	return &ProvinceService{
		provinceRepository: provinceRepository,
		userRepository:     userRepository,
		audit:              audit,
	}
}

func (p *ProvinceService) List(ctx context.Context, actor Actor, keyword string, page, pageSize int) (*response_models.PagedResponse[*response_models.ProvinceResponse], error) {
	provinces, total, err := p.provinceRepository.List(ctx, actor.Scope, strings.TrimSpace(keyword), page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	items := make([]*response_models.ProvinceResponse, 0, len(provinces))
	for i := range provinces {
		items = append(items, response_models.ToProvinceResponse(&provinces[i]))
	}
	result := response_models.NewPage(items, total, page, pageSize)
	return &result, nil
}

func (p *ProvinceService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*response_models.ProvinceResponse, error) {
	province, err := p.provinceRepository.FindByID(ctx, id, actor.Scope)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if province == nil {
		return nil, utils.ErrProvinceNotFound
	}
	return response_models.ToProvinceResponse(province), nil
}

func (p *ProvinceService) Create(ctx context.Context, actor Actor, request request_models.CreateProvinceRequest) (*response_models.ProvinceResponse, error) {
	name := strings.TrimSpace(request.Name)
	existing, err := p.provinceRepository.FindByName(ctx, name)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrDuplicateName
	}

	province := &db_models.Province{
		Name: name,
		Code: strings.TrimSpace(request.Code),
	}
	if err := p.provinceRepository.Insert(ctx, province); err != nil {
		return nil, utils.ErrDatabaseError
	}

	p.audit.Record(ctx, actor, ActionCreate, EntityProvince, province.ID.String(), map[string]interface{}{"name": province.Name})
	return response_models.ToProvinceResponse(province), nil
}

func (p *ProvinceService) Update(ctx context.Context, actor Actor, id uuid.UUID, request request_models.UpdateProvinceRequest) (*response_models.ProvinceResponse, error) {
	province, err := p.provinceRepository.FindByID(ctx, id, actor.Scope)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if province == nil {
		return nil, utils.ErrProvinceNotFound
	}

	if request.Name != nil {
		name := strings.TrimSpace(*request.Name)
		if name != province.Name {
			existing, err := p.provinceRepository.FindByName(ctx, name)
			if err != nil {
				return nil, utils.ErrDatabaseError
			}
			if existing != nil {
				return nil, utils.ErrDuplicateName
			}
			province.Name = name
		}
	}
	if request.Code != nil {
		province.Code = strings.TrimSpace(*request.Code)
	}

	if err := p.provinceRepository.Update(ctx, province); err != nil {
		return nil, utils.ErrDatabaseError
	}

	p.audit.Record(ctx, actor, ActionUpdate, EntityProvince, province.ID.String(), map[string]interface{}{"name": province.Name, "code": province.Code})
	return response_models.ToProvinceResponse(province), nil
}

func (p *ProvinceService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	province, err := p.provinceRepository.FindByID(ctx, id, actor.Scope)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if province == nil {
		return utils.ErrProvinceNotFound
	}

	districts, err := p.provinceRepository.CountDistricts(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	staff, err := p.userRepository.CountByAssignment(ctx, &id, nil)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if districts > 0 || staff > 0 {
		return utils.ErrHasChildren
	}

	if err := p.provinceRepository.Delete(ctx, id); err != nil {
		return utils.ErrDatabaseError
	}

	p.audit.Record(ctx, actor, ActionDelete, EntityProvince, id.String(), map[string]interface{}{"name": province.Name})
	return nil
}
