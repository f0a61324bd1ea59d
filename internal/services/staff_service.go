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

type StaffServiceInterface interface {
	List(ctx context.Context, filter repositories.UserFilter, page, pageSize int) (*response_models.PagedResponse[*response_models.UserResponse], error)
	Get(ctx context.Context, id uuid.UUID) (*response_models.UserResponse, error)
	Create(ctx context.Context, actor Actor, request request_models.CreateStaffRequest) (*response_models.UserResponse, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, request request_models.UpdateStaffRequest) (*response_models.UserResponse, error)
	SetActive(ctx context.Context, actor Actor, id uuid.UUID, active bool) (*response_models.UserResponse, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type StaffService struct {
	userRepository     repositories.UserRepository
	provinceRepository repositories.ProvinceRepository
	districtRepository repositories.DistrictRepository
	audit              AuditServiceInterface
}

func NewStaffService(
	userRepository repositories.UserRepository,
	provinceRepository repositories.ProvinceRepository,
	districtRepository repositories.DistrictRepository,
	audit AuditServiceInterface,
) StaffServiceInterface {
	return &StaffService{
		userRepository:     userRepository,
		provinceRepository: provinceRepository,
		districtRepository: districtRepository,
		audit:              audit,
	}
}

func (s *StaffService) List(ctx context.Context, filter repositories.UserFilter, page, pageSize int) (*response_models.PagedResponse[*response_models.UserResponse], error) {
	filter.Keyword = strings.TrimSpace(filter.Keyword)
	users, total, err := s.userRepository.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	items := make([]*response_models.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, response_models.ToUserResponse(&users[i]))
	}
	result := response_models.NewPage(items, total, page, pageSize)
	return &result, nil
}

func (s *StaffService) find(ctx context.Context, id uuid.UUID) (*db_models.User, error) {
	user, err := s.userRepository.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}
	return user, nil
}

func (s *StaffService) Get(ctx context.Context, id uuid.UUID) (*response_models.UserResponse, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return response_models.ToUserResponse(user), nil
}

// resolveAssignment checks the province/district pair. A district alone
// implies its province; a district from another province is rejected.
func (s *StaffService) resolveAssignment(ctx context.Context, provinceID, districtID *uuid.UUID) (*db_models.Province, *db_models.District, error) {
	var province *db_models.Province
	var district *db_models.District
	var err error

	if provinceID != nil {
		province, err = s.provinceRepository.FindByID(ctx, *provinceID, repositories.GlobalScope())
		if err != nil {
			return nil, nil, utils.ErrDatabaseError
		}
		if province == nil {
			return nil, nil, utils.NewValidationError("assigned_province_id", "province does not exist")
		}
	}
	if districtID != nil {
		district, err = s.districtRepository.FindByID(ctx, *districtID, repositories.GlobalScope())
		if err != nil {
			return nil, nil, utils.ErrDatabaseError
		}
		if district == nil {
			return nil, nil, utils.NewValidationError("assigned_district_id", "district does not exist")
		}
		if province == nil {
			province = district.Province
		} else if district.ProvinceID != province.ID {
			return nil, nil, utils.NewValidationError("assigned_district_id", "district does not belong to the assigned province")
		}
	}
	return province, district, nil
}

func applyAssignment(user *db_models.User, province *db_models.Province, district *db_models.District) {
	user.AssignedProvinceID, user.AssignedProvince = nil, nil
	user.AssignedDistrictID, user.AssignedDistrict = nil, nil
	if province != nil {
		id := province.ID
		user.AssignedProvinceID = &id
		user.AssignedProvince = province
	}
	if district != nil {
		id := district.ID
		user.AssignedDistrictID = &id
		user.AssignedDistrict = district
	}
}

func (s *StaffService) Create(ctx context.Context, actor Actor, request request_models.CreateStaffRequest) (*response_models.UserResponse, error) {
	email := normalizeEmail(request.Email)
	existing, err := s.userRepository.FindByEmail(ctx, email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	provinceID, err := parseOptionalUUID("assigned_province_id", request.AssignedProvinceID)
	if err != nil {
		return nil, err
	}
	districtID, err := parseOptionalUUID("assigned_district_id", request.AssignedDistrictID)
	if err != nil {
		return nil, err
	}
	province, district, err := s.resolveAssignment(ctx, provinceID, districtID)
	if err != nil {
		return nil, err
	}

	hashed, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, err
	}

	role := db_models.Role(request.Role)
	if role == "" {
		role = db_models.RoleStaff
	}

	user := &db_models.User{
		Name:         strings.TrimSpace(request.Name),
		Email:        email,
		PasswordHash: hashed,
		Phone:        strings.TrimSpace(request.Phone),
		Role:         role,
		IsActive:     true,
	}
	applyAssignment(user, province, district)

	if err := s.userRepository.Insert(ctx, user); err != nil {
		return nil, utils.ErrDatabaseError
	}

	s.audit.Record(ctx, actor, ActionCreate, EntityUser, user.ID.String(),
		map[string]interface{}{"email": user.Email, "role": user.Role})
	return response_models.ToUserResponse(user), nil
}

func (s *StaffService) Update(ctx context.Context, actor Actor, id uuid.UUID, request request_models.UpdateStaffRequest) (*response_models.UserResponse, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := map[string]interface{}{}
	if request.Email != nil {
		email := normalizeEmail(*request.Email)
		if email != user.Email {
			existing, err := s.userRepository.FindByEmail(ctx, email)
			if err != nil {
				return nil, utils.ErrDatabaseError
			}
			if existing != nil {
				return nil, utils.ErrEmailAlreadyExists
			}
			user.Email = email
			changed["email"] = email
		}
	}
	if request.Name != nil {
		user.Name = strings.TrimSpace(*request.Name)
		changed["name"] = user.Name
	}
	if request.Phone != nil {
		user.Phone = strings.TrimSpace(*request.Phone)
		changed["phone"] = user.Phone
	}
	if request.Password != nil {
		hashed, err := utils.HashPassword(*request.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashed
		changed["password"] = "changed"
	}
	if request.Role != nil {
		role := db_models.Role(*request.Role)
		if actor.User != nil && actor.User.ID == user.ID && role != user.Role {
			return nil, utils.NewValidationError("role", "cannot change your own role")
		}
		user.Role = role
		changed["role"] = role
	}
	if request.IsActive != nil {
		if actor.User != nil && actor.User.ID == user.ID && !*request.IsActive {
			return nil, utils.NewValidationError("is_active", "cannot deactivate your own account")
		}
		user.IsActive = *request.IsActive
		changed["is_active"] = user.IsActive
	}

	if request.AssignedProvinceID != nil || request.AssignedDistrictID != nil {
		provinceID := user.AssignedProvinceID
		districtID := user.AssignedDistrictID
		if request.AssignedProvinceID != nil {
			if provinceID, err = parseOptionalUUID("assigned_province_id", request.AssignedProvinceID); err != nil {
				return nil, err
			}
			// Moving to another province drops a district that no longer fits.
			if districtID != nil && request.AssignedDistrictID == nil && user.AssignedDistrict != nil &&
				(provinceID == nil || user.AssignedDistrict.ProvinceID != *provinceID) {
				districtID = nil
			}
		}
		if request.AssignedDistrictID != nil {
			if districtID, err = parseOptionalUUID("assigned_district_id", request.AssignedDistrictID); err != nil {
				return nil, err
			}
		}
		province, district, err := s.resolveAssignment(ctx, provinceID, districtID)
		if err != nil {
			return nil, err
		}
		applyAssignment(user, province, district)
		changed["assigned_province_id"] = uuidString(user.AssignedProvinceID)
		changed["assigned_district_id"] = uuidString(user.AssignedDistrictID)
	}

	if err := s.userRepository.Update(ctx, user); err != nil {
		return nil, utils.ErrDatabaseError
	}

	s.audit.Record(ctx, actor, ActionUpdate, EntityUser, user.ID.String(), changed)
	return response_models.ToUserResponse(user), nil
}

func (s *StaffService) SetActive(ctx context.Context, actor Actor, id uuid.UUID, active bool) (*response_models.UserResponse, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.User != nil && actor.User.ID == user.ID && !active {
		return nil, utils.NewValidationError("is_active", "cannot deactivate your own account")
	}

	if err := s.userRepository.UpdateFields(ctx, user.ID, map[string]interface{}{"is_active": active}); err != nil {
		return nil, utils.ErrDatabaseError
	}
	user.IsActive = active

	action := ActionDeactivate
	if active {
		action = ActionActivate
	}
	s.audit.Record(ctx, actor, action, EntityUser, user.ID.String(), nil)
	return response_models.ToUserResponse(user), nil
}

func (s *StaffService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if actor.User != nil && actor.User.ID == id {
		return utils.ErrCannotDeleteSelf
	}
	user, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.userRepository.Delete(ctx, user.ID); err != nil {
		return utils.ErrDatabaseError
	}
	s.audit.Record(ctx, actor, ActionDelete, EntityUser, user.ID.String(), map[string]interface{}{"email": user.Email})
	return nil
}

func uuidString(id *uuid.UUID) interface{} {
	if id == nil {
		return nil
	}
	return id.String()
}
