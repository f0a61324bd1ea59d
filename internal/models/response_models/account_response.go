package response_models

import "netops/internal/models/db_models"

type UserResponse struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	Email              string            `json:"email"`
	Phone              string            `json:"phone,omitempty"`
	Role               string            `json:"role"`
	AssignedProvinceID *string           `json:"assigned_province_id"`
	AssignedProvince   *ProvinceResponse `json:"assigned_province,omitempty"`
	AssignedDistrictID *string           `json:"assigned_district_id"`
	AssignedDistrict   *DistrictResponse `json:"assigned_district,omitempty"`
	IsActive           bool              `json:"is_active"`
	LastLoginAt        *string           `json:"last_login_at"`
	CreatedAt          string            `json:"created_at"`
	UpdatedAt          string            `json:"updated_at"`
}

func ToUserResponse(u *db_models.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:                 u.ID.String(),
		Name:               u.Name,
		Email:              u.Email,
		Phone:              u.Phone,
		Role:               string(u.Role),
		AssignedProvinceID: uuidPtrString(u.AssignedProvinceID),
		AssignedProvince:   ToProvinceResponse(u.AssignedProvince),
		AssignedDistrictID: uuidPtrString(u.AssignedDistrictID),
		AssignedDistrict:   ToDistrictResponse(u.AssignedDistrict),
		IsActive:           u.IsActive,
		LastLoginAt:        formatUnixPtr(u.LastLoginAt),
		CreatedAt:          formatUnix(u.CreatedAt),
		UpdatedAt:          formatUnix(u.UpdatedAt),
	}
}

type LoginResponse struct {
	User      *UserResponse `json:"user"`
	ExpiresAt string        `json:"expires_at"`
}
