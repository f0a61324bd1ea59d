package request_models

type CreateStaffRequest struct {
	Name               string  `json:"name" binding:"required,min=2,max=100"`
	Email              string  `json:"email" binding:"required,email"`
	Password           string  `json:"password" binding:"required,min=8"`
	Phone              string  `json:"phone" binding:"omitempty,max=30"`
	Role               string  `json:"role" binding:"omitempty,user_role"`
	AssignedProvinceID *string `json:"assigned_province_id" binding:"omitempty,uuid"`
	AssignedDistrictID *string `json:"assigned_district_id" binding:"omitempty,uuid"`
}

// UpdateStaffRequest: an empty string for an assignment clears it.
type UpdateStaffRequest struct {
	Name               *string `json:"name" binding:"omitempty,min=2,max=100"`
	Email              *string `json:"email" binding:"omitempty,email"`
	Password           *string `json:"password" binding:"omitempty,min=8"`
	Phone              *string `json:"phone" binding:"omitempty,max=30"`
	Role               *string `json:"role" binding:"omitempty,user_role"`
	AssignedProvinceID *string `json:"assigned_province_id" binding:"omitempty,uuid"`
	AssignedDistrictID *string `json:"assigned_district_id" binding:"omitempty,uuid"`
	IsActive           *bool   `json:"is_active"`
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}
