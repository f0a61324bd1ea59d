package request_models

type CreateProvinceRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
	Code string `json:"code" binding:"omitempty,max=20"`
}

type UpdateProvinceRequest struct {
	Name *string `json:"name" binding:"omitempty,min=2,max=100"`
	Code *string `json:"code" binding:"omitempty,max=20"`
}

type CreateDistrictRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=100"`
	ProvinceID string `json:"province_id" binding:"required,uuid"`
}

type UpdateDistrictRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=2,max=100"`
	ProvinceID *string `json:"province_id" binding:"omitempty,uuid"`
}

type CreateTownRequest struct {
	Name       string  `json:"name" binding:"required,min=2,max=100"`
	DistrictID string  `json:"district_id" binding:"required,uuid"`
	Latitude   float64 `json:"latitude" binding:"gte=-90,lte=90"`
	Longitude  float64 `json:"longitude" binding:"gte=-180,lte=180"`
}

type UpdateTownRequest struct {
	Name       *string  `json:"name" binding:"omitempty,min=2,max=100"`
	DistrictID *string  `json:"district_id" binding:"omitempty,uuid"`
	Latitude   *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude  *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
}
