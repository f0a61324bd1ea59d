package response_models

import "netops/internal/models/db_models"

type ProvinceResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type DistrictResponse struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	ProvinceID string            `json:"province_id"`
	Province   *ProvinceResponse `json:"province,omitempty"`
	CreatedAt  string            `json:"created_at"`
	UpdatedAt  string            `json:"updated_at"`
}

type TownResponse struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	DistrictID string            `json:"district_id"`
	District   *DistrictResponse `json:"district,omitempty"`
	Latitude   float64           `json:"latitude"`
	Longitude  float64           `json:"longitude"`
	CreatedAt  string            `json:"created_at"`
	UpdatedAt  string            `json:"updated_at"`
}

func ToProvinceResponse(p *db_models.Province) *ProvinceResponse {
	if p == nil {
		return nil
	}
	return &ProvinceResponse{
		ID:        p.ID.String(),
		Name:      p.Name,
		Code:      p.Code,
		CreatedAt: formatUnix(p.CreatedAt),
		UpdatedAt: formatUnix(p.UpdatedAt),
	}
}

func ToDistrictResponse(d *db_models.District) *DistrictResponse {
	if d == nil {
		return nil
	}
	return &DistrictResponse{
		ID:         d.ID.String(),
		Name:       d.Name,
		ProvinceID: d.ProvinceID.String(),
		Province:   ToProvinceResponse(d.Province),
		CreatedAt:  formatUnix(d.CreatedAt),
		UpdatedAt:  formatUnix(d.UpdatedAt),
	}
}

func ToTownResponse(t *db_models.Town) *TownResponse {
	if t == nil {
		return nil
	}
	return &TownResponse{
		ID:         t.ID.String(),
		Name:       t.Name,
		DistrictID: t.DistrictID.String(),
		District:   ToDistrictResponse(t.District),
		Latitude:   t.Latitude,
		Longitude:  t.Longitude,
		CreatedAt:  formatUnix(t.CreatedAt),
		UpdatedAt:  formatUnix(t.UpdatedAt),
	}
}
