package province_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"netops/internal/repositories"
	"netops/internal/services"
)

var Module = fx.Provide(
	NewProvinceRepo, NewDistrictRepo, NewTownRepo,
	NewProvinceService, NewDistrictService, NewTownService)

func NewProvinceRepo(db *gorm.DB) repositories.ProvinceRepository {
	return repositories.NewProvinceRepository(db)
}

func NewDistrictRepo(db *gorm.DB) repositories.DistrictRepository {
	return repositories.NewDistrictRepository(db)
}

func NewTownRepo(db *gorm.DB) repositories.TownRepository {
	return repositories.NewTownRepository(db)
}

func NewProvinceService(repo repositories.ProvinceRepository, userRepo repositories.UserRepository, audit services.AuditServiceInterface) services.ProvinceServiceInterface {
	return services.NewProvinceService(repo, userRepo, audit)
}

func NewDistrictService(repo repositories.DistrictRepository, provinceRepo repositories.ProvinceRepository, userRepo repositories.UserRepository, audit services.AuditServiceInterface) services.DistrictServiceInterface {
	return services.NewDistrictService(repo, provinceRepo, userRepo, audit)
}

func NewTownService(repo repositories.TownRepository, districtRepo repositories.DistrictRepository, audit services.AuditServiceInterface) services.TownServiceInterface {
	return services.NewTownService(repo, districtRepo, audit)
}
