package staff_fx

import (
	"go.uber.org/fx"

	"netops/internal/repositories"
	"netops/internal/services"
)

var Module = fx.Provide(provideStaffService)

func provideStaffService(
	userRepo repositories.UserRepository,
	provinceRepo repositories.ProvinceRepository,
	districtRepo repositories.DistrictRepository,
	audit services.AuditServiceInterface,
) services.StaffServiceInterface {
	return services.NewStaffService(userRepo, provinceRepo, districtRepo, audit)
}
