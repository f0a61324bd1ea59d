package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "netops/docs"
	"netops/internal/api/controllers"
	"netops/internal/infra"
	"netops/internal/models/db_models"
	"netops/pkg/logger"
	"netops/pkg/middleware"
	"netops/pkg/utils"
)

// Controllers groups every handler the router mounts.
type Controllers struct {
	Account        *controllers.AccountController
	Provinces      *controllers.ProvincesController
	Districts      *controllers.DistrictsController
	Towns          *controllers.TownsController
	Routers        *controllers.RoutersController
	Staff          *controllers.StaffController
	Alerts         *controllers.AlertsController
	ConnectedUsers *controllers.ConnectedUsersController
	Settings       *controllers.SettingsController
	Dashboard      *controllers.DashboardController
	Logs           *controllers.LogsController
	Health         *controllers.HealthController
}

func ProvideRouter(
	cfg *infra.Config,
	auth *middleware.AuthMiddleware,
	loginLimiter *middleware.IPRateLimiter,
	account *controllers.AccountController,
	provinces *controllers.ProvincesController,
	districts *controllers.DistrictsController,
	towns *controllers.TownsController,
	routers *controllers.RoutersController,
	staff *controllers.StaffController,
	alerts *controllers.AlertsController,
	connectedUsers *controllers.ConnectedUsersController,
	settings *controllers.SettingsController,
	dashboard *controllers.DashboardController,
	logs *controllers.LogsController,
	health *controllers.HealthController,
) (*gin.Engine, error) {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := utils.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(logger.GinLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.TraceHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.TraceHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterRoutes(r, auth, loginLimiter, Controllers{
		Account:        account,
		Provinces:      provinces,
		Districts:      districts,
		Towns:          towns,
		Routers:        routers,
		Staff:          staff,
		Alerts:         alerts,
		ConnectedUsers: connectedUsers,
		Settings:       settings,
		Dashboard:      dashboard,
		Logs:           logs,
		Health:         health,
	})

	return r, nil
}

func RegisterRoutes(r *gin.Engine, auth *middleware.AuthMiddleware, loginLimiter *middleware.IPRateLimiter, ctl Controllers) {
	staffOnly := auth.RequireAuth(db_models.RoleStaff)
	adminOnly := auth.RequireAuth(db_models.RoleAdmin)
	session := auth.RequireAuth("")

	r.GET("/health", ctl.Health.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/login", middleware.RateLimit(loginLimiter), ctl.Account.Login)
	authGroup.POST("/logout", auth.OptionalAuth(), ctl.Account.Logout)
	authGroup.GET("/me", session, ctl.Account.Me)

	profileGroup := api.Group("/profile", session)
	profileGroup.PUT("", ctl.Account.UpdateProfile)
	profileGroup.PUT("/password", ctl.Account.ChangePassword)

	provincesGroup := api.Group("/provinces")
	provincesGroup.GET("", staffOnly, ctl.Provinces.ListProvinces)
	provincesGroup.GET("/:id", staffOnly, ctl.Provinces.GetProvince)
	provincesGroup.POST("", adminOnly, ctl.Provinces.CreateProvince)
	provincesGroup.PUT("/:id", adminOnly, ctl.Provinces.UpdateProvince)
	provincesGroup.DELETE("/:id", adminOnly, ctl.Provinces.DeleteProvince)

	districtsGroup := api.Group("/districts")
	districtsGroup.GET("", staffOnly, ctl.Districts.ListDistricts)
	districtsGroup.GET("/:id", staffOnly, ctl.Districts.GetDistrict)
	districtsGroup.POST("", adminOnly, ctl.Districts.CreateDistrict)
	districtsGroup.PUT("/:id", adminOnly, ctl.Districts.UpdateDistrict)
	districtsGroup.DELETE("/:id", adminOnly, ctl.Districts.DeleteDistrict)

	townsGroup := api.Group("/towns")
	townsGroup.GET("", staffOnly, ctl.Towns.ListTowns)
	townsGroup.GET("/:id", staffOnly, ctl.Towns.GetTown)
	townsGroup.POST("", adminOnly, ctl.Towns.CreateTown)
	townsGroup.PUT("/:id", adminOnly, ctl.Towns.UpdateTown)
	townsGroup.DELETE("/:id", adminOnly, ctl.Towns.DeleteTown)

	routersGroup := api.Group("/routers")
	routersGroup.GET("", staffOnly, ctl.Routers.ListRouters)
	routersGroup.GET("/:id", staffOnly, ctl.Routers.GetRouter)
	routersGroup.PATCH("/:id/status", staffOnly, ctl.Routers.UpdateRouterStatus)
	routersGroup.POST("", adminOnly, ctl.Routers.CreateRouter)
	routersGroup.PUT("/:id", adminOnly, ctl.Routers.UpdateRouter)
	routersGroup.DELETE("/:id", adminOnly, ctl.Routers.DeleteRouter)

	staffGroup := api.Group("/staff", adminOnly)
	staffGroup.GET("", ctl.Staff.ListStaff)
	staffGroup.GET("/:id", ctl.Staff.GetStaff)
	staffGroup.POST("", ctl.Staff.CreateStaff)
	staffGroup.PUT("/:id", ctl.Staff.UpdateStaff)
	staffGroup.PATCH("/:id/active", ctl.Staff.SetStaffActive)
	staffGroup.DELETE("/:id", ctl.Staff.DeleteStaff)

	alertsGroup := api.Group("/alerts")
	alertsGroup.GET("", staffOnly, ctl.Alerts.ListAlerts)
	alertsGroup.GET("/:id", staffOnly, ctl.Alerts.GetAlert)
	alertsGroup.POST("", staffOnly, ctl.Alerts.CreateAlert)
	alertsGroup.POST("/:id/resolve", staffOnly, ctl.Alerts.ResolveAlert)
	alertsGroup.POST("/:id/dismiss", staffOnly, ctl.Alerts.DismissAlert)
	alertsGroup.DELETE("/:id", adminOnly, ctl.Alerts.DeleteAlert)

	devicesGroup := api.Group("/connected-users")
	devicesGroup.GET("", staffOnly, ctl.ConnectedUsers.ListConnectedUsers)
	devicesGroup.GET("/:id", staffOnly, ctl.ConnectedUsers.GetConnectedUser)
	devicesGroup.POST("", staffOnly, ctl.ConnectedUsers.CreateConnectedUser)
	devicesGroup.POST("/:id/block", staffOnly, ctl.ConnectedUsers.BlockConnectedUser)
	devicesGroup.POST("/:id/unblock", staffOnly, ctl.ConnectedUsers.UnblockConnectedUser)
	devicesGroup.DELETE("/:id", adminOnly, ctl.ConnectedUsers.DeleteConnectedUser)

	api.GET("/firewall/status", adminOnly, ctl.ConnectedUsers.FirewallStatus)

	settingsGroup := api.Group("/settings", adminOnly)
	settingsGroup.GET("", ctl.Settings.ListSettings)
	settingsGroup.GET("/export", ctl.Settings.ExportSettings)
	settingsGroup.GET("/:category", ctl.Settings.ListSettingsByCategory)
	settingsGroup.PUT("", ctl.Settings.UpsertSettings)
	settingsGroup.DELETE("/:key", ctl.Settings.DeleteSetting)

	dashboardGroup := api.Group("/dashboard")
	dashboardGroup.GET("/stats", staffOnly, ctl.Dashboard.GetStats)
	dashboardGroup.POST("/stats/clear-cache", adminOnly, ctl.Dashboard.ClearCache)

	api.GET("/logs", adminOnly, ctl.Logs.ListLogs)
}
