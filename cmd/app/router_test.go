package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"netops/internal/api/controllers"
	"netops/internal/infra"
	"netops/internal/models/db_models"
	"netops/internal/repositories"
	"netops/internal/services"
	"netops/pkg/authz"
	mem "netops/pkg/memcache"
	"netops/pkg/middleware"
	"netops/pkg/utils"
)

const testPassword = "s3cret-pass"

type stubFirewall struct {
	failWith error
	blocked  []string
}

func (f *stubFirewall) Enabled() bool { return true }

func (f *stubFirewall) Host() string { return "fw.test" }

func (f *stubFirewall) Block(_ context.Context, address, _ string) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.blocked = append(f.blocked, address)
	return nil
}

func (f *stubFirewall) Unblock(context.Context, string) error { return f.failWith }

func (f *stubFirewall) Status(context.Context) (services.FirewallStatus, error) {
	return services.FirewallStatus{Reachable: f.failWith == nil}, f.failWith
}

type apiFixture struct {
	db       *gorm.DB
	engine   *gin.Engine
	firewall *stubFirewall
	router   db_models.Router
	alert    db_models.Alert
	device   db_models.ConnectedUser
}

func setupAPI(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, utils.RegisterValidators())

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, infra.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	f := &apiFixture{db: db, firewall: &stubFirewall{}}
	f.seed(t)

	userRepo := repositories.NewUserRepository(db)
	provinceRepo := repositories.NewProvinceRepository(db)
	districtRepo := repositories.NewDistrictRepository(db)
	townRepo := repositories.NewTownRepository(db)
	routerRepo := repositories.NewRouterRepository(db)
	alertRepo := repositories.NewAlertRepository(db)
	deviceRepo := repositories.NewConnectedUserRepository(db)
	audit := services.NewAuditService(repositories.NewLogRepository(db))

	account := services.NewAccountService(userRepo, utils.NewTokenManager("test-secret", time.Hour), audit)
	enforcer, err := authz.NewEnforcer()
	require.NoError(t, err)

	f.engine = gin.New()
	f.engine.Use(middleware.TraceIDMiddleware())
	RegisterRoutes(f.engine, middleware.NewAuthMiddleware(account, enforcer, false), middleware.NewIPRateLimiter(100), Controllers{
		Account:        controllers.NewAccountController(account, false),
		Provinces:      controllers.NewProvincesController(services.NewProvinceService(provinceRepo, userRepo, audit)),
		Districts:      controllers.NewDistrictsController(services.NewDistrictService(districtRepo, provinceRepo, userRepo, audit)),
		Towns:          controllers.NewTownsController(services.NewTownService(townRepo, districtRepo, audit)),
		Routers:        controllers.NewRoutersController(services.NewRouterService(routerRepo, townRepo, alertRepo, audit)),
		Staff:          controllers.NewStaffController(services.NewStaffService(userRepo, provinceRepo, districtRepo, audit)),
		Alerts:         controllers.NewAlertsController(services.NewAlertService(alertRepo, routerRepo, audit)),
		ConnectedUsers: controllers.NewConnectedUsersController(services.NewConnectedUserService(deviceRepo, routerRepo, f.firewall, audit)),
		Settings:       controllers.NewSettingsController(services.NewSettingService(repositories.NewSettingRepository(db), audit)),
		Dashboard:      controllers.NewDashboardController(services.NewDashboardService(repositories.NewDashboardRepository(db), mem.NewStatsCache(), time.Minute, audit)),
		Logs:           controllers.NewLogsController(audit),
		Health:         controllers.NewHealthController(db),
	})
	return f
}

func (f *apiFixture) seed(t *testing.T) {
	t.Helper()
	hash, err := utils.HashPassword(testPassword)
	require.NoError(t, err)
	require.NoError(t, f.db.Create(&db_models.User{
		Name: "Admin", Email: "admin@example.com", PasswordHash: hash, Role: db_models.RoleAdmin, IsActive: true,
	}).Error)

	f.router = db_models.Router{Name: "rt-core-01", Status: db_models.RouterStatusOnline}
	require.NoError(t, f.db.Create(&f.router).Error)

	f.alert = db_models.Alert{RouterID: f.router.ID, Type: "HIGH_CPU", Title: "CPU above 90%",
		Severity: db_models.AlertSeverityHigh, Status: db_models.AlertStatusActive}
	require.NoError(t, f.db.Create(&f.alert).Error)

	f.device = db_models.ConnectedUser{RouterID: f.router.ID, DeviceName: "laptop", IPAddress: "10.0.0.15"}
	require.NoError(t, f.db.Create(&f.device).Error)
}

// login signs the admin in and returns the session cookie.
func (f *apiFixture) login(t *testing.T) *http.Cookie {
	t.Helper()
	w := f.do(t, http.MethodPost, "/api/auth/login", `{"email":"admin@example.com","password":"`+testPassword+`"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == utils.AuthCookieName {
			return cookie
		}
	}
	t.Fatal("login did not set the session cookie")
	return nil
}

func (f *apiFixture) do(t *testing.T, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func (f *apiFixture) countLogs(t *testing.T, action string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&db_models.Log{}).Where("action = ?", action).Count(&n).Error)
	return n
}

type envelope struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	TraceID string          `json:"trace_id"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	f := setupAPI(t)

	w := f.do(t, http.MethodPost, "/api/auth/login", `{"email":"ADMIN@example.com","password":"`+testPassword+`"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var session *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == utils.AuthCookieName {
			session = cookie
		}
	}
	require.NotNil(t, session)
	assert.NotEmpty(t, session.Value)
	assert.True(t, session.HttpOnly)
	assert.Equal(t, "/", session.Path)
	assert.Positive(t, session.MaxAge)

	var data struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
		ExpiresAt string `json:"expires_at"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &data))
	assert.Equal(t, "admin@example.com", data.User.Email)
	assert.NotContains(t, w.Body.String(), testPassword)

	t.Run("wrong password", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/auth/login", `{"email":"admin@example.com","password":"not-it-at-all"}`, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("cookie opens the session", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/api/auth/me", "", session)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestLogout_RecordsSessionUser(t *testing.T) {
	f := setupAPI(t)
	cookie := f.login(t)

	w := f.do(t, http.MethodPost, "/api/auth/logout", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), f.countLogs(t, services.ActionLogout))

	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == utils.AuthCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)

	// Without a session the cookie is still cleared but nothing is recorded.
	w = f.do(t, http.MethodPost, "/api/auth/logout", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), f.countLogs(t, services.ActionLogout))
}

func TestCreateProvince_Created(t *testing.T) {
	f := setupAPI(t)
	cookie := f.login(t)

	w := f.do(t, http.MethodPost, "/api/provinces", `{"name":"Hue","code":"HUE"}`, cookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	env := decodeEnvelope(t, w)
	assert.Equal(t, "success", env.Status)
	assert.Equal(t, http.StatusCreated, env.Code)
	assert.NotEmpty(t, env.TraceID)

	var province struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &province))
	assert.Equal(t, "Hue", province.Name)
	_, err := uuid.Parse(province.ID)
	assert.NoError(t, err)
}

func TestRequestValidation(t *testing.T) {
	f := setupAPI(t)
	cookie := f.login(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"malformed json", http.MethodPost, "/api/provinces", `{"name":`},
		{"missing required field", http.MethodPost, "/api/provinces", `{"code":"X"}`},
		{"unknown router status", http.MethodPatch, "/api/routers/" + uuid.NewString() + "/status", `{"status":"BROKEN"}`},
		{"path id is not a uuid", http.MethodGet, "/api/provinces/not-a-uuid", ""},
		{"resolve with bad id", http.MethodPost, "/api/alerts/42/resolve", ""},
		{"router filter is not a uuid", http.MethodGet, "/api/connected-users?routerId=nope", ""},
		{"blocked flag is not a bool", http.MethodGet, "/api/connected-users?blocked=maybe", ""},
		{"page out of range", http.MethodGet, "/api/provinces?page=0", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(t, tt.method, tt.path, tt.body, cookie)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Equal(t, "error", decodeEnvelope(t, w).Status)
		})
	}
}

func TestResolveAlert_WithoutBody(t *testing.T) {
	f := setupAPI(t)
	cookie := f.login(t)

	w := f.do(t, http.MethodPost, "/api/alerts/"+f.alert.ID.String()+"/resolve", "", cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var alert struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &alert))
	assert.Equal(t, string(db_models.AlertStatusResolved), alert.Status)

	// A second resolve is a state conflict.
	w = f.do(t, http.MethodPost, "/api/alerts/"+f.alert.ID.String()+"/resolve", `{"resolution":"again"}`, cookie)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBlockConnectedUser(t *testing.T) {
	t.Run("firewall failure changes nothing", func(t *testing.T) {
		f := setupAPI(t)
		cookie := f.login(t)
		f.firewall.failWith = utils.ErrFirewallUnavailable

		w := f.do(t, http.MethodPost, "/api/connected-users/"+f.device.ID.String()+"/block", "", cookie)
		assert.Equal(t, http.StatusBadGateway, w.Code, w.Body.String())

		var stored db_models.ConnectedUser
		require.NoError(t, f.db.First(&stored, "id = ?", f.device.ID).Error)
		assert.False(t, stored.IsBlocked)
		assert.Nil(t, stored.BlockedAt)
		assert.Zero(t, f.countLogs(t, services.ActionBlockDevice))
	})

	t.Run("applied on the firewall", func(t *testing.T) {
		f := setupAPI(t)
		cookie := f.login(t)

		w := f.do(t, http.MethodPost, "/api/connected-users/"+f.device.ID.String()+"/block", "", cookie)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var result struct {
			FirewallApplied bool `json:"firewall_applied"`
			Device          struct {
				IsBlocked bool `json:"is_blocked"`
			} `json:"device"`
		}
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &result))
		assert.True(t, result.FirewallApplied)
		assert.True(t, result.Device.IsBlocked)
		assert.Equal(t, []string{"10.0.0.15"}, f.firewall.blocked)
		assert.Equal(t, int64(1), f.countLogs(t, services.ActionBlockDevice))
	})
}

func TestSettingsRoutes(t *testing.T) {
	f := setupAPI(t)
	cookie := f.login(t)

	w := f.do(t, http.MethodPut, "/api/settings",
		`{"settings":[{"key":"smtp_host","value":"relay.local","category":"mail"},{"key":"site_name","value":"NetOps"}]}`, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	t.Run("export is yaml, not a category", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/api/settings/export", "", cookie)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/x-yaml")
		assert.Contains(t, w.Header().Get("Content-Disposition"), "settings.yaml")

		var doc struct {
			Settings map[string][]map[string]string `yaml:"settings"`
		}
		require.NoError(t, yaml.Unmarshal(w.Body.Bytes(), &doc))
		require.Len(t, doc.Settings["mail"], 1)
		assert.Equal(t, "relay.local", doc.Settings["mail"][0]["value"])
	})

	t.Run("category listing", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/api/settings/mail", "", cookie)
		require.Equal(t, http.StatusOK, w.Code)

		var settings []struct {
			Key   string `json:"key"`
			Value string `json:"value"`
		}
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &settings))
		require.Len(t, settings, 1)
		assert.Equal(t, "smtp_host", settings[0].Key)
	})

	t.Run("requires a session", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/api/settings/export", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
