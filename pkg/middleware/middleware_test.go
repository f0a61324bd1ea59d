package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netops/internal/models/db_models"
	"netops/pkg/authz"
	"netops/pkg/utils"
)

type fakeAuthenticator struct {
	users map[string]*db_models.User
	err   error
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, token string) (*db_models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if token == "" {
		return nil, utils.ErrUnauthenticated
	}
	user, ok := f.users[token]
	if !ok {
		return nil, utils.ErrInvalidToken
	}
	return user, nil
}

func newTestEngine(t *testing.T, auth Authenticator, role db_models.Role) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	enforcer, err := authz.NewEnforcer()
	require.NoError(t, err)

	m := NewAuthMiddleware(auth, enforcer, true)
	r := gin.New()
	r.Use(TraceIDMiddleware())
	r.GET("/protected", m.RequireAuth(role), func(c *gin.Context) {
		actor := CurrentActor(c)
		c.JSON(http.StatusOK, gin.H{"email": actor.User.Email, "scope": actor.Scope.Key()})
	})
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRequireAuth(t *testing.T) {
	districtID := uuid.New()
	auth := &fakeAuthenticator{users: map[string]*db_models.User{
		"admin-token": {Email: "admin@example.com", Role: db_models.RoleAdmin, IsActive: true},
		"staff-token": {Email: "staff@example.com", Role: db_models.RoleStaff, IsActive: true, AssignedDistrictID: &districtID},
	}}

	t.Run("missing token", func(t *testing.T) {
		r := newTestEngine(t, auth, db_models.RoleStaff)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		body := decode(t, w)
		assert.Equal(t, "error", body["status"])
		assert.NotEmpty(t, body["trace_id"])
	})

	t.Run("staff on admin route", func(t *testing.T) {
		r := newTestEngine(t, auth, db_models.RoleAdmin)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: utils.AuthCookieName, Value: "staff-token"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin inherits staff routes", func(t *testing.T) {
		r := newTestEngine(t, auth, db_models.RoleStaff)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: utils.AuthCookieName, Value: "admin-token"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "admin@example.com", body["email"])
		assert.Equal(t, "all", body["scope"])
	})

	t.Run("bearer header fallback carries the scope", func(t *testing.T) {
		r := newTestEngine(t, auth, db_models.RoleStaff)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer staff-token")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "district:"+districtID.String(), decode(t, w)["scope"])
	})

	t.Run("database failure is a server error", func(t *testing.T) {
		r := newTestEngine(t, &fakeAuthenticator{err: utils.ErrDatabaseError}, db_models.RoleStaff)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer anything")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestOptionalAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	enforcer, err := authz.NewEnforcer()
	require.NoError(t, err)
	auth := &fakeAuthenticator{users: map[string]*db_models.User{
		"staff-token": {Email: "staff@example.com", Role: db_models.RoleStaff, IsActive: true},
	}}

	m := NewAuthMiddleware(auth, enforcer, false)
	r := gin.New()
	r.POST("/logout", m.OptionalAuth(), func(c *gin.Context) {
		email := ""
		if user := CurrentUser(c); user != nil {
			email = user.Email
		}
		c.JSON(http.StatusOK, gin.H{"email": email, "scope": CurrentActor(c).Scope.Key()})
	})

	send := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		if token != "" {
			req.AddCookie(&http.Cookie{Name: utils.AuthCookieName, Value: token})
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := send("staff-token")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "staff@example.com", body["email"])
	assert.Equal(t, "none", body["scope"])

	for _, token := range []string{"", "expired-token"} {
		w := send(token)
		require.Equal(t, http.StatusOK, w.Code, token)
		assert.Empty(t, decode(t, w)["email"], token)
	}
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewIPRateLimiter(2)
	r := gin.New()
	r.POST("/login", RateLimit(limiter), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = ip + ":5555"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusNoContent, send("192.0.2.1").Code)
	assert.Equal(t, http.StatusNoContent, send("192.0.2.1").Code)

	blocked := send("192.0.2.1")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "60", blocked.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusNoContent, send("192.0.2.2").Code)
}

func TestTraceIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("trace_id")) })

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceHeader, incoming)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, incoming, w.Header().Get(TraceHeader))
	assert.Equal(t, incoming, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceHeader, "not-a-uuid")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	generated := w.Header().Get(TraceHeader)
	assert.NotEqual(t, "not-a-uuid", generated)
	_, err := uuid.Parse(generated)
	assert.NoError(t, err)
}
