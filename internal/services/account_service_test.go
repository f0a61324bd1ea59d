package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"netops/internal/models/db_models"
	"netops/internal/models/request_models"
	"netops/internal/repositories"
	"netops/pkg/utils"
)

func newAccountService(db *gorm.DB) AccountServiceInterface {
	return NewAccountService(repositories.NewUserRepository(db), utils.NewTokenManager("test-secret", time.Hour), newAudit(db))
}

func TestAccountService_Login(t *testing.T) {
	db := setupTestDB(t)
	svc := newAccountService(db)

	admin, err := svc.CreateAdmin(bg, "Root", "Root@Example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "root@example.com", admin.Email)
	assert.Equal(t, db_models.RoleAdmin, admin.Role)

	t.Run("valid credentials", func(t *testing.T) {
		result, err := svc.Login(bg, request_models.LoginRequest{Email: " ROOT@example.com", Password: "s3cret-pass"}, "10.0.0.1")
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.True(t, result.ExpiresAt.After(time.Now()))
		require.NotNil(t, result.User.LastLoginAt)

		user, err := svc.Authenticate(bg, result.Token)
		require.NoError(t, err)
		assert.Equal(t, admin.ID, user.ID)
		assert.Equal(t, int64(1), countLogs(t, db, ActionLogin))
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		_, err := svc.Login(bg, request_models.LoginRequest{Email: "root@example.com", Password: "nope-nope"}, "")
		assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
		_, err = svc.Login(bg, request_models.LoginRequest{Email: "ghost@example.com", Password: "s3cret-pass"}, "")
		assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
	})

	t.Run("inactive users are rejected", func(t *testing.T) {
		result, err := svc.Login(bg, request_models.LoginRequest{Email: "root@example.com", Password: "s3cret-pass"}, "")
		require.NoError(t, err)

		require.NoError(t, db.Model(&db_models.User{}).Where("id = ?", admin.ID).Update("is_active", false).Error)

		_, err = svc.Login(bg, request_models.LoginRequest{Email: "root@example.com", Password: "s3cret-pass"}, "")
		assert.ErrorIs(t, err, utils.ErrAccountDisabled)
		_, err = svc.Authenticate(bg, result.Token)
		assert.ErrorIs(t, err, utils.ErrAccountDisabled)
	})

	t.Run("duplicate admin email", func(t *testing.T) {
		_, err := svc.CreateAdmin(bg, "Again", "root@example.com", "another-pass")
		assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)
	})
}

func TestAccountService_Authenticate(t *testing.T) {
	db := setupTestDB(t)
	svc := newAccountService(db)

	_, err := svc.Authenticate(bg, "")
	assert.ErrorIs(t, err, utils.ErrUnauthenticated)

	_, err = svc.Authenticate(bg, "not-a-jwt")
	assert.ErrorIs(t, err, utils.ErrInvalidToken)

	other := utils.NewTokenManager("other-secret", time.Hour)
	forged, _, err := other.CreateToken(uuid.New(), "ADMIN")
	require.NoError(t, err)
	_, err = svc.Authenticate(bg, forged)
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestAccountService_ChangePassword(t *testing.T) {
	db := setupTestDB(t)
	svc := newAccountService(db)
	user, err := svc.CreateAdmin(bg, "Root", "root@example.com", "first-pass")
	require.NoError(t, err)
	actor := Actor{User: user, Scope: repositories.GlobalScope()}

	err = svc.ChangePassword(bg, actor, request_models.ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "second-pass"})
	var validationErr *utils.ValidationError
	require.ErrorAs(t, err, &validationErr)

	require.NoError(t, svc.ChangePassword(bg, actor, request_models.ChangePasswordRequest{CurrentPassword: "first-pass", NewPassword: "second-pass"}))

	_, err = svc.Login(bg, request_models.LoginRequest{Email: "root@example.com", Password: "first-pass"}, "")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
	_, err = svc.Login(bg, request_models.LoginRequest{Email: "root@example.com", Password: "second-pass"}, "")
	assert.NoError(t, err)
}
