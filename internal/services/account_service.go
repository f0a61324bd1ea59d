package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"netops/internal/models/db_models"
	"netops/internal/models/request_models"
	"netops/internal/models/response_models"
	"netops/internal/repositories"
	"netops/pkg/logger"
	"netops/pkg/utils"
)

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *db_models.User
}

type AccountServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest, ip string) (*LoginResult, error)
	Logout(ctx context.Context, actor Actor)
	Authenticate(ctx context.Context, token string) (*db_models.User, error)
	Me(ctx context.Context, actor Actor) (*response_models.UserResponse, error)
	UpdateProfile(ctx context.Context, actor Actor, request request_models.UpdateProfileRequest) (*response_models.UserResponse, error)
	ChangePassword(ctx context.Context, actor Actor, request request_models.ChangePasswordRequest) error
	CreateAdmin(ctx context.Context, name, email, password string) (*db_models.User, error)
}

type AccountService struct {
	userRepo repositories.UserRepository
	tokens   *utils.TokenManager
	audit    AuditServiceInterface
}

func NewAccountService(userRepo repositories.UserRepository, tokens *utils.TokenManager, audit AuditServiceInterface) AccountServiceInterface {
	return &AccountService{
		userRepo: userRepo,
		tokens:   tokens,
		audit:    audit,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest, ip string) (*LoginResult, error) {
	startTime := time.Now()

	user, err := a.userRepo.FindByEmail(ctx, normalizeEmail(request.Email))
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	// Unknown email and wrong password are indistinguishable to the caller.
	if user == nil {
		return nil, utils.ErrInvalidCredentials
	}
	if err := utils.ComparePasswords(user.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, utils.ErrAccountDisabled
	}

	token, expiresAt, err := a.tokens.CreateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	now := utils.NowUnixSeconds()
	if err := a.userRepo.UpdateFields(ctx, user.ID, map[string]interface{}{"last_login_at": now}); err != nil {
		logger.Warn("Failed to stamp last login", "user_id", user.ID, "error", err)
	}
	user.LastLoginAt = &now

	actor := Actor{User: user, IP: ip}
	a.audit.Record(ctx, actor, ActionLogin, EntityUser, user.ID.String(), nil)

	logger.Debug("Login completed", "user_id", user.ID, "took", time.Since(startTime))

	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (a *AccountService) Logout(ctx context.Context, actor Actor) {
	if actor.User == nil {
		return
	}
	a.audit.Record(ctx, actor, ActionLogout, EntityUser, actor.User.ID.String(), nil)
}

// Authenticate resolves a session token to an active user with its
// assignment preloaded.
func (a *AccountService) Authenticate(ctx context.Context, token string) (*db_models.User, error) {
	if token == "" {
		return nil, utils.ErrUnauthenticated
	}
	claims, err := a.tokens.ValidateToken(token)
	if err != nil {
		return nil, utils.ErrInvalidToken
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, utils.ErrInvalidToken
	}

	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrInvalidToken
	}
	if !user.IsActive {
		return nil, utils.ErrAccountDisabled
	}
	return user, nil
}

func (a *AccountService) Me(ctx context.Context, actor Actor) (*response_models.UserResponse, error) {
	if actor.User == nil {
		return nil, utils.ErrUnauthenticated
	}
	user, err := a.userRepo.FindByID(ctx, actor.User.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}
	return response_models.ToUserResponse(user), nil
}

func (a *AccountService) UpdateProfile(ctx context.Context, actor Actor, request request_models.UpdateProfileRequest) (*response_models.UserResponse, error) {
	if actor.User == nil {
		return nil, utils.ErrUnauthenticated
	}
	user, err := a.userRepo.FindByID(ctx, actor.User.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}

	changed := map[string]interface{}{}
	if request.Name != nil {
		user.Name = strings.TrimSpace(*request.Name)
		changed["name"] = user.Name
	}
	if request.Phone != nil {
		user.Phone = strings.TrimSpace(*request.Phone)
		changed["phone"] = user.Phone
	}
	if request.Email != nil {
		email := normalizeEmail(*request.Email)
		if email != user.Email {
			existing, err := a.userRepo.FindByEmail(ctx, email)
			if err != nil {
				return nil, utils.ErrDatabaseError
			}
			if existing != nil {
				return nil, utils.ErrEmailAlreadyExists
			}
			user.Email = email
			changed["email"] = email
		}
	}

	if len(changed) > 0 {
		if err := a.userRepo.Update(ctx, user); err != nil {
			return nil, utils.ErrDatabaseError
		}
		a.audit.Record(ctx, actor, ActionUpdateProfile, EntityUser, user.ID.String(), changed)
	}
	return response_models.ToUserResponse(user), nil
}

func (a *AccountService) ChangePassword(ctx context.Context, actor Actor, request request_models.ChangePasswordRequest) error {
	if actor.User == nil {
		return utils.ErrUnauthenticated
	}
	user, err := a.userRepo.FindByID(ctx, actor.User.ID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return utils.ErrUserNotFound
	}
	if err := utils.ComparePasswords(user.PasswordHash, request.CurrentPassword); err != nil {
		return utils.NewValidationError("current_password", "is incorrect")
	}

	hashed, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return err
	}
	if err := a.userRepo.UpdateFields(ctx, user.ID, map[string]interface{}{"password_hash": hashed}); err != nil {
		return utils.ErrDatabaseError
	}
	a.audit.Record(ctx, actor, ActionChangePassword, EntityUser, user.ID.String(), nil)
	return nil
}

// CreateAdmin bootstraps an administrator account from the command line.
func (a *AccountService) CreateAdmin(ctx context.Context, name, email, password string) (*db_models.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, utils.NewValidationError("email", "is required")
	}
	if len(password) < 8 {
		return nil, utils.NewValidationError("password", "must be at least 8 characters")
	}

	existing, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = "Administrator"
	}
	user := &db_models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         db_models.RoleAdmin,
		IsActive:     true,
	}
	if err := a.userRepo.Insert(ctx, user); err != nil {
		return nil, utils.ErrDatabaseError
	}
	a.audit.Record(ctx, SystemActor(), ActionCreate, EntityUser, user.ID.String(), map[string]interface{}{"role": user.Role})
	return user, nil
}
