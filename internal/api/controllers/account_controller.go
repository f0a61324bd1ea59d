package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"netops/internal/models/request_models"
	"netops/internal/models/response_models"
	"netops/internal/services"
	"netops/pkg/middleware"
	"netops/pkg/utils"
)

type AccountController struct {
	accountService services.AccountServiceInterface
	cookieSecure   bool
}

func NewAccountController(accountService services.AccountServiceInterface, cookieSecure bool) *AccountController {
	return &AccountController{
		accountService: accountService,
		cookieSecure:   cookieSecure,
	}
}

// Login godoc
// @Summary Login
// @Description Authenticate with email and password; the session token is set as an HttpOnly cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Login payload"
// @Success 200 {object} utils.APIResponse{data=response_models.LoginResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Router /auth/login [post]
func (a *AccountController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := a.accountService.Login(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	maxAge := int(time.Until(result.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.AuthCookieName, result.Token, maxAge, "/", "", a.cookieSecure, true)

	utils.RespondSuccess(c, response_models.LoginResponse{
		User:      response_models.ToUserResponse(result.User),
		ExpiresAt: result.ExpiresAt.UTC().Format(time.RFC3339),
	}, "Login successful")
}

// Logout godoc
// @Summary Logout
// @Description Clear the session cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /auth/logout [post]
func (a *AccountController) Logout(c *gin.Context) {
	a.accountService.Logout(c.Request.Context(), middleware.CurrentActor(c))

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.AuthCookieName, "", -1, "/", "", a.cookieSecure, true)
	utils.RespondSuccess(c, nil, "Logged out")
}

// Me godoc
// @Summary Current user
// @Description Return the authenticated user with the assigned province and district
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.APIResponse{data=response_models.UserResponse}
// @Failure 401 {object} utils.APIResponse
// @Security CookieAuth
// @Router /auth/me [get]
func (a *AccountController) Me(c *gin.Context) {
	user, err := a.accountService.Me(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, user, "User fetched successfully")
}

// UpdateProfile godoc
// @Summary Update own profile
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} utils.APIResponse{data=response_models.UserResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security CookieAuth
// @Router /profile [put]
func (a *AccountController) UpdateProfile(c *gin.Context) {
	var req request_models.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := a.accountService.UpdateProfile(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, user, "Profile updated successfully")
}

// ChangePassword godoc
// @Summary Change own password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security CookieAuth
// @Router /profile/password [put]
func (a *AccountController) ChangePassword(c *gin.Context) {
	var req request_models.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := a.accountService.ChangePassword(c.Request.Context(), middleware.CurrentActor(c), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Password changed successfully")
}
