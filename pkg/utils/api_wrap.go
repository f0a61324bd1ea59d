package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"netops/pkg/logger"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Details string      `json:"details,omitempty"`
}

// exposeErrorDetails adds the raw error text to 500 responses. It is only
// switched on outside production.
var exposeErrorDetails bool

func SetExposeErrorDetails(v bool) {
	exposeErrorDetails = v
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	RespondWithStatus(c, http.StatusOK, data, message)
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	RespondWithStatus(c, http.StatusCreated, data, message)
}

func RespondWithStatus(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	var validationErr *ValidationError

	switch {
	case errors.As(err, &validationErr):
		RespondError(c, http.StatusBadRequest, validationErr.Error())
	case isAny(err, ErrInvalidPage, ErrInvalidPageSize):
		RespondError(c, http.StatusBadRequest, err.Error())
	case isAny(err, ErrUnauthenticated, ErrInvalidToken, ErrInvalidCredentials, ErrAccountDisabled):
		RespondError(c, http.StatusUnauthorized, err.Error())
	case isAny(err, ErrForbidden, ErrCannotDeleteSelf):
		RespondError(c, http.StatusForbidden, err.Error())
	case isAny(err, ErrProvinceNotFound, ErrDistrictNotFound, ErrTownNotFound, ErrRouterNotFound,
		ErrUserNotFound, ErrConnectedUserNotFound, ErrAlertNotFound, ErrSettingNotFound):
		RespondError(c, http.StatusNotFound, notFoundMessage(err))
	case isAny(err, ErrEmailAlreadyExists, ErrDuplicateName, ErrHasChildren, ErrAlertNotActive):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrTooManyRequests):
		RespondError(c, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, ErrFirewallUnavailable):
		logger.Warn("Firewall request failed", "error", err, "trace_id", c.GetString("trace_id"))
		RespondError(c, http.StatusBadGateway, "Firewall appliance is unavailable")
	default:
		logger.Error("Unhandled service error", "error", err, "trace_id", c.GetString("trace_id"))
		resp := APIResponse{
			Status:  "error",
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
			TraceID: c.GetString("trace_id"),
		}
		if exposeErrorDetails {
			resp.Details = err.Error()
		}
		c.JSON(http.StatusInternalServerError, resp)
	}
}

// notFoundMessage keeps the sentinel text and drops wrapped context.
func notFoundMessage(err error) string {
	for _, target := range []error{ErrProvinceNotFound, ErrDistrictNotFound, ErrTownNotFound, ErrRouterNotFound,
		ErrUserNotFound, ErrConnectedUserNotFound, ErrAlertNotFound, ErrSettingNotFound} {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return "not found"
}
