package utils

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPage     = errors.New("invalid page parameter")
	ErrInvalidPageSize = errors.New("invalid page size parameter")
	ErrDatabaseError   = errors.New("database error")

	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrTooManyRequests    = errors.New("too many requests")

	ErrProvinceNotFound      = errors.New("province not found")
	ErrDistrictNotFound      = errors.New("district not found")
	ErrTownNotFound          = errors.New("town not found")
	ErrRouterNotFound        = errors.New("router not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrConnectedUserNotFound = errors.New("connected user not found")
	ErrAlertNotFound         = errors.New("alert not found")
	ErrSettingNotFound       = errors.New("setting not found")

	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrDuplicateName      = errors.New("name already exists")
	ErrHasChildren        = errors.New("record still has dependent records")
	ErrAlertNotActive     = errors.New("alert is not active")
	ErrCannotDeleteSelf   = errors.New("cannot delete your own account")

	ErrFirewallUnavailable = errors.New("firewall appliance unavailable")
	ErrFirewallDisabled    = errors.New("firewall integration disabled")
)

// ValidationError is returned by services when input passes binding but
// violates a domain rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func isAny(err error, targets ...error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}
