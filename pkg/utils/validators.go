package utils

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"netops/internal/models/db_models"
)

// RegisterValidators adds the enum validators used by request bindings.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("router_status", func(fl validator.FieldLevel) bool {
		return db_models.RouterStatus(fl.Field().String()).Valid()
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("alert_severity", func(fl validator.FieldLevel) bool {
		return db_models.AlertSeverity(fl.Field().String()).Valid()
	}); err != nil {
		return err
	}
	return v.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		return db_models.Role(fl.Field().String()).Valid()
	})
}
