// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"opportunityrisks/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("risk_level", validateRiskLevel)
		_ = v.RegisterValidation("risk_status", validateRiskStatus)
	}
}

func validateRiskLevel(fl validator.FieldLevel) bool {
	return models.Level(fl.Field().String()).Valid()
}

func validateRiskStatus(fl validator.FieldLevel) bool {
	return models.RiskStatus(fl.Field().String()).Valid()
}
