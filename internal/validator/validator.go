// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"grana/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("payment_method", validatePaymentMethod)
		_ = v.RegisterValidation("card_number", validateCardNumber)
		_ = v.RegisterValidation("month", validateMonth)
		_ = v.RegisterValidation("growth_filter", validateGrowthFilter)
	}
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "pix", "debit", "credit", "cash", "transfer":
		return true
	}
	return false
}

func validateCardNumber(fl validator.FieldLevel) bool {
	n := fl.Field().Int()
	return n >= 1 && n <= models.MaxCardsPerUser
}

// validateMonth accepts the dashboard's zero-based month index.
func validateMonth(fl validator.FieldLevel) bool {
	n := fl.Field().Int()
	return n >= 0 && n <= 11
}

func validateGrowthFilter(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "all", "top5", "positive", "single":
		return true
	}
	return false
}
