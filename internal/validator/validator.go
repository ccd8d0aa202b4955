// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("collateral_type", validateCollateralType)
		_ = v.RegisterValidation("entry_type", validateEntryType)
	}
}

func validateCollateralType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "stock", "crypto":
		return true
	}
	return false
}

func validateEntryType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "borrow", "repay", "collateral_add", "swap", "send", "receive":
		return true
	}
	return false
}
