// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("fund_type", validateFundType)
		_ = v.RegisterValidation("fund_level", validateFundLevel)
		_ = v.RegisterValidation("debt_type", validateDebtType)
		_ = v.RegisterValidation("asset_category", validateAssetCategory)
		_ = v.RegisterValidation("setting_type", validateSettingType)
	}
}

func validateFundType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "monthly", "annual", "savings":
		return true
	}
	return false
}

func validateFundLevel(fl validator.FieldLevel) bool {
	level := fl.Field().Int()
	return level >= 1 && level <= 3
}

func validateDebtType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "owed_to_me", "i_owe":
		return true
	}
	return false
}

func validateAssetCategory(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "asset", "liability":
		return true
	}
	return false
}

func validateSettingType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "string", "number", "boolean", "json":
		return true
	}
	return false
}
