package validation

import (
	"gearguard/pkg/constants"
	"gearguard/pkg/utils"

	"github.com/go-playground/validator/v10"
)

// registerRules регистрирует теги, которые мы используем в struct tags
func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("request_status", isRequestStatus); err != nil {
		return err
	}
	if err := v.RegisterValidation("date_value", isDateValue); err != nil {
		return err
	}
	return nil
}

func isRequestStatus(fl validator.FieldLevel) bool {
	return constants.IsValidRequestStatus(fl.Field().String())
}

// isDateValue - YYYY-MM-DD или RFC3339
func isDateValue(fl validator.FieldLevel) bool {
	return utils.IsValidDate(fl.Field().String())
}
