package customvalidator

import (
	"reflect"
	"time"

	"equipment-tracker/pkg/constants"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations registers the ledger's enum and date tags on v.
func RegisterCustomValidations(v *validator.Validate) error {
	registerNullTypes(v)

	rules := map[string]validator.Func{
		"equipment_status":  oneOfFunc(constants.EquipmentStatuses),
		"damage_status":     oneOfFunc(constants.DamageReportStatuses),
		"request_status":    oneOfFunc(constants.RequestStatuses),
		"notification_type": oneOfFunc(constants.NotificationTypes),
		"iso_date":          isISODate,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func oneOfFunc[T ~string](allowed []T) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, a := range allowed {
			if string(a) == value {
				return true
			}
		}
		return false
	}
}

// isISODate accepts an empty string or a YYYY-MM-DD calendar date.
func isISODate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := time.Parse(constants.DateLayout, value)
	return err == nil
}

func registerNullTypes(v *validator.Validate) {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.String); ok && val.Valid {
			return val.String
		}
		return nil
	}, null.String{})
}
