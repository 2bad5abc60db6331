package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Role validation
	validate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		role := fl.Field().String()
		validRoles := []string{"ADMIN", "SALES_PERSON", "CUSTOMER_SERVICE", "STUDIO", "SALES"}
		for _, r := range validRoles {
			if role == r {
				return true
			}
		}
		return false
	})

	// Booking status validation
	validate.RegisterValidation("booking_status", func(fl validator.FieldLevel) bool {
		status := strings.ToUpper(fl.Field().String())
		validStatuses := []string{"BOOKED", "CONFIRMED", "TBC", "CANCELLED", "NO_ANSWER", "WLMK", "VIDEO_CALL", ""}
		for _, s := range validStatuses {
			if status == s {
				return true
			}
		}
		return false
	})

	// Photoshoot type validation
	validate.RegisterValidation("photoshoot_type", func(fl validator.FieldLevel) bool {
		t := fl.Field().String()
		validTypes := []string{"children", "family", "couple", "maternity"}
		for _, v := range validTypes {
			if t == v {
				return true
			}
		}
		return false
	})

	// Payment method validation
	validate.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
		m := fl.Field().String()
		validMethods := []string{"CASH", "CARD", "NOT_PAID", ""}
		for _, v := range validMethods {
			if m == v {
				return true
			}
		}
		return false
	})

	// UK phone: 11 digits after stripping separators
	validate.RegisterValidation("uk_phone", func(fl validator.FieldLevel) bool {
		raw := fl.Field().String()
		if raw == "" {
			return true
		}
		digits := 0
		for _, r := range raw {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		return digits == 11
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "role":
			errors[field] = "Invalid role. Must be: ADMIN, SALES_PERSON, CUSTOMER_SERVICE, STUDIO, or SALES"
		case "booking_status":
			errors[field] = "Invalid status. Must be: BOOKED, CONFIRMED, TBC, CANCELLED, NO_ANSWER, WLMK, or VIDEO_CALL"
		case "photoshoot_type":
			errors[field] = "Invalid photoshoot type. Must be: children, family, couple, or maternity"
		case "payment_method":
			errors[field] = "Invalid payment method. Must be: CASH, CARD, or NOT_PAID"
		case "uk_phone":
			errors[field] = "Phone number must contain exactly 11 digits"
		case "datetime":
			errors[field] = "Invalid date/time format"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
