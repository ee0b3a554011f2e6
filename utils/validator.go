package utils

import (
	"errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations registers custom validation rules
func RegisterCustomValidations(v *validator.Validate) error {
	return v.RegisterValidation("password", validatePassword)
}

// validatePassword requires at least one lowercase and one uppercase letter.
// Minimum length is enforced separately with the min tag.
func validatePassword(fl validator.FieldLevel) bool {
	var hasUpper, hasLower bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		}
	}
	return hasUpper && hasLower
}

func TranslateValidationError(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return "Invalid request body"
	}

	var messages []string
	for _, fe := range ve {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			messages = append(messages, field+" is required")
		case "required_without":
			messages = append(messages, field+" is required when "+fe.Param()+" is not provided")
		case "email":
			messages = append(messages, "Valid email is required")
		case "min":
			messages = append(messages, field+" must be at least "+fe.Param()+" characters")
		case "max":
			messages = append(messages, field+" must be at most "+fe.Param()+" characters")
		case "password":
			messages = append(messages, field+" must include at least one lowercase and one uppercase letter")
		default:
			messages = append(messages, field+" is invalid")
		}
	}
	return strings.Join(messages, ", ")
}
