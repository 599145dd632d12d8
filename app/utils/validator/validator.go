package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator with custom rules
type Validator struct {
	validator *validator.Validate
}

// New creates a new validator instance with custom rules
func New() *Validator {
	validate := validator.New()

	registerCustomValidators(validate)

	// Use JSON field names for validation error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{
		validator: validate,
	}
}

// Validate validates a struct and returns validation errors
func (v *Validator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return NewValidationError(err.(validator.ValidationErrors))
	}
	return nil
}

// ValidateVar validates a single variable
func (v *Validator) ValidateVar(field interface{}, tag string) error {
	return v.validator.Var(field, tag)
}

// registerCustomValidators registers rules used by the config package.
func registerCustomValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("log_level", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "debug", "info", "warn", "error":
			return true
		}
		return false
	})

	_ = validate.RegisterValidation("cache_backend", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "memory", "redis":
			return true
		}
		return false
	})
}

// ValidationError represents a validation error with user-friendly messages
type ValidationError struct {
	Errors map[string]string `json:"errors"`
}

// NewValidationError builds a ValidationError from validator errors
func NewValidationError(errs validator.ValidationErrors) ValidationError {
	messages := make(map[string]string, len(errs))
	for _, fieldErr := range errs {
		messages[fieldErr.Field()] = messageForTag(fieldErr)
	}
	return ValidationError{Errors: messages}
}

// Error implements the error interface
func (e ValidationError) Error() string {
	var messages []string
	for field, message := range e.Errors {
		messages = append(messages, fmt.Sprintf("%s: %s", field, message))
	}
	return strings.Join(messages, "; ")
}

func messageForTag(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "log_level":
		return "must be one of: debug, info, warn, error"
	case "cache_backend":
		return "must be one of: memory, redis"
	case "min":
		return fmt.Sprintf("must be at least %s", fieldErr.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fieldErr.Param())
	default:
		return fmt.Sprintf("failed validation: %s", fieldErr.Tag())
	}
}
