package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kalrend/warchest/internal/allocation"
	"github.com/kalrend/warchest/internal/distribute"
	"github.com/kalrend/warchest/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	_ = v.RegisterValidation("category", validateCategory)
	_ = v.RegisterValidation("role", validateRole)
	_ = v.RegisterValidation("allocmode", validateAllocMode)
	_ = v.RegisterValidation("rule", validateRule)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a field map. This
// keeps internal struct names out of client responses.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "category":
			errs[field] = "Invalid item category"
		case "role":
			errs[field] = "Invalid character role"
		case "allocmode":
			errs[field] = "Invalid allocation mode"
		case "rule":
			errs[field] = "Invalid distribution rule"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s characters", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "gte":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "excludesall":
			errs[field] = "Contains invalid characters"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

func validateCategory(fl validator.FieldLevel) bool {
	c := fl.Field().String()
	if c == "" {
		return true
	}
	return domain.ValidCategory(domain.Category(c))
}

func validateRole(fl validator.FieldLevel) bool {
	r := fl.Field().String()
	if r == "" {
		return true
	}
	return domain.ValidRole(domain.Role(r))
}

func validateAllocMode(fl validator.FieldLevel) bool {
	m := fl.Field().String()
	if m == "" {
		return true
	}
	return allocation.ValidMode(allocation.Mode(m))
}

func validateRule(fl validator.FieldLevel) bool {
	r := fl.Field().String()
	if r == "" {
		return true
	}
	return distribute.ValidRule(distribute.Rule(r))
}
