package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// minProductionSecretLen is the shortest HS256 key accepted in production.
const minProductionSecretLen = 32

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateConfig checks struct constraints and the environment-specific rules.
func ValidateConfig(cfg *Config) error {
	var problems []string

	if err := validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			problems = append(problems, ValidationError{
				Field:   fe.Namespace(),
				Message: describe(fe),
			}.Error())
		}
	}

	if cfg.Environment == Production {
		if len(cfg.JWTSecret) < minProductionSecretLen {
			problems = append(problems, ValidationError{
				Field:   "Config.JWTSecret",
				Message: fmt.Sprintf("must be at least %d bytes in production", minProductionSecretLen),
			}.Error())
		}
		if !cfg.CookieSecure {
			problems = append(problems, ValidationError{
				Field:   "Config.CookieSecure",
				Message: "must be enabled in production",
			}.Error())
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(problems, "\n"))
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "numeric":
		return "must be numeric"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
