package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/idelchi/gogen/pkg/validator"

	"github.com/idelchi/goseal/internal/token"
)

// registerExclusive adds a custom validator ensuring two fields are mutually exclusive.
// It registers both the validation logic and a human-readable error message.
// Field names in messages come from the label tag, which names the flag.
func registerExclusive(validator *validator.Validator) error {
	if err := validator.RegisterValidationAndTranslation(
		"exclusive",
		validateExclusive,
		"{0} is mutually exclusive with {1}",
	); err != nil {
		return fmt.Errorf("registering exclusive validation: %w", err)
	}

	validator.Validator().RegisterTagNameFunc(func(fld reflect.StructField) string {
		const splitSize = 2

		name := strings.SplitN(fld.Tag.Get("label"), ",", splitSize)[0]
		if name == "-" {
			return fld.Name
		}

		if name != "" {
			return name
		}

		return fld.Name
	})

	return nil
}

// validateExclusive checks if two fields are mutually exclusive.
// Returns false if both fields are set.
func validateExclusive(fl validator.FieldLevel) bool {
	field := fl.Field()
	otherField := fl.Parent().FieldByName(fl.Param())

	if !field.IsValid() || !otherField.IsValid() {
		return true
	}

	return field.IsZero() || otherField.IsZero()
}

// registerExpiry adds a validator for token lifetimes such as "30s" or "2h".
func registerExpiry(validator *validator.Validator) error {
	if err := validator.RegisterValidationAndTranslation(
		"expiry",
		validateExpiry,
		"{0} must be a number followed by one of s, m, h, d",
	); err != nil {
		return fmt.Errorf("registering expiry validation: %w", err)
	}

	return nil
}

func validateExpiry(fl validator.FieldLevel) bool {
	_, err := token.ParseExpiry(fl.Field().String())

	return err == nil
}
