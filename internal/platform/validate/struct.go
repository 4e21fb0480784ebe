// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/taibuivan/foodgram/internal/platform/apperr"
)

var (
	structValidator *validator.Validate
	structOnce      sync.Once
)

// engine returns the shared validator instance. It caches struct metadata, so
// it is built once.
func engine() *validator.Validate {
	structOnce.Do(func() {
		structValidator = validator.New(validator.WithRequiredStructEnabled())

		// Report JSON names rather than Go field names.
		structValidator.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})
	})
	return structValidator
}

// Struct validates target against its `validate` tags.
//
// Failures are returned as a VALIDATION_ERROR whose details use the JSON path of
// each field, e.g. "ingredients[1].amount".
func Struct(target any) error {
	err := engine().Struct(target)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apperr.Internal(fmt.Errorf("validate: %w", err))
	}

	details := make([]apperr.FieldError, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		details = append(details, apperr.FieldError{
			Field:   fieldPath(fieldErr.Namespace()),
			Message: message(fieldErr),
		})
	}

	return apperr.ValidationError("Validation failed", details...)
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if index := strings.Index(namespace, "."); index >= 0 {
		return namespace[index+1:]
	}
	return namespace
}

func message(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "This field is required"
	case "min":
		if fieldErr.Kind() == reflect.Slice || fieldErr.Kind() == reflect.String {
			return fmt.Sprintf("Must contain at least %s item(s)", fieldErr.Param())
		}
		return fmt.Sprintf("Must be at least %s", fieldErr.Param())
	case "max":
		if fieldErr.Kind() == reflect.String {
			return fmt.Sprintf("Maximum %s characters", fieldErr.Param())
		}
		return fmt.Sprintf("Must be at most %s", fieldErr.Param())
	case "gte":
		return fmt.Sprintf("Must be at least %s", fieldErr.Param())
	case "lte":
		return fmt.Sprintf("Must be at most %s", fieldErr.Param())
	case "hexcolor":
		return "Must be a hex color like #E26C2D"
	case "email":
		return "Must be a valid email address"
	case "unique":
		return "Must not contain duplicates"
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(fieldErr.Param(), " ", ", "))
	default:
		return fmt.Sprintf("Failed the '%s' rule", fieldErr.Tag())
	}
}
