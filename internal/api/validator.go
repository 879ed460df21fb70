package api

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	app_errors "tenantchat/backend/internal/errors"
)

// Singleton validator: building a validator.Validate is expensive, so one
// instance serves every request.

var (
	validate *validator.Validate
	once     sync.Once
)

func getInstance() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
	})
	return validate
}

// validateRequest checks a payload against its `validate` field tags. On
// failure it returns an app_errors.ValidationError carrying one detail per
// failed field; the error unwraps to app_errors.ErrValidation.
func validateRequest(payload interface{}) error {
	v := getInstance()
	err := v.Struct(payload)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: an unexpected error occurred during validation: %s", app_errors.ErrValidation, err.Error())
	}

	var details []string
	for _, fieldErr := range validationErrors {
		details = append(details, fmt.Sprintf("Field '%s' failed on the '%s' tag", fieldErr.Field(), fieldErr.Tag()))
	}

	return &app_errors.ValidationError{
		Message: fmt.Sprintf("%s: %s", app_errors.ErrValidation, strings.Join(details, "; ")),
		Details: details,
	}
}
