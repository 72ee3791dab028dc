package api

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	app_errors "github.com/Babyaovo/Yaouo-sub000/internal/errors"
	"github.com/Babyaovo/Yaouo-sub000/internal/model"

	"github.com/go-playground/validator/v10"
)

// Request bodies are validated with the tags they carry, including the model
// package's own types. The "chatmode" tag accepts the modes in model.ChatModes.

var (
	// validate holds the single instance of the validator.
	validate *validator.Validate
	// once ensures that the validator is initialized only one time.
	once sync.Once
)

func getInstance() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		if err := validate.RegisterValidation("chatmode", isChatMode); err != nil {
			panic(fmt.Sprintf("register chatmode validation: %v", err))
		}
	})
	return validate
}

func isChatMode(fl validator.FieldLevel) bool {
	return model.ChatMode(fl.Field().String()).Valid()
}

func chatModeNames() string {
	names := make([]string, len(model.ChatModes))
	for i, m := range model.ChatModes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

// validateRequest checks a given payload struct against the validation rules
// defined in its field tags (e.g., `validate:"required,min=1"`).
// If validation fails, it returns a wrapped `app_errors.ErrValidation` with a
// user-friendly, detailed message.
func validateRequest(payload interface{}) error {
	v := getInstance()
	err := v.Struct(payload)
	if err == nil {
		return nil
	}

	// Try to cast the error to `validator.ValidationErrors`. If this fails, it's not a
	// validation error from the library but some other unexpected issue.
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: an unexpected error occurred during validation: %s", app_errors.ErrValidation, err.Error())
	}

	var errorMessages []string
	for _, fieldErr := range validationErrors {
		if fieldErr.Tag() == "chatmode" {
			errorMessages = append(errorMessages, fmt.Sprintf("Field '%s' must be one of: %s", fieldErr.Field(), chatModeNames()))
			continue
		}
		// e.g. "Field 'Temperature' failed on the 'lte' tag"
		errorMessages = append(errorMessages, fmt.Sprintf("Field '%s' failed on the '%s' tag", fieldErr.Field(), fieldErr.Tag()))
	}

	return fmt.Errorf("%w: %s", app_errors.ErrValidation, strings.Join(errorMessages, "; "))
}
