// Package validation registers the form validation tags on gin's validator
// and turns validation failures into per-field messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"bookshelf/internal/http-api/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// NonFieldErrors is the key for messages not tied to one field.
const NonFieldErrors = "__all__"

var (
	registerOnce sync.Once
	registerErr  error

	usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}@.+\-_]+$`)
)

// Register installs the custom tags on gin's default validator. Safe to call repeatedly.
func Register() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin validator engine is not validator/v10")
			return
		}
		registerErr = register(v)
	})
	return registerErr
}

func register(v *validator.Validate) error {
	// Use form tag names in error maps
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.Category(fl.Field().String()).Valid()
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("rate", func(fl validator.FieldLevel) bool {
		rate, err := strconv.Atoi(fl.Field().String())
		return err == nil && rate >= 0 && rate <= models.MaxRate
	}); err != nil {
		return err
	}
	return v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return ValidUsername(fl.Field().String())
	})
}

// ValidUsername reports whether name only uses letters, digits and @ . + - _
func ValidUsername(name string) bool {
	return usernamePattern.MatchString(name)
}

// FieldErrors converts a binding error into field -> message.
// Errors that are not validation failures land under NonFieldErrors.
func FieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return map[string]string{NonFieldErrors: "The submitted form could not be read."}
	}

	fieldErrors := make(map[string]string, len(validationErrs))
	for _, e := range validationErrs {
		fieldErrors[e.Field()] = friendlyMessage(e)
	}
	return fieldErrors
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", e.Param())
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters.", e.Param())
	case "category":
		return "Select a valid category."
	case "rate":
		return fmt.Sprintf("Select a rate between 0 and %d.", models.MaxRate)
	case "username":
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	default:
		return "This value is invalid."
	}
}
