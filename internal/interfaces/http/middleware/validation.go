package middleware

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/grafica/backend/internal/domain/identity"
	"github.com/grafica/backend/internal/interfaces/http/dto"
)

// SetupValidator configures gin's validator: JSON names in errors plus the
// tenantcode and permission tags
func SetupValidator() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected validator engine")
	}
	return RegisterValidations(v)
}

// RegisterValidations installs the custom tags on v
func RegisterValidations(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})
	if err := v.RegisterValidation("tenantcode", validateTenantCode); err != nil {
		return err
	}
	return v.RegisterValidation("permission", validatePermission)
}

func validateTenantCode(fl validator.FieldLevel) bool {
	_, err := identity.NormalizeTenantCode(fl.Field().String())
	return err == nil
}

func validatePermission(fl validator.FieldLevel) bool {
	return identity.Permission(fl.Field().String()).IsValid()
}

// ValidationDetails converts binding errors into per-field details. Errors
// that are not validator errors (malformed JSON) yield nil.
func ValidationDetails(err error) []dto.ValidationDetail {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	details := make([]dto.ValidationDetail, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, dto.ValidationDetail{
			Field:   e.Field(),
			Message: validationMessage(e),
		})
	}
	return details
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		if e.Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must have at least " + e.Param() + " item(s)"
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "oneof":
		return "Must be one of: " + e.Param()
	case "tenantcode":
		return "Must be 2 or 3 letters"
	case "permission":
		return "Unknown permission"
	default:
		return "Invalid value"
	}
}
