package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/polkiloo/gymrat/internal/domain/model"
)

// RegisterValidations installs the custom rules and reports fields by JSON name.
func RegisterValidations(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("isodate", isoDate); err != nil {
		return fmt.Errorf("register isodate: %w", err)
	}
	if err := v.RegisterValidation("isotimestamp", isoTimestamp); err != nil {
		return fmt.Errorf("register isotimestamp: %w", err)
	}
	return nil
}

func isoDate(fl validator.FieldLevel) bool {
	_, err := model.ParseDate(fl.Field().String())
	return err == nil
}

func isoTimestamp(fl validator.FieldLevel) bool {
	_, err := ParsePaymentDate(fl.Field().String())
	return err == nil
}

// Describe turns a binding error into a short client facing message.
func Describe(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			parts = append(parts, describeField(fe))
		}
		return strings.Join(parts, "; ")
	}
	return "invalid request body: " + err.Error()
}

func describeField(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("field '%s' is required", fe.Field())
	case "isodate":
		return fmt.Sprintf("field '%s' must be a YYYY-MM-DD date", fe.Field())
	case "isotimestamp":
		return fmt.Sprintf("field '%s' must be an ISO 8601 timestamp", fe.Field())
	}
	return fmt.Sprintf("field '%s' failed on the '%s' rule", fe.Field(), fe.Tag())
}
