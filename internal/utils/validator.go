package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"Pantry-Tracker/domain"
	"Pantry-Tracker/internal/utils/clock"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var Validate *validator.Validate

// InitValidator builds the shared validator. today_or_later compares dates
// against the calendar day of c in loc.
func InitValidator(c clock.Clock, loc *time.Location) *validator.Validate {
	Validate = NewValidator(c, loc)
	return Validate
}

func NewValidator(c clock.Clock, loc *time.Location) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("today_or_later", func(fl validator.FieldLevel) bool {
		date, err := time.ParseInLocation(domain.DateLayout, fl.Field().String(), loc)
		if err != nil {
			return false
		}
		return !date.Before(clock.StartOfDay(c.Now(), loc))
	})
	return v
}

// ValidateStruct runs v over req and reports failures as a
// *domain.ValidationError with one entry per field.
func ValidateStruct(v *validator.Validate, req any) error {
	err := v.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := &domain.ValidationError{}
	for _, fe := range fieldErrs {
		out.Add(fe.Field(), describe(fe))
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "today_or_later":
		return "must be today or later"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
