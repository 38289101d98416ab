package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/dkhromov/stafftests/internal/apperr"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report field names as they appear on the wire.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// validateStruct runs tag validation and returns the failures as a
// field→messages map, or nil when the struct is valid.
func validateStruct(s any) apperr.FieldErrors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	fe := apperr.FieldErrors{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, e := range verrs {
			fe.Add(e.Field(), validationMessage(e))
		}
	} else {
		fe.Add("_", err.Error())
	}
	return fe
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Must be a valid email address."
	case "gt":
		return "Must be greater than " + e.Param() + "."
	case "gte":
		return "Must be at least " + e.Param() + "."
	default:
		return "Invalid value."
	}
}
