package handlers

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/anjiri1684/appointment_booking/locales"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// Letters, digits and @ . + - _ only.
var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	return v
}

func translate(lang, key string, args ...any) string {
	return locales.T(lang, key, args...)
}

// validationErrors turns validator output into a field -> message map.
func validationErrors(err error, lang string) map[string]string {
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["non_field_errors"] = translate(lang, "validation_invalid")
		return out
	}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required", "email", "username":
			out[fe.Field()] = translate(lang, "validation_"+fe.Tag())
		case "min", "max", "gte":
			out[fe.Field()] = translate(lang, "validation_"+fe.Tag(), fe.Param())
		default:
			out[fe.Field()] = translate(lang, "validation_invalid")
		}
	}
	return out
}
