package binder

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/segmentio/encoding/json"
)

// fixedMessages are the validation messages that don't depend on the tag's
// parameter.
var fixedMessages = map[string]string{
	"email":    "%q is not a valid email",
	"notblank": "%q can't be blank",
	"required": "%q is required",
	"url":      "%q must be an http or https URL",
	"uuid":     "%q must be a valid ID",
}

func formatUnmarshalTypeError(err *json.UnmarshalTypeError) string {
	return fmt.Sprintf("%q should be of type %s", strings.Trim(err.Field, "."), err.Type)
}

func formatSchemaConversionError(err schema.ConversionError) string {
	return fmt.Sprintf("%q should be of type %s", err.Key, err.Type)
}

// formatValidationError phrases the first failed rule of a payload the way
// the service layer phrases its own validation errors.
func formatValidationError(err validator.FieldError) string {
	field := err.Field()

	if msg, ok := fixedMessages[err.Tag()]; ok {
		return fmt.Sprintf(msg, field)
	}

	switch err.Tag() {
	case "min", "gte":
		return fmt.Sprintf("%q must be at least %s", field, withUnit(err))
	case "max", "lte":
		return fmt.Sprintf("%q must be at most %s", field, withUnit(err))
	case "gt":
		return fmt.Sprintf("%q must be greater than %s", field, err.Param())
	case "ne":
		return fmt.Sprintf("%q can't be %q", field, err.Param())
	case "oneof":
		return fmt.Sprintf("%q must be one of [%s]", field, strings.Join(strings.Fields(err.Param()), " "))
	default:
		return fmt.Sprintf("%q is invalid", field)
	}
}

// withUnit appends "characters" or "elements" to a length bound. Numeric
// bounds are returned as is.
func withUnit(err validator.FieldError) string {
	unit := ""
	//exhaustive:ignore
	switch err.Kind() {
	case reflect.String:
		unit = "character"
	case reflect.Slice, reflect.Array, reflect.Map:
		unit = "element"
	default:
		return err.Param()
	}
	if err.Param() != "1" {
		unit += "s"
	}
	return err.Param() + " " + unit
}
