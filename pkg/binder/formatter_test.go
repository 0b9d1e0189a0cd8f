package binder

import (
	"reflect"
	"testing"

	ut "github.com/go-playground/universal-translator"
	"github.com/stretchr/testify/assert"
)

// fieldError implements validator.FieldError for a single failed tag.
type fieldError struct {
	tag   string
	param string
	kind  reflect.Kind
}

func (e fieldError) Tag() string                      { return e.tag }
func (e fieldError) ActualTag() string                { return e.tag }
func (e fieldError) Namespace() string                { return "Payload.bookName" }
func (e fieldError) StructNamespace() string          { return "Payload.BookName" }
func (e fieldError) Field() string                    { return "bookName" }
func (e fieldError) StructField() string              { return "BookName" }
func (e fieldError) Value() interface{}               { return nil }
func (e fieldError) Param() string                    { return e.param }
func (e fieldError) Kind() reflect.Kind               { return e.kind }
func (e fieldError) Type() reflect.Type               { return nil }
func (e fieldError) Translate(_ ut.Translator) string { return "" }
func (e fieldError) Error() string                    { return e.tag }

func TestFormatValidationError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  fieldError
		want string
	}{
		{fieldError{tag: "required"}, `"bookName" is required`},
		{fieldError{tag: "email"}, `"bookName" is not a valid email`},
		{fieldError{tag: "notblank"}, `"bookName" can't be blank`},
		{fieldError{tag: "url"}, `"bookName" must be an http or https URL`},
		{fieldError{tag: "uuid"}, `"bookName" must be a valid ID`},
		{fieldError{tag: "min", param: "8", kind: reflect.String}, `"bookName" must be at least 8 characters`},
		{fieldError{tag: "max", param: "1", kind: reflect.String}, `"bookName" must be at most 1 character`},
		{fieldError{tag: "max", param: "100", kind: reflect.Int}, `"bookName" must be at most 100`},
		{fieldError{tag: "gte", param: "0", kind: reflect.Float64}, `"bookName" must be at least 0`},
		{fieldError{tag: "min", param: "1", kind: reflect.Slice}, `"bookName" must be at least 1 element`},
		{fieldError{tag: "lte", param: "5", kind: reflect.Slice}, `"bookName" must be at most 5 elements`},
		{fieldError{tag: "gt", param: "0", kind: reflect.Int}, `"bookName" must be greater than 0`},
		{fieldError{tag: "ne", param: "x"}, `"bookName" can't be "x"`},
		{fieldError{tag: "oneof", param: "draft  published"}, `"bookName" must be one of [draft published]`},
		{fieldError{tag: "alphanum"}, `"bookName" is invalid`},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, formatValidationError(tc.err), tc.err.tag)
	}
}
