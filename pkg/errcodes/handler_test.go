package errcodes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handle(t *testing.T, method string, err error) (int, map[string]interface{}) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, "/", nil)
	rr := httptest.NewRecorder()
	c := e.NewContext(req, rr)

	NewHandler().Handle(err, c)

	if rr.Body.Len() == 0 {
		return rr.Code, nil
	}
	body := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return rr.Code, body
}

func TestHandle(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		err    error
		status int
		code   string
		msg    string
	}{
		{"validation", ValidationError(`"bookName" is required`), http.StatusBadRequest, "validation_error", `"bookName" is required`},
		{"unauthorized", Unauthorized("Authentication required"), http.StatusUnauthorized, "unauthorized", "Authentication required"},
		{"not found", NotFound("Book"), http.StatusNotFound, "not_found", "Book not found."},
		{"conflict", Conflict("User with this email already exists"), http.StatusConflict, "conflict", "User with this email already exists"},
		{"wrapped custom", errors.WithStack(NotFound("Author")), http.StatusNotFound, "not_found", "Author not found."},
		{"echo error", echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"), http.StatusMethodNotAllowed, "method_not_allowed", "Method Not Allowed"},
		{"generic", errors.New("no such table: books"), http.StatusInternalServerError, "internal_server_error", "Internal Server Error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(tt *testing.T) {
			status, body := handle(tt, http.MethodGet, tc.err)
			assert.Equal(tt, tc.status, status)
			assert.Equal(tt, false, body["success"])
			assert.Equal(tt, tc.code, body["code"])
			assert.Equal(tt, tc.msg, body["error"])
		})
	}
}

func TestHandle_DetailsOnlyForServerErrors(t *testing.T) {
	t.Parallel()

	_, body := handle(t, http.MethodGet, errors.New("database is locked"))
	assert.Equal(t, "database is locked", body["details"])

	_, body = handle(t, http.MethodGet, ValidationError("bad"))
	_, ok := body["details"]
	assert.False(t, ok)
}

func TestHandle_StorageError(t *testing.T) {
	t.Parallel()

	err := errors.Wrap(StorageError("upload cover"), "connection refused")
	status, body := handle(t, http.MethodPost, err)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "storage_error", body["code"])
	assert.Equal(t, "Failed to upload cover in storage.", body["error"])
	assert.Contains(t, body["details"], "connection refused")
}

func TestHandle_Head(t *testing.T) {
	t.Parallel()

	status, body := handle(t, http.MethodHead, NotFound("Book"))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Nil(t, body)
}

func TestErrorIs(t *testing.T) {
	t.Parallel()

	err := errors.WithStack(NotFound("Book"))
	assert.True(t, errors.Is(err, NotFound("Book")))
	assert.False(t, errors.Is(err, NotFound("Author")))

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, http.StatusNotFound, e.HTTPCode)
}
