package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/larlarbooks/larlar/pkg/config"
	"github.com/larlarbooks/larlar/pkg/storage"
	"github.com/larlarbooks/larlar/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type client struct {
	t     *testing.T
	e     *echo.Echo
	token string
}

func newClient(t *testing.T) *client {
	t.Helper()

	e, err := newEcho(config.NewForTest(), testutils.NewDB(t), storage.NewMemory(""))
	require.NoError(t, err)
	return &client{t: t, e: e}
}

func (cl *client) do(method, path, body string) (int, map[string]any) {
	cl.t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if cl.token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+cl.token)
	}
	rr := httptest.NewRecorder()
	cl.e.ServeHTTP(rr, req)

	resp := map[string]any{}
	if rr.Body.Len() > 0 {
		require.NoError(cl.t, json.Unmarshal(rr.Body.Bytes(), &resp))
	}
	return rr.Code, resp
}

func TestNotFound(t *testing.T) {
	t.Parallel()

	cl := newClient(t)
	code, resp := cl.do(http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "not_found", resp["code"])
}

func TestWritesRequireSession(t *testing.T) {
	t.Parallel()

	cl := newClient(t)
	for _, path := range []string{"/books", "/authors", "/genres", "/publishers", "/upload/cover"} {
		code, resp := cl.do(http.MethodPost, path, `{}`)
		assert.Equal(t, http.StatusUnauthorized, code, path)
		assert.Equal(t, "unauthorized", resp["code"], path)
	}

	code, resp := cl.do(http.MethodGet, "/books", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, resp["success"])
}

func TestPublicationWorkflow(t *testing.T) {
	t.Parallel()

	cl := newClient(t)

	code, _ := cl.do(http.MethodPost, "/register", `{"name":"Aung Aung","email":"aung@example.com","password":"securepassword123"}`)
	require.Equal(t, http.StatusCreated, code)

	code, resp := cl.do(http.MethodPost, "/auth/login", `{"email":"aung@example.com","password":"securepassword123"}`)
	require.Equal(t, http.StatusOK, code)
	cl.token = resp["token"].(string)

	code, resp = cl.do(http.MethodPost, "/books", `{"bookName":"Test"}`)
	require.Equal(t, http.StatusCreated, code)
	book := resp["book"].(map[string]any)
	id := book["id"].(string)
	assert.Equal(t, "draft", book["status"])
	authors := book["authors"].([]any)
	require.Len(t, authors, 1)
	assert.Equal(t, "Aung Aung", authors[0].(map[string]any)["authorName"])

	code, resp = cl.do(http.MethodPatch, "/books/"+id, `{"pdfPath":"book-content/test.pdf"}`)
	require.Equal(t, http.StatusOK, code)
	book = resp["book"].(map[string]any)
	assert.Equal(t, "published", book["status"])
	assert.Equal(t, "book-content/test.pdf", book["pdfPath"])

	code, _ = cl.do(http.MethodPatch, "/books/"+id, `{"chapters":[{"id":"c1","title":"One","content":"<p>one</p>","order":1}]}`)
	require.Equal(t, http.StatusOK, code)

	code, resp = cl.do(http.MethodGet, "/books/"+id, "")
	require.Equal(t, http.StatusOK, code)
	book = resp["book"].(map[string]any)
	assert.Equal(t, "book-content/test.pdf", book["pdfPath"])
	assert.Len(t, book["chapters"], 1)
	assert.Len(t, book["bookContents"], 2)

	code, resp = cl.do(http.MethodPatch, "/books/"+id, `{"bookName":"Renamed"}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "conflict", resp["code"])

	code, resp = cl.do(http.MethodGet, "/profile", "")
	require.Equal(t, http.StatusOK, code)
	stats := resp["stats"].(map[string]any)
	assert.InDelta(t, 1, stats["booksAuthored"], 0)
	assert.InDelta(t, 1, stats["publishedBooks"], 0)
}
