package auth

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/larlarbooks/larlar/pkg/errcodes"
	"github.com/larlarbooks/larlar/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Login(t *testing.T) {
	t.Parallel()

	db := testutils.NewDB(t)
	svc := NewService(db, "test-jwt-secret")
	h := &handler{authService: svc}
	user := testutils.CreateUser(t, db, "aung@example.com", "securepassword123")

	payload := `{"email":"Aung@Example.com","password":"securepassword123"}`
	c, rr := testutils.NewContext(t, payload, http.MethodPost, "/auth/login")

	err := h.login(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp MeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.NotEmpty(t, resp.Token)
	assert.NotContains(t, rr.Body.String(), "passwordHash")

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, resp.Token, cookies[0].Value)
}

func TestHandler_Login_BadCredentials(t *testing.T) {
	t.Parallel()

	db := testutils.NewDB(t)
	h := &handler{authService: NewService(db, "test-jwt-secret")}
	testutils.CreateUser(t, db, "aung@example.com", "securepassword123")

	cases := []string{
		`{"email":"aung@example.com","password":"wrongpassword"}`,
		`{"email":"nobody@example.com","password":"securepassword123"}`,
	}
	for _, payload := range cases {
		c, _ := testutils.NewContext(t, payload, http.MethodPost, "/auth/login")
		err := h.login(c)
		require.Error(t, err)

		var errResp *errcodes.Error
		require.ErrorAs(t, err, &errResp)
		assert.Equal(t, http.StatusUnauthorized, errResp.HTTPCode)
		assert.Equal(t, "Invalid email or password", errResp.Message)
	}
}

func TestHandler_Login_Validation(t *testing.T) {
	t.Parallel()

	db := testutils.NewDB(t)
	h := &handler{authService: NewService(db, "test-jwt-secret")}

	c, _ := testutils.NewContext(t, `{"email":"not-an-email","password":"x"}`, http.MethodPost, "/auth/login")
	err := h.login(c)

	var errResp *errcodes.Error
	require.ErrorAs(t, err, &errResp)
	assert.Equal(t, http.StatusBadRequest, errResp.HTTPCode)
}

func TestHandler_Logout_ClearsCookie(t *testing.T) {
	t.Parallel()

	h := &handler{}
	c, rr := testutils.NewContext(t, "", http.MethodPost, "/auth/logout")

	require.NoError(t, h.logout(c))
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestHandler_Me_RequiresUser(t *testing.T) {
	t.Parallel()

	h := &handler{}
	c, _ := testutils.NewContext(t, "", http.MethodGet, "/auth/me")

	err := h.me(c)
	var errResp *errcodes.Error
	require.ErrorAs(t, err, &errResp)
	assert.Equal(t, http.StatusUnauthorized, errResp.HTTPCode)
}
