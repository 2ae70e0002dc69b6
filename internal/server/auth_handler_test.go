package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/types"
)

func register(t *testing.T, s *Server, email, password string) types.LoginResponse {
	t.Helper()
	w := do(t, s, jsonRequest(t, http.MethodPost, "/users", map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": password,
	}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeJSON[types.LoginResponse](t, w)
}

func authed(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestAuthHandler_Register(t *testing.T) {
	s := newTestServer(t, newMockStore())

	resp := register(t, s, "test@example.com", "password123")
	require.NotNil(t, resp.User)
	assert.Equal(t, "test@example.com", resp.User.Email)
	assert.True(t, resp.User.PasswordSet)
	assert.NotEmpty(t, resp.Token)

	claims, err := s.jwtService.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)

	t.Run("form", func(t *testing.T) {
		w := do(t, s, formRequest(http.MethodPost, "/users", url.Values{
			"name":     {"Form User"},
			"email":    {"form@example.com"},
			"password": {"password123"},
			"phone":    {"555-0100"},
		}))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		user := decodeJSON[types.LoginResponse](t, w).User
		assert.Equal(t, "Form User", user.Name)
		assert.Equal(t, "555-0100", user.Phone)
	})

	t.Run("duplicate email", func(t *testing.T) {
		w := do(t, s, jsonRequest(t, http.MethodPost, "/users", map[string]string{
			"name": "Again", "email": "test@example.com", "password": "password456",
		}))
		require.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, errorMessage(t, w), "test@example.com")
	})

	t.Run("validation", func(t *testing.T) {
		tests := map[string]map[string]string{
			"bad email":      {"name": "A", "email": "not-an-email", "password": "password123"},
			"short password": {"name": "A", "email": "a@example.com", "password": "short"},
			"missing name":   {"email": "b@example.com", "password": "password123"},
		}
		for name, body := range tests {
			t.Run(name, func(t *testing.T) {
				w := do(t, s, jsonRequest(t, http.MethodPost, "/users", body))
				assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			})
		}
	})
}

func TestAuthHandler_Login(t *testing.T) {
	store := newMockStore()
	s := newTestServer(t, store)
	registered := register(t, s, "login@example.com", "password123")

	w := do(t, s, jsonRequest(t, http.MethodPost, "/auth/login", map[string]string{
		"email": "login@example.com", "password": "password123",
	}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeJSON[types.LoginResponse](t, w)
	assert.Equal(t, registered.User.ID, resp.User.ID)
	assert.NotEmpty(t, resp.Token)

	w = do(t, s, formRequest(http.MethodPost, "/auth/login", url.Values{
		"email": {"login@example.com"}, "password": {"password123"},
	}))
	assert.Equal(t, http.StatusOK, w.Code)

	// a user without a password cannot log in
	_, err := store.CreateUser(t.Context(), "No Password", "nopass@example.com", "")
	require.NoError(t, err)

	tests := map[string]map[string]string{
		"wrong password": {"email": "login@example.com", "password": "password124"},
		"unknown email":  {"email": "nobody@example.com", "password": "password123"},
		"no password":    {"email": "nopass@example.com", "password": "password123"},
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			w := do(t, s, jsonRequest(t, http.MethodPost, "/auth/login", body))
			require.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "invalid email or password", errorMessage(t, w))
		})
	}
}

func TestAuthHandler_Me(t *testing.T) {
	s := newTestServer(t, newMockStore())
	reg := register(t, s, "me@example.com", "password123")

	w := do(t, s, authed(httptest.NewRequest(http.MethodGet, "/users/me", nil), reg.Token))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	user := decodeJSON[types.User](t, w)
	assert.Equal(t, reg.User.ID, user.ID)
	assert.Equal(t, "me@example.com", user.Email)
	assert.NotContains(t, w.Body.String(), "password_hash")

	w = do(t, s, httptest.NewRequest(http.MethodGet, "/users/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, s, authed(httptest.NewRequest(http.MethodGet, "/users/me", nil), "garbage"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_UpdatePassword(t *testing.T) {
	s := newTestServer(t, newMockStore())
	reg := register(t, s, "pw@example.com", "password123")

	update := func(current, next string) *httptest.ResponseRecorder {
		req := jsonRequest(t, http.MethodPut, "/users/me/password", map[string]string{
			"current_password": current,
			"new_password":     next,
		})
		return do(t, s, authed(req, reg.Token))
	}

	w := update("wrong-password", "newpassword1")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "current password is incorrect", errorMessage(t, w))

	w = update("password123", "password123")
	assert.Equal(t, http.StatusBadRequest, w.Code, "new password must differ")

	w = update("password123", "newpassword1")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Password updated successfully", decodeJSON[map[string]string](t, w)["message"])

	login := func(password string) int {
		return do(t, s, jsonRequest(t, http.MethodPost, "/auth/login", map[string]string{
			"email": "pw@example.com", "password": password,
		})).Code
	}
	assert.Equal(t, http.StatusUnauthorized, login("password123"))
	assert.Equal(t, http.StatusOK, login("newpassword1"))

	w = do(t, s, jsonRequest(t, http.MethodPut, "/users/me/password", map[string]string{
		"current_password": "newpassword1", "new_password": "another-one",
	}))
	assert.Equal(t, http.StatusUnauthorized, w.Code, "requires a token")
}
