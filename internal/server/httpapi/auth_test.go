package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskhub/internal/common"
	"github.com/dmitrijs2005/taskhub/internal/server/auth"
	"github.com/dmitrijs2005/taskhub/internal/server/models"
	"github.com/dmitrijs2005/taskhub/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLogin_Success(t *testing.T) {
	env := newTestEnv(t)
	expires := time.Now().Add(7 * 24 * time.Hour)
	env.users.On("Login", mock.Anything, "a@example.com", "pw").Return(&services.LoginResult{
		User: &models.User{ID: ownerID, Email: "a@example.com", Name: "Alice"},
		TokenPair: services.TokenPair{
			AccessToken:  "access",
			RefreshToken: auth.RefreshToken{Token: "refresh", ExpiresAt: expires},
		},
	}, nil).Once()

	rec := env.do(t, http.MethodPost, "/api/login", map[string]string{"email": "a@example.com", "password": "pw"}, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, loginResponse{ID: ownerID, Email: "a@example.com", Name: "Alice", Token: "access", RefreshToken: "refresh"}, got)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, common.RefreshTokenCookie, c.Name)
	assert.Equal(t, "refresh", c.Value)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.False(t, c.Secure)
	assert.WithinDuration(t, expires, c.Expires, time.Second)
}

func TestLogin_UnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	env := newTestEnv(t)
	env.users.On("Login", mock.Anything, "ghost@example.com", "pw").Return(nil, common.ErrUserNotFound).Once()
	env.users.On("Login", mock.Anything, "a@example.com", "bad").Return(nil, common.ErrorUnauthorized).Once()

	unknown := env.do(t, http.MethodPost, "/api/login", map[string]string{"email": "ghost@example.com", "password": "pw"}, "")
	wrong := env.do(t, http.MethodPost, "/api/login", map[string]string{"email": "a@example.com", "password": "bad"}, "")

	require.Equal(t, http.StatusUnauthorized, unknown.Code)
	require.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, decodeError(t, unknown), decodeError(t, wrong))
	assert.Equal(t, "Invalid email or password.", decodeError(t, wrong).Message)
	assert.Empty(t, wrong.Result().Cookies())
}

func TestLogin_BadPayload(t *testing.T) {
	env := newTestEnv(t)

	for _, body := range []string{`{"email": 5, "password": "x"}`, `{"email": "a@b.c"}`, `not json`} {
		rec := env.do(t, http.MethodPost, "/api/login", body, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestLogin_InternalErrorHidesDetail(t *testing.T) {
	env := newTestEnv(t)
	env.users.On("Login", mock.Anything, "a@example.com", "pw").
		Return(nil, errors.New("pq: connection refused to 10.0.0.5")).Once()

	rec := env.do(t, http.MethodPost, "/api/login", map[string]string{"email": "a@example.com", "password": "pw"}, "")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
	assert.Equal(t, "Something went wrong. Please try again later.", decodeError(t, rec).Message)
	assert.Contains(t, env.logs.String(), "10.0.0.5")
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	env.users.On("Register", mock.Anything, services.RegisterInput{Name: "alice", Email: "a@example.com", Password: "pw"}).
		Return(&models.User{ID: ownerID, Email: "a@example.com", Name: "alice", PasswordHash: []byte("secret")}, "tok", nil).Once()
	env.users.On("Register", mock.Anything, services.RegisterInput{Name: "Bob", Email: "a@example.com", Password: "pw"}).
		Return(nil, "", common.ErrEmailTaken).Once()

	rec := env.do(t, http.MethodPost, "/api/register",
		map[string]string{"username": "alice", "email": "a@example.com", "password": "pw"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "tok", got["token"])

	rec = env.do(t, http.MethodPost, "/api/register",
		map[string]string{"name": "Bob", "email": "a@example.com", "password": "pw"}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "An account with this email already exists.", decodeError(t, rec).Message)
}

func TestRefresh_FromCookie(t *testing.T) {
	env := newTestEnv(t)
	env.users.On("RefreshToken", mock.Anything, "from-cookie").Return(&services.TokenPair{
		AccessToken:  "new-access",
		RefreshToken: auth.RefreshToken{Token: "new-refresh", ExpiresAt: time.Now().Add(time.Hour)},
	}, nil).Once()

	req := newRequest(http.MethodPost, "/api/refresh-token", nil)
	req.AddCookie(&http.Cookie{Name: common.RefreshTokenCookie, Value: "from-cookie"})
	rec := serve(env.handler, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got refreshResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, refreshResponse{Token: "new-access", RefreshToken: "new-refresh"}, got)
}

func TestRefresh_Errors(t *testing.T) {
	env := newTestEnv(t)
	env.users.On("RefreshToken", mock.Anything, "unknown").Return(nil, common.ErrorUnauthorized).Once()
	env.users.On("RefreshToken", mock.Anything, "stale").Return(nil, common.ErrRefreshTokenExpired).Once()

	rec := env.do(t, http.MethodPost, "/api/refresh-token", map[string]string{"refreshToken": "unknown"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Authentication is required.", decodeError(t, rec).Message)

	rec = env.do(t, http.MethodPost, "/api/refresh-token", map[string]string{"refreshToken": "stale"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "refresh token has expired")
}

func TestCountUsers(t *testing.T) {
	env := newTestEnv(t)
	env.users.On("CountUsers", mock.Anything).Return(int64(3), nil).Once()

	rec := env.do(t, http.MethodGet, "/api/users/count", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "3", rec.Body.String())
}
