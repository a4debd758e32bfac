package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Success(t *testing.T) {
	ts := setupTestServer(t)

	data := ts.registerTestUser(t, "alice")

	assert.Equal(t, "alice", data.User.Username)
	assert.NotEmpty(t, data.AccessToken)
	assert.NotEmpty(t, data.RefreshToken)
	assert.NotEmpty(t, data.SessionID)
	assert.Equal(t, "Bearer", data.TokenType)
	assert.Positive(t, data.ExpiresIn)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	ts := setupTestServer(t)

	ts.registerTestUser(t, "alice")

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"username": "alice",
		"password": "different-pass",
	})
	assert.Equal(t, http.StatusConflict, resp.Code)

	var envelope testEnvelope[struct{}]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "ALREADY_EXISTS", envelope.Error.Code)
}

func TestRegister_ShortPassword(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"username": "alice",
		"password": "short",
	})
	assert.GreaterOrEqual(t, resp.Code, http.StatusBadRequest)
}

func TestLogin_Success(t *testing.T) {
	ts := setupTestServer(t)

	reg := ts.registerTestUser(t, "alice")

	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"username": "alice",
		"password": "password1234",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[AuthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, reg.User.ID, envelope.Data.User.ID)
	assert.NotEmpty(t, envelope.Data.AccessToken)
}

func TestLogin_IdenticalFailures(t *testing.T) {
	ts := setupTestServer(t)

	ts.registerTestUser(t, "alice")

	// Unknown username and wrong password must be indistinguishable.
	unknownResp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"username": "mallory",
		"password": "password1234",
	})
	wrongPwResp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"username": "alice",
		"password": "not-the-password",
	})

	assert.Equal(t, http.StatusUnauthorized, unknownResp.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPwResp.Code)

	var unknownEnv, wrongPwEnv testEnvelope[struct{}]
	require.NoError(t, json.Unmarshal(unknownResp.Body.Bytes(), &unknownEnv))
	require.NoError(t, json.Unmarshal(wrongPwResp.Body.Bytes(), &wrongPwEnv))

	require.NotNil(t, unknownEnv.Error)
	require.NotNil(t, wrongPwEnv.Error)
	assert.Equal(t, unknownEnv.Error.Code, wrongPwEnv.Error.Code)
	assert.Equal(t, unknownEnv.Error.Message, wrongPwEnv.Error.Message)
}

func TestRefresh_Rotation(t *testing.T) {
	ts := setupTestServer(t)

	reg := ts.registerTestUser(t, "alice")

	resp := ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": reg.RefreshToken,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[AuthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.NotEqual(t, reg.RefreshToken, envelope.Data.RefreshToken)
	assert.Equal(t, reg.SessionID, envelope.Data.SessionID)

	// The old refresh token is dead after rotation.
	resp = ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": reg.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestLogout_RevokesSession(t *testing.T) {
	ts := setupTestServer(t)

	reg := ts.registerTestUser(t, "alice")

	resp := ts.api.Post("/api/v1/auth/logout", map[string]any{
		"session_id": reg.SessionID,
	})
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": reg.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
