package service

import (
	"context"
	"encoding/hex"
	"path/filepath"
	"testing"
	"time"

	"github.com/choosyapp/choosy-server/internal/auth"
	domainerrors "github.com/choosyapp/choosy-server/internal/errors"
	"github.com/choosyapp/choosy-server/internal/store/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupAuthTest creates services backed by a real SQLite store in a temp dir.
func setupAuthTest(t *testing.T) (*AuthService, *SessionService) {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	s, err := sqlite.Open(dbPath, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	authKey, err := auth.LoadOrGenerateKey(tmpDir)
	require.NoError(t, err)

	tokenService, err := auth.NewTokenService(
		hex.EncodeToString(authKey),
		15*time.Minute,
		30*24*time.Hour,
	)
	require.NoError(t, err)

	sessionService := NewSessionService(s, tokenService, nil)
	authService := NewAuthService(s, tokenService, sessionService, nil)

	return authService, sessionService
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	authService, _ := setupAuthTest(t)
	ctx := context.Background()

	resp, err := authService.Register(ctx, RegisterRequest{
		Username: "alice",
		Password: "password1234",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.User.Username)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)

	// Hash, not plaintext, in the user record.
	assert.NotEqual(t, "password1234", resp.User.PasswordHash)

	login, err := authService.Login(ctx, LoginRequest{
		Username: "alice",
		Password: "password1234",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	authService, _ := setupAuthTest(t)
	ctx := context.Background()

	_, err := authService.Register(ctx, RegisterRequest{Username: "alice", Password: "password1234"})
	require.NoError(t, err)

	_, err = authService.Register(ctx, RegisterRequest{Username: "alice", Password: "different-pass"})
	require.Error(t, err)

	var appErr *domainerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.CodeAlreadyExists, appErr.Code)
}

func TestAuthService_Register_Validation(t *testing.T) {
	authService, _ := setupAuthTest(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"missing username", RegisterRequest{Password: "password1234"}},
		{"missing password", RegisterRequest{Username: "alice"}},
		{"short password", RegisterRequest{Username: "alice", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := authService.Register(ctx, tt.req)
			require.Error(t, err)

			var appErr *domainerrors.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, domainerrors.CodeValidation, appErr.Code)
		})
	}
}

func TestAuthService_Login_IdenticalFailures(t *testing.T) {
	authService, _ := setupAuthTest(t)
	ctx := context.Background()

	_, err := authService.Register(ctx, RegisterRequest{Username: "alice", Password: "password1234"})
	require.NoError(t, err)

	// Unknown username and wrong password produce the same error.
	_, errUnknown := authService.Login(ctx, LoginRequest{Username: "mallory", Password: "password1234"})
	_, errWrongPw := authService.Login(ctx, LoginRequest{Username: "alice", Password: "not-the-password"})

	require.Error(t, errUnknown)
	require.Error(t, errWrongPw)

	var unknownErr, wrongPwErr *domainerrors.Error
	require.ErrorAs(t, errUnknown, &unknownErr)
	require.ErrorAs(t, errWrongPw, &wrongPwErr)
	assert.Equal(t, domainerrors.CodeInvalidCredentials, unknownErr.Code)
	assert.Equal(t, domainerrors.CodeInvalidCredentials, wrongPwErr.Code)
	assert.Equal(t, unknownErr.Message, wrongPwErr.Message)
}

func TestAuthService_RefreshRotation(t *testing.T) {
	authService, _ := setupAuthTest(t)
	ctx := context.Background()

	reg, err := authService.Register(ctx, RegisterRequest{Username: "alice", Password: "password1234"})
	require.NoError(t, err)

	refreshed, err := authService.RefreshTokens(ctx, RefreshRequest{RefreshToken: reg.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, reg.RefreshToken, refreshed.RefreshToken)
	assert.Equal(t, reg.SessionID, refreshed.SessionID)

	// The old refresh token is dead after rotation.
	_, err = authService.RefreshTokens(ctx, RefreshRequest{RefreshToken: reg.RefreshToken})
	require.Error(t, err)

	var appErr *domainerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.CodeTokenExpired, appErr.Code)
}

func TestAuthService_Logout(t *testing.T) {
	authService, _ := setupAuthTest(t)
	ctx := context.Background()

	reg, err := authService.Register(ctx, RegisterRequest{Username: "alice", Password: "password1234"})
	require.NoError(t, err)

	require.NoError(t, authService.Logout(ctx, reg.SessionID))

	// Refresh after logout fails.
	_, err = authService.RefreshTokens(ctx, RefreshRequest{RefreshToken: reg.RefreshToken})
	require.Error(t, err)
}

func TestAuthService_VerifyAccessToken(t *testing.T) {
	authService, _ := setupAuthTest(t)
	ctx := context.Background()

	reg, err := authService.Register(ctx, RegisterRequest{Username: "alice", Password: "password1234"})
	require.NoError(t, err)

	user, claims, err := authService.VerifyAccessToken(ctx, reg.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, user.ID)
	assert.Equal(t, "alice", claims.Username)

	_, _, err = authService.VerifyAccessToken(ctx, "v4.local.not-a-token")
	require.Error(t, err)
}
