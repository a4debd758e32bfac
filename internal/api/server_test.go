package api

import (
	"context"
	"encoding/hex"
	"encoding/json/v2"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/choosyapp/choosy-server/internal/auth"
	domainerrors "github.com/choosyapp/choosy-server/internal/errors"
	"github.com/choosyapp/choosy-server/internal/giphy"
	"github.com/choosyapp/choosy-server/internal/service"
	"github.com/choosyapp/choosy-server/internal/store/sqlite"
)

// testEnvelope mirrors the response envelope for decoding in tests.
type testEnvelope[T any] struct {
	Success bool      `json:"success"`
	Data    T         `json:"data"`
	Error   *APIError `json:"error,omitempty"`
}

// fakeProvider serves canned gifs without touching the network.
type fakeProvider struct {
	searchResults []giphy.Gif
	notFound      map[string]bool
}

func (f *fakeProvider) Search(_ context.Context, _ string, limit, offset int) ([]giphy.Gif, error) {
	res := f.searchResults
	if offset >= len(res) {
		return []giphy.Gif{}, nil
	}
	res = res[offset:]
	if len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

func (f *fakeProvider) GetByID(_ context.Context, gifID string) (*giphy.Gif, error) {
	if f.notFound[gifID] {
		return nil, domainerrors.NotFoundf("gif %s not found", gifID)
	}
	return &giphy.Gif{ID: gifID, Title: "Gif " + gifID}, nil
}

// testServer wraps the API server for handler testing.
type testServer struct {
	*Server
	api      humatest.TestAPI
	provider *fakeProvider
}

// setupTestServer creates a test server over a real SQLite store and a
// fake gif provider.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	tmpDir := t.TempDir()

	st, err := sqlite.Open(filepath.Join(tmpDir, "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	authKey, err := auth.LoadOrGenerateKey(tmpDir)
	require.NoError(t, err)

	tokenService, err := auth.NewTokenService(
		hex.EncodeToString(authKey),
		15*time.Minute,
		30*24*time.Hour,
	)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	provider := &fakeProvider{notFound: map[string]bool{}}

	sessionService := service.NewSessionService(st, tokenService, logger)
	authService := service.NewAuthService(st, tokenService, sessionService, logger)
	services := &Services{
		Auth:    authService,
		Session: sessionService,
		Search:  service.NewSearchService(provider),
		Star:    service.NewStarService(st, provider, logger),
		Tag:     service.NewTagService(st, provider, logger),
	}

	router := chi.NewRouter()

	humaConfig := huma.DefaultConfig("Choosy API Test", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:           st,
		services:        services,
		router:          router,
		api:             api,
		logger:          logger,
		authRateLimiter: NewRateLimiter(100, time.Minute, 50),
	}

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerGifRoutes()
	s.registerStarRoutes()
	s.registerTagRoutes()

	return &testServer{
		Server:   s,
		api:      humatest.Wrap(t, api),
		provider: provider,
	}
}

// registerTestUser creates a user via the API and returns the access token
// and session data.
func (ts *testServer) registerTestUser(t *testing.T, username string) AuthResponse {
	t.Helper()

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"username": username,
		"password": "password1234",
	})
	require.Equal(t, http.StatusOK, resp.Code, "Register failed: %s", resp.Body.String())

	var envelope testEnvelope[AuthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)

	return envelope.Data
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[HealthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.Equal(t, "healthy", envelope.Data.Status)
	require.Equal(t, "healthy", envelope.Data.Components["database"].Status)
}
