package api

import (
	"encoding/json/v2"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medialog/medialog-server/internal/registry"
	"github.com/medialog/medialog-server/internal/search"
	"github.com/medialog/medialog-server/internal/service"
	"github.com/medialog/medialog-server/internal/store"
)

// testServer wraps the API server for handler testing.
type testServer struct {
	*Server
	api     humatest.TestAPI
	cleanup func()
}

// setupTestServer creates a fully wired server on a temp data dir.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "medialog-api-test-*")
	require.NoError(t, err)

	logger := slog.New(slog.DiscardHandler)
	reg := registry.New()

	st, err := store.New(filepath.Join(tmpDir, "test.db"), nil, reg)
	require.NoError(t, err)

	index, err := search.NewSearchIndex(search.Options{
		DataPath: filepath.Join(tmpDir, "search"),
		Logger:   logger,
	})
	require.NoError(t, err)

	services := &Services{
		User:      service.NewUserService(st, logger),
		Catalog:   service.NewCatalogService(st, index, logger),
		List:      service.NewListService(st, reg, logger),
		Stats:     service.NewStatsService(st, reg, logger),
		Reconcile: service.NewReconcileService(st, reg, 0, logger),
	}

	s := NewServer(st, services, logger)

	cleanup := func() {
		_ = index.Close()
		_ = st.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return &testServer{
		Server:  s,
		api:     humatest.Wrap(t, s.api),
		cleanup: cleanup,
	}
}

// decodeBody unmarshals a response body, failing the test on bad JSON.
func decodeBody(t *testing.T, data []byte, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(data, v))
}

// createTestUser registers a user and returns its ID.
func (ts *testServer) createTestUser(t *testing.T, email string) string {
	t.Helper()

	resp := ts.api.Post("/api/v1/users", map[string]any{
		"email":        email,
		"display_name": "Test User",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var user UserResponse
	decodeBody(t, resp.Body.Bytes(), &user)
	require.NotEmpty(t, user.ID)
	return user.ID
}

// createTestItem adds a catalog item and returns its ID.
func (ts *testServer) createTestItem(t *testing.T, category string, body map[string]any) string {
	t.Helper()

	resp := ts.api.Post("/api/v1/catalog/"+category, body)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var item MediaItemResponse
	decodeBody(t, resp.Body.Bytes(), &item)
	require.NotEmpty(t, item.ID)
	return item.ID
}

func TestHealthCheck_Success(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/health")

	assert.Equal(t, http.StatusOK, resp.Code)

	var healthResp HealthResponse
	decodeBody(t, resp.Body.Bytes(), &healthResp)

	// The index starts empty, so search reports degraded.
	assert.Equal(t, "degraded", healthResp.Status)
	assert.Equal(t, "healthy", healthResp.Components["database"].Status)
	assert.Equal(t, "degraded", healthResp.Components["search"].Status)
}

func TestCreateUser_DuplicateEmailRejected(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ts.createTestUser(t, "dup@example.com")

	resp := ts.api.Post("/api/v1/users", map[string]any{
		"email":        "DUP@example.com",
		"display_name": "Other",
	})
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestGetUser_NotFound(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/v1/users/usr_missing")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
