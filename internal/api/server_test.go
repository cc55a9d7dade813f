package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinderhq/petnames-core/internal/auth"
	"github.com/kinderhq/petnames-core/internal/catalog"
	"github.com/kinderhq/petnames-core/internal/config"
	"github.com/kinderhq/petnames-core/internal/domain"
	"github.com/kinderhq/petnames-core/internal/ledger"
	"github.com/kinderhq/petnames-core/internal/notify"
	"github.com/kinderhq/petnames-core/internal/service"
	"github.com/kinderhq/petnames-core/internal/store"
)

// testEnvelope mirrors the response envelope for decoding in tests.
type testEnvelope[T any] struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// testServer wraps the API server for handler testing.
type testServer struct {
	*Server
	api     humatest.TestAPI
	cleanup func()
}

const testCatalogJSON = `{
	"version": 1,
	"nameSets": [
		{
			"slug": "pets_en_cute",
			"title": "Cute & Sweet",
			"language": "en",
			"style": "cute",
			"names": [
				{"name": "Luna", "gender": "female"},
				{"name": "Max", "gender": "male"},
				{"name": "Charlie", "gender": "neutral"}
			]
		}
	]
}`

// setupTestServer creates a fully offline test server: real store, catalog,
// and ledger, no remote client.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "petnames-api-test-*")
	require.NoError(t, err)

	st, err := store.New(filepath.Join(tmpDir, "test.db"), nil)
	require.NoError(t, err)

	bundledPath := filepath.Join(tmpDir, "bundled.json")
	require.NoError(t, os.WriteFile(bundledPath, []byte(testCatalogJSON), 0o600))

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	authKey, err := auth.LoadOrGenerateKey(tmpDir)
	require.NoError(t, err)
	tokenService, err := auth.NewTokenService(authKey, 720*time.Hour)
	require.NoError(t, err)

	catalogService, err := catalog.New(logger, st, bundledPath)
	require.NoError(t, err)

	led, err := ledger.New(context.Background(), logger, st)
	require.NoError(t, err)

	notifier := notify.New(logger, false, "", "")
	identityService := service.NewIdentityService(logger, st, nil)

	namesService, err := service.NewNamesService(context.Background(), logger, catalogService, led, st, identityService, nil)
	require.NoError(t, err)

	services := &Services{
		Token:     tokenService,
		Identity:  identityService,
		Names:     namesService,
		Swipes:    service.NewSwipesService(logger, led, st, identityService, nil, notifier),
		Sync:      service.NewSyncService(logger, catalogService, namesService, st, nil, config.SyncConfig{Interval: 24 * time.Hour, CheckEvery: time.Hour}),
		Household: service.NewHouseholdService(logger, identityService, nil, notifier),
		Matches:   service.NewMatchesService(logger, identityService, nil),
		Prefs:     service.NewPrefsService(logger, st),
		Catalog:   catalogService,
	}

	s := NewServer("Petnames Test", st, services, logger)

	cleanup := func() {
		_ = st.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return &testServer{
		Server:  s,
		api:     humatest.Wrap(t, s.api),
		cleanup: cleanup,
	}
}

// pairTestDevice pairs a device and returns the bearer header value.
func (ts *testServer) pairTestDevice(t *testing.T) string {
	t.Helper()

	resp := ts.api.Post("/api/v1/device/pair", map[string]any{
		"device_name": "Test Phone",
	})
	require.Equal(t, http.StatusOK, resp.Code, "Pairing failed: %s", resp.Body.String())

	var envelope testEnvelope[PairDeviceResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.Token)

	return "Bearer " + envelope.Data.Token
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[HealthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, "healthy", envelope.Data.Status)
	assert.Equal(t, "healthy", envelope.Data.Components["database"].Status)
	assert.Equal(t, "healthy", envelope.Data.Components["index"].Status)
}

func TestPairDevice_IssuesWorkingToken(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	token := ts.pairTestDevice(t)

	resp := ts.api.Get("/api/v1/device/session", "Authorization: "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[SessionResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.False(t, envelope.Data.SignedIn)
	assert.False(t, envelope.Data.InHousehold)
}

func TestAuth_RejectsMissingAndBadTokens(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/v1/names/next")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = ts.api.Get("/api/v1/names/next", "Authorization: Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestNextNames_ReturnsCards(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()
	token := ts.pairTestDevice(t)

	resp := ts.api.Get("/api/v1/names/next?limit=2", "Authorization: "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[NextNamesResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data.Cards, 2)
	for _, card := range envelope.Data.Cards {
		assert.True(t, card.IsLocal)
	}
}

func TestSwipeFlow_LikeCountsAndUndo(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()
	token := ts.pairTestDevice(t)

	resp := ts.api.Post("/api/v1/swipes", "Authorization: "+token, map[string]any{
		"name":      "Luna",
		"gender":    "female",
		"set_title": "Cute & Sweet",
		"decision":  "like",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var swipeEnvelope testEnvelope[SwipeResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &swipeEnvelope))
	assert.True(t, swipeEnvelope.Data.Recorded)
	assert.False(t, swipeEnvelope.Data.Match)

	// Repeat swipe is idempotent.
	resp = ts.api.Post("/api/v1/swipes", "Authorization: "+token, map[string]any{
		"name":     "Luna",
		"decision": "dismiss",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &swipeEnvelope))
	assert.False(t, swipeEnvelope.Data.Recorded)

	resp = ts.api.Get("/api/v1/swipes/counts", "Authorization: "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var countsEnvelope testEnvelope[SwipeCountsResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &countsEnvelope))
	assert.Equal(t, 1, countsEnvelope.Data.Likes)
	assert.Equal(t, 0, countsEnvelope.Data.Dismisses)

	resp = ts.api.Get("/api/v1/likes", "Authorization: "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var likesEnvelope testEnvelope[ListLikesResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &likesEnvelope))
	require.Len(t, likesEnvelope.Data.Likes, 1)
	assert.Equal(t, "Luna", likesEnvelope.Data.Likes[0].Name)

	resp = ts.api.Delete("/api/v1/swipes/Luna", "Authorization: "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/likes", "Authorization: "+token)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &likesEnvelope))
	assert.Empty(t, likesEnvelope.Data.Likes)
}

func TestSwipe_RejectsUnknownDecision(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()
	token := ts.pairTestDevice(t)

	resp := ts.api.Post("/api/v1/swipes", "Authorization: "+token, map[string]any{
		"name":     "Luna",
		"decision": "superlike",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var envelope testEnvelope[struct{}]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, "VALIDATION", envelope.Code)
}

func TestFilters_UpdateNarrowsDeck(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()
	token := ts.pairTestDevice(t)

	resp := ts.api.Put("/api/v1/prefs/filters", "Authorization: "+token, map[string]any{
		"gender":      "male",
		"starts_with": "any",
		"max_length":  0,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = ts.api.Get("/api/v1/names/next", "Authorization: "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[NextNamesResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	// Male filter passes Max and the neutral Charlie.
	names := make([]string, 0, len(envelope.Data.Cards))
	for _, card := range envelope.Data.Cards {
		names = append(names, card.Name)
	}
	assert.ElementsMatch(t, []string{"Max", "Charlie"}, names)
}

func TestCatalogStatus_ReportsBundled(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()
	token := ts.pairTestDevice(t)

	resp := ts.api.Get("/api/v1/catalog/status", "Authorization: "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[CatalogStatusResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, string(domain.SourceBundled), envelope.Data.Source)
	assert.Equal(t, 1, envelope.Data.Version)
	assert.Equal(t, 3, envelope.Data.Indexed)
	assert.True(t, envelope.Data.LastSync.IsZero())
}

func TestCatalogSync_OfflineIsBadGateway(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()
	token := ts.pairTestDevice(t)

	resp := ts.api.Post("/api/v1/catalog/sync", "Authorization: "+token, map[string]any{})
	assert.Equal(t, http.StatusBadGateway, resp.Code)

	var envelope testEnvelope[struct{}]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, "UNAVAILABLE", envelope.Code)
}

func TestMatches_OfflineIsBadGateway(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()
	token := ts.pairTestDevice(t)

	resp := ts.api.Get("/api/v1/matches", "Authorization: "+token)
	assert.Equal(t, http.StatusBadGateway, resp.Code)
}
