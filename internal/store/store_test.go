package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinderhq/petnames-core/internal/domain"
)

// setupTestStore creates a temporary store for testing
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	// Create temp directory for test database
	tmpDir, err := os.MkdirTemp("", "petnames-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := New(dbPath, nil)
	require.NoError(t, err)
	require.NotNil(t, store)

	// Return cleanup function
	cleanup := func() {
		store.Close()
		os.RemoveAll(tmpDir)
	}

	return store, cleanup
}

func TestCachedCatalog_MissingReturnsNil(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	snapshot, err := store.GetCachedCatalog(ctx)
	require.NoError(t, err)
	assert.Nil(t, snapshot)
}

func TestCachedCatalog_RoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	snapshot := &domain.CatalogSnapshot{
		Version:     3,
		LastUpdated: "2026-01-15",
		NameSets: []domain.CatalogSet{
			{
				Slug:     "pets_en_cute",
				Title:    "Cute Names",
				Language: "en",
				Style:    "cute",
				Names: []domain.CatalogName{
					{Name: "Luna", Gender: domain.GenderFemale},
					{Name: "Max", Gender: domain.GenderMale},
				},
			},
		},
	}

	err := store.PutCachedCatalog(ctx, snapshot)
	require.NoError(t, err)

	loaded, err := store.GetCachedCatalog(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 3, loaded.Version)
	assert.Len(t, loaded.NameSets, 1)
	assert.Equal(t, "pets_en_cute", loaded.NameSets[0].Slug)
	assert.Equal(t, 2, loaded.EntryCount())
}

func TestCachedCatalog_Delete(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	err := store.PutCachedCatalog(ctx, &domain.CatalogSnapshot{Version: 1})
	require.NoError(t, err)

	err = store.DeleteCachedCatalog(ctx)
	require.NoError(t, err)

	snapshot, err := store.GetCachedCatalog(ctx)
	require.NoError(t, err)
	assert.Nil(t, snapshot)
}

func TestCachedCatalog_CorruptValueDiscarded(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	err := store.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyCatalogCached), []byte("{not json"))
	})
	require.NoError(t, err)

	snapshot, err := store.GetCachedCatalog(ctx)
	require.NoError(t, err)
	assert.Nil(t, snapshot)

	// The corrupt value is gone, so the next sync writes a clean key.
	exists, err := store.exists([]byte(keyCatalogCached))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLastSyncTime_MissingReturnsZero(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	ts, err := store.GetLastSyncTime(ctx)
	require.NoError(t, err)
	assert.True(t, ts.IsZero())
}

func TestLastSyncTime_RoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	err := store.PutLastSyncTime(ctx, now)
	require.NoError(t, err)

	ts, err := store.GetLastSyncTime(ctx)
	require.NoError(t, err)
	assert.True(t, ts.Equal(now))
}

func TestSwipedNames_MissingReturnsEmptySet(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	set, err := store.GetSwipedNames(ctx)
	require.NoError(t, err)
	assert.NotNil(t, set)
	assert.Empty(t, set)
}

func TestSwipedNames_RoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	err := store.PutSwipedNames(ctx, []string{"luna", "max"})
	require.NoError(t, err)

	set, err := store.GetSwipedNames(ctx)
	require.NoError(t, err)
	assert.True(t, set["luna"])
	assert.True(t, set["max"])
	assert.False(t, set["bella"])
}

func TestLocalLikes_RoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	likes := []domain.LikedName{
		{NameID: "like-abc", Name: "Luna", Gender: domain.GenderFemale, SetTitle: "Cute Names"},
		{NameID: "like-def", Name: "Max", Gender: domain.GenderMale, SetTitle: "Cute Names"},
	}

	err := store.PutLocalLikes(ctx, likes)
	require.NoError(t, err)

	loaded, err := store.GetLocalLikes(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "Luna", loaded[0].Name)
	assert.Equal(t, "Max", loaded[1].Name)
}

func TestFilters_MissingReturnsDefaults(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	filters, err := store.GetFilters(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultFilters(), filters)
}

func TestFilters_RoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	filters := domain.Filters{Gender: "female", StartsWith: "l", MaxLength: 6}
	err := store.PutFilters(ctx, filters)
	require.NoError(t, err)

	loaded, err := store.GetFilters(ctx)
	require.NoError(t, err)
	assert.Equal(t, filters, loaded)
}

func TestLanguages_MissingReturnsDefaults(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	langs, err := store.GetLanguages(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"nl", "en"}, langs)
}

func TestStyles_MissingReturnsAll(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	styles, err := store.GetStyles(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.AllStyles, styles)
}

func TestDeviceIdentity_MissingReturnsNil(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	identity, err := store.GetDeviceIdentity(ctx)
	require.NoError(t, err)
	assert.Nil(t, identity)
}

func TestDeviceIdentity_RoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	identity := &domain.DeviceIdentity{
		UserID:      uuid.New(),
		AccessToken: "token-value",
	}

	err := store.PutDeviceIdentity(ctx, identity)
	require.NoError(t, err)

	loaded, err := store.GetDeviceIdentity(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, identity.UserID, loaded.UserID)
	assert.Equal(t, identity.AccessToken, loaded.AccessToken)
}

func TestCurrentHousehold_MissingReturnsNil(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	id, err := store.GetCurrentHousehold(ctx)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, id)
}

func TestCurrentHousehold_RoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	id := uuid.New()
	err := store.PutCurrentHousehold(ctx, id)
	require.NoError(t, err)

	loaded, err := store.GetCurrentHousehold(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, loaded)
}

func TestStore_Persistence(t *testing.T) {
	// Create temp directory for test database
	tmpDir, err := os.MkdirTemp("", "petnames-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	dbPath := filepath.Join(tmpDir, "test.db")
	ctx := context.Background()

	store1, err := New(dbPath, nil)
	require.NoError(t, err)

	err = store1.PutSwipedNames(ctx, []string{"luna"})
	require.NoError(t, err)

	err = store1.Close()
	require.NoError(t, err)

	// Reopen store
	store2, err := New(dbPath, nil)
	require.NoError(t, err)
	defer store2.Close()

	// Verify data persisted
	set, err := store2.GetSwipedNames(ctx)
	require.NoError(t, err)
	assert.True(t, set["luna"])
}
