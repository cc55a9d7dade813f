package service

import (
	"context"
	"encoding/json/v2"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/kinderhq/petnames-core/internal/catalog"
	"github.com/kinderhq/petnames-core/internal/domain"
	"github.com/kinderhq/petnames-core/internal/ledger"
	"github.com/kinderhq/petnames-core/internal/normalize"
	"github.com/kinderhq/petnames-core/internal/notify"
	"github.com/kinderhq/petnames-core/internal/store"
)

// testEnv bundles the layers most service tests need.
type testEnv struct {
	logger   *slog.Logger
	store    *store.Store
	ledger   *ledger.Ledger
	catalog  *catalog.Service
	identity *IdentityService
	notifier *notify.Notifier
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testBundledSnapshot is the catalog every test environment boots with:
// two English sets and one Dutch, matching the default preferences.
func testBundledSnapshot() *domain.CatalogSnapshot {
	return &domain.CatalogSnapshot{
		Version: 1,
		NameSets: []domain.CatalogSet{
			{
				Slug: "pets_en_cute", Title: "Cute & Sweet", Language: "en", Style: "cute",
				Names: []domain.CatalogName{
					{Name: "Luna", Gender: domain.GenderFemale},
					{Name: "Max", Gender: domain.GenderMale},
					{Name: "Charlie", Gender: domain.GenderNeutral},
				},
			},
			{
				Slug: "pets_en_strong", Title: "Strong & Bold", Language: "en", Style: "strong",
				Names: []domain.CatalogName{
					{Name: "Rex", Gender: domain.GenderMale},
				},
			},
			{
				Slug: "pets_nl_cute", Title: "Lief & Schattig", Language: "nl", Style: "cute",
				Names: []domain.CatalogName{
					{Name: "Bella", Gender: domain.GenderFemale},
				},
			},
		},
	}
}

// setupTestEnv creates a temp store, a bundled catalog on disk, and the
// layers built on them. No remote is wired; tests add fakes per service.
func setupTestEnv(t *testing.T) (*testEnv, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "petnames-service-test-*")
	require.NoError(t, err)

	st, err := store.New(filepath.Join(tmpDir, "test.db"), nil)
	require.NoError(t, err)

	bundledPath := filepath.Join(tmpDir, "bundled.json")
	data, err := json.Marshal(testBundledSnapshot())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(bundledPath, data, 0o600))

	logger := testLogger()

	cat, err := catalog.New(logger, st, bundledPath)
	require.NoError(t, err)

	led, err := ledger.New(context.Background(), logger, st)
	require.NoError(t, err)

	env := &testEnv{
		logger:   logger,
		store:    st,
		ledger:   led,
		catalog:  cat,
		identity: NewIdentityService(logger, st, nil),
		notifier: notify.New(logger, false, "", ""),
	}

	cleanup := func() {
		st.Close()
		os.RemoveAll(tmpDir)
	}
	return env, cleanup
}

// joinTestHousehold persists an identity and household so remote swipe
// traffic is attempted.
func joinTestHousehold(t *testing.T, env *testEnv, userID, householdID uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, env.store.PutDeviceIdentity(ctx, &domain.DeviceIdentity{
		UserID:      userID,
		AccessToken: "token-" + userID.String()[:8],
	}))
	require.NoError(t, env.store.PutCurrentHousehold(ctx, householdID))
}

// fakeSwipesRemote keeps swipe rows in memory and answers counts from them,
// behaving like the remote store across multiple acting users.
type fakeSwipesRemote struct {
	nameIDs  map[string]uuid.UUID
	records  []domain.SwipeRecord
	likes    map[uuid.UUID][]domain.LikedName
	failures int
	err      error
}

func newFakeSwipesRemote(names ...string) *fakeSwipesRemote {
	ids := make(map[string]uuid.UUID, len(names))
	for _, n := range names {
		ids[normalize.Name(n)] = uuid.New()
	}
	return &fakeSwipesRemote{nameIDs: ids, likes: map[uuid.UUID][]domain.LikedName{}}
}

func (f *fakeSwipesRemote) LookupNameID(_ context.Context, _, name string) (uuid.UUID, bool, error) {
	if f.err != nil {
		f.failures++
		return uuid.Nil, false, f.err
	}
	id, ok := f.nameIDs[normalize.Name(name)]
	return id, ok, nil
}

func (f *fakeSwipesRemote) InsertSwipe(_ context.Context, _ string, record domain.SwipeRecord) error {
	if f.err != nil {
		f.failures++
		return f.err
	}
	f.records = append(f.records, record)
	return nil
}

func (f *fakeSwipesRemote) DeleteSwipe(_ context.Context, _ string, householdID, userID, nameID uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	kept := f.records[:0]
	for _, r := range f.records {
		if r.HouseholdID == householdID && r.UserID == userID && r.NameID == nameID {
			continue
		}
		kept = append(kept, r)
	}
	f.records = kept
	return nil
}

func (f *fakeSwipesRemote) CountOtherLikes(_ context.Context, _ string, householdID, nameID, userID uuid.UUID) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	n := 0
	for _, r := range f.records {
		if r.HouseholdID == householdID && r.NameID == nameID &&
			r.Decision == domain.DecisionLike && r.UserID != userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeSwipesRemote) CountSwipes(_ context.Context, _ string, householdID, userID uuid.UUID, decision domain.Decision) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	n := 0
	for _, r := range f.records {
		if r.HouseholdID == householdID && r.UserID == userID && r.Decision == decision {
			n++
		}
	}
	return n, nil
}

func (f *fakeSwipesRemote) FetchServerLikes(_ context.Context, _ string, _, userID uuid.UUID) ([]domain.LikedName, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.likes[userID], nil
}

// fakeNamesRemote serves a fixed deck for the server fallback path.
type fakeNamesRemote struct {
	sets  []domain.NameSet
	cards []domain.Card
	calls int
	err   error
}

func (f *fakeNamesRemote) FetchNameSets(_ context.Context) ([]domain.NameSet, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sets, nil
}

func (f *fakeNamesRemote) FetchNextNames(_ context.Context, _ string, _ uuid.UUID, _ []uuid.UUID, _, _ string, _, limit int, _ []uuid.UUID) ([]domain.Card, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if limit > 0 && limit < len(f.cards) {
		return f.cards[:limit], nil
	}
	return f.cards, nil
}

// fakeSyncRemote serves a fixed remote catalog. setsErr and namesErr fail the
// respective fetch.
type fakeSyncRemote struct {
	sets     []domain.NameSet
	names    []domain.ServerName
	setsErr  error
	namesErr error
}

func (f *fakeSyncRemote) FetchNameSets(_ context.Context) ([]domain.NameSet, error) {
	if f.setsErr != nil {
		return nil, f.setsErr
	}
	return f.sets, nil
}

func (f *fakeSyncRemote) FetchNames(_ context.Context, setIDs []uuid.UUID) ([]domain.ServerName, error) {
	if f.namesErr != nil {
		return nil, f.namesErr
	}
	want := make(map[uuid.UUID]bool, len(setIDs))
	for _, id := range setIDs {
		want[id] = true
	}
	var out []domain.ServerName
	for _, n := range f.names {
		if want[n.SetID] {
			out = append(out, n)
		}
	}
	return out, nil
}

func strPtr(s string) *string {
	return &s
}
