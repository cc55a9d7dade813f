package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinderhq/petnames-core/internal/domain"
	apperrors "github.com/kinderhq/petnames-core/internal/errors"
)

func newTestNamesService(t *testing.T, env *testEnv, remote NamesRemote) *NamesService {
	t.Helper()
	svc, err := NewNamesService(context.Background(), env.logger, env.catalog, env.ledger, env.store, env.identity, remote)
	require.NoError(t, err)
	return svc
}

func TestNextNames_ServesFromLocalIndex(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	svc := newTestNamesService(t, env, nil)

	cards, err := svc.NextNames(context.Background(), 10, nil)
	require.NoError(t, err)
	// All five bundled names fall inside the default preferences.
	assert.Len(t, cards, 5)
	for _, card := range cards {
		assert.True(t, card.IsLocal)
		assert.NotEmpty(t, card.ID)
		assert.NotEmpty(t, card.SetTitle)
	}
}

func TestNextNames_HonorsLimit(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	svc := newTestNamesService(t, env, nil)

	cards, err := svc.NextNames(context.Background(), 2, nil)
	require.NoError(t, err)
	assert.Len(t, cards, 2)
}

func TestNextNames_SkipsSwipedAndOnScreen(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	_, err := env.ledger.MarkSwiped(ctx, "Luna")
	require.NoError(t, err)

	svc := newTestNamesService(t, env, nil)

	cards, err := svc.NextNames(ctx, 10, []string{"Max"})
	require.NoError(t, err)

	for _, card := range cards {
		assert.NotEqual(t, "Luna", card.Name)
		assert.NotEqual(t, "Max", card.Name)
	}
	assert.Len(t, cards, 3)
}

func TestNextNames_HonorsLanguagePreference(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, env.store.PutLanguages(ctx, []string{"nl"}))

	svc := newTestNamesService(t, env, nil)

	cards, err := svc.NextNames(ctx, 10, nil)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Bella", cards[0].Name)
}

func TestNextNames_HonorsStylePreference(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, env.store.PutStyles(ctx, []string{domain.StyleStrong}))

	svc := newTestNamesService(t, env, nil)

	cards, err := svc.NextNames(ctx, 10, nil)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Rex", cards[0].Name)
}

func TestNextNames_EmptyWhenExhaustedOffline(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	for _, name := range []string{"Luna", "Max", "Charlie", "Rex", "Bella"} {
		_, err := env.ledger.MarkSwiped(ctx, name)
		require.NoError(t, err)
	}

	svc := newTestNamesService(t, env, nil)

	_, err := svc.NextNames(ctx, 10, nil)
	assert.ErrorIs(t, err, apperrors.ErrEmpty)
}

func TestNextNames_FallsBackToRemoteWhenExhausted(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	for _, name := range []string{"Luna", "Max", "Charlie", "Rex", "Bella"} {
		_, err := env.ledger.MarkSwiped(ctx, name)
		require.NoError(t, err)
	}
	joinTestHousehold(t, env, uuid.New(), uuid.New())

	remote := &fakeNamesRemote{
		sets: []domain.NameSet{
			{ID: uuid.New(), Slug: "pets_en_vintage", Title: "Vintage", Language: strPtr("en"), Style: strPtr("vintage")},
		},
		cards: []domain.Card{
			{ID: uuid.New().String(), Name: "Archibald", Gender: domain.GenderMale, SetTitle: "Vintage"},
		},
	}
	svc := newTestNamesService(t, env, remote)

	cards, err := svc.NextNames(ctx, 10, nil)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Archibald", cards[0].Name)
	assert.False(t, cards[0].IsLocal)
	assert.Equal(t, 1, remote.calls)
}

func TestNextNames_RemoteFallbackFiltersLocallySwiped(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	for _, name := range []string{"Luna", "Max", "Charlie", "Rex", "Bella", "Archibald"} {
		_, err := env.ledger.MarkSwiped(ctx, name)
		require.NoError(t, err)
	}
	joinTestHousehold(t, env, uuid.New(), uuid.New())

	// The server does not know about local-only swipes and deals
	// Archibald anyway.
	remote := &fakeNamesRemote{
		sets: []domain.NameSet{
			{ID: uuid.New(), Slug: "pets_en_vintage", Title: "Vintage", Language: strPtr("en"), Style: strPtr("vintage")},
		},
		cards: []domain.Card{
			{ID: uuid.New().String(), Name: "Archibald", Gender: domain.GenderMale, SetTitle: "Vintage"},
		},
	}
	svc := newTestNamesService(t, env, remote)

	_, err := svc.NextNames(ctx, 10, nil)
	assert.ErrorIs(t, err, apperrors.ErrEmpty)
}

func TestNextNames_NoRemoteCallWhileLocalServes(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	remote := &fakeNamesRemote{}
	svc := newTestNamesService(t, env, remote)

	_, err := svc.NextNames(context.Background(), 3, nil)
	require.NoError(t, err)
	assert.Zero(t, remote.calls)
}

func TestRebuildIndex_PicksUpReplacedCatalog(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	svc := newTestNamesService(t, env, nil)
	require.Equal(t, domain.SourceBundled, svc.Index().Source())

	cached := &domain.CatalogSnapshot{
		Version: 2,
		NameSets: []domain.CatalogSet{
			{
				Slug: "pets_en_cute", Title: "Cute & Sweet", Language: "en", Style: "cute",
				Names: []domain.CatalogName{
					{Name: "Pixel", Gender: domain.GenderNeutral},
				},
			},
		},
	}
	require.NoError(t, env.catalog.Replace(ctx, cached))
	require.NoError(t, svc.RebuildIndex(ctx))

	assert.Equal(t, domain.SourceCached, svc.Index().Source())
	assert.Equal(t, 1, svc.Index().Len())
}

func TestMergeLikes_LocalWinsDuplicates(t *testing.T) {
	local := []domain.LikedName{
		{NameID: "like-abc", Name: "Luna", SetTitle: "Cute & Sweet"},
	}
	server := []domain.LikedName{
		{NameID: uuid.New().String(), Name: "luna", SetTitle: "Cute & Sweet"},
		{NameID: uuid.New().String(), Name: "Rex", SetTitle: "Strong & Bold"},
	}

	merged := MergeLikes(local, server)
	require.Len(t, merged, 2)
	assert.Equal(t, "like-abc", merged[0].NameID)
	assert.Equal(t, "Rex", merged[1].Name)
}

func TestMergeLikes_EmptyInputs(t *testing.T) {
	assert.Empty(t, MergeLikes(nil, nil))

	server := []domain.LikedName{{Name: "Rex"}}
	merged := MergeLikes(nil, server)
	assert.Equal(t, server, merged)
}
