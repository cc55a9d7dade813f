package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinderhq/petnames-core/internal/domain"
	apperrors "github.com/kinderhq/petnames-core/internal/errors"
)

func TestPrefs_FiltersRoundTrip(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	svc := NewPrefsService(env.logger, env.store)
	ctx := context.Background()

	filters, err := svc.Filters(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultFilters(), filters)

	want := domain.Filters{Gender: "female", StartsWith: "L", MaxLength: 6}
	require.NoError(t, svc.SetFilters(ctx, want))

	got, err := svc.Filters(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPrefs_RejectsBadFilters(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	svc := NewPrefsService(env.logger, env.store)
	ctx := context.Background()

	err := svc.SetFilters(ctx, domain.Filters{Gender: "dragon"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	err = svc.SetFilters(ctx, domain.Filters{Gender: domain.FilterAny, MaxLength: -1})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestPrefs_LanguagesNormalized(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	svc := NewPrefsService(env.logger, env.store)
	ctx := context.Background()

	require.NoError(t, svc.SetLanguages(ctx, []string{"en-US", "Dutch", "en", "klingon"}))

	langs, err := svc.Languages(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "nl"}, langs)
}

func TestPrefs_LanguagesRequireOne(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	svc := NewPrefsService(env.logger, env.store)

	err := svc.SetLanguages(context.Background(), []string{"klingon"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestPrefs_StylesValidated(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	svc := NewPrefsService(env.logger, env.store)
	ctx := context.Background()

	require.NoError(t, svc.SetStyles(ctx, []string{" Cute ", domain.StyleStrong}))

	styles, err := svc.Styles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.StyleCute, domain.StyleStrong}, styles)

	err = svc.SetStyles(ctx, []string{"edgy"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
