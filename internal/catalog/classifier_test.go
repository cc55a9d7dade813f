package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinderhq/petnames-core/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestClassify_ExplicitFields(t *testing.T) {
	set := domain.NameSet{
		Slug:     "whatever",
		Language: strPtr("en"),
		Style:    strPtr("cute"),
	}

	c, ok := Classify(set)
	require.True(t, ok)
	assert.Equal(t, "en", c.Language)
	assert.Equal(t, "cute", c.Style)
}

func TestClassify_ExplicitFieldsWinOverSlug(t *testing.T) {
	set := domain.NameSet{
		Slug:     "pets_nl_strong",
		Language: strPtr("en"),
		Style:    strPtr("cute"),
	}

	c, ok := Classify(set)
	require.True(t, ok)
	assert.Equal(t, "en", c.Language)
	assert.Equal(t, "cute", c.Style)
}

func TestClassify_SlugFallback(t *testing.T) {
	tests := []struct {
		name     string
		slug     string
		language string
		style    string
		ok       bool
	}{
		{"new format", "pets_en_cute", "en", "cute", true},
		{"new format dutch", "pets_nl_strong", "nl", "strong", true},
		{"new format with suffix", "pets_de_funny_v2", "de", "funny", true},
		{"legacy word format", "dutch-cute", "nl", "cute", true},
		{"legacy style synonym", "english-sweet", "en", "cute", true},
		{"legacy dutch synonym", "dutch-stoer", "nl", "strong", true},
		{"legacy vintage synonym", "dutch-oud-hollands", "nl", "vintage", true},
		{"legacy nicknames", "english-nicknames", "en", "petnicknames", true},
		{"unknown style", "pets_en_mystery", "", "", false},
		{"unknown language", "pets_xx_cute", "", "", false},
		{"unrelated slug", "premium-pack-1", "", "", false},
		{"empty slug", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := Classify(domain.NameSet{Slug: tt.slug})
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.language, c.Language)
				assert.Equal(t, tt.style, c.Style)
			}
		})
	}
}

func TestClassify_InvalidExplicitFieldsFallBackToSlug(t *testing.T) {
	set := domain.NameSet{
		Slug:     "pets_en_cute",
		Language: strPtr("klingon"),
		Style:    strPtr("mystery"),
	}

	c, ok := Classify(set)
	require.True(t, ok)
	assert.Equal(t, "en", c.Language)
	assert.Equal(t, "cute", c.Style)
}

func TestSetIDsFor(t *testing.T) {
	enCute := domain.NameSet{ID: uuid.New(), Slug: "pets_en_cute"}
	nlCute := domain.NameSet{ID: uuid.New(), Slug: "pets_nl_cute"}
	enStrong := domain.NameSet{ID: uuid.New(), Slug: "pets_en_strong"}
	unknown := domain.NameSet{ID: uuid.New(), Slug: "premium-pack-1"}
	sets := []domain.NameSet{enCute, nlCute, enStrong, unknown}

	ids := SetIDsFor(sets, []string{"en"}, []string{"cute"})
	assert.Equal(t, []uuid.UUID{enCute.ID}, ids)

	ids = SetIDsFor(sets, []string{"en", "nl"}, []string{"cute", "strong"})
	assert.ElementsMatch(t, []uuid.UUID{enCute.ID, nlCute.ID, enStrong.ID}, ids)

	ids = SetIDsFor(sets, []string{"de"}, []string{"cute"})
	assert.Empty(t, ids)
}

func TestAvailableLanguages(t *testing.T) {
	sets := []domain.NameSet{
		{ID: uuid.New(), Slug: "pets_en_cute"},
		{ID: uuid.New(), Slug: "pets_en_strong"},
		{ID: uuid.New(), Slug: "pets_nl_cute"},
		{ID: uuid.New(), Slug: "premium-pack-1"},
	}

	langs := AvailableLanguages(sets)
	assert.Equal(t, []string{"en", "nl"}, langs)
}
