package catalog

import (
	"strings"

	"github.com/google/uuid"

	"github.com/kinderhq/petnames-core/internal/domain"
	"github.com/kinderhq/petnames-core/internal/normalize"
)

// Classification is the resolved language and style of a name set.
type Classification struct {
	Language string
	Style    string
}

// validStyles mirrors domain.AllStyles for O(1) membership checks.
//
//nolint:gochecknoglobals // Static lookup table
var validStyles = map[string]bool{
	domain.StyleCute:      true,
	domain.StyleStrong:    true,
	domain.StyleClassic:   true,
	domain.StyleFunny:     true,
	domain.StyleVintage:   true,
	domain.StyleNature:    true,
	domain.StyleNicknames: true,
}

// styleSynonyms maps legacy slug style words onto canonical style slugs.
// Frozen compat surface for sets that predate explicit style fields.
//
//nolint:gochecknoglobals // Static lookup table for legacy slug parsing
var styleSynonyms = map[string]string{
	"cute": domain.StyleCute, "sweet": domain.StyleCute, "lief": domain.StyleCute,
	"strong": domain.StyleStrong, "tough": domain.StyleStrong, "stoer": domain.StyleStrong,
	"classic": domain.StyleClassic, "klassiek": domain.StyleClassic,
	"funny": domain.StyleFunny, "playful": domain.StyleFunny, "grappig": domain.StyleFunny,
	"vintage": domain.StyleVintage, "nostalgic": domain.StyleVintage,
	"old-school": domain.StyleVintage, "oud-hollands": domain.StyleVintage,
	"nature": domain.StyleNature, "natuur": domain.StyleNature,
	"petnicknames": domain.StyleNicknames, "nicknames": domain.StyleNicknames,
	"koosnamen": domain.StyleNicknames,
}

// languageSlugWords maps each supported language code to the word legacy
// slugs use for it.
//
//nolint:gochecknoglobals // Static lookup table for legacy slug parsing
var languageSlugWords = map[string]string{
	"nl": "dutch", "en": "english", "de": "german", "fr": "french",
	"es": "spanish", "it": "italian", "sv": "swedish", "no": "norwegian",
	"da": "danish", "fi": "finnish",
}

// Classify resolves a remote name set to its language and style. Explicit
// fields win; legacy sets fall back to slug parsing. Returns false when the
// set cannot be classified, in which case it is skipped entirely.
func Classify(set domain.NameSet) (Classification, bool) {
	if set.Language != nil && set.Style != nil {
		lang := normalize.LanguageCode(*set.Language)
		style := strings.ToLower(strings.TrimSpace(*set.Style))
		if lang != "" && validStyles[style] {
			return Classification{Language: lang, Style: style}, true
		}
	}

	slug := strings.ToLower(strings.TrimSpace(set.Slug))
	return classifyBySlug(slug)
}

// classifyBySlug parses legacy slug formats:
// pets_{language}_{style} and {language-word}-{style}.
func classifyBySlug(slug string) (Classification, bool) {
	if rest, ok := strings.CutPrefix(slug, "pets_"); ok {
		parts := strings.Split(rest, "_")
		if len(parts) >= 2 {
			lang := normalize.LanguageCode(parts[0])
			style := parts[1]
			if lang != "" && validStyles[style] {
				return Classification{Language: lang, Style: style}, true
			}
		}
	}

	for lang, word := range languageSlugWords {
		rest, ok := strings.CutPrefix(slug, word+"-")
		if !ok {
			continue
		}
		if style, ok := styleSynonyms[rest]; ok {
			return Classification{Language: lang, Style: style}, true
		}
	}

	return Classification{}, false
}

// SetIDsFor returns the IDs of sets matching any of the wanted languages and
// any of the wanted styles. Unclassifiable sets never match.
func SetIDsFor(sets []domain.NameSet, languages, styles []string) []uuid.UUID {
	wantLang := make(map[string]bool, len(languages))
	for _, l := range languages {
		wantLang[normalize.LanguageCode(l)] = true
	}
	wantStyle := make(map[string]bool, len(styles))
	for _, s := range styles {
		wantStyle[s] = true
	}

	var ids []uuid.UUID
	for _, set := range sets {
		c, ok := Classify(set)
		if !ok {
			continue
		}
		if wantLang[c.Language] && wantStyle[c.Style] {
			ids = append(ids, set.ID)
		}
	}
	return ids
}

// AvailableLanguages returns the distinct languages that have at least one
// classifiable set.
func AvailableLanguages(sets []domain.NameSet) []string {
	seen := map[string]bool{}
	var langs []string
	for _, set := range sets {
		c, ok := Classify(set)
		if !ok || seen[c.Language] {
			continue
		}
		seen[c.Language] = true
		langs = append(langs, c.Language)
	}
	return langs
}
