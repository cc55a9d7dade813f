package domain

// Gender classifies a candidate name.
type Gender string

// Gender values as they appear in catalog documents and the remote store.
const (
	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
	GenderNeutral     Gender = "neutral"
	GenderUnspecified Gender = "unspecified"
)

// GenderAny is the wildcard filter value, never stored on an entry.
const GenderAny = "any"

// ParseGender maps a raw string to a Gender, defaulting to unspecified.
func ParseGender(raw string) Gender {
	switch Gender(raw) {
	case GenderMale, GenderFemale, GenderNeutral:
		return Gender(raw)
	default:
		return GenderUnspecified
	}
}

// MatchesFilter reports whether this gender passes a gender filter.
// Neutral entries pass every filter; "any" passes everything.
func (g Gender) MatchesFilter(filter string) bool {
	if filter == GenderAny {
		return true
	}
	return string(g) == filter || g == GenderNeutral
}

// CatalogName is a single candidate name inside a catalog set.
type CatalogName struct {
	Name   string `json:"name"`
	Gender Gender `json:"gender"`
}

// CatalogSet is a named grouping of candidate names by language and style,
// as stored in catalog snapshots (bundled asset and synced cache alike).
type CatalogSet struct {
	Slug        string        `json:"slug"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Language    string        `json:"language"`
	Style       string        `json:"style"`
	Names       []CatalogName `json:"names"`
}

// CatalogSnapshot is a complete, versioned catalog. Two snapshots exist at
// runtime: the bundled one shipped with the app (immutable fallback) and the
// server-synced cache (preferred when present). Snapshots are replaced
// wholesale, never mutated.
type CatalogSnapshot struct {
	Version     int          `json:"version"`
	LastUpdated string       `json:"lastUpdated"`
	NameSets    []CatalogSet `json:"nameSets"`
}

// EntryCount returns the total number of names across all sets,
// before deduplication.
func (s *CatalogSnapshot) EntryCount() int {
	n := 0
	for _, set := range s.NameSets {
		n += len(set.Names)
	}
	return n
}

// CatalogSource identifies which snapshot is serving queries.
type CatalogSource string

// Snapshot sources.
const (
	SourceBundled CatalogSource = "bundled"
	SourceCached  CatalogSource = "cached"
)

// Entry is a deduplicated, indexed candidate name with its set metadata.
// Identity is the canonical (lowercase-normalized) form of Name; the index
// guarantees no two entries share it. Immutable once indexed.
type Entry struct {
	Name     string `json:"name"`
	Gender   Gender `json:"gender"`
	SetSlug  string `json:"set_slug"`
	SetTitle string `json:"set_title"`
	Language string `json:"language"`
	Style    string `json:"style"`
}
