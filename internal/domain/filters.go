package domain

// FilterAny is the wildcard value for string-typed filters.
const FilterAny = "any"

// Filters narrows which indexed entries are served as cards. The zero
// MaxLength means unbounded.
type Filters struct {
	Gender     string `json:"gender"`
	StartsWith string `json:"starts_with"`
	MaxLength  int    `json:"max_length"`
}

// DefaultFilters returns the filters a fresh device starts with.
func DefaultFilters() Filters {
	return Filters{
		Gender:     FilterAny,
		StartsWith: FilterAny,
		MaxLength:  0,
	}
}

// Style slugs recognized by the catalog.
const (
	StyleCute      = "cute"
	StyleStrong    = "strong"
	StyleClassic   = "classic"
	StyleFunny     = "funny"
	StyleVintage   = "vintage"
	StyleNature    = "nature"
	StyleNicknames = "petnicknames"
)

// AllStyles lists every recognized style slug.
//
//nolint:gochecknoglobals // Static catalog vocabulary
var AllStyles = []string{
	StyleCute, StyleStrong, StyleClassic, StyleFunny,
	StyleVintage, StyleNature, StyleNicknames,
}

// DefaultLanguages are the language preferences a fresh device starts with.
//
//nolint:gochecknoglobals // Static default
var DefaultLanguages = []string{"nl", "en"}
