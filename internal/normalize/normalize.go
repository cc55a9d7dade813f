// Package normalize provides utilities for normalizing names and language codes.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// lower is a language-agnostic case folder. Name identity must not depend on
// the device locale (e.g. Turkish dotless-i), so the undetermined language is
// used deliberately.
//
//nolint:gochecknoglobals // Stateless folder, safe for concurrent use via Clone
var lower = cases.Lower(language.Und)

// Name returns the canonical form of a pet name used as its identity:
// NFC-normalized, case-folded, and trimmed. Two entries with the same
// canonical name are the same name, regardless of source set or casing.
func Name(raw string) string {
	s := strings.TrimSpace(sanitizeString(raw))
	if s == "" {
		return ""
	}
	s = norm.NFC.String(s)
	return lower.String(s)
}

// languageWordToCode maps legacy slug language words to ISO 639-1 codes.
// This is a frozen compat surface for pre-classification set slugs
// (e.g. "dutch-cute"); new sets carry explicit language fields and must
// not be added here.
//
//nolint:gochecknoglobals // Static lookup table for legacy slug parsing
var languageWordToCode = map[string]string{
	"dutch":     "nl",
	"english":   "en",
	"german":    "de",
	"french":    "fr",
	"spanish":   "es",
	"italian":   "it",
	"swedish":   "sv",
	"norwegian": "no",
	"danish":    "da",
	"finnish":   "fi",
}

// validLanguageCodes contains the ISO 639-1 codes the catalog supports.
//
//nolint:gochecknoglobals // Static lookup table
var validLanguageCodes = map[string]bool{
	"nl": true, "en": true, "de": true, "fr": true, "es": true,
	"it": true, "sv": true, "no": true, "da": true, "fi": true,
}

// LanguageCode converts a language representation to a supported ISO 639-1 code.
// It handles:
//   - ISO 639-1 codes: "en" -> "en"
//   - Locale codes: "en-US", "en_GB" -> "en"
//   - Legacy slug words: "dutch" -> "nl"
//
// Returns empty string for unrecognized or unsupported values.
func LanguageCode(raw string) string {
	if raw == "" {
		return ""
	}

	s := strings.ToLower(strings.TrimSpace(sanitizeString(raw)))
	if s == "" {
		return ""
	}

	// Handle locale codes (e.g., "en-US", "en_GB").
	if idx := strings.IndexAny(s, "-_"); idx > 0 {
		s = s[:idx]
	}

	if len(s) == 2 && validLanguageCodes[s] {
		return s
	}

	if code, ok := languageWordToCode[s]; ok {
		return code
	}

	return ""
}

// sanitizeString removes null bytes from strings, which can cause
// issues in databases and JSON parsing.
func sanitizeString(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 0 {
			return -1
		}
		return r
	}, s)
}
