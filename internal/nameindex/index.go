// Package nameindex builds the in-memory, deduplicated, shuffled index of
// candidate names that query traffic is served from.
package nameindex

import (
	"math/rand/v2"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/kinderhq/petnames-core/internal/domain"
	"github.com/kinderhq/petnames-core/internal/normalize"
)

// Index is an immutable view over one catalog snapshot: entries deduplicated
// by canonical name and shuffled into a fixed presentation order. Queries
// walk the shuffled order; the index itself never changes after Build.
type Index struct {
	entries []domain.Entry
	// byName maps canonical name to its entry position.
	byName map[string]int
	source domain.CatalogSource
}

// Build indexes a snapshot. Sets are processed in slug order so duplicate
// resolution does not depend on document order: the first set (by slug) to
// contain a canonical name owns its entry. Each build shuffles afresh.
func Build(snapshot *domain.CatalogSnapshot, source domain.CatalogSource) *Index {
	sets := make([]domain.CatalogSet, len(snapshot.NameSets))
	copy(sets, snapshot.NameSets)
	sort.SliceStable(sets, func(i, j int) bool {
		return sets[i].Slug < sets[j].Slug
	})

	var entries []domain.Entry
	byName := make(map[string]int)

	for _, set := range sets {
		for _, n := range set.Names {
			canonical := normalize.Name(n.Name)
			if canonical == "" {
				continue
			}
			if _, seen := byName[canonical]; seen {
				continue
			}
			byName[canonical] = len(entries)
			entries = append(entries, domain.Entry{
				Name:     n.Name,
				Gender:   n.Gender,
				SetSlug:  set.Slug,
				SetTitle: set.Title,
				Language: set.Language,
				Style:    set.Style,
			})
		}
	}

	rand.Shuffle(len(entries), func(i, j int) {
		entries[i], entries[j] = entries[j], entries[i]
	})
	// Positions moved during the shuffle.
	for i, e := range entries {
		byName[normalize.Name(e.Name)] = i
	}

	return &Index{
		entries: entries,
		byName:  byName,
		source:  source,
	}
}

// Len returns the number of deduplicated entries.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Source identifies the snapshot this index was built from.
func (ix *Index) Source() domain.CatalogSource {
	return ix.source
}

// Lookup finds an entry by name, matching on the canonical form.
func (ix *Index) Lookup(name string) (domain.Entry, bool) {
	i, ok := ix.byName[normalize.Name(name)]
	if !ok {
		return domain.Entry{}, false
	}
	return ix.entries[i], true
}

// Query returns up to limit entries passing the filters, in shuffled index
// order, skipping any whose canonical name is in exclude. The index holds no
// swipe state; exclusion is entirely the caller's. allowedSets restricts
// results to entries owned by those set slugs; nil allows every set.
//
// Predicates apply in a fixed order: set slug, exclusion, gender, prefix,
// length. A zero limit returns all passing entries.
func (ix *Index) Query(filters domain.Filters, allowedSets map[string]bool, exclude map[string]bool, limit int) []domain.Entry {
	var out []domain.Entry
	prefix := strings.ToLower(filters.StartsWith)

	for _, e := range ix.entries {
		if allowedSets != nil && !allowedSets[e.SetSlug] {
			continue
		}
		canonical := normalize.Name(e.Name)
		if exclude[canonical] {
			continue
		}
		if !e.Gender.MatchesFilter(filters.Gender) {
			continue
		}
		if prefix != "" && prefix != domain.FilterAny && !strings.HasPrefix(canonical, prefix) {
			continue
		}
		if filters.MaxLength > 0 && len([]rune(e.Name)) > filters.MaxLength {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// Holder publishes the active index. Rebuilds swap the pointer atomically so
// queries never observe a partially built index and are never blocked by a
// rebuild in progress.
type Holder struct {
	current atomic.Pointer[Index]
}

// NewHolder creates a holder with an initial index.
func NewHolder(ix *Index) *Holder {
	h := &Holder{}
	h.current.Store(ix)
	return h
}

// Current returns the active index.
func (h *Holder) Current() *Index {
	return h.current.Load()
}

// Swap publishes a new index.
func (h *Holder) Swap(ix *Index) {
	h.current.Store(ix)
}
