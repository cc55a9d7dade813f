package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kinderhq/petnames-core/internal/catalog"
	"github.com/kinderhq/petnames-core/internal/domain"
	apperrors "github.com/kinderhq/petnames-core/internal/errors"
	"github.com/kinderhq/petnames-core/internal/ledger"
	"github.com/kinderhq/petnames-core/internal/nameindex"
	"github.com/kinderhq/petnames-core/internal/normalize"
	"github.com/kinderhq/petnames-core/internal/store"
)

// NamesRemote is the remote surface candidate serving needs.
type NamesRemote interface {
	FetchNameSets(ctx context.Context) ([]domain.NameSet, error)
	FetchNextNames(ctx context.Context, token string, householdID uuid.UUID, setIDs []uuid.UUID, gender, startsWith string, maxLength, limit int, excludeIDs []uuid.UUID) ([]domain.Card, error)
}

// NamesService serves swipe candidates. The on-device index is always tried
// first; the remote store is a fallback for when local candidates run out,
// never a requirement.
type NamesService struct {
	logger   *slog.Logger
	catalog  *catalog.Service
	holder   *nameindex.Holder
	ledger   *ledger.Ledger
	store    *store.Store
	identity *IdentityService
	remote   NamesRemote
}

// NewNamesService builds the initial index from the authoritative snapshot.
// remote may be nil for offline operation.
func NewNamesService(ctx context.Context, logger *slog.Logger, cat *catalog.Service, led *ledger.Ledger, st *store.Store, identity *IdentityService, remote NamesRemote) (*NamesService, error) {
	snapshot, source, err := cat.Authoritative(ctx)
	if err != nil {
		return nil, err
	}

	ix := nameindex.Build(snapshot, source)
	logger.Info("Name index built", "source", source, "entries", ix.Len())

	return &NamesService{
		logger:   logger,
		catalog:  cat,
		holder:   nameindex.NewHolder(ix),
		ledger:   led,
		store:    st,
		identity: identity,
		remote:   remote,
	}, nil
}

// Index returns the active index.
func (s *NamesService) Index() *nameindex.Index {
	return s.holder.Current()
}

// RebuildIndex rebuilds the index from the current authoritative snapshot and
// publishes it. In-flight queries keep the index they started on.
func (s *NamesService) RebuildIndex(ctx context.Context) error {
	snapshot, source, err := s.catalog.Authoritative(ctx)
	if err != nil {
		return err
	}

	ix := nameindex.Build(snapshot, source)
	s.holder.Swap(ix)
	s.logger.Info("Name index rebuilt", "source", source, "entries", ix.Len())
	return nil
}

// NextNames returns up to limit swipe candidates the user has not decided on,
// honoring the stored filters and language and style preferences. extraExclude
// holds canonical names currently on screen, so a refill never deals a card
// the user is looking at. When the local index is exhausted it falls back to
// the remote store; apperrors.ErrEmpty means both sources are drained.
func (s *NamesService) NextNames(ctx context.Context, limit int, extraExclude []string) ([]domain.Card, error) {
	if limit <= 0 {
		limit = 10
	}

	filters, err := s.store.GetFilters(ctx)
	if err != nil {
		return nil, err
	}
	languages, err := s.store.GetLanguages(ctx)
	if err != nil {
		return nil, err
	}
	styles, err := s.store.GetStyles(ctx)
	if err != nil {
		return nil, err
	}

	exclude := s.ledger.SwipedNames()
	for _, name := range extraExclude {
		if canonical := normalize.Name(name); canonical != "" {
			exclude[canonical] = true
		}
	}

	entries := s.Index().Query(filters, s.allowedSets(ctx, languages, styles), exclude, limit)
	if len(entries) > 0 {
		cards := make([]domain.Card, len(entries))
		for i, e := range entries {
			cards[i] = domain.Card{
				ID:       "local-" + normalize.Name(e.Name),
				Name:     e.Name,
				Gender:   e.Gender,
				SetTitle: e.SetTitle,
				IsLocal:  true,
			}
		}
		return cards, nil
	}

	cards, err := s.nextFromRemote(ctx, filters, languages, styles, limit)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, apperrors.Empty("no names left under the current filters")
	}
	return cards, nil
}

// allowedSets resolves the language and style preferences to the set slugs a
// query may serve from. nil means no restriction; an unreadable snapshot is
// treated that way rather than blocking the deck.
func (s *NamesService) allowedSets(ctx context.Context, languages, styles []string) map[string]bool {
	snapshot, _, err := s.catalog.Authoritative(ctx)
	if err != nil {
		s.logger.Warn("Failed to resolve set preferences, serving all sets", "error", err)
		return nil
	}

	wantLang := make(map[string]bool, len(languages))
	for _, l := range languages {
		wantLang[normalize.LanguageCode(l)] = true
	}
	wantStyle := make(map[string]bool, len(styles))
	for _, st := range styles {
		wantStyle[st] = true
	}

	allowed := make(map[string]bool)
	for _, set := range snapshot.NameSets {
		if wantLang[set.Language] && wantStyle[set.Style] {
			allowed[set.Slug] = true
		}
	}
	return allowed
}

// nextFromRemote asks the server for candidates. It needs a remote client, a
// signed-in identity, and a household; missing any of those, the deck is
// simply empty rather than an error.
func (s *NamesService) nextFromRemote(ctx context.Context, filters domain.Filters, languages, styles []string, limit int) ([]domain.Card, error) {
	if s.remote == nil {
		return nil, nil
	}
	identity, household, found, err := s.identity.session(ctx)
	if err != nil || !found {
		return nil, err
	}

	sets, err := s.remote.FetchNameSets(ctx)
	if err != nil {
		s.logger.Warn("Remote set listing failed, deck stays empty", "error", err)
		return nil, nil
	}

	setIDs := catalog.SetIDsFor(sets, languages, styles)
	if len(setIDs) == 0 {
		return nil, nil
	}

	cards, err := s.remote.FetchNextNames(ctx, identity.AccessToken, household,
		setIDs, filters.Gender, filters.StartsWith, filters.MaxLength, limit, nil)
	if err != nil {
		s.logger.Warn("Remote candidate fetch failed, deck stays empty", "error", err)
		return nil, nil
	}

	// The server does not know about purely local swipes.
	out := make([]domain.Card, 0, len(cards))
	for _, card := range cards {
		if s.ledger.IsSwiped(card.Name) {
			continue
		}
		out = append(out, card)
	}
	return out, nil
}

// MergeLikes combines device-local likes with server likes into one list.
// Local entries come first and win duplicates; server likes made on another
// device follow in server order.
func MergeLikes(local, server []domain.LikedName) []domain.LikedName {
	seen := make(map[string]bool, len(local))
	merged := make([]domain.LikedName, 0, len(local)+len(server))
	for _, like := range local {
		seen[normalize.Name(like.Name)] = true
		merged = append(merged, like)
	}
	for _, like := range server {
		if seen[normalize.Name(like.Name)] {
			continue
		}
		merged = append(merged, like)
	}
	return merged
}
