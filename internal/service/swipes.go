package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kinderhq/petnames-core/internal/domain"
	apperrors "github.com/kinderhq/petnames-core/internal/errors"
	"github.com/kinderhq/petnames-core/internal/id"
	"github.com/kinderhq/petnames-core/internal/ledger"
	"github.com/kinderhq/petnames-core/internal/notify"
	"github.com/kinderhq/petnames-core/internal/store"
)

// SwipesRemote is the remote surface swipe recording needs.
type SwipesRemote interface {
	LookupNameID(ctx context.Context, token, name string) (uuid.UUID, bool, error)
	InsertSwipe(ctx context.Context, token string, record domain.SwipeRecord) error
	DeleteSwipe(ctx context.Context, token string, householdID, userID, nameID uuid.UUID) error
	CountOtherLikes(ctx context.Context, token string, householdID, nameID, userID uuid.UUID) (int, error)
	CountSwipes(ctx context.Context, token string, householdID, userID uuid.UUID, decision domain.Decision) (int, error)
	FetchServerLikes(ctx context.Context, token string, householdID, userID uuid.UUID) ([]domain.LikedName, error)
}

// SwipeRequest describes one decision on a card.
type SwipeRequest struct {
	Name     string          `json:"name"       validate:"required,max=100"`
	Gender   domain.Gender   `json:"gender"`
	SetTitle string          `json:"set_title"`
	Decision domain.Decision `json:"decision"   validate:"required,oneof=like dismiss"`
}

// SwipeResult reports what a swipe did. Recorded is false when the name had
// already been decided on; Match means another household member also liked it.
type SwipeResult struct {
	Recorded bool `json:"recorded"`
	Match    bool `json:"match"`
}

// SwipesService records swipe decisions. The local ledger is the source of
// truth; the remote store is updated best effort, so swiping works identically
// with or without connectivity. Match detection needs the remote and reports
// no match when it is unreachable.
type SwipesService struct {
	logger   *slog.Logger
	ledger   *ledger.Ledger
	store    *store.Store
	identity *IdentityService
	remote   SwipesRemote
	notifier *notify.Notifier
}

// NewSwipesService creates the swipe service. remote may be nil.
func NewSwipesService(logger *slog.Logger, led *ledger.Ledger, st *store.Store, identity *IdentityService, remote SwipesRemote, notifier *notify.Notifier) *SwipesService {
	return &SwipesService{
		logger:   logger,
		ledger:   led,
		store:    st,
		identity: identity,
		remote:   remote,
		notifier: notifier,
	}
}

// Swipe records a decision on a name. Repeat swipes on the same name are
// idempotent no-ops. Ledger flush failures are logged, not returned; the
// in-memory state carries the session. Remote propagation and match detection
// are best effort.
func (s *SwipesService) Swipe(ctx context.Context, req SwipeRequest) (*SwipeResult, error) {
	if !req.Decision.Valid() {
		return nil, apperrors.Validationf("unknown decision %q", req.Decision)
	}

	newly, err := s.ledger.MarkSwiped(ctx, req.Name)
	if err != nil {
		s.logger.Warn("Swiped set flush failed, keeping in-memory mark", "name", req.Name, "error", err)
	}
	if !newly {
		return &SwipeResult{Recorded: false}, nil
	}

	if req.Decision == domain.DecisionLike {
		like := domain.LikedName{
			NameID:   id.MustGenerate("like"),
			Name:     req.Name,
			Gender:   req.Gender,
			SetTitle: req.SetTitle,
		}
		if err := s.ledger.AddLocalLike(ctx, like); err != nil {
			s.logger.Warn("Local like flush failed, keeping in-memory like", "name", req.Name, "error", err)
		}
	}

	match := s.propagate(ctx, req)
	return &SwipeResult{Recorded: true, Match: match}, nil
}

// propagate mirrors the swipe to the remote store and checks for a match.
// Every failure is logged and swallowed; a swipe made offline simply never
// reaches the household until a future session is online.
func (s *SwipesService) propagate(ctx context.Context, req SwipeRequest) bool {
	if s.remote == nil {
		return false
	}
	identity, household, found, err := s.identity.session(ctx)
	if err != nil || !found {
		return false
	}

	nameID, found, err := s.remote.LookupNameID(ctx, identity.AccessToken, req.Name)
	if err != nil {
		s.logger.Warn("Remote name lookup failed, swipe stays local", "name", req.Name, "error", err)
		return false
	}
	if !found {
		// Bundled-only names have no server row.
		return false
	}

	record := domain.SwipeRecord{
		HouseholdID: household,
		UserID:      identity.UserID,
		NameID:      nameID,
		Decision:    req.Decision,
	}
	if err := s.remote.InsertSwipe(ctx, identity.AccessToken, record); err != nil {
		s.logger.Warn("Remote swipe insert failed, swipe stays local", "name", req.Name, "error", err)
		return false
	}

	if req.Decision != domain.DecisionLike {
		return false
	}

	others, err := s.remote.CountOtherLikes(ctx, identity.AccessToken, household, nameID, identity.UserID)
	if err != nil {
		s.logger.Warn("Match check failed", "name", req.Name, "error", err)
		return false
	}
	if others < 1 {
		return false
	}

	s.logger.Info("Match found", "name", req.Name, "household_id", household)
	s.notifier.MatchFound(ctx, household, identity.UserID, req.Name)
	return true
}

// Undo reverses the most recent decision on a name: it becomes servable again
// and any like for it is dropped, locally and remotely.
func (s *SwipesService) Undo(ctx context.Context, name string) error {
	if err := s.ledger.UndoSwipe(ctx, name); err != nil {
		s.logger.Warn("Undo flush failed, keeping in-memory state", "name", name, "error", err)
	}
	if err := s.ledger.RemoveLocalLike(ctx, name); err != nil {
		s.logger.Warn("Like removal flush failed, keeping in-memory state", "name", name, "error", err)
	}

	if s.remote == nil {
		return nil
	}
	identity, household, found, err := s.identity.session(ctx)
	if err != nil || !found {
		return nil
	}

	nameID, found, err := s.remote.LookupNameID(ctx, identity.AccessToken, name)
	if err != nil || !found {
		return nil
	}
	if err := s.remote.DeleteSwipe(ctx, identity.AccessToken, household, identity.UserID, nameID); err != nil {
		s.logger.Warn("Remote swipe delete failed", "name", name, "error", err)
	}
	return nil
}

// Likes returns the user's liked names, device-local likes first, merged with
// likes recorded from other devices when the remote is reachable.
func (s *SwipesService) Likes(ctx context.Context) ([]domain.LikedName, error) {
	local := s.ledger.LocalLikes()

	if s.remote == nil {
		return local, nil
	}
	identity, household, found, err := s.identity.session(ctx)
	if err != nil || !found {
		return local, nil
	}

	server, err := s.remote.FetchServerLikes(ctx, identity.AccessToken, household, identity.UserID)
	if err != nil {
		s.logger.Warn("Remote likes fetch failed, serving local likes", "error", err)
		return local, nil
	}
	return MergeLikes(local, server), nil
}

// Counts reports how many names the user has liked and dismissed across both
// stores. Server counts cover swipes synced from any device; local-only
// decisions are folded in on top, with dismisses derived as the swiped names
// not accounted for by likes.
func (s *SwipesService) Counts(ctx context.Context) (domain.SwipeCounts, error) {
	localLikes := len(s.ledger.LocalLikes())
	swipedCount := s.ledger.SwipedCount()

	serverLikes, serverDismisses := 0, 0
	if s.remote != nil {
		identity, household, found, err := s.identity.session(ctx)
		if err == nil && found {
			if n, err := s.remote.CountSwipes(ctx, identity.AccessToken, household, identity.UserID, domain.DecisionLike); err == nil {
				serverLikes = n
			}
			if n, err := s.remote.CountSwipes(ctx, identity.AccessToken, household, identity.UserID, domain.DecisionDismiss); err == nil {
				serverDismisses = n
			}
		}
	}

	totalLikes := serverLikes + localLikes
	totalDismisses := serverDismisses + max(0, swipedCount-totalLikes)
	return domain.SwipeCounts{Likes: totalLikes, Dismisses: totalDismisses}, nil
}
