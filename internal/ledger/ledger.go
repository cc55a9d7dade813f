// Package ledger records which names the user has swiped on and which they
// liked, durably and idempotently.
package ledger

import (
	"context"
	"log/slog"
	"sync"

	"github.com/kinderhq/petnames-core/internal/domain"
	"github.com/kinderhq/petnames-core/internal/normalize"
	"github.com/kinderhq/petnames-core/internal/store"
)

// Ledger is the single writer for swipe state. Reads are served from memory;
// every mutation flushes to the store before returning, so an acknowledged
// swipe survives a crash. A failed flush keeps the in-memory change and
// reports the error; the session stays consistent either way.
type Ledger struct {
	logger *slog.Logger
	store  *store.Store

	mu     sync.RWMutex
	swiped map[string]bool
	likes  []domain.LikedName
}

// New loads swipe state from the store.
func New(ctx context.Context, logger *slog.Logger, st *store.Store) (*Ledger, error) {
	swiped, err := st.GetSwipedNames(ctx)
	if err != nil {
		return nil, err
	}
	likes, err := st.GetLocalLikes(ctx)
	if err != nil {
		return nil, err
	}

	logger.Debug("Swipe ledger loaded", "swiped", len(swiped), "likes", len(likes))

	return &Ledger{
		logger: logger,
		store:  st,
		swiped: swiped,
		likes:  likes,
	}, nil
}

// MarkSwiped records that the user has decided on a name. Returns true when
// this is the first decision on it; repeat marks are no-ops and do not touch
// the store.
func (l *Ledger) MarkSwiped(ctx context.Context, name string) (bool, error) {
	canonical := normalize.Name(name)
	if canonical == "" {
		return false, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.swiped[canonical] {
		return false, nil
	}

	l.swiped[canonical] = true
	return true, l.persistSwipedLocked(ctx)
}

// UndoSwipe removes a name from the swiped set so it can be served again.
// Unknown names are a no-op.
func (l *Ledger) UndoSwipe(ctx context.Context, name string) error {
	canonical := normalize.Name(name)

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.swiped[canonical] {
		return nil
	}

	delete(l.swiped, canonical)
	return l.persistSwipedLocked(ctx)
}

// IsSwiped reports whether a name has been decided on.
func (l *Ledger) IsSwiped(name string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.swiped[normalize.Name(name)]
}

// SwipedNames returns a copy of the swiped set, keyed by canonical name.
func (l *Ledger) SwipedNames() map[string]bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make(map[string]bool, len(l.swiped))
	for k := range l.swiped {
		out[k] = true
	}
	return out
}

// SwipedCount returns the number of decided names.
func (l *Ledger) SwipedCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.swiped)
}

// AddLocalLike prepends a like to the device-local list. A name that already
// has a like is a no-op; the existing entry keeps its ID and position.
func (l *Ledger) AddLocalLike(ctx context.Context, like domain.LikedName) error {
	canonical := normalize.Name(like.Name)

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, existing := range l.likes {
		if normalize.Name(existing.Name) == canonical {
			return nil
		}
	}

	l.likes = append([]domain.LikedName{like}, l.likes...)
	return l.store.PutLocalLikes(ctx, l.likes)
}

// RemoveLocalLike drops the like for a name, if any.
func (l *Ledger) RemoveLocalLike(ctx context.Context, name string) error {
	canonical := normalize.Name(name)

	l.mu.Lock()
	defer l.mu.Unlock()

	next := make([]domain.LikedName, 0, len(l.likes))
	for _, existing := range l.likes {
		if normalize.Name(existing.Name) == canonical {
			continue
		}
		next = append(next, existing)
	}
	if len(next) == len(l.likes) {
		return nil
	}

	l.likes = next
	return l.store.PutLocalLikes(ctx, next)
}

// LocalLikes returns a copy of the likes list, newest first.
func (l *Ledger) LocalLikes() []domain.LikedName {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.LikedName, len(l.likes))
	copy(out, l.likes)
	return out
}

// persistSwipedLocked flushes the swiped set. Caller holds the write lock.
func (l *Ledger) persistSwipedLocked(ctx context.Context) error {
	names := make([]string, 0, len(l.swiped))
	for n := range l.swiped {
		names = append(names, n)
	}
	return l.store.PutSwipedNames(ctx, names)
}
