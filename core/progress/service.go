package progress

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

var ErrNotFound = errors.New("progress not found")

type (
	// Repository persists one completed-id set per user. UpsertProgress fully
	// replaces the stored set (last write wins, no merge).
	Repository interface {
		GetProgress(ctx context.Context, userID string) ([]string, error)
		UpsertProgress(ctx context.Context, userID string, itemIDs []string) error
	}

	Service interface {
		// Get returns a read-only snapshot of the user's completed set,
		// loading it from the store on first access in the session. A load
		// failure degrades to the empty set.
		Get(ctx context.Context, userID string) Set
		// Toggle flips one item id and schedules a write-through. It returns
		// the updated snapshot and whether the item is now completed.
		Toggle(ctx context.Context, userID, itemID string) (Set, bool)
		// Evict drops the user's session state (logout). A snapshot already
		// queued behind an in-flight save still gets persisted.
		Evict(userID string)
		// Wait blocks until all scheduled write-throughs have settled.
		Wait()
	}

	service struct {
		repo   Repository
		logger core.Logger

		mu       sync.Mutex
		sessions map[string]Set
		// writing and pending track the per-user write-through separately from
		// sessions: at most one save per user is in flight, rapid toggles
		// coalesce into pending (newest wins), and a snapshot queued behind an
		// in-flight save still lands even if the session is evicted meanwhile.
		writing  map[string]bool
		pending  map[string][]string
		wg       sync.WaitGroup
		syncSave bool // tests: write through synchronously
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, logger core.Logger) Service {
	return &service{
		repo:     repo,
		logger:   logger,
		sessions: make(map[string]Set),
		writing:  make(map[string]bool),
		pending:  make(map[string][]string),
	}
}

// NewServiceMock behaves like NewService but saves synchronously, so tests
// can assert on the store right after a toggle.
func NewServiceMock(repo Repository, logger core.Logger) Service {
	return &service{
		repo:     repo,
		logger:   logger,
		sessions: make(map[string]Set),
		writing:  make(map[string]bool),
		pending:  make(map[string][]string),
		syncSave: true,
	}
}

func (svc *service) Get(ctx context.Context, userID string) Set {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.getSession(ctx, userID).Clone()
}

func (svc *service) Toggle(ctx context.Context, userID, itemID string) (Set, bool) {
	svc.mu.Lock()
	set := svc.getSession(ctx, userID)
	completed := set.Toggle(itemID)
	snapshot := set.IDs()
	clone := set.Clone()

	if svc.syncSave {
		svc.mu.Unlock()
		if err := svc.repo.UpsertProgress(ctx, userID, snapshot); err != nil {
			svc.logger.Error(fmt.Sprintf("saving progress for user %s: %v", userID, err), err)
		}
		return clone, completed
	}

	if svc.writing[userID] {
		svc.pending[userID] = snapshot
	} else {
		svc.writing[userID] = true
		svc.wg.Add(1)
		go svc.writeThrough(userID, snapshot)
	}
	svc.mu.Unlock()
	return clone, completed
}

// writeThrough persists snapshots for one user until none are pending.
// Failures are logged and not retried; the in-memory set stays authoritative
// for the rest of the session.
func (svc *service) writeThrough(userID string, ids []string) {
	defer svc.wg.Done()
	for {
		if err := svc.repo.UpsertProgress(context.Background(), userID, ids); err != nil {
			svc.logger.Error(fmt.Sprintf("saving progress for user %s: %v", userID, err), err)
		}

		svc.mu.Lock()
		next, ok := svc.pending[userID]
		if !ok {
			delete(svc.writing, userID)
			svc.mu.Unlock()
			return
		}
		delete(svc.pending, userID)
		svc.mu.Unlock()
		ids = next
	}
}

func (svc *service) Evict(userID string) {
	svc.mu.Lock()
	delete(svc.sessions, userID)
	svc.mu.Unlock()
}

func (svc *service) Wait() {
	svc.wg.Wait()
}

// getSession must be called with mu held.
func (svc *service) getSession(ctx context.Context, userID string) Set {
	if set, ok := svc.sessions[userID]; ok {
		return set
	}

	ids, err := svc.repo.GetProgress(ctx, userID)
	if err != nil && errors.Cause(err) != ErrNotFound {
		// no prior progress; not fatal
		svc.logger.Error(fmt.Sprintf("loading progress for user %s: %v", userID, err), err)
	}
	set := NewSet(ids...)
	svc.sessions[userID] = set
	return set
}
