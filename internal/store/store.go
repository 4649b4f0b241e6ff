// Package store implements the single source of truth for pocketwatch's
// entity collections. All mutation flows through the Store, every mutation
// is written through to the persistence layer, and observers are told about
// each new snapshot.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmturner/pocketwatch/internal/model"
	"github.com/jmturner/pocketwatch/internal/storage"
)

// RecordName is the persistence key under which the whole store state is
// saved.
const RecordName = "finance-store"

// Persister is the durable key-value layer the store writes through to.
type Persister interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name string, data []byte) error
}

// Observer receives the new snapshot after every committed mutation.
type Observer func(model.Snapshot)

// Store owns the transaction, budget, and goal collections. Mutations are
// serialized; reads return copies, so snapshots stay valid after later
// mutations.
type Store struct {
	persister Persister
	observers []Observer
	state     model.Snapshot
	mu        sync.RWMutex
}

// New creates a store hydrated from the persister. A missing or corrupt
// record falls back to empty collections; that is the documented recovery
// behavior, not an error.
func New(ctx context.Context, p Persister) *Store {
	s := &Store{persister: p}
	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	if s.persister == nil {
		return
	}

	data, err := s.persister.Get(ctx, RecordName)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			slog.Debug("no persisted state found, starting fresh", "record", RecordName)
		} else {
			slog.Warn("failed to load persisted state, starting fresh",
				"record", RecordName, "error", err)
		}
		return
	}

	var state model.Snapshot
	if err := json.Unmarshal(data, &state); err != nil {
		slog.Warn("persisted state is corrupt, starting fresh",
			"record", RecordName, "error", err)
		return
	}

	s.state = state
}

// Subscribe registers an observer. Observers are invoked synchronously
// after each mutation commits, outside the store lock.
func (s *Store) Subscribe(fn Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Snapshot returns a copy of the current collections, reflecting the most
// recently committed mutation.
func (s *Store) Snapshot() model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// AddTransaction appends a transaction, assigning an ID when the caller
// did not supply one. It returns the stored transaction.
func (s *Store) AddTransaction(ctx context.Context, tx model.Transaction) model.Transaction {
	s.mu.Lock()
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	s.state.Transactions = append(s.state.Transactions, tx)
	snap := s.commit(ctx)
	s.mu.Unlock()

	s.notify(snap)
	return tx
}

// AddBudget appends a budget, assigning an ID when the caller did not
// supply one. Duplicate categories are allowed. It returns the stored
// budget.
func (s *Store) AddBudget(ctx context.Context, b model.Budget) model.Budget {
	s.mu.Lock()
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	s.state.Budgets = append(s.state.Budgets, b)
	snap := s.commit(ctx)
	s.mu.Unlock()

	s.notify(snap)
	return b
}

// AddGoal appends a goal with progress forced to zero regardless of what
// the caller supplied. It returns the stored goal.
func (s *Store) AddGoal(ctx context.Context, g model.Goal) model.Goal {
	s.mu.Lock()
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	g.Progress = decimal.Zero
	s.state.Goals = append(s.state.Goals, g)
	snap := s.commit(ctx)
	s.mu.Unlock()

	s.notify(snap)
	return g
}

// UpdateGoalProgress adds delta to the goal's progress, clamping at the
// target. An unknown goal ID is a silent no-op: nothing to add progress
// to, nothing changes, nobody is notified.
func (s *Store) UpdateGoalProgress(ctx context.Context, goalID string, delta decimal.Decimal) {
	s.mu.Lock()

	idx := -1
	for i := range s.state.Goals {
		if s.state.Goals[i].ID == goalID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		slog.Debug("progress update for unknown goal ignored", "goal_id", goalID)
		return
	}

	g := &s.state.Goals[idx]
	progress := g.Progress.Add(delta)
	if progress.GreaterThan(g.Target) {
		progress = g.Target
	}
	if progress.IsNegative() {
		progress = decimal.Zero
	}
	g.Progress = progress

	snap := s.commit(ctx)
	s.mu.Unlock()

	s.notify(snap)
}

// commit persists the current state and returns the snapshot to hand to
// observers. Called with the lock held. Persistence failures are logged
// and absorbed; the in-memory state stays authoritative.
func (s *Store) commit(ctx context.Context) model.Snapshot {
	snap := s.state.Clone()

	if s.persister != nil {
		data, err := json.Marshal(snap)
		if err != nil {
			slog.Error("failed to encode state", "record", RecordName, "error", err)
			return snap
		}
		if err := s.persister.Put(ctx, RecordName, data); err != nil {
			slog.Error("failed to persist state", "record", RecordName, "error", err)
		}
	}

	return snap
}

func (s *Store) notify(snap model.Snapshot) {
	s.mu.RLock()
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.RUnlock()

	for _, fn := range observers {
		fn(snap)
	}
}
