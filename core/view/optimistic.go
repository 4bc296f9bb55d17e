package view

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// Store owns a State and applies actions to it one at a time.
type Store struct {
	mu    sync.RWMutex
	state State

	// actions dispatched while an optimistic call is in flight
	inFlight bool
	pending  []Action

	// one optimistic command in flight at a time
	cmdMu sync.Mutex
}

func NewStore(s State) *Store {
	return &Store{state: s}
}

func (st *Store) State() State {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.state
}

// Dispatch reduces the actions into the state and returns the new state.
func (st *Store) Dispatch(actions ...Action) State {
	st.mu.Lock()
	defer st.mu.Unlock()
	for _, a := range actions {
		st.state = Reduce(st.state, a)
	}
	if st.inFlight {
		st.pending = append(st.pending, actions...)
	}
	return st.state
}

// Optimistic is a state mutation applied before the external call confirming it.
type Optimistic struct {
	Name string
	// Apply is the speculative mutation.
	Apply Action
	// Call performs the mutation on the store.
	Call func(ctx context.Context) error
	// Reconcile is optional. On failure, it returns the actions to replay on the restored snapshot
	// for the parts of the call that did go through (e.g. the successful half of a bulk delete).
	Reconcile func(err error) []Action
}

// Run applies cmd.Apply, issues cmd.Call and, if the call fails, atomically restores the
// state snapshot taken before Apply (plus the Reconcile actions). The call's error is returned.
// Actions dispatched by others while the call is in flight are replayed on top of the restored snapshot.
func (st *Store) Run(ctx context.Context, cmd Optimistic) error {
	st.cmdMu.Lock()
	defer st.cmdMu.Unlock()

	st.mu.Lock()
	snapshot := st.state
	st.state = Reduce(st.state, cmd.Apply)
	st.inFlight = true
	st.pending = nil
	st.mu.Unlock()

	err := cmd.Call(ctx)

	st.mu.Lock()
	defer st.mu.Unlock()
	st.inFlight = false
	pending := st.pending
	st.pending = nil
	if err == nil {
		return nil
	}

	restored := snapshot
	if cmd.Reconcile != nil {
		for _, a := range cmd.Reconcile(err) {
			restored = Reduce(restored, a)
		}
	}
	for _, a := range pending {
		restored = Reduce(restored, a)
	}
	st.state = restored

	if cmd.Name != "" {
		return errors.Wrap(err, cmd.Name)
	}
	return err
}
