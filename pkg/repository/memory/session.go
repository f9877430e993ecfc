package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sunbank-labs/vaani/pkg/domain/model"
	"github.com/sunbank-labs/vaani/pkg/domain/types"
)

type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[types.SessionID]*model.DialogueState
	ttl      time.Duration
	now      func() time.Time
}

func newSessionRepository() *sessionRepository {
	return &sessionRepository{
		sessions: make(map[types.SessionID]*model.DialogueState),
		ttl:      DefaultSessionTTL,
		now:      time.Now,
	}
}

// copyState deep-copies a dialogue state so callers can mutate their copy
// without racing the store.
func copyState(state *model.DialogueState) *model.DialogueState {
	if state == nil {
		return nil
	}
	copied := *state

	if state.Accounts != nil {
		copied.Accounts = make([]*model.Account, len(state.Accounts))
		for i, account := range state.Accounts {
			a := *account
			copied.Accounts[i] = &a
		}
	}
	if state.Beneficiaries != nil {
		copied.Beneficiaries = make([]*model.Beneficiary, len(state.Beneficiaries))
		for i, beneficiary := range state.Beneficiaries {
			b := *beneficiary
			copied.Beneficiaries[i] = &b
		}
	}
	if state.Messages != nil {
		copied.Messages = make([]*model.Message, len(state.Messages))
		for i, msg := range state.Messages {
			m := *msg
			copied.Messages[i] = &m
		}
	}
	return &copied
}

func (r *sessionRepository) Get(ctx context.Context, id types.SessionID) (*model.DialogueState, error) {
	if id == "" {
		return nil, goerr.New("session ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.sessions[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "session not found", goerr.V("sessionID", id))
	}
	if state.Expired(r.now(), r.ttl) {
		return nil, goerr.Wrap(ErrNotFound, "session expired", goerr.V("sessionID", id))
	}
	return copyState(state), nil
}

func (r *sessionRepository) Put(ctx context.Context, state *model.DialogueState) error {
	if state == nil {
		return goerr.New("dialogue state is required")
	}
	if state.SessionID == "" {
		return goerr.New("session ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[state.SessionID] = copyState(state)
	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id types.SessionID) error {
	if id == "" {
		return goerr.New("session ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return goerr.Wrap(ErrNotFound, "session not found", goerr.V("sessionID", id))
	}
	delete(r.sessions, id)
	return nil
}

func (r *sessionRepository) DeleteExpired(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for id, state := range r.sessions {
		if state.Expired(now, r.ttl) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed, nil
}
