package interfaces

import (
	"context"

	"github.com/sunbank-labs/vaani/pkg/domain/model"
	"github.com/sunbank-labs/vaani/pkg/domain/types"
)

// Repository defines the interface for assistant-side persistence:
// dialogue state and feedback records. Banking data lives behind BankClient.
type Repository interface {
	Session() SessionRepository
	Feedback() FeedbackRepository

	// Close releases underlying connections
	Close() error
}

// SessionRepository persists per-conversation dialogue state
type SessionRepository interface {
	// Get retrieves the dialogue state for a session.
	// Returns ErrNotFound (wrapped) when the session does not exist.
	Get(ctx context.Context, id types.SessionID) (*model.DialogueState, error)

	// Put saves the dialogue state, overwriting any previous version
	Put(ctx context.Context, state *model.DialogueState) error

	// Delete removes the dialogue state
	Delete(ctx context.Context, id types.SessionID) error

	// DeleteExpired removes states idle longer than their TTL and returns
	// how many were removed
	DeleteExpired(ctx context.Context) (int, error)
}

// FeedbackRepository persists submitted feedback for pipeline evaluation
type FeedbackRepository interface {
	// Create stores a new feedback record
	Create(ctx context.Context, rec *model.FeedbackRecord) (*model.FeedbackRecord, error)

	// ListBySession retrieves all feedback for one session
	ListBySession(ctx context.Context, id types.SessionID) ([]*model.FeedbackRecord, error)
}
