package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/sunbank-labs/vaani/pkg/domain/model"
	"github.com/sunbank-labs/vaani/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const sessionsCollection = "dialogue_sessions"

type sessionRepository struct {
	client           *firestore.Client
	collectionPrefix string
	ttl              time.Duration
}

func newSessionRepository(client *firestore.Client) *sessionRepository {
	return &sessionRepository{
		client: client,
		ttl:    DefaultSessionTTL,
	}
}

func (r *sessionRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(r.collectionPrefix + sessionsCollection)
}

// sessionDoc is the Firestore document shape for a dialogue state. Stored
// separately from the model so that persistence tags never leak into the API.
type sessionDoc struct {
	SessionID     string               `firestore:"sessionId"`
	Accounts      []*model.Account     `firestore:"accounts"`
	Beneficiaries []*model.Beneficiary `firestore:"beneficiaries"`
	LastIntent    string               `firestore:"lastIntent"`
	FilledSlots   model.Slots          `firestore:"filledSlots"`
	Messages      []*model.Message     `firestore:"messages"`
	CreatedAt     time.Time            `firestore:"createdAt"`
	UpdatedAt     time.Time            `firestore:"updatedAt"`
}

func toSessionDoc(state *model.DialogueState) *sessionDoc {
	return &sessionDoc{
		SessionID:     state.SessionID.String(),
		Accounts:      state.Accounts,
		Beneficiaries: state.Beneficiaries,
		LastIntent:    state.LastIntent.String(),
		FilledSlots:   state.FilledSlots,
		Messages:      state.Messages,
		CreatedAt:     state.CreatedAt,
		UpdatedAt:     state.UpdatedAt,
	}
}

func (d *sessionDoc) toModel() *model.DialogueState {
	return &model.DialogueState{
		SessionID:     types.SessionID(d.SessionID),
		Accounts:      d.Accounts,
		Beneficiaries: d.Beneficiaries,
		LastIntent:    types.Intent(d.LastIntent),
		FilledSlots:   d.FilledSlots,
		Messages:      d.Messages,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func (r *sessionRepository) Get(ctx context.Context, id types.SessionID) (*model.DialogueState, error) {
	if id == "" {
		return nil, goerr.New("session ID is required")
	}

	doc, err := r.collection().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "session not found", goerr.V("sessionID", id))
		}
		return nil, goerr.Wrap(err, "failed to get session from firestore", goerr.V("sessionID", id))
	}

	var stored sessionDoc
	if err := doc.DataTo(&stored); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal session", goerr.V("sessionID", id))
	}

	state := stored.toModel()
	if state.Expired(time.Now(), r.ttl) {
		return nil, goerr.Wrap(ErrNotFound, "session expired", goerr.V("sessionID", id))
	}
	return state, nil
}

func (r *sessionRepository) Put(ctx context.Context, state *model.DialogueState) error {
	if state == nil {
		return goerr.New("dialogue state is required")
	}
	if state.SessionID == "" {
		return goerr.New("session ID is required")
	}

	if _, err := r.collection().Doc(state.SessionID.String()).Set(ctx, toSessionDoc(state)); err != nil {
		return goerr.Wrap(err, "failed to put session to firestore", goerr.V("sessionID", state.SessionID))
	}
	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id types.SessionID) error {
	if id == "" {
		return goerr.New("session ID is required")
	}

	docRef := r.collection().Doc(id.String())
	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "session not found", goerr.V("sessionID", id))
		}
		return goerr.Wrap(err, "failed to get session from firestore", goerr.V("sessionID", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete session from firestore", goerr.V("sessionID", id))
	}
	return nil
}

func (r *sessionRepository) DeleteExpired(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-r.ttl)
	iter := r.collection().Where("updatedAt", "<", cutoff).Documents(ctx)
	defer iter.Stop()

	removed := 0
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return removed, goerr.Wrap(err, "failed to iterate expired sessions")
		}
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return removed, goerr.Wrap(err, "failed to delete expired session", goerr.V("doc", doc.Ref.ID))
		}
		removed++
	}
	return removed, nil
}
