package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/sunbank-labs/vaani/pkg/domain/model"
	"github.com/sunbank-labs/vaani/pkg/domain/types"
	"google.golang.org/api/iterator"
)

const feedbackCollection = "voice_feedback"

type feedbackRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newFeedbackRepository(client *firestore.Client) *feedbackRepository {
	return &feedbackRepository{client: client}
}

func (r *feedbackRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(r.collectionPrefix + feedbackCollection)
}

type feedbackDoc struct {
	ID        string                `firestore:"id"`
	SessionID string                `firestore:"sessionId"`
	MessageID string                `firestore:"messageId"`
	Correct   bool                  `firestore:"correct"`
	Intent    string                `firestore:"intent"`
	Utterance string                `firestore:"utterance"`
	Context   model.FeedbackContext `firestore:"context"`
	CreatedAt time.Time             `firestore:"createdAt"`
}

func toFeedbackDoc(rec *model.FeedbackRecord) *feedbackDoc {
	return &feedbackDoc{
		ID:        rec.ID.String(),
		SessionID: rec.SessionID.String(),
		MessageID: rec.MessageID.String(),
		Correct:   rec.Correct,
		Intent:    rec.Intent,
		Utterance: rec.Utterance,
		Context:   rec.Context,
		CreatedAt: rec.CreatedAt,
	}
}

func (d *feedbackDoc) toModel() *model.FeedbackRecord {
	return &model.FeedbackRecord{
		ID:        types.FeedbackID(d.ID),
		SessionID: types.SessionID(d.SessionID),
		MessageID: types.MessageID(d.MessageID),
		Correct:   d.Correct,
		Intent:    d.Intent,
		Utterance: d.Utterance,
		Context:   d.Context,
		CreatedAt: d.CreatedAt,
	}
}

func (r *feedbackRepository) Create(ctx context.Context, rec *model.FeedbackRecord) (*model.FeedbackRecord, error) {
	if rec == nil {
		return nil, goerr.New("feedback record is required")
	}
	if rec.SessionID == "" {
		return nil, goerr.New("session ID is required")
	}

	created := *rec
	if created.ID == "" {
		created.ID = types.NewFeedbackID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now()
	}

	if _, err := r.collection().Doc(created.ID.String()).Set(ctx, toFeedbackDoc(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to put feedback to firestore", goerr.V("feedbackID", created.ID))
	}
	return &created, nil
}

func (r *feedbackRepository) ListBySession(ctx context.Context, id types.SessionID) ([]*model.FeedbackRecord, error) {
	if id == "" {
		return nil, goerr.New("session ID is required")
	}

	iter := r.collection().Where("sessionId", "==", id.String()).Documents(ctx)
	defer iter.Stop()

	var out []*model.FeedbackRecord
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate feedback", goerr.V("sessionID", id))
		}
		var stored feedbackDoc
		if err := doc.DataTo(&stored); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal feedback", goerr.V("doc", doc.Ref.ID))
		}
		out = append(out, stored.toModel())
	}
	return out, nil
}
