package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sunbank-labs/vaani/pkg/domain/model"
	"github.com/sunbank-labs/vaani/pkg/domain/types"
)

type feedbackRepository struct {
	mu      sync.RWMutex
	records map[types.FeedbackID]*model.FeedbackRecord
}

func newFeedbackRepository() *feedbackRepository {
	return &feedbackRepository{
		records: make(map[types.FeedbackID]*model.FeedbackRecord),
	}
}

func copyFeedback(rec *model.FeedbackRecord) *model.FeedbackRecord {
	if rec == nil {
		return nil
	}
	copied := *rec
	if rec.Context != nil {
		copied.Context = make(model.FeedbackContext, len(rec.Context))
		for k, v := range rec.Context {
			copied.Context[k] = v
		}
	}
	return &copied
}

func (r *feedbackRepository) Create(ctx context.Context, rec *model.FeedbackRecord) (*model.FeedbackRecord, error) {
	if rec == nil {
		return nil, goerr.New("feedback record is required")
	}
	if rec.SessionID == "" {
		return nil, goerr.New("session ID is required")
	}

	created := copyFeedback(rec)
	if created.ID == "" {
		created.ID = types.NewFeedbackID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[created.ID] = created
	return copyFeedback(created), nil
}

func (r *feedbackRepository) ListBySession(ctx context.Context, id types.SessionID) ([]*model.FeedbackRecord, error) {
	if id == "" {
		return nil, goerr.New("session ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*model.FeedbackRecord
	for _, rec := range r.records {
		if rec.SessionID == id {
			out = append(out, copyFeedback(rec))
		}
	}
	return out, nil
}
