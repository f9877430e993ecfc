package firestore

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/sunbank-labs/vaani/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("not found")

// DefaultSessionTTL matches the dialogue session idle timeout
const DefaultSessionTTL = 10 * time.Minute

// Firestore is the Firestore-backed Repository used in deployments
type Firestore struct {
	client   *firestore.Client
	session  *sessionRepository
	feedback *feedbackRepository
}

var _ interfaces.Repository = &Firestore{}

// Option is a functional option for Firestore configuration
type Option func(*Firestore)

// WithCollectionPrefix namespaces all collections, used to share one project
// between environments.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.session.collectionPrefix = prefix
		f.feedback.collectionPrefix = prefix
	}
}

// WithSessionTTL overrides the session idle timeout
func WithSessionTTL(ttl time.Duration) Option {
	return func(f *Firestore) {
		f.session.ttl = ttl
	}
}

// New creates a Firestore repository for the given project
func New(ctx context.Context, projectID string, opts ...Option) (*Firestore, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("projectID", projectID))
	}

	f := &Firestore{
		client:   client,
		session:  newSessionRepository(client),
		feedback: newFeedbackRepository(client),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

func (f *Firestore) Session() interfaces.SessionRepository {
	return f.session
}

func (f *Firestore) Feedback() interfaces.FeedbackRepository {
	return f.feedback
}

// Close releases the underlying client connection
func (f *Firestore) Close() error {
	return f.client.Close()
}
