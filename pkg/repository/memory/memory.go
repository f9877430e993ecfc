package memory

import (
	"errors"
	"time"

	"github.com/sunbank-labs/vaani/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("not found")

// DefaultSessionTTL matches the dialogue session idle timeout
const DefaultSessionTTL = 10 * time.Minute

// Memory is the in-memory Repository used for development and tests
type Memory struct {
	session  *sessionRepository
	feedback *feedbackRepository
}

var _ interfaces.Repository = &Memory{}

// Option is a functional option for Memory configuration
type Option func(*Memory)

// WithSessionTTL overrides the session idle timeout
func WithSessionTTL(ttl time.Duration) Option {
	return func(m *Memory) {
		m.session.ttl = ttl
	}
}

// WithClock overrides the time source for expiry checks, used by tests
func WithClock(now func() time.Time) Option {
	return func(m *Memory) {
		m.session.now = now
	}
}

// New creates an empty in-memory repository
func New(opts ...Option) *Memory {
	m := &Memory{
		session:  newSessionRepository(),
		feedback: newFeedbackRepository(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) Session() interfaces.SessionRepository {
	return m.session
}

func (m *Memory) Feedback() interfaces.FeedbackRepository {
	return m.feedback
}

// Close is a no-op for the in-memory repository
func (m *Memory) Close() error {
	return nil
}
