package usecase

import (
	"time"

	"github.com/sunbank-labs/vaani/pkg/domain/interfaces"
	"github.com/sunbank-labs/vaani/pkg/domain/model"
	"github.com/sunbank-labs/vaani/pkg/service/assistant"
)

// ConfidenceThreshold is the minimum classification confidence below which
// the assistant attaches the quick suggestions to help the user rephrase.
const ConfidenceThreshold = 0.55

// UseCases bundles the conversation and feedback use cases over shared
// collaborators.
type UseCases struct {
	repo        interfaces.Repository
	bank        interfaces.BankClient
	interpreter interfaces.Interpreter
	translator  interfaces.Translator
	dispatcher  *assistant.Dispatcher
	quick       []model.Suggestion
	threshold   float64
	now         func() time.Time

	Conversation *ConversationUseCase
	Feedback     *FeedbackUseCase
}

// Option is a functional option for UseCases configuration
type Option func(*UseCases)

// WithTranslator enables utterance normalization before classification
func WithTranslator(translator interfaces.Translator) Option {
	return func(uc *UseCases) {
		uc.translator = translator
	}
}

// WithDispatcher overrides the intent dispatcher
func WithDispatcher(dispatcher *assistant.Dispatcher) Option {
	return func(uc *UseCases) {
		uc.dispatcher = dispatcher
	}
}

// WithQuickSuggestions overrides the standing quick-action chips
func WithQuickSuggestions(quick []model.Suggestion) Option {
	return func(uc *UseCases) {
		uc.quick = quick
	}
}

// WithConfidenceThreshold overrides the low-confidence suggestion cutoff
func WithConfidenceThreshold(threshold float64) Option {
	return func(uc *UseCases) {
		uc.threshold = threshold
	}
}

// WithClock overrides the time source, used by tests
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

// New creates the use cases. The dispatcher defaults to one built over the
// given bank client and knowledge querier.
func New(
	repo interfaces.Repository,
	bank interfaces.BankClient,
	knowledge interfaces.KnowledgeQuerier,
	interpreter interfaces.Interpreter,
	opts ...Option,
) *UseCases {
	uc := &UseCases{
		repo:        repo,
		bank:        bank,
		interpreter: interpreter,
		quick:       assistant.DefaultQuickSuggestions(),
		threshold:   ConfidenceThreshold,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}

	if uc.dispatcher == nil {
		uc.dispatcher = assistant.New(bank, knowledge, assistant.WithClock(func() time.Time {
			return uc.now()
		}))
	}

	uc.Conversation = newConversationUseCase(uc)
	uc.Feedback = newFeedbackUseCase(uc)
	return uc
}
