package interfaces

import (
	"context"

	"github.com/sunbank-labs/vaani/pkg/domain/model"
	"github.com/sunbank-labs/vaani/pkg/domain/types"
)

// Interpreter turns one utterance into a classified intent with slots.
// Implementations must never fail on unclassifiable input; they return
// the clarify intent instead.
type Interpreter interface {
	Interpret(ctx context.Context, utterance string, sessionID types.SessionID) (*model.IntentResult, error)
}

// Translator normalizes an utterance to English. Implementations return the
// input unchanged when translation is unnecessary or unavailable; they do
// not fail the conversation over a translation error.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}
