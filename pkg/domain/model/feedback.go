package model

import (
	"time"

	"github.com/sunbank-labs/vaani/pkg/domain/types"
)

// FeedbackRecord is one submitted verdict, persisted locally for later
// evaluation of the intent pipeline in addition to being forwarded to the
// core-banking API.
type FeedbackRecord struct {
	ID        types.FeedbackID `json:"id"`
	SessionID types.SessionID  `json:"sessionId"`
	MessageID types.MessageID  `json:"messageId"`
	Correct   bool             `json:"correct"`
	Intent    string           `json:"intent"`
	Utterance string           `json:"utterance"`
	Context   FeedbackContext  `json:"context,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}
