package model

import (
	"time"

	"github.com/sunbank-labs/vaani/pkg/domain/types"
)

// MessageRole distinguishes user utterances from assistant replies
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// MessageSource records how a user message entered the conversation
type MessageSource string

const (
	SourceText       MessageSource = "text"
	SourceVoice      MessageSource = "voice"
	SourceSuggestion MessageSource = "suggestion"
)

// Message is one entry in the conversation log
type Message struct {
	ID              types.MessageID     `json:"id"`
	Role            MessageRole         `json:"role"`
	Source          MessageSource       `json:"source,omitempty"`
	Text            string              `json:"text"`
	Intent          types.Intent        `json:"intent,omitempty"`
	Confidence      float64             `json:"confidence,omitempty"`
	Slots           Slots               `json:"slots,omitempty"`
	Data            *Payload            `json:"data,omitempty"`
	Suggestions     []Suggestion        `json:"suggestions,omitempty"`
	FeedbackContext FeedbackContext     `json:"feedbackContext,omitempty"`
	Feedback        types.FeedbackState `json:"feedback,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`

	// SessionExpired marks an assistant reply produced after the banking
	// session lapsed; the client must sign the user out.
	SessionExpired bool `json:"sessionExpired,omitempty"`
}

// DialogueState is the per-session conversation state. Account and
// beneficiary snapshots are fetched once at conversation start and replaced
// wholesale on refresh, never merged field by field.
type DialogueState struct {
	SessionID     types.SessionID `json:"sessionId"`
	Accounts      []*Account      `json:"accounts"`
	Beneficiaries []*Beneficiary  `json:"beneficiaries"`
	LastIntent    types.Intent    `json:"lastIntent,omitempty"`
	FilledSlots   Slots           `json:"filledSlots,omitempty"`
	Messages      []*Message      `json:"messages"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// NewDialogueState creates a fresh state for the given session id
func NewDialogueState(id types.SessionID, now time.Time) *DialogueState {
	return &DialogueState{
		SessionID: id,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch bumps the last-activity timestamp
func (s *DialogueState) Touch(now time.Time) {
	s.UpdatedAt = now
}

// Expired reports whether the state has been idle longer than ttl
func (s *DialogueState) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.UpdatedAt) > ttl
}

// RecordIntent stores the last classified intent and accumulates its slots
func (s *DialogueState) RecordIntent(intent types.Intent, slots Slots) {
	s.LastIntent = intent
	s.FilledSlots = s.FilledSlots.Merge(slots)
}

// Append adds a message to the conversation log
func (s *DialogueState) Append(msg *Message) {
	s.Messages = append(s.Messages, msg)
}

// FindMessage returns the message with the given id, or nil
func (s *DialogueState) FindMessage(id types.MessageID) *Message {
	for _, msg := range s.Messages {
		if msg.ID == id {
			return msg
		}
	}
	return nil
}
