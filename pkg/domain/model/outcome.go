package model

import (
	"github.com/sunbank-labs/vaani/pkg/domain/types"
)

// Suggestion is one tappable chip offered alongside an assistant reply
type Suggestion struct {
	Label     string `json:"label"`
	Utterance string `json:"utterance"`
}

// PayloadKind tags the structured payload attached to a dispatch outcome
type PayloadKind string

const (
	PayloadBalance      PayloadKind = "balance"
	PayloadTransactions PayloadKind = "transactions"
	PayloadTransfer     PayloadKind = "transfer"
	PayloadReminders    PayloadKind = "reminders"
	PayloadReminder     PayloadKind = "reminder"
	PayloadKnowledge    PayloadKind = "knowledge"
)

// BalanceDetail is the balance card payload
type BalanceDetail struct {
	AccountNumber    string  `json:"accountNumber"`
	LedgerBalance    float64 `json:"ledgerBalance"`
	AvailableBalance float64 `json:"availableBalance"`
	Currency         string  `json:"currency"`
	Status           string  `json:"status"`
}

// TransferDetail is the transfer receipt card payload
type TransferDetail struct {
	ReferenceID   string  `json:"referenceId"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	SourceAccount string  `json:"sourceAccount"`
	Beneficiary   string  `json:"beneficiary"`
}

// Payload is the tagged data attached to an outcome. Exactly the field
// matching Kind is set.
type Payload struct {
	Kind         PayloadKind    `json:"kind"`
	Balance      *BalanceDetail `json:"balance,omitempty"`
	Transactions []*Transaction `json:"transactions,omitempty"`
	Transfer     *TransferDetail `json:"transfer,omitempty"`
	Reminders    []*Reminder    `json:"reminders,omitempty"`
	Reminder     *Reminder      `json:"reminder,omitempty"`
	Knowledge    *Knowledge     `json:"knowledge,omitempty"`
}

// FeedbackContext captures what the dispatcher actually did, so a later
// thumbs-up/down can be tied back to the action. Nil when the branch ended
// in a clarification question.
type FeedbackContext map[string]any

// DispatchOutcome is the dispatcher's sole return type. Every intent branch,
// including all failure paths, terminates in one of these.
type DispatchOutcome struct {
	Text            string          `json:"text"`
	Intent          types.Intent    `json:"intent"`
	Confidence      float64         `json:"confidence"`
	Slots           Slots           `json:"slots"`
	Data            *Payload        `json:"data,omitempty"`
	Suggestions     []Suggestion    `json:"suggestions,omitempty"`
	FeedbackContext FeedbackContext `json:"feedbackContext,omitempty"`

	// SessionExpired is set when a backend call failed with a session-expiry
	// code. The caller must force a sign-out; the outcome text is already the
	// fixed session-expired message.
	SessionExpired bool `json:"sessionExpired,omitempty"`
}
