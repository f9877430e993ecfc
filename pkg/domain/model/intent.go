package model

import (
	"github.com/sunbank-labs/vaani/pkg/domain/types"
)

// Slots carries the slot values extracted by the NLU for one utterance.
// Keys are fixed; unknown keys from the classifier are ignored rather than
// rejected so that model upgrades cannot break dispatch.
type Slots struct {
	Account     string `json:"account,omitempty"`
	Source      string `json:"source,omitempty"`
	Destination string `json:"destination,omitempty"`
	Amount      string `json:"amount,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	Message     string `json:"message,omitempty"`
	Remarks     string `json:"remarks,omitempty"`
	Product     string `json:"product,omitempty"`
}

// IsEmpty reports whether no slot has a value
func (s Slots) IsEmpty() bool {
	return s == Slots{}
}

// Merge returns s overlaid with the non-empty slots of other.
// Used by the dialogue state to accumulate slots across turns.
func (s Slots) Merge(other Slots) Slots {
	if other.Account != "" {
		s.Account = other.Account
	}
	if other.Source != "" {
		s.Source = other.Source
	}
	if other.Destination != "" {
		s.Destination = other.Destination
	}
	if other.Amount != "" {
		s.Amount = other.Amount
	}
	if other.DueDate != "" {
		s.DueDate = other.DueDate
	}
	if other.Message != "" {
		s.Message = other.Message
	}
	if other.Remarks != "" {
		s.Remarks = other.Remarks
	}
	if other.Product != "" {
		s.Product = other.Product
	}
	return s
}

// IntentResult is the classifier's verdict for one utterance. It is consumed
// by the dispatcher and never constructed there.
type IntentResult struct {
	Intent     types.Intent    `json:"intent"`
	Confidence float64         `json:"confidence"`
	Slots      Slots           `json:"slots"`
	SessionID  types.SessionID `json:"sessionId,omitempty"`

	// Source records which stage produced the result (llm, keyword fallback)
	Source string `json:"source,omitempty"`
}
