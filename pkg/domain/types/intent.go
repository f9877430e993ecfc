package types

import "fmt"

// Intent represents a recognized voice intent tag
type Intent string

const (
	IntentBalanceCheck       Intent = "balance_check"
	IntentTransactionHistory Intent = "transaction_history"
	IntentTransferFunds      Intent = "transfer_funds"
	IntentSetReminder        Intent = "set_reminder"
	IntentLoanInfo           Intent = "loan_info"

	// IntentClarify is returned by the classifier when no intent scores
	// above the fallback threshold. The dispatcher treats it the same as
	// an unrecognized intent and answers with the quick suggestions.
	IntentClarify Intent = "clarify"
)

// AllIntents returns all dispatchable intents
func AllIntents() []Intent {
	return []Intent{
		IntentBalanceCheck,
		IntentTransactionHistory,
		IntentTransferFunds,
		IntentSetReminder,
		IntentLoanInfo,
	}
}

// IsValid checks if the intent is a known dispatchable intent
func (x Intent) IsValid() bool {
	switch x {
	case IntentBalanceCheck,
		IntentTransactionHistory,
		IntentTransferFunds,
		IntentSetReminder,
		IntentLoanInfo:
		return true
	default:
		return false
	}
}

// String returns the string representation of the intent
func (x Intent) String() string {
	return string(x)
}

// ParseIntent parses a string into an Intent
func ParseIntent(s string) (Intent, error) {
	intent := Intent(s)
	if !intent.IsValid() && intent != IntentClarify {
		return "", fmt.Errorf("invalid intent: %s", s)
	}
	return intent, nil
}
