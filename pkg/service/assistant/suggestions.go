package assistant

import (
	"fmt"

	"github.com/sunbank-labs/vaani/pkg/domain/model"
)

// SuggestionPurpose scopes clarification chips to the action being clarified
type SuggestionPurpose string

const (
	PurposeBalance      SuggestionPurpose = "balance"
	PurposeTransactions SuggestionPurpose = "transactions"
	PurposeTransfer     SuggestionPurpose = "transfer"
)

// maxSuggestionChips caps how many disambiguation chips are attached
const maxSuggestionChips = 4

// DefaultQuickSuggestions are the standing quick-action chips offered when
// the assistant has nothing more specific to suggest.
func DefaultQuickSuggestions() []model.Suggestion {
	return []model.Suggestion{
		{Label: "Check savings balance", Utterance: "What is the balance in my savings account?"},
		{Label: "Recent transactions", Utterance: "Show the latest transactions on my account ending 3456."},
		{Label: "Transfer to beneficiary", Utterance: "Transfer 1000 rupees to my mother."},
		{Label: "Set bill reminder", Utterance: "Remind me to pay the electricity bill tomorrow."},
		{Label: "Investment options", Utterance: "Tell me about government bonds."},
	}
}

// DefaultReminderSamples are sample reminder utterances offered when a due
// date could not be parsed.
func DefaultReminderSamples() []model.Suggestion {
	return []model.Suggestion{
		{Label: "Rent reminder (tomorrow)", Utterance: "Remind me to pay the house rent tomorrow."},
		{Label: "SIP reminder (5th)", Utterance: "Set a reminder on the 5th of every month for my SIP."},
		{Label: "Bill reminder (15th)", Utterance: "Remind me on the 15th to pay the electricity bill."},
	}
}

// BuildAccountSuggestions turns up to four known accounts into chips whose
// utterances re-ask the current action against a specific account.
func BuildAccountSuggestions(purpose SuggestionPurpose, accounts []*model.Account, beneficiaries []*model.Beneficiary) []model.Suggestion {
	if len(accounts) == 0 {
		return nil
	}

	limit := len(accounts)
	if limit > maxSuggestionChips {
		limit = maxSuggestionChips
	}

	defaultBeneficiary := "my beneficiary"
	if len(beneficiaries) > 0 {
		defaultBeneficiary = beneficiaries[0].Name
	}

	suggestions := make([]model.Suggestion, 0, limit)
	for _, account := range accounts[:limit] {
		ending := account.AccountNumber
		if len(ending) > 4 {
			ending = ending[len(ending)-4:]
		}

		var utterance string
		switch purpose {
		case PurposeBalance:
			utterance = fmt.Sprintf("What is the balance in account ending %s?", ending)
		case PurposeTransactions:
			utterance = fmt.Sprintf("Show the latest transactions for account ending %s.", ending)
		case PurposeTransfer:
			utterance = fmt.Sprintf("Transfer 1000 rupees from account ending %s to %s.", ending, defaultBeneficiary)
		default:
			utterance = fmt.Sprintf("Use account ending %s.", ending)
		}

		accountType := account.Type
		if accountType == "" {
			accountType = "Account"
		}
		suggestions = append(suggestions, model.Suggestion{
			Label:     fmt.Sprintf("%s %s", accountType, MaskAccount(account.AccountNumber)),
			Utterance: utterance,
		})
	}
	return suggestions
}

// BuildBeneficiarySuggestions turns up to four beneficiaries into transfer chips
func BuildBeneficiarySuggestions(beneficiaries []*model.Beneficiary) []model.Suggestion {
	if len(beneficiaries) == 0 {
		return nil
	}

	limit := len(beneficiaries)
	if limit > maxSuggestionChips {
		limit = maxSuggestionChips
	}

	suggestions := make([]model.Suggestion, 0, limit)
	for _, b := range beneficiaries[:limit] {
		suggestions = append(suggestions, model.Suggestion{
			Label:     fmt.Sprintf("Transfer to %s", b.Name),
			Utterance: fmt.Sprintf("Transfer 1000 rupees to %s.", b.Name),
		})
	}
	return suggestions
}
