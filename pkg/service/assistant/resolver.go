package assistant

import (
	"strings"
	"unicode"

	"github.com/sunbank-labs/vaani/pkg/domain/model"
)

// MatchReason explains how (or why not) a reference was resolved
type MatchReason string

const (
	MatchDefault         MatchReason = "default"
	MatchNumber          MatchReason = "number"
	MatchType            MatchReason = "type"
	MatchName            MatchReason = "name"
	MatchMissing         MatchReason = "missing"
	MatchNotFound        MatchReason = "not_found"
	MatchNoAccounts      MatchReason = "no_accounts"
	MatchNoBeneficiaries MatchReason = "no_beneficiaries"
)

// AccountResolution is the result of resolving a free-text account reference
type AccountResolution struct {
	Account *model.Account
	Reason  MatchReason
}

// BeneficiaryResolution is the result of resolving a beneficiary reference
type BeneficiaryResolution struct {
	Beneficiary *model.Beneficiary
	Reason      MatchReason
}

// digitsOf strips everything but decimal digits
func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// cleanse strips whitespace and lower-cases an account number for comparison
func cleanse(s string) string {
	var b strings.Builder
	for _, r := range s {
		if !unicode.IsSpace(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// ResolveAccount resolves a free-text account identifier against the account
// snapshot. When accounts exist, the result is always non-nil: an identifier
// that matches nothing deliberately falls back to the first account with
// reason MatchDefault rather than failing. Callers that care about the
// distinction must check the reason.
func ResolveAccount(identifier string, accounts []*model.Account) AccountResolution {
	if len(accounts) == 0 {
		return AccountResolution{Reason: MatchNoAccounts}
	}
	if strings.TrimSpace(identifier) == "" {
		return AccountResolution{Account: accounts[0], Reason: MatchDefault}
	}

	value := strings.TrimSpace(identifier)
	normalized := strings.ToLower(value)
	digits := digitsOf(value)

	if len(digits) >= 4 {
		for _, account := range accounts {
			if strings.HasSuffix(cleanse(account.AccountNumber), digits) {
				return AccountResolution{Account: account, Reason: MatchNumber}
			}
		}
	}

	for _, account := range accounts {
		if account.Type != "" && strings.Contains(strings.ToLower(account.Type), normalized) {
			return AccountResolution{Account: account, Reason: MatchType}
		}
	}

	for _, account := range accounts {
		if cleanse(account.AccountNumber) == cleanse(value) {
			return AccountResolution{Account: account, Reason: MatchNumber}
		}
	}

	return AccountResolution{Account: accounts[0], Reason: MatchDefault}
}

// ResolveBeneficiary resolves a beneficiary reference. Beneficiary
// resolution never substitutes a default: a missing or unmatched identifier
// is a terminal failure for the calling intent.
func ResolveBeneficiary(identifier string, beneficiaries []*model.Beneficiary) BeneficiaryResolution {
	if len(beneficiaries) == 0 {
		return BeneficiaryResolution{Reason: MatchNoBeneficiaries}
	}
	if strings.TrimSpace(identifier) == "" {
		return BeneficiaryResolution{Reason: MatchMissing}
	}

	value := strings.ToLower(strings.TrimSpace(identifier))
	digits := digitsOf(value)

	if len(digits) >= 6 {
		for _, b := range beneficiaries {
			if strings.HasSuffix(digitsOf(b.AccountNumber), digits) {
				return BeneficiaryResolution{Beneficiary: b, Reason: MatchNumber}
			}
		}
	}

	for _, b := range beneficiaries {
		if strings.Contains(strings.ToLower(b.Name), value) {
			return BeneficiaryResolution{Beneficiary: b, Reason: MatchName}
		}
	}

	return BeneficiaryResolution{Reason: MatchNotFound}
}
