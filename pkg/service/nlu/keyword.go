package nlu

import (
	"regexp"
	"strings"

	"github.com/sunbank-labs/vaani/pkg/domain/model"
	"github.com/sunbank-labs/vaani/pkg/domain/types"
)

// Keyword vocabularies per intent. Hindi loanwords appear because customers
// freely mix them into English utterances.
var (
	accountKeywords     = []string{"savings", "current", "salary", "primary", "account"}
	transferKeywords    = []string{"transfer", "send", "bhejo", "pay", "deposit"}
	balanceKeywords     = []string{"balance", "kitna", "amount"}
	transactionKeywords = []string{"transaction", "statement", "history", "recent"}
	reminderKeywords    = []string{"remind", "reminder", "alert"}
	loanKeywords        = []string{"loan", "credit", "interest", "rate", "emi"}
)

var (
	amountRe      = regexp.MustCompile(`(\d+(?:[.,]\d{1,2})?)`)
	dueDateRe     = regexp.MustCompile(`(?i)\b(tomorrow|today|day after|\d{1,2}\s*(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)\w*|\d{4}-\d{2}-\d{2})\b`)
	destinationRe = regexp.MustCompile(`(?:to|for)\s+([a-zA-Z']+)`)
	productRe     = regexp.MustCompile(`home|personal|auto|car|education`)
	tokenSplitRe  = regexp.MustCompile(`[^a-z0-9]+`)
)

// fallbackThreshold is the minimum keyword score (0..100) below which the
// classifier gives up and asks for clarification instead of guessing.
const fallbackThreshold = 65.0

// KeywordResult is the outcome of the deterministic keyword classifier
type KeywordResult struct {
	Intent     types.Intent
	Confidence float64
	Slots      model.Slots
}

// scoreKeywords returns the best match score (0..100) of any vocabulary word
// against the utterance. A whole-token hit scores 100, a substring hit inside
// a longer token scores 85. The two tiers keep "reminder" matching "remind"
// while still ranking an exact vocabulary token higher.
func scoreKeywords(lowered string, tokens map[string]struct{}, vocabulary []string) float64 {
	best := 0.0
	for _, word := range vocabulary {
		if _, ok := tokens[word]; ok {
			return 100
		}
		if strings.Contains(lowered, word) && best < 85 {
			best = 85
		}
	}
	return best
}

func tokenize(lowered string) map[string]struct{} {
	tokens := map[string]struct{}{}
	for _, tok := range tokenSplitRe.Split(lowered, -1) {
		if tok != "" {
			tokens[tok] = struct{}{}
		}
	}
	return tokens
}

// ClassifyWithKeywords scores the utterance against every intent vocabulary
// and extracts intent-specific slots from the winner. It never fails; an
// utterance matching nothing yields the best (zero-score) candidate, which
// the caller discards via the fallback threshold.
func ClassifyWithKeywords(text string) KeywordResult {
	lowered := strings.ToLower(text)
	tokens := tokenize(lowered)

	type candidate struct {
		intent types.Intent
		score  float64
	}
	candidates := []candidate{
		{types.IntentBalanceCheck, scoreKeywords(lowered, tokens, balanceKeywords)},
		{types.IntentTransferFunds, scoreKeywords(lowered, tokens, transferKeywords)},
		{types.IntentTransactionHistory, scoreKeywords(lowered, tokens, transactionKeywords)},
		{types.IntentSetReminder, scoreKeywords(lowered, tokens, reminderKeywords)},
		{types.IntentLoanInfo, scoreKeywords(lowered, tokens, loanKeywords)},
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.score > best.score {
			best = c
		}
	}

	var slots model.Slots
	switch best.intent {
	case types.IntentBalanceCheck, types.IntentTransactionHistory:
		for _, keyword := range accountKeywords {
			if strings.Contains(lowered, keyword) {
				slots.Account = keyword
				break
			}
		}

	case types.IntentTransferFunds:
		if m := amountRe.FindString(lowered); m != "" {
			slots.Amount = strings.ReplaceAll(m, ",", "")
		}
		for _, keyword := range accountKeywords {
			if strings.Contains(lowered, keyword) {
				slots.Source = keyword
				break
			}
		}
		if m := destinationRe.FindStringSubmatch(lowered); m != nil {
			slots.Destination = m[1]
		}

	case types.IntentSetReminder:
		if m := dueDateRe.FindString(lowered); m != "" {
			slots.DueDate = m
		}
		slots.Message = text

	case types.IntentLoanInfo:
		if m := productRe.FindString(lowered); m != "" {
			slots.Product = m
		}
	}

	return KeywordResult{
		Intent:     best.intent,
		Confidence: best.score / 100.0,
		Slots:      slots,
	}
}
