package nlu_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/sunbank-labs/vaani/pkg/domain/types"
	"github.com/sunbank-labs/vaani/pkg/service/nlu"
)

func TestClassifyWithKeywords(t *testing.T) {
	t.Run("balance with account slot", func(t *testing.T) {
		res := nlu.ClassifyWithKeywords("What is the balance in my savings account?")
		gt.Value(t, res.Intent).Equal(types.IntentBalanceCheck)
		gt.Bool(t, res.Confidence >= 0.65).True()
		gt.Value(t, res.Slots.Account).Equal("savings")
	})

	t.Run("hinglish balance query", func(t *testing.T) {
		res := nlu.ClassifyWithKeywords("mere account me kitna paisa hai")
		gt.Value(t, res.Intent).Equal(types.IntentBalanceCheck)
		gt.Bool(t, res.Confidence >= 0.65).True()
	})

	t.Run("transfer extracts amount source and destination", func(t *testing.T) {
		res := nlu.ClassifyWithKeywords("Transfer 2500 from savings to asha")
		gt.Value(t, res.Intent).Equal(types.IntentTransferFunds)
		gt.Value(t, res.Slots.Amount).Equal("2500")
		gt.Value(t, res.Slots.Source).Equal("savings")
		gt.Value(t, res.Slots.Destination).Equal("asha")
	})

	t.Run("transaction history", func(t *testing.T) {
		res := nlu.ClassifyWithKeywords("Show the statement for my current account")
		gt.Value(t, res.Intent).Equal(types.IntentTransactionHistory)
		gt.Value(t, res.Slots.Account).Equal("current")
	})

	t.Run("reminder captures date phrase and full message", func(t *testing.T) {
		text := "Remind me to pay the electricity bill tomorrow"
		res := nlu.ClassifyWithKeywords(text)
		gt.Value(t, res.Intent).Equal(types.IntentSetReminder)
		gt.Value(t, res.Slots.DueDate).Equal("tomorrow")
		gt.Value(t, res.Slots.Message).Equal(text)
	})

	t.Run("reminder with spoken month date", func(t *testing.T) {
		res := nlu.ClassifyWithKeywords("set an alert for 15 january about the rent")
		gt.Value(t, res.Intent).Equal(types.IntentSetReminder)
		gt.Value(t, res.Slots.DueDate).Equal("15 january")
	})

	t.Run("loan info extracts product", func(t *testing.T) {
		res := nlu.ClassifyWithKeywords("what is the interest rate on a home loan")
		gt.Value(t, res.Intent).Equal(types.IntentLoanInfo)
		gt.Value(t, res.Slots.Product).Equal("home")
	})

	t.Run("gibberish scores below the fallback threshold", func(t *testing.T) {
		res := nlu.ClassifyWithKeywords("the weather is nice in mumbai today")
		gt.Bool(t, res.Confidence*100 < 65).True()
	})
}

func TestClassifierKeywordOnly(t *testing.T) {
	c := nlu.NewClassifier()
	ctx := t.Context()
	sessionID := types.NewSessionID()

	t.Run("confident keyword result passes through", func(t *testing.T) {
		res, err := c.Interpret(ctx, "show my recent transactions", sessionID)
		gt.NoError(t, err).Required()
		gt.Value(t, res.Intent).Equal(types.IntentTransactionHistory)
		gt.Value(t, res.SessionID).Equal(sessionID)
		gt.Value(t, res.Source).Equal("fallback")
	})

	t.Run("low keyword score yields clarify with empty slots", func(t *testing.T) {
		res, err := c.Interpret(ctx, "sing me a song", sessionID)
		gt.NoError(t, err).Required()
		gt.Value(t, res.Intent).Equal(types.IntentClarify)
		gt.Bool(t, res.Slots.IsEmpty()).True()
	})

	t.Run("empty utterance yields clarify", func(t *testing.T) {
		res, err := c.Interpret(ctx, "   ", sessionID)
		gt.NoError(t, err).Required()
		gt.Value(t, res.Intent).Equal(types.IntentClarify)
		gt.Value(t, res.Source).Equal("empty")
	})
}

func TestTranslatorPassthrough(t *testing.T) {
	tr := nlu.NewTranslator(nil)
	ctx := t.Context()

	t.Run("latin text is untouched", func(t *testing.T) {
		got, err := tr.Translate(ctx, "check my balance")
		gt.NoError(t, err)
		gt.Value(t, got).Equal("check my balance")
	})

	t.Run("non-latin text without a client is untouched", func(t *testing.T) {
		got, err := tr.Translate(ctx, "मेरा बैलेंस बताओ")
		gt.NoError(t, err)
		gt.Value(t, got).Equal("मेरा बैलेंस बताओ")
	})
}
