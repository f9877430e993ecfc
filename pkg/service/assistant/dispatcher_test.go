package assistant_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/sunbank-labs/vaani/pkg/domain/model"
	"github.com/sunbank-labs/vaani/pkg/domain/types"
	"github.com/sunbank-labs/vaani/pkg/service/assistant"
)

type bankMock struct {
	accountBalance func(ctx context.Context, token, accountID string) (*model.Balance, error)
	transactions   func(ctx context.Context, token, accountID string, limit int) ([]*model.Transaction, error)
	createTransfer func(ctx context.Context, token string, req *model.TransferRequest) (*model.TransferReceipt, error)
	reminders      func(ctx context.Context, token string) ([]*model.Reminder, error)
	createReminder func(ctx context.Context, token string, req *model.ReminderRequest) (*model.Reminder, error)

	calls []string
}

func (m *bankMock) Accounts(ctx context.Context, token string) ([]*model.Account, error) {
	m.calls = append(m.calls, "Accounts")
	return nil, errors.New("not implemented")
}

func (m *bankMock) Beneficiaries(ctx context.Context, token string) ([]*model.Beneficiary, error) {
	m.calls = append(m.calls, "Beneficiaries")
	return nil, errors.New("not implemented")
}

func (m *bankMock) AccountBalance(ctx context.Context, token, accountID string) (*model.Balance, error) {
	m.calls = append(m.calls, "AccountBalance")
	return m.accountBalance(ctx, token, accountID)
}

func (m *bankMock) Transactions(ctx context.Context, token, accountID string, limit int) ([]*model.Transaction, error) {
	m.calls = append(m.calls, "Transactions")
	return m.transactions(ctx, token, accountID, limit)
}

func (m *bankMock) CreateTransfer(ctx context.Context, token string, req *model.TransferRequest) (*model.TransferReceipt, error) {
	m.calls = append(m.calls, "CreateTransfer")
	return m.createTransfer(ctx, token, req)
}

func (m *bankMock) Reminders(ctx context.Context, token string) ([]*model.Reminder, error) {
	m.calls = append(m.calls, "Reminders")
	return m.reminders(ctx, token)
}

func (m *bankMock) CreateReminder(ctx context.Context, token string, req *model.ReminderRequest) (*model.Reminder, error) {
	m.calls = append(m.calls, "CreateReminder")
	return m.createReminder(ctx, token, req)
}

func (m *bankMock) SubmitFeedback(ctx context.Context, token string, rec *model.FeedbackRecord) error {
	m.calls = append(m.calls, "SubmitFeedback")
	return nil
}

type knowledgeMock struct {
	query func(ctx context.Context, question string) (*model.Knowledge, error)
}

func (m *knowledgeMock) Query(ctx context.Context, question string) (*model.Knowledge, error) {
	return m.query(ctx, question)
}

type apiErrStub struct {
	code types.ErrorCode
	msg  string
}

func (e *apiErrStub) Error() string              { return string(e.code) }
func (e *apiErrStub) ErrorCode() types.ErrorCode { return e.code }
func (e *apiErrStub) UserMessage() string        { return e.msg }

func fixedClock() time.Time {
	return time.Date(2026, time.March, 10, 18, 0, 0, 0, time.UTC)
}

func newDispatcher(bank *bankMock, kn *knowledgeMock) *assistant.Dispatcher {
	if kn == nil {
		kn = &knowledgeMock{query: func(context.Context, string) (*model.Knowledge, error) {
			return nil, nil
		}}
	}
	return assistant.New(bank, kn, assistant.WithClock(fixedClock))
}

func input(intent types.Intent, slots model.Slots, utterance string) assistant.Input {
	return assistant.Input{
		Result: &model.IntentResult{
			Intent:     intent,
			Confidence: 0.9,
			Slots:      slots,
		},
		Utterance:     utterance,
		Token:         "token-1",
		Accounts:      testAccounts(),
		Beneficiaries: testBeneficiaries(),
	}
}

func TestDispatchBalanceCheck(t *testing.T) {
	t.Run("resolved account yields balance payload", func(t *testing.T) {
		bank := &bankMock{
			accountBalance: func(ctx context.Context, token, accountID string) (*model.Balance, error) {
				gt.Value(t, token).Equal("token-1")
				gt.Value(t, accountID).Equal("acc-2")
				return &model.Balance{LedgerBalance: 52000, AvailableBalance: 51250.75, Currency: "INR", Status: "active"}, nil
			},
		}
		d := newDispatcher(bank, nil)

		out := d.Dispatch(context.Background(), input(types.IntentBalanceCheck,
			model.Slots{Account: "current"}, "what is my current account balance"))

		gt.Value(t, out.Data).NotNil()
		gt.Value(t, out.Data.Kind).Equal(model.PayloadBalance)
		gt.Value(t, out.Data.Balance.AvailableBalance).Equal(51250.75)
		gt.Value(t, out.Data.Balance.AccountNumber).Equal("100200307890")
		gt.Value(t, out.Text).Equal("The available balance in your account ending 7890 is ₹51,250.75.")
		gt.Bool(t, out.SessionExpired).False()
		gt.Value(t, out.FeedbackContext["reason"]).Equal("type")
		gt.Array(t, out.Suggestions).Length(0)
	})

	t.Run("default fallback attaches disambiguation chips", func(t *testing.T) {
		bank := &bankMock{
			accountBalance: func(ctx context.Context, token, accountID string) (*model.Balance, error) {
				gt.Value(t, accountID).Equal("acc-1")
				return &model.Balance{AvailableBalance: 10, Currency: "INR"}, nil
			},
		}
		d := newDispatcher(bank, nil)

		out := d.Dispatch(context.Background(), input(types.IntentBalanceCheck,
			model.Slots{Account: "fixed deposit"}, "balance of my fixed deposit"))

		gt.Value(t, out.Data).NotNil()
		gt.Value(t, out.FeedbackContext["reason"]).Equal("default")
		gt.Array(t, out.Suggestions).Length(3)
	})

	t.Run("no accounts asks for clarification without backend call", func(t *testing.T) {
		bank := &bankMock{}
		d := newDispatcher(bank, nil)

		in := input(types.IntentBalanceCheck, model.Slots{}, "balance please")
		in.Accounts = nil
		out := d.Dispatch(context.Background(), in)

		gt.Value(t, out.Data).Nil()
		gt.Array(t, bank.calls).Length(0)
		gt.Array(t, out.Suggestions).Length(5)
	})

	t.Run("session expiry forces sign-out exactly once", func(t *testing.T) {
		bank := &bankMock{
			accountBalance: func(ctx context.Context, token, accountID string) (*model.Balance, error) {
				return nil, &apiErrStub{code: types.ErrCodeSessionExpired, msg: "session gone"}
			},
		}
		d := newDispatcher(bank, nil)

		signOuts := 0
		in := input(types.IntentBalanceCheck, model.Slots{}, "balance")
		in.OnSignOut = func() { signOuts++ }
		out := d.Dispatch(context.Background(), in)

		gt.Value(t, signOuts).Equal(1)
		gt.Bool(t, out.SessionExpired).True()
		gt.Value(t, out.Text).Equal("Your session expired. Please sign in again.")
		gt.Value(t, out.Data).Nil()
		gt.Value(t, out.FeedbackContext).Nil()
	})

	t.Run("backend failure surfaces the API user message", func(t *testing.T) {
		bank := &bankMock{
			accountBalance: func(ctx context.Context, token, accountID string) (*model.Balance, error) {
				return nil, &apiErrStub{code: "rate_limited", msg: "Too many requests, please retry shortly."}
			},
		}
		d := newDispatcher(bank, nil)

		out := d.Dispatch(context.Background(), input(types.IntentBalanceCheck, model.Slots{}, "balance"))

		gt.Bool(t, out.SessionExpired).False()
		gt.Value(t, out.Text).Equal("Too many requests, please retry shortly.")
	})
}

func TestDispatchTransactionHistory(t *testing.T) {
	t.Run("pluralizes reply by count", func(t *testing.T) {
		bank := &bankMock{
			transactions: func(ctx context.Context, token, accountID string, limit int) ([]*model.Transaction, error) {
				gt.Value(t, limit).Equal(5)
				return []*model.Transaction{{ID: "t1", Amount: 100}}, nil
			},
		}
		d := newDispatcher(bank, nil)

		out := d.Dispatch(context.Background(), input(types.IntentTransactionHistory,
			model.Slots{Account: "3456"}, "show my transactions"))

		gt.Value(t, out.Data.Kind).Equal(model.PayloadTransactions)
		gt.Array(t, out.Data.Transactions).Length(1)
		gt.Value(t, out.Text).Equal("Here is the latest 1 transaction on your account ending 3456.")
	})

	t.Run("empty history has its own reply", func(t *testing.T) {
		bank := &bankMock{
			transactions: func(ctx context.Context, token, accountID string, limit int) ([]*model.Transaction, error) {
				return nil, nil
			},
		}
		d := newDispatcher(bank, nil)

		out := d.Dispatch(context.Background(), input(types.IntentTransactionHistory,
			model.Slots{Account: "7890"}, "transactions"))

		gt.Value(t, out.Text).Equal("I could not find any recent transactions on account ending 7890.")
	})
}

func TestDispatchTransferFunds(t *testing.T) {
	t.Run("happy path resolves beneficiary then source", func(t *testing.T) {
		bank := &bankMock{
			createTransfer: func(ctx context.Context, token string, req *model.TransferRequest) (*model.TransferReceipt, error) {
				gt.Value(t, req.SourceAccountID).Equal("acc-1")
				gt.Value(t, req.DestinationAccountNumber).Equal("556677889900")
				gt.Value(t, req.Amount).Equal(2500.0)
				gt.Value(t, req.Currency).Equal("INR")
				return &model.TransferReceipt{
					ReferenceID: "TRF-42",
					Debit:       model.DebitedLeg{Amount: 2500, Currency: "INR"},
				}, nil
			},
		}
		d := newDispatcher(bank, nil)

		out := d.Dispatch(context.Background(), input(types.IntentTransferFunds,
			model.Slots{Amount: "2,500", Destination: "Asha", Source: "savings"},
			"transfer 2,500 rupees to Asha from savings"))

		gt.Value(t, out.Data.Kind).Equal(model.PayloadTransfer)
		gt.Value(t, out.Data.Transfer.ReferenceID).Equal("TRF-42")
		gt.Value(t, out.Data.Transfer.Beneficiary).Equal("Asha Verma")
		gt.Value(t, out.Text).Equal("Transfer reference TRF-42 confirmed. I sent ₹2,500.00 from account ending 3456 to Asha Verma.")
	})

	t.Run("missing amount asks before any resolution", func(t *testing.T) {
		bank := &bankMock{}
		d := newDispatcher(bank, nil)

		out := d.Dispatch(context.Background(), input(types.IntentTransferFunds,
			model.Slots{Destination: "Asha"}, "send money to Asha"))

		gt.Value(t, out.Text).Equal("How much should I transfer?")
		gt.Array(t, bank.calls).Length(0)
	})

	t.Run("zero and negative amounts are rejected", func(t *testing.T) {
		bank := &bankMock{}
		d := newDispatcher(bank, nil)

		for _, amount := range []string{"0", "-50", "abc", "inf", "+Inf", "-inf", "nan", "NaN"} {
			out := d.Dispatch(context.Background(), input(types.IntentTransferFunds,
				model.Slots{Amount: amount, Destination: "Asha", Source: "savings"}, "transfer"))
			gt.Value(t, out.Text).Equal("How much should I transfer?")
		}
		gt.Array(t, bank.calls).Length(0)
	})

	t.Run("unknown beneficiary never defaults", func(t *testing.T) {
		bank := &bankMock{}
		d := newDispatcher(bank, nil)

		out := d.Dispatch(context.Background(), input(types.IntentTransferFunds,
			model.Slots{Amount: "100", Destination: "stranger"}, "transfer 100 to stranger"))

		gt.Value(t, out.Text).Equal("I could not match that beneficiary. Please mention the beneficiary name or account number.")
		gt.Array(t, out.Suggestions).Length(2)
		gt.Array(t, bank.calls).Length(0)
	})
}

func TestDispatchSetReminder(t *testing.T) {
	t.Run("list request with no due date lists reminders", func(t *testing.T) {
		bank := &bankMock{
			reminders: func(ctx context.Context, token string) ([]*model.Reminder, error) {
				return []*model.Reminder{{ID: "r1"}, {ID: "r2"}}, nil
			},
		}
		d := newDispatcher(bank, nil)

		out := d.Dispatch(context.Background(), input(types.IntentSetReminder,
			model.Slots{}, "show my reminders"))

		gt.Value(t, out.Data.Kind).Equal(model.PayloadReminders)
		gt.Value(t, out.Text).Equal("You currently have 2 reminders.")
	})

	t.Run("due date present creates instead of listing", func(t *testing.T) {
		bank := &bankMock{
			createReminder: func(ctx context.Context, token string, req *model.ReminderRequest) (*model.Reminder, error) {
				gt.Value(t, req.ReminderType).Equal(types.ReminderTypeBillPayment)
				gt.Value(t, req.Channel).Equal(types.ReminderChannelVoice)
				gt.Value(t, req.RemindAt).Equal(time.Date(2026, time.March, 11, 9, 0, 0, 0, time.UTC))
				return &model.Reminder{
					ID:           "r9",
					ReminderType: req.ReminderType,
					RemindAt:     req.RemindAt,
					Message:      req.Message,
				}, nil
			},
		}
		d := newDispatcher(bank, nil)

		// "show" appears in the utterance but the filled due date wins
		out := d.Dispatch(context.Background(), input(types.IntentSetReminder,
			model.Slots{DueDate: "tomorrow", Message: "Pay the electricity bill"},
			"show me you can remind me to pay the electricity bill tomorrow"))

		gt.Value(t, out.Data.Kind).Equal(model.PayloadReminder)
		gt.Value(t, out.Data.Reminder.ID).Equal("r9")
		gt.Value(t, out.Text).Equal(`Reminder scheduled for 11 Mar 2026, 9:00 am with the message "Pay the electricity bill".`)
	})

	t.Run("missing message uses the default text and custom type", func(t *testing.T) {
		bank := &bankMock{
			createReminder: func(ctx context.Context, token string, req *model.ReminderRequest) (*model.Reminder, error) {
				gt.Value(t, req.Message).Equal("Reminder from Vaani to follow up.")
				gt.Value(t, req.ReminderType).Equal(types.ReminderTypeCustom)
				return &model.Reminder{ID: "r1", RemindAt: req.RemindAt, Message: req.Message}, nil
			},
		}
		d := newDispatcher(bank, nil)

		out := d.Dispatch(context.Background(), input(types.IntentSetReminder,
			model.Slots{DueDate: "today"}, "set a reminder today"))

		gt.Value(t, out.Data.Kind).Equal(model.PayloadReminder)
	})

	t.Run("rent message classifies as due_date", func(t *testing.T) {
		bank := &bankMock{
			createReminder: func(ctx context.Context, token string, req *model.ReminderRequest) (*model.Reminder, error) {
				gt.Value(t, req.ReminderType).Equal(types.ReminderTypeDueDate)
				return &model.Reminder{ID: "r2", RemindAt: req.RemindAt, Message: req.Message}, nil
			},
		}
		d := newDispatcher(bank, nil)

		d.Dispatch(context.Background(), input(types.IntentSetReminder,
			model.Slots{DueDate: "tomorrow", Message: "Pay the house rent"}, "remind me tomorrow"))
	})

	t.Run("unparseable due date offers sample chips", func(t *testing.T) {
		bank := &bankMock{}
		d := newDispatcher(bank, nil)

		out := d.Dispatch(context.Background(), input(types.IntentSetReminder,
			model.Slots{DueDate: "someday soon", Message: "pay bill"}, "remind me someday soon"))

		gt.Array(t, bank.calls).Length(0)
		gt.Array(t, out.Suggestions).Length(3)
	})
}

func TestDispatchLoanInfo(t *testing.T) {
	t.Run("knowledge hit", func(t *testing.T) {
		kn := &knowledgeMock{query: func(ctx context.Context, question string) (*model.Knowledge, error) {
			gt.Value(t, question).Equal("tell me about gold bonds")
			return &model.Knowledge{
				ID:          "sgb",
				Title:       "Sovereign Gold Bond",
				Description: "Government-backed bonds denominated in grams of gold.",
			}, nil
		}}
		d := newDispatcher(&bankMock{}, kn)

		out := d.Dispatch(context.Background(), input(types.IntentLoanInfo,
			model.Slots{Product: "gold bonds"}, "tell me about gold bonds"))

		gt.Value(t, out.Data.Kind).Equal(model.PayloadKnowledge)
		gt.Value(t, out.Text).Equal("Sovereign Gold Bond: Government-backed bonds denominated in grams of gold.")
	})

	t.Run("knowledge miss", func(t *testing.T) {
		d := newDispatcher(&bankMock{}, nil)

		out := d.Dispatch(context.Background(), input(types.IntentLoanInfo,
			model.Slots{}, "tell me about crypto"))

		gt.Value(t, out.Data).Nil()
		gt.Array(t, out.Suggestions).Length(5)
	})
}

func TestDispatchUnknownIntent(t *testing.T) {
	d := newDispatcher(&bankMock{}, nil)

	out := d.Dispatch(context.Background(), input(types.IntentClarify, model.Slots{}, "ummm"))

	gt.Value(t, out.Data).Nil()
	gt.Array(t, out.Suggestions).Length(5)
	gt.Value(t, out.Text).Equal("I'm not sure I understood that. Try asking about balances, transfers, reminders, or financial products.")
}
