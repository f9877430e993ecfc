package interfaces

import (
	"context"

	"github.com/sunbank-labs/vaani/pkg/domain/model"
)

// BankClient is the collaborator surface of the remote core-banking API.
// Every call carries the caller's bearer token; the assistant owns none of
// this data and never caches it beyond the per-session snapshots.
type BankClient interface {
	// Accounts lists the customer's accounts
	Accounts(ctx context.Context, token string) ([]*model.Account, error)

	// Beneficiaries lists the customer's registered beneficiaries
	Beneficiaries(ctx context.Context, token string) ([]*model.Beneficiary, error)

	// AccountBalance fetches the balance snapshot of one account
	AccountBalance(ctx context.Context, token, accountID string) (*model.Balance, error)

	// Transactions fetches the most recent transactions of one account
	Transactions(ctx context.Context, token, accountID string, limit int) ([]*model.Transaction, error)

	// CreateTransfer submits an internal transfer and returns the receipt
	CreateTransfer(ctx context.Context, token string, req *model.TransferRequest) (*model.TransferReceipt, error)

	// Reminders lists the customer's reminders
	Reminders(ctx context.Context, token string) ([]*model.Reminder, error)

	// CreateReminder schedules a new reminder
	CreateReminder(ctx context.Context, token string, req *model.ReminderRequest) (*model.Reminder, error)

	// SubmitFeedback forwards a thumbs-up/down verdict on a dispatch outcome
	SubmitFeedback(ctx context.Context, token string, rec *model.FeedbackRecord) error
}

// KnowledgeQuerier resolves a free-text question to the best matching
// loan/investment knowledge record, or nil when nothing matches well enough.
type KnowledgeQuerier interface {
	Query(ctx context.Context, question string) (*model.Knowledge, error)
}
