package assistant

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sunbank-labs/vaani/pkg/domain/interfaces"
	"github.com/sunbank-labs/vaani/pkg/domain/model"
	"github.com/sunbank-labs/vaani/pkg/domain/types"
	"github.com/sunbank-labs/vaani/pkg/utils/logging"
)

const (
	sessionExpiredText  = "Your session expired. Please sign in again."
	genericFailureText  = "I ran into an issue handling that instruction."
	notUnderstoodText   = "I'm not sure I understood that. Try asking about balances, transfers, reminders, or financial products."
	defaultReminderText = "Reminder from Vaani to follow up."

	transactionFetchLimit = 5
)

var listReminderRe = regexp.MustCompile(`show|list|get|what|view`)

// Dispatcher maps a classified intent plus resolved references onto exactly
// one backend operation and assembles the user-facing outcome. It holds no
// per-conversation state; everything it needs arrives in the Input.
type Dispatcher struct {
	bank      interfaces.BankClient
	knowledge interfaces.KnowledgeQuerier
	quick     []model.Suggestion
	samples   []model.Suggestion
	now       func() time.Time
}

// Option is a functional option for Dispatcher configuration
type Option func(*Dispatcher)

// WithClock overrides the time source, used by reminder due-date parsing
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		d.now = now
	}
}

// WithQuickSuggestions overrides the standing quick-action chips
func WithQuickSuggestions(s []model.Suggestion) Option {
	return func(d *Dispatcher) {
		d.quick = s
	}
}

// WithReminderSamples overrides the sample reminder chips
func WithReminderSamples(s []model.Suggestion) Option {
	return func(d *Dispatcher) {
		d.samples = s
	}
}

// New creates a Dispatcher bound to the given collaborators
func New(bank interfaces.BankClient, knowledge interfaces.KnowledgeQuerier, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		bank:      bank,
		knowledge: knowledge,
		quick:     DefaultQuickSuggestions(),
		samples:   DefaultReminderSamples(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Input is everything one dispatch step needs. Account and beneficiary
// snapshots are read-only; the dispatcher never refreshes them.
type Input struct {
	Result        *model.IntentResult
	Utterance     string
	Token         string
	Accounts      []*model.Account
	Beneficiaries []*model.Beneficiary

	// OnSignOut is invoked exactly once when a backend call fails with a
	// session-expiry code. May be nil.
	OnSignOut func()
}

type userFacing interface {
	UserMessage() string
}

func errorReplyText(err error) string {
	var uf userFacing
	if errors.As(err, &uf) && uf.UserMessage() != "" {
		return uf.UserMessage()
	}
	return genericFailureText
}

// Dispatch executes one intent branch. Every path, including all failure
// paths, terminates in a DispatchOutcome; it never returns an error.
func (d *Dispatcher) Dispatch(ctx context.Context, in Input) *model.DispatchOutcome {
	outcome := &model.DispatchOutcome{
		Intent:     in.Result.Intent,
		Confidence: in.Result.Confidence,
		Slots:      in.Result.Slots,
	}

	respond := func(text string) *model.DispatchOutcome {
		outcome.Text = text
		return outcome
	}

	fail := func(err error) *model.DispatchOutcome {
		if code := types.CodeOf(err); code.IsSessionExpiry() {
			logging.From(ctx).Warn("banking session expired during dispatch",
				"intent", in.Result.Intent,
				"code", code,
			)
			if in.OnSignOut != nil {
				in.OnSignOut()
			}
			outcome.SessionExpired = true
			outcome.Data = nil
			outcome.Suggestions = nil
			outcome.FeedbackContext = nil
			return respond(sessionExpiredText)
		}
		logging.From(ctx).Error("dispatch branch failed",
			"intent", in.Result.Intent,
			"error", err,
		)
		return respond(errorReplyText(err))
	}

	switch in.Result.Intent {
	case types.IntentBalanceCheck:
		return d.balanceCheck(ctx, in, outcome, respond, fail)
	case types.IntentTransactionHistory:
		return d.transactionHistory(ctx, in, outcome, respond, fail)
	case types.IntentTransferFunds:
		return d.transferFunds(ctx, in, outcome, respond, fail)
	case types.IntentSetReminder:
		return d.setReminder(ctx, in, outcome, respond, fail)
	case types.IntentLoanInfo:
		return d.loanInfo(ctx, in, outcome, respond, fail)
	default:
		outcome.Suggestions = d.quick
		return respond(notUnderstoodText)
	}
}

func (d *Dispatcher) orQuick(chips []model.Suggestion) []model.Suggestion {
	if len(chips) > 0 {
		return chips
	}
	return d.quick
}

func (d *Dispatcher) balanceCheck(
	ctx context.Context, in Input, outcome *model.DispatchOutcome,
	respond func(string) *model.DispatchOutcome, fail func(error) *model.DispatchOutcome,
) *model.DispatchOutcome {
	res := ResolveAccount(in.Result.Slots.Account, in.Accounts)
	if res.Account == nil || res.Account.ID == "" {
		outcome.Suggestions = d.orQuick(BuildAccountSuggestions(PurposeBalance, in.Accounts, in.Beneficiaries))
		return respond("I could not determine which account to check. Please mention the account type or the last digits of the account number.")
	}

	balance, err := d.bank.AccountBalance(ctx, in.Token, res.Account.ID)
	if err != nil {
		return fail(err)
	}

	if res.Reason == MatchDefault && in.Result.Slots.Account != "" {
		outcome.Suggestions = BuildAccountSuggestions(PurposeBalance, in.Accounts, in.Beneficiaries)
	}
	outcome.Data = &model.Payload{
		Kind: model.PayloadBalance,
		Balance: &model.BalanceDetail{
			AccountNumber:    res.Account.AccountNumber,
			LedgerBalance:    balance.LedgerBalance,
			AvailableBalance: balance.AvailableBalance,
			Currency:         balance.Currency,
			Status:           balance.Status,
		},
	}
	outcome.FeedbackContext = model.FeedbackContext{
		"action":        types.IntentBalanceCheck.String(),
		"accountNumber": res.Account.AccountNumber,
		"reason":        string(res.Reason),
	}
	return respond(fmt.Sprintf("The available balance in your account %s is %s.",
		MaskAccount(res.Account.AccountNumber),
		FormatCurrency(balance.AvailableBalance, balance.Currency),
	))
}

func (d *Dispatcher) transactionHistory(
	ctx context.Context, in Input, outcome *model.DispatchOutcome,
	respond func(string) *model.DispatchOutcome, fail func(error) *model.DispatchOutcome,
) *model.DispatchOutcome {
	res := ResolveAccount(in.Result.Slots.Account, in.Accounts)
	if res.Account == nil || res.Account.ID == "" {
		outcome.Suggestions = d.orQuick(BuildAccountSuggestions(PurposeTransactions, in.Accounts, in.Beneficiaries))
		return respond("Please specify which account the transactions should come from.")
	}

	transactions, err := d.bank.Transactions(ctx, in.Token, res.Account.ID, transactionFetchLimit)
	if err != nil {
		return fail(err)
	}

	if res.Reason == MatchDefault && in.Result.Slots.Account != "" {
		outcome.Suggestions = BuildAccountSuggestions(PurposeTransactions, in.Accounts, in.Beneficiaries)
	}
	outcome.Data = &model.Payload{
		Kind:         model.PayloadTransactions,
		Transactions: transactions,
	}
	outcome.FeedbackContext = model.FeedbackContext{
		"action":        types.IntentTransactionHistory.String(),
		"accountNumber": res.Account.AccountNumber,
		"reason":        string(res.Reason),
	}

	masked := MaskAccount(res.Account.AccountNumber)
	if len(transactions) == 0 {
		return respond(fmt.Sprintf("I could not find any recent transactions on account %s.", masked))
	}
	verb, plural := "are", "s"
	if len(transactions) == 1 {
		verb, plural = "is", ""
	}
	return respond(fmt.Sprintf("Here %s the latest %d transaction%s on your account %s.",
		verb, len(transactions), plural, masked))
}

func (d *Dispatcher) transferFunds(
	ctx context.Context, in Input, outcome *model.DispatchOutcome,
	respond func(string) *model.DispatchOutcome, fail func(error) *model.DispatchOutcome,
) *model.DispatchOutcome {
	rawAmount := strings.ReplaceAll(in.Result.Slots.Amount, ",", "")
	amount, err := strconv.ParseFloat(rawAmount, 64)
	// ParseFloat accepts "inf" and "nan"; neither is a transferable amount.
	if rawAmount == "" || err != nil || amount <= 0 || math.IsInf(amount, 0) || math.IsNaN(amount) {
		outcome.Suggestions = d.quick
		return respond("How much should I transfer?")
	}

	benRes := ResolveBeneficiary(in.Result.Slots.Destination, in.Beneficiaries)
	if benRes.Beneficiary == nil {
		outcome.Suggestions = d.orQuick(BuildBeneficiarySuggestions(in.Beneficiaries))
		return respond("I could not match that beneficiary. Please mention the beneficiary name or account number.")
	}

	srcRes := ResolveAccount(in.Result.Slots.Source, in.Accounts)
	if srcRes.Account == nil || srcRes.Account.ID == "" {
		outcome.Suggestions = d.orQuick(BuildAccountSuggestions(PurposeTransfer, in.Accounts, in.Beneficiaries))
		return respond("Which account should I transfer from? Please specify the source account.")
	}

	currencyCode := srcRes.Account.Currency
	if currencyCode == "" {
		currencyCode = "INR"
	}
	receipt, err := d.bank.CreateTransfer(ctx, in.Token, &model.TransferRequest{
		SourceAccountID:          srcRes.Account.ID,
		DestinationAccountNumber: benRes.Beneficiary.AccountNumber,
		Amount:                   amount,
		Currency:                 currencyCode,
		Remarks:                  in.Result.Slots.Remarks,
	})
	if err != nil {
		return fail(err)
	}

	outcome.Data = &model.Payload{
		Kind: model.PayloadTransfer,
		Transfer: &model.TransferDetail{
			ReferenceID:   receipt.ReferenceID,
			Amount:        receipt.Debit.Amount,
			Currency:      receipt.Debit.Currency,
			SourceAccount: srcRes.Account.AccountNumber,
			Beneficiary:   benRes.Beneficiary.Name,
		},
	}
	outcome.FeedbackContext = model.FeedbackContext{
		"action":        types.IntentTransferFunds.String(),
		"accountNumber": srcRes.Account.AccountNumber,
		"beneficiary":   benRes.Beneficiary.Name,
		"amount":        amount,
	}
	return respond(fmt.Sprintf("Transfer reference %s confirmed. I sent %s from account %s to %s.",
		receipt.ReferenceID,
		FormatCurrency(receipt.Debit.Amount, receipt.Debit.Currency),
		MaskAccount(srcRes.Account.AccountNumber),
		benRes.Beneficiary.Name,
	))
}

func (d *Dispatcher) setReminder(
	ctx context.Context, in Input, outcome *model.DispatchOutcome,
	respond func(string) *model.DispatchOutcome, fail func(error) *model.DispatchOutcome,
) *model.DispatchOutcome {
	isListRequest := in.Result.Slots.DueDate == "" &&
		listReminderRe.MatchString(strings.ToLower(in.Utterance))
	if isListRequest {
		reminders, err := d.bank.Reminders(ctx, in.Token)
		if err != nil {
			return fail(err)
		}
		outcome.Data = &model.Payload{
			Kind:      model.PayloadReminders,
			Reminders: reminders,
		}
		outcome.FeedbackContext = model.FeedbackContext{
			"action":        "list_reminders",
			"reminderCount": len(reminders),
		}
		if len(reminders) == 0 {
			return respond("You do not have any reminders yet.")
		}
		plural := "s"
		if len(reminders) == 1 {
			plural = ""
		}
		return respond(fmt.Sprintf("You currently have %d reminder%s.", len(reminders), plural))
	}

	message := in.Result.Slots.Message
	if message == "" {
		message = defaultReminderText
	}

	dueDate, ok := ParseReminderDueDate(in.Result.Slots.DueDate, d.now())
	if !ok {
		outcome.Suggestions = d.samples
		return respond("When should I schedule the reminder? Please include a date such as tomorrow or 12 January.")
	}

	reminderType := classifyReminder(message)

	var accountID string
	if in.Result.Slots.Account != "" {
		if res := ResolveAccount(in.Result.Slots.Account, in.Accounts); res.Account != nil {
			accountID = res.Account.ID
		}
	}

	created, err := d.bank.CreateReminder(ctx, in.Token, &model.ReminderRequest{
		ReminderType: reminderType,
		RemindAt:     dueDate,
		Message:      message,
		AccountID:    accountID,
		Channel:      types.ReminderChannelVoice,
	})
	if err != nil {
		return fail(err)
	}

	outcome.Data = &model.Payload{
		Kind:     model.PayloadReminder,
		Reminder: created,
	}
	outcome.FeedbackContext = model.FeedbackContext{
		"action":     types.IntentSetReminder.String(),
		"reminderId": created.ID,
	}
	return respond(fmt.Sprintf("Reminder scheduled for %s with the message %q.",
		FormatDateTime(created.RemindAt), created.Message))
}

// classifyReminder derives the reminder category from a keyword scan of the
// message text. First match wins; anything unrecognized is custom.
func classifyReminder(message string) types.ReminderType {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "bill") || strings.Contains(lower, "electricity"):
		return types.ReminderTypeBillPayment
	case strings.Contains(lower, "rent") || strings.Contains(lower, "due"):
		return types.ReminderTypeDueDate
	case strings.Contains(lower, "save") || strings.Contains(lower, "savings"):
		return types.ReminderTypeSavings
	default:
		return types.ReminderTypeCustom
	}
}

func (d *Dispatcher) loanInfo(
	ctx context.Context, in Input, outcome *model.DispatchOutcome,
	respond func(string) *model.DispatchOutcome, fail func(error) *model.DispatchOutcome,
) *model.DispatchOutcome {
	entry, err := d.knowledge.Query(ctx, in.Utterance)
	if err != nil {
		return fail(err)
	}
	if entry == nil {
		outcome.Suggestions = d.quick
		return respond("I could not find detailed information for that request. Try asking about personal loans, gold bonds, or pension schemes.")
	}

	outcome.Data = &model.Payload{
		Kind:      model.PayloadKnowledge,
		Knowledge: entry,
	}
	outcome.FeedbackContext = model.FeedbackContext{
		"action":      "knowledge",
		"knowledgeId": entry.ID,
	}
	return respond(fmt.Sprintf("%s: %s", entry.Title, entry.Description))
}
