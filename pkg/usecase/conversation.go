package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sunbank-labs/vaani/pkg/domain/model"
	"github.com/sunbank-labs/vaani/pkg/domain/types"
	"github.com/sunbank-labs/vaani/pkg/repository/firestore"
	"github.com/sunbank-labs/vaani/pkg/repository/memory"
	"github.com/sunbank-labs/vaani/pkg/service/assistant"
	"github.com/sunbank-labs/vaani/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

const sessionExpiredText = "Your session expired. Please sign in again."

// ConversationUseCase drives one utterance through the full pipeline:
// session state, snapshots, translation, classification, and dispatch.
type ConversationUseCase struct {
	uc *UseCases
}

func newConversationUseCase(uc *UseCases) *ConversationUseCase {
	return &ConversationUseCase{uc: uc}
}

// ConverseResult is the outcome of one utterance
type ConverseResult struct {
	SessionID types.SessionID `json:"sessionId"`
	Message   *model.Message  `json:"message"`
}

func isNotFound(err error) bool {
	return errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound)
}

// HandleUtterance processes one user utterance and returns the assistant's
// reply. A missing or expired session id silently starts a fresh session;
// callers must adopt the returned SessionID. Calls for the same session are
// expected to arrive serially.
func (c *ConversationUseCase) HandleUtterance(ctx context.Context, token string, sessionID types.SessionID, utterance string, source model.MessageSource) (*ConverseResult, error) {
	if token == "" {
		return nil, goerr.New("access token is required")
	}

	now := c.uc.now()

	state, err := c.loadOrCreate(ctx, sessionID, now)
	if err != nil {
		return nil, err
	}

	// First utterance of a session: snapshot accounts and beneficiaries.
	// The snapshots are replaced wholesale, never merged.
	if state.Accounts == nil && state.Beneficiaries == nil {
		if expired, err := c.fetchSnapshots(ctx, token, state); err != nil {
			return nil, err
		} else if expired {
			return c.expire(ctx, state, now)
		}
	}

	normalized := utterance
	if c.uc.translator != nil {
		if translated, err := c.uc.translator.Translate(ctx, utterance); err == nil {
			normalized = translated
		}
	}

	result, err := c.uc.interpreter.Interpret(ctx, normalized, state.SessionID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to interpret utterance")
	}

	// The classifier may hand back a different session id when it tracks
	// multi-turn slot filling elsewhere. Last write wins.
	if result.SessionID != "" && result.SessionID != state.SessionID {
		logging.From(ctx).Info("adopting classifier session id",
			"previous", state.SessionID,
			"next", result.SessionID,
		)
		state.SessionID = result.SessionID
	}

	signedOut := false
	outcome := c.uc.dispatcher.Dispatch(ctx, assistant.Input{
		Result:        result,
		Utterance:     normalized,
		Token:         token,
		Accounts:      state.Accounts,
		Beneficiaries: state.Beneficiaries,
		OnSignOut:     func() { signedOut = true },
	})

	if len(outcome.Suggestions) == 0 &&
		(outcome.Confidence < c.uc.threshold || outcome.Intent == types.IntentClarify) {
		outcome.Suggestions = c.uc.quick
	}

	state.RecordIntent(result.Intent, result.Slots)
	state.Append(&model.Message{
		ID:        types.NewMessageID(),
		Role:      model.RoleUser,
		Source:    source,
		Text:      utterance,
		CreatedAt: now,
	})
	reply := &model.Message{
		ID:              types.NewMessageID(),
		Role:            model.RoleAssistant,
		Text:            outcome.Text,
		Intent:          outcome.Intent,
		Confidence:      outcome.Confidence,
		Slots:           outcome.Slots,
		Data:            outcome.Data,
		Suggestions:     outcome.Suggestions,
		FeedbackContext: outcome.FeedbackContext,
		CreatedAt:       now,
		SessionExpired:  outcome.SessionExpired || signedOut,
	}
	state.Append(reply)
	state.Touch(now)

	if reply.SessionExpired {
		// The banking session is gone; the dialogue dies with it.
		if err := c.uc.repo.Session().Delete(ctx, state.SessionID); err != nil && !isNotFound(err) {
			logging.From(ctx).Warn("failed to delete expired session",
				"sessionID", state.SessionID,
				"error", err,
			)
		}
		return &ConverseResult{SessionID: state.SessionID, Message: reply}, nil
	}

	if err := c.uc.repo.Session().Put(ctx, state); err != nil {
		return nil, goerr.Wrap(err, "failed to save dialogue state", goerr.V("sessionID", state.SessionID))
	}
	return &ConverseResult{SessionID: state.SessionID, Message: reply}, nil
}

func (c *ConversationUseCase) loadOrCreate(ctx context.Context, sessionID types.SessionID, now time.Time) (*model.DialogueState, error) {
	if sessionID == "" {
		return model.NewDialogueState(types.NewSessionID(), now), nil
	}

	state, err := c.uc.repo.Session().Get(ctx, sessionID)
	if err != nil {
		if isNotFound(err) {
			return model.NewDialogueState(sessionID, now), nil
		}
		return nil, goerr.Wrap(err, "failed to load dialogue state", goerr.V("sessionID", sessionID))
	}
	return state, nil
}

// fetchSnapshots loads accounts and beneficiaries in parallel. The bool
// result reports a session-expiry failure, which is not an error here.
func (c *ConversationUseCase) fetchSnapshots(ctx context.Context, token string, state *model.DialogueState) (bool, error) {
	var accounts []*model.Account
	var beneficiaries []*model.Beneficiary

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		accounts, err = c.uc.bank.Accounts(egCtx, token)
		return err
	})
	eg.Go(func() error {
		var err error
		beneficiaries, err = c.uc.bank.Beneficiaries(egCtx, token)
		return err
	})

	if err := eg.Wait(); err != nil {
		if types.CodeOf(err).IsSessionExpiry() {
			return true, nil
		}
		return false, goerr.Wrap(err, "failed to load banking snapshots")
	}

	state.Accounts = accounts
	state.Beneficiaries = beneficiaries
	return false, nil
}

// expire produces the fixed session-expired reply for a session whose very
// first backend call already failed with an expiry code.
func (c *ConversationUseCase) expire(ctx context.Context, state *model.DialogueState, now time.Time) (*ConverseResult, error) {
	reply := &model.Message{
		ID:             types.NewMessageID(),
		Role:           model.RoleAssistant,
		Text:           sessionExpiredText,
		CreatedAt:      now,
		SessionExpired: true,
	}

	if err := c.uc.repo.Session().Delete(ctx, state.SessionID); err != nil && !isNotFound(err) {
		logging.From(ctx).Warn("failed to delete expired session",
			"sessionID", state.SessionID,
			"error", err,
		)
	}
	return &ConverseResult{SessionID: state.SessionID, Message: reply}, nil
}
