package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sunbank-labs/vaani/pkg/domain/model"
	"github.com/sunbank-labs/vaani/pkg/domain/types"
	"github.com/sunbank-labs/vaani/pkg/utils/errutil"
)

// FeedbackUseCase records thumbs-up/down verdicts on assistant replies,
// forwarding them to the core-banking API and keeping a local copy for
// pipeline evaluation.
type FeedbackUseCase struct {
	uc *UseCases
}

func newFeedbackUseCase(uc *UseCases) *FeedbackUseCase {
	return &FeedbackUseCase{uc: uc}
}

// Submit records a verdict for one assistant message. Missing token, dead
// session, unknown message, or a message without a feedback context make it
// a silent no-op: feedback is best-effort and never breaks the conversation.
func (f *FeedbackUseCase) Submit(ctx context.Context, token string, sessionID types.SessionID, messageID types.MessageID, verdict types.FeedbackState) error {
	if token == "" || sessionID == "" || messageID == "" || !verdict.IsValid() {
		return nil
	}

	state, err := f.uc.repo.Session().Get(ctx, sessionID)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return goerr.Wrap(err, "failed to load dialogue state", goerr.V("sessionID", sessionID))
	}

	msg := state.FindMessage(messageID)
	if msg == nil || msg.FeedbackContext == nil {
		return nil
	}

	rec := &model.FeedbackRecord{
		SessionID: sessionID,
		MessageID: messageID,
		Correct:   verdict == types.FeedbackPositive,
		Intent:    msg.Intent.String(),
		Utterance: f.utteranceFor(state, messageID),
		Context:   msg.FeedbackContext,
		CreatedAt: f.uc.now(),
	}

	if err := f.uc.bank.SubmitFeedback(ctx, token, rec); err != nil {
		errutil.Handle(ctx, err, "feedback submission failed")
		msg.Feedback = types.FeedbackError
		return f.save(ctx, state)
	}

	msg.Feedback = verdict
	if err := f.save(ctx, state); err != nil {
		return err
	}

	if _, err := f.uc.repo.Feedback().Create(ctx, rec); err != nil {
		return goerr.Wrap(err, "failed to store feedback record", goerr.V("sessionID", sessionID))
	}
	return nil
}

// utteranceFor returns the user message immediately preceding the rated
// assistant message, which is the utterance the verdict is about.
func (f *FeedbackUseCase) utteranceFor(state *model.DialogueState, messageID types.MessageID) string {
	lastUser := ""
	for _, msg := range state.Messages {
		if msg.ID == messageID {
			return lastUser
		}
		if msg.Role == model.RoleUser {
			lastUser = msg.Text
		}
	}
	return lastUser
}

func (f *FeedbackUseCase) save(ctx context.Context, state *model.DialogueState) error {
	state.Touch(f.uc.now())
	if err := f.uc.repo.Session().Put(ctx, state); err != nil {
		return goerr.Wrap(err, "failed to save dialogue state", goerr.V("sessionID", state.SessionID))
	}
	return nil
}
