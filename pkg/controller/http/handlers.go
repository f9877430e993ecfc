package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sunbank-labs/vaani/pkg/domain/model"
	"github.com/sunbank-labs/vaani/pkg/domain/types"
	"github.com/sunbank-labs/vaani/pkg/utils/async"
	"github.com/sunbank-labs/vaani/pkg/utils/errutil"
	"github.com/sunbank-labs/vaani/pkg/utils/safe"
)

type converseRequest struct {
	Utterance string `json:"utterance"`
	SessionID string `json:"sessionId,omitempty"`
	Source    string `json:"source,omitempty"`
}

type feedbackRequest struct {
	SessionID string `json:"sessionId"`
	MessageID string `json:"messageId"`
	Feedback  string `json:"feedback"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to encode response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(ctx, w, data)
}

// converseHandler handles one utterance. Session-expired outcomes are still
// HTTP 200: the payload carries sessionExpired and the client signs out.
func (s *Server) converseHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req converseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid converse request"), http.StatusBadRequest)
		return
	}
	if req.Utterance == "" {
		errutil.HandleHTTP(ctx, w, goerr.New("utterance is required"), http.StatusBadRequest)
		return
	}

	source := model.MessageSource(req.Source)
	switch source {
	case model.SourceText, model.SourceVoice, model.SourceSuggestion:
	case "":
		source = model.SourceText
	default:
		errutil.HandleHTTP(ctx, w, goerr.New("unknown message source"), http.StatusBadRequest)
		return
	}

	res, err := s.uc.Conversation.HandleUtterance(ctx,
		tokenFromContext(ctx),
		types.SessionID(req.SessionID),
		req.Utterance,
		source,
	)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(ctx, w, http.StatusOK, res)
}

func (s *Server) feedbackHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid feedback request"), http.StatusBadRequest)
		return
	}

	verdict := types.FeedbackState(req.Feedback)
	if !verdict.IsValid() {
		errutil.HandleHTTP(ctx, w, goerr.New("feedback must be positive or negative"), http.StatusBadRequest)
		return
	}

	// Feedback is fire-and-forget for the client; the upstream submission
	// runs detached from the request lifetime.
	token := tokenFromContext(ctx)
	sessionID := types.SessionID(req.SessionID)
	messageID := types.MessageID(req.MessageID)
	async.Dispatch(ctx, func(ctx context.Context) error {
		return s.uc.Feedback.Submit(ctx, token, sessionID, messageID, verdict)
	})

	writeJSON(ctx, w, http.StatusAccepted, map[string]string{"status": "accepted"})
}
