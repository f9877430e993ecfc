package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	server "github.com/sunbank-labs/vaani/pkg/controller/http"
	"github.com/sunbank-labs/vaani/pkg/domain/model"
	"github.com/sunbank-labs/vaani/pkg/domain/types"
	"github.com/sunbank-labs/vaani/pkg/repository/memory"
	"github.com/sunbank-labs/vaani/pkg/usecase"
)

type stubBank struct {
	tokens []string
}

func (s *stubBank) Accounts(ctx context.Context, token string) ([]*model.Account, error) {
	s.tokens = append(s.tokens, token)
	return []*model.Account{{ID: "acc-1", AccountNumber: "100200303456", Type: "Savings", Currency: "INR"}}, nil
}

func (s *stubBank) Beneficiaries(ctx context.Context, token string) ([]*model.Beneficiary, error) {
	return nil, nil
}

func (s *stubBank) AccountBalance(ctx context.Context, token, accountID string) (*model.Balance, error) {
	return &model.Balance{AvailableBalance: 5000, Currency: "INR", Status: "active"}, nil
}

func (s *stubBank) Transactions(ctx context.Context, token, accountID string, limit int) ([]*model.Transaction, error) {
	return nil, nil
}

func (s *stubBank) CreateTransfer(ctx context.Context, token string, req *model.TransferRequest) (*model.TransferReceipt, error) {
	return nil, errors.New("not implemented")
}

func (s *stubBank) Reminders(ctx context.Context, token string) ([]*model.Reminder, error) {
	return nil, nil
}

func (s *stubBank) CreateReminder(ctx context.Context, token string, req *model.ReminderRequest) (*model.Reminder, error) {
	return nil, errors.New("not implemented")
}

func (s *stubBank) SubmitFeedback(ctx context.Context, token string, rec *model.FeedbackRecord) error {
	return nil
}

type stubKnowledge struct{}

func (stubKnowledge) Query(ctx context.Context, question string) (*model.Knowledge, error) {
	return nil, nil
}

type stubInterpreter struct{}

func (stubInterpreter) Interpret(ctx context.Context, utterance string, sessionID types.SessionID) (*model.IntentResult, error) {
	return &model.IntentResult{
		Intent:     types.IntentBalanceCheck,
		Confidence: 0.9,
		SessionID:  sessionID,
	}, nil
}

func newTestServer() *server.Server {
	uc := usecase.New(memory.New(), &stubBank{}, stubKnowledge{}, stubInterpreter{})
	return server.New(uc)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	gt.Value(t, rec.Code).Equal(http.StatusOK)
}

func TestConverse(t *testing.T) {
	srv := newTestServer()

	t.Run("requires bearer token", func(t *testing.T) {
		body := bytes.NewBufferString(`{"utterance":"balance please"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/converse", body)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		gt.Value(t, rec.Code).Equal(http.StatusUnauthorized)
	})

	t.Run("rejects empty utterance", func(t *testing.T) {
		body := bytes.NewBufferString(`{"utterance":""}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/converse", body)
		req.Header.Set("Authorization", "Bearer token-1")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("rejects unknown source", func(t *testing.T) {
		body := bytes.NewBufferString(`{"utterance":"hi","source":"telepathy"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/converse", body)
		req.Header.Set("Authorization", "Bearer token-1")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("returns assistant reply with session id", func(t *testing.T) {
		body := bytes.NewBufferString(`{"utterance":"what is my balance","source":"voice"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/converse", body)
		req.Header.Set("Authorization", "Bearer token-1")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var res usecase.ConverseResult
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res)).Required()
		gt.String(t, res.SessionID.String()).NotEqual("")
		gt.Value(t, res.Message.Intent).Equal(types.IntentBalanceCheck)
		gt.Value(t, res.Message.Data.Kind).Equal(model.PayloadBalance)
	})
}

func TestFeedback(t *testing.T) {
	srv := newTestServer()

	converse := func(t *testing.T) usecase.ConverseResult {
		t.Helper()
		body := bytes.NewBufferString(`{"utterance":"what is my balance"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/converse", body)
		req.Header.Set("Authorization", "Bearer token-1")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var res usecase.ConverseResult
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res)).Required()
		return res
	}

	t.Run("accepts a valid verdict", func(t *testing.T) {
		res := converse(t)

		payload, _ := json.Marshal(map[string]string{
			"sessionId": res.SessionID.String(),
			"messageId": res.Message.ID.String(),
			"feedback":  "positive",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", bytes.NewReader(payload))
		req.Header.Set("Authorization", "Bearer token-1")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		gt.Value(t, rec.Code).Equal(http.StatusAccepted)
	})

	t.Run("rejects an invalid verdict", func(t *testing.T) {
		body := bytes.NewBufferString(`{"sessionId":"s","messageId":"m","feedback":"meh"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", body)
		req.Header.Set("Authorization", "Bearer token-1")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})
}
