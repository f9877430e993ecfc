package bank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sunbank-labs/vaani/pkg/domain/interfaces"
	"github.com/sunbank-labs/vaani/pkg/domain/model"
	"github.com/sunbank-labs/vaani/pkg/utils/safe"
)

const defaultTimeout = 15 * time.Second

// Client is the REST implementation of interfaces.BankClient. Every call
// carries the customer's bearer token; the client itself holds no credentials.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ interfaces.BankClient = (*Client)(nil)

// ClientOption is a functional option for Client configuration
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client, used by tests
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a core-banking API client for the given base URL
func New(baseURL string, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, goerr.New("core-banking API base URL is required")
	}
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type apiErrorEnvelope struct {
	Error *APIError `json:"error"`
}

func (c *Client) do(ctx context.Context, token, method, path string, query url.Values, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return goerr.Wrap(err, "failed to encode request body", goerr.V("path", path))
		}
		reqBody = bytes.NewReader(raw)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return goerr.Wrap(err, "failed to build request", goerr.V("path", path))
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "core-banking API request failed", goerr.V("path", path))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return c.decodeError(resp, path)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return goerr.Wrap(err, "failed to decode response",
			goerr.V("path", path),
			goerr.V("status", resp.StatusCode),
		)
	}
	return nil
}

func (c *Client) decodeError(resp *http.Response, path string) error {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return goerr.Wrap(err, "failed to read error response", goerr.V("path", path))
	}

	var envelope apiErrorEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error != nil && envelope.Error.Code != "" {
		envelope.Error.HTTPStatus = resp.StatusCode
		return envelope.Error
	}

	// Unstructured failure. Keep the body out of the message so account data
	// in a malformed response never reaches logs verbatim.
	return goerr.New(fmt.Sprintf("core-banking API returned status %d", resp.StatusCode),
		goerr.V("path", path),
		goerr.V("status", resp.StatusCode),
	)
}

// Accounts lists the customer's accounts
func (c *Client) Accounts(ctx context.Context, token string) ([]*model.Account, error) {
	var out struct {
		Accounts []*model.Account `json:"accounts"`
	}
	if err := c.do(ctx, token, http.MethodGet, "/v1/accounts", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Accounts, nil
}

// Beneficiaries lists the customer's registered beneficiaries
func (c *Client) Beneficiaries(ctx context.Context, token string) ([]*model.Beneficiary, error) {
	var out struct {
		Beneficiaries []*model.Beneficiary `json:"beneficiaries"`
	}
	if err := c.do(ctx, token, http.MethodGet, "/v1/beneficiaries", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Beneficiaries, nil
}

// AccountBalance fetches the balance snapshot of one account
func (c *Client) AccountBalance(ctx context.Context, token, accountID string) (*model.Balance, error) {
	var out model.Balance
	path := "/v1/accounts/" + url.PathEscape(accountID) + "/balance"
	if err := c.do(ctx, token, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Transactions fetches the most recent transactions of one account
func (c *Client) Transactions(ctx context.Context, token, accountID string, limit int) ([]*model.Transaction, error) {
	var out struct {
		Transactions []*model.Transaction `json:"transactions"`
	}
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	path := "/v1/accounts/" + url.PathEscape(accountID) + "/transactions"
	if err := c.do(ctx, token, http.MethodGet, path, query, nil, &out); err != nil {
		return nil, err
	}
	return out.Transactions, nil
}

// CreateTransfer submits an internal transfer and returns the receipt
func (c *Client) CreateTransfer(ctx context.Context, token string, req *model.TransferRequest) (*model.TransferReceipt, error) {
	var out model.TransferReceipt
	if err := c.do(ctx, token, http.MethodPost, "/v1/transfers", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reminders lists the customer's reminders
func (c *Client) Reminders(ctx context.Context, token string) ([]*model.Reminder, error) {
	var out struct {
		Reminders []*model.Reminder `json:"reminders"`
	}
	if err := c.do(ctx, token, http.MethodGet, "/v1/reminders", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Reminders, nil
}

// CreateReminder schedules a new reminder
func (c *Client) CreateReminder(ctx context.Context, token string, req *model.ReminderRequest) (*model.Reminder, error) {
	var out model.Reminder
	if err := c.do(ctx, token, http.MethodPost, "/v1/reminders", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitFeedback forwards a thumbs-up/down verdict on a dispatch outcome
func (c *Client) SubmitFeedback(ctx context.Context, token string, rec *model.FeedbackRecord) error {
	return c.do(ctx, token, http.MethodPost, "/v1/voice/feedback", nil, rec, nil)
}
