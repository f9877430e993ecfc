package nlu

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/sunbank-labs/vaani/pkg/domain/interfaces"
	"github.com/sunbank-labs/vaani/pkg/domain/model"
	"github.com/sunbank-labs/vaani/pkg/domain/types"
	"github.com/sunbank-labs/vaani/pkg/utils/logging"
)

// Classifier is a hybrid interpreter: an LLM classification session when a
// client is configured, with the deterministic keyword classifier as the
// fallback on error, low confidence, or no client at all.
type Classifier struct {
	llmClient gollem.LLMClient
	threshold float64
}

var _ interfaces.Interpreter = (*Classifier)(nil)

// ClassifierOption is a functional option for Classifier configuration
type ClassifierOption func(*Classifier)

// WithLLMClient enables the LLM classification stage
func WithLLMClient(client gollem.LLMClient) ClassifierOption {
	return func(c *Classifier) {
		c.llmClient = client
	}
}

// WithConfidenceThreshold overrides the minimum LLM confidence accepted
// before falling back to keywords
func WithConfidenceThreshold(threshold float64) ClassifierOption {
	return func(c *Classifier) {
		c.threshold = threshold
	}
}

// NewClassifier creates a Classifier. Without an LLM client it is purely
// keyword driven, which is the configuration used in tests and offline mode.
func NewClassifier(opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		threshold: 0.65,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type llmVerdict struct {
	Intent     string            `json:"intent"`
	Confidence float64           `json:"confidence"`
	Slots      map[string]string `json:"slots"`
}

func intentSchema() *gollem.Parameter {
	names := make([]string, 0, len(types.AllIntents()))
	for _, it := range types.AllIntents() {
		names = append(names, it.String())
	}
	return &gollem.Parameter{
		Title:       "IntentVerdict",
		Description: "Classified banking intent with extracted slots",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"intent": {
				Type:        gollem.TypeString,
				Description: "One of: " + strings.Join(names, ", "),
				Required:    true,
			},
			"confidence": {
				Type:        gollem.TypeNumber,
				Description: "Classification confidence between 0 and 1",
				Required:    true,
			},
			"slots": {
				Type:        gollem.TypeObject,
				Description: "Extracted slot values keyed by slot name. Known keys: account, source, destination, amount, due_date, message, remarks, product. Omit keys with no value.",
				Properties:  map[string]*gollem.Parameter{},
			},
		},
	}
}

const classifyPromptFmt = `You classify a retail-banking voice utterance into exactly one intent and extract slot values.

Intents:
- balance_check: the customer asks how much money an account holds
- transaction_history: the customer asks for recent transactions or a statement
- transfer_funds: the customer wants to send money to a beneficiary
- set_reminder: the customer wants to create or list payment reminders
- loan_info: the customer asks about loans, rates, or investment products
- clarify: none of the above fits

Slot keys: account (account reference for balance/history), source (sending account),
destination (beneficiary name or account number), amount (numeric string, no commas),
due_date (date phrase as spoken), message (reminder text), remarks (transfer note),
product (loan/investment product name).

Utterance: %q`

// Interpret classifies one utterance. The sessionID is echoed back so the
// caller can correlate multi-turn slot filling; this implementation keeps no
// per-session state itself.
func (c *Classifier) Interpret(ctx context.Context, utterance string, sessionID types.SessionID) (*model.IntentResult, error) {
	if strings.TrimSpace(utterance) == "" {
		return &model.IntentResult{
			Intent:    types.IntentClarify,
			SessionID: sessionID,
			Source:    "empty",
		}, nil
	}

	if c.llmClient != nil {
		result, err := c.interpretLLM(ctx, utterance)
		if err != nil {
			logging.From(ctx).Warn("LLM classification failed, using keyword fallback",
				"error", err,
			)
		} else if result.Confidence >= c.threshold {
			result.SessionID = sessionID
			return result, nil
		}
	}

	fallback := c.fallback(utterance)
	fallback.SessionID = sessionID
	return fallback, nil
}

func (c *Classifier) interpretLLM(ctx context.Context, utterance string) (*model.IntentResult, error) {
	session, err := c.llmClient.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(intentSchema()),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM classification session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(fmt.Sprintf(classifyPromptFmt, utterance)))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to classify utterance")
	}
	if len(resp.Texts) == 0 {
		return nil, goerr.New("LLM classification returned empty response")
	}

	var verdict llmVerdict
	if err := json.Unmarshal([]byte(resp.Texts[0]), &verdict); err != nil {
		return nil, goerr.Wrap(err, "failed to parse classification JSON",
			goerr.V("response", resp.Texts[0]),
		)
	}

	intent := types.Intent(verdict.Intent)
	if !intent.IsValid() {
		return nil, goerr.New("LLM returned unknown intent",
			goerr.V("intent", verdict.Intent),
		)
	}

	return &model.IntentResult{
		Intent:     intent,
		Confidence: verdict.Confidence,
		Slots:      slotsFromMap(verdict.Slots),
		Source:     "llm",
	}, nil
}

// slotsFromMap maps the classifier's loose slot map onto the fixed slot
// struct. Unknown keys are dropped silently.
func slotsFromMap(raw map[string]string) model.Slots {
	var slots model.Slots
	for key, value := range raw {
		switch key {
		case "account":
			slots.Account = value
		case "source":
			slots.Source = value
		case "destination":
			slots.Destination = value
		case "amount":
			slots.Amount = value
		case "due_date":
			slots.DueDate = value
		case "message":
			slots.Message = value
		case "remarks":
			slots.Remarks = value
		case "product":
			slots.Product = value
		}
	}
	return slots
}

func (c *Classifier) fallback(utterance string) *model.IntentResult {
	kw := ClassifyWithKeywords(utterance)
	if kw.Confidence*100 < fallbackThreshold {
		return &model.IntentResult{
			Intent:     types.IntentClarify,
			Confidence: kw.Confidence,
			Source:     "fallback",
		}
	}
	return &model.IntentResult{
		Intent:     kw.Intent,
		Confidence: kw.Confidence,
		Slots:      kw.Slots,
		Source:     "fallback",
	}
}
