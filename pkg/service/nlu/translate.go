package nlu

import (
	"context"
	"strings"
	"unicode"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/sunbank-labs/vaani/pkg/domain/interfaces"
	"github.com/sunbank-labs/vaani/pkg/utils/logging"
)

// Translator normalizes utterances to English before classification.
// Utterances already containing Latin letters pass through untouched; a
// translation failure falls back to the original text rather than failing
// the conversation.
type Translator struct {
	llmClient gollem.LLMClient
}

var _ interfaces.Translator = (*Translator)(nil)

// NewTranslator creates a Translator. A nil client makes it a passthrough.
func NewTranslator(client gollem.LLMClient) *Translator {
	return &Translator{llmClient: client}
}

func containsLatin(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Latin, r) {
			return true
		}
	}
	return false
}

// Translate returns the English form of text. The error return is always
// nil; it exists to satisfy the interface for implementations that may fail.
func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" || containsLatin(text) || t.llmClient == nil {
		return text, nil
	}

	translated, err := t.translateLLM(ctx, text)
	if err != nil {
		logging.From(ctx).Warn("translation failed, keeping original utterance",
			"error", err,
		)
		return text, nil
	}
	return translated, nil
}

func (t *Translator) translateLLM(ctx context.Context, text string) (string, error) {
	session, err := t.llmClient.NewSession(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create translation session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(
		"Translate the following banking instruction to English. Reply with the translation only, no commentary.\n\n"+text,
	))
	if err != nil {
		return "", goerr.Wrap(err, "failed to translate utterance")
	}
	if len(resp.Texts) == 0 || strings.TrimSpace(resp.Texts[0]) == "" {
		return "", goerr.New("translation returned empty response")
	}
	return strings.TrimSpace(resp.Texts[0]), nil
}
