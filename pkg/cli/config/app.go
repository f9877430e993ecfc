package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/sunbank-labs/vaani/pkg/domain/model"
	"github.com/sunbank-labs/vaani/pkg/service/assistant"
	"github.com/sunbank-labs/vaani/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// AppConfig is the optional assistant tuning file (TOML)
type AppConfig struct {
	ConfidenceThreshold float64      `toml:"confidence_threshold"`
	KnowledgePath       string       `toml:"knowledge_path"`
	QuickSuggestions    []Suggestion `toml:"quick_suggestion"`
	ReminderSamples     []Suggestion `toml:"reminder_sample"`
}

// Suggestion is one configured suggestion chip
type Suggestion struct {
	Label     string `toml:"label"`
	Utterance string `toml:"utterance"`
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	if a.ConfidenceThreshold < 0 || a.ConfidenceThreshold > 1 {
		return goerr.New("confidence_threshold must be between 0 and 1",
			goerr.V("value", a.ConfidenceThreshold))
	}
	for i, s := range a.QuickSuggestions {
		if s.Label == "" || s.Utterance == "" {
			return goerr.New("quick_suggestion needs label and utterance", goerr.V("index", i))
		}
	}
	for i, s := range a.ReminderSamples {
		if s.Label == "" || s.Utterance == "" {
			return goerr.New("reminder_sample needs label and utterance", goerr.V("index", i))
		}
	}
	return nil
}

// Threshold returns the configured confidence threshold, or the default
func (a *AppConfig) Threshold() float64 {
	if a.ConfidenceThreshold == 0 {
		return usecase.ConfidenceThreshold
	}
	return a.ConfidenceThreshold
}

// Quick returns the configured quick suggestions, or the defaults
func (a *AppConfig) Quick() []model.Suggestion {
	if len(a.QuickSuggestions) == 0 {
		return assistant.DefaultQuickSuggestions()
	}
	return toModelSuggestions(a.QuickSuggestions)
}

// Samples returns the configured reminder samples, or the defaults
func (a *AppConfig) Samples() []model.Suggestion {
	if len(a.ReminderSamples) == 0 {
		return assistant.DefaultReminderSamples()
	}
	return toModelSuggestions(a.ReminderSamples)
}

func toModelSuggestions(in []Suggestion) []model.Suggestion {
	out := make([]model.Suggestion, len(in))
	for i, s := range in {
		out[i] = model.Suggestion{Label: s.Label, Utterance: s.Utterance}
	}
	return out
}

// App holds CLI flags for the assistant tuning file
type App struct {
	path string
}

// Flags returns CLI flags for app configuration
func (a *App) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "assistant-config",
			Usage:       "Path to the assistant tuning file (TOML)",
			Sources:     cli.EnvVars("VAANI_ASSISTANT_CONFIG"),
			Destination: &a.path,
		},
	}
}

// Configure loads the tuning file, or returns defaults when no path is set
func (a *App) Configure() (*AppConfig, error) {
	cfg := &AppConfig{}
	if a.path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(a.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read assistant config", goerr.V("path", a.path))
	}
	if err := toml.Unmarshal(raw, cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse assistant config", goerr.V("path", a.path))
	}
	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid assistant config", goerr.V("path", a.path))
	}
	return cfg, nil
}
