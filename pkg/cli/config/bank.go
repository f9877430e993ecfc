package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/sunbank-labs/vaani/pkg/service/bank"
	"github.com/urfave/cli/v3"
)

// Bank holds CLI flags for the core-banking API client
type Bank struct {
	baseURL string
}

// Flags returns CLI flags for bank API configuration
func (b *Bank) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "bank-api-url",
			Usage:       "Base URL of the core-banking API",
			Sources:     cli.EnvVars("VAANI_BANK_API_URL"),
			Destination: &b.baseURL,
			Required:    true,
		},
	}
}

// BaseURL returns the configured base URL
func (b *Bank) BaseURL() string {
	return b.baseURL
}

// Configure creates the core-banking API client
func (b *Bank) Configure() (*bank.Client, error) {
	client, err := bank.New(b.baseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create bank API client")
	}
	return client, nil
}
