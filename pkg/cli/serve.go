package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sunbank-labs/vaani/pkg/cli/config"
	httpctrl "github.com/sunbank-labs/vaani/pkg/controller/http"
	"github.com/sunbank-labs/vaani/pkg/domain/interfaces"
	"github.com/sunbank-labs/vaani/pkg/service/assistant"
	"github.com/sunbank-labs/vaani/pkg/service/knowledge"
	"github.com/sunbank-labs/vaani/pkg/service/nlu"
	"github.com/sunbank-labs/vaani/pkg/usecase"
	"github.com/sunbank-labs/vaani/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// buildUseCases wires the shared collaborator stack used by serve and chat
func buildUseCases(ctx context.Context, repo interfaces.Repository, bankCfg *config.Bank, geminiCfg *config.Gemini, appCfg *config.AppConfig) (*usecase.UseCases, error) {
	bankClient, err := bankCfg.Configure()
	if err != nil {
		return nil, err
	}

	var knowledgeSvc *knowledge.Service
	if appCfg.KnowledgePath != "" {
		knowledgeSvc, err = knowledge.NewFromFile(appCfg.KnowledgePath)
	} else {
		knowledgeSvc, err = knowledge.New()
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load knowledge dataset")
	}

	llmClient, err := geminiCfg.Configure(ctx)
	if err != nil {
		return nil, err
	}

	classifierOpts := []nlu.ClassifierOption{}
	if llmClient != nil {
		classifierOpts = append(classifierOpts, nlu.WithLLMClient(llmClient))
		logging.Default().Info("LLM classification enabled")
	} else {
		logging.Default().Info("No Gemini project configured, using keyword classification only")
	}

	dispatcher := assistant.New(bankClient, knowledgeSvc,
		assistant.WithQuickSuggestions(appCfg.Quick()),
		assistant.WithReminderSamples(appCfg.Samples()),
	)

	return usecase.New(repo, bankClient, knowledgeSvc, nlu.NewClassifier(classifierOpts...),
		usecase.WithDispatcher(dispatcher),
		usecase.WithTranslator(nlu.NewTranslator(llmClient)),
		usecase.WithQuickSuggestions(appCfg.Quick()),
		usecase.WithConfidenceThreshold(appCfg.Threshold()),
	), nil
}

func cmdServe() *cli.Command {
	var addr string
	var appFlag config.App
	var repoCfg config.Repository
	var bankCfg config.Bank
	var geminiCfg config.Gemini

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("VAANI_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, appFlag.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, bankCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			appCfg, err := appFlag.Configure()
			if err != nil {
				return err
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			uc, err := buildUseCases(ctx, repo, &bankCfg, &geminiCfg, appCfg)
			if err != nil {
				return err
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server",
					"addr", addr,
					"bank_api", bankCfg.BaseURL(),
				)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return goerr.Wrap(err, "HTTP server failed")
			case sig := <-sigCh:
				logging.Default().Info("Shutting down", "signal", sig.String())
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shut down HTTP server")
			}
			return nil
		},
	}
}
