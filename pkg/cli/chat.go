package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/sunbank-labs/vaani/pkg/cli/config"
	"github.com/sunbank-labs/vaani/pkg/domain/model"
	"github.com/sunbank-labs/vaani/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

func cmdChat() *cli.Command {
	var token string
	var appFlag config.App
	var repoCfg config.Repository
	var bankCfg config.Bank
	var geminiCfg config.Gemini

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "token",
			Usage:       "Banking API access token for the chat session",
			Sources:     cli.EnvVars("VAANI_ACCESS_TOKEN"),
			Destination: &token,
			Required:    true,
		},
	}
	flags = append(flags, appFlag.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, bankCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)

	return &cli.Command{
		Name:    "chat",
		Aliases: []string{"c"},
		Usage:   "Talk to the assistant from the terminal",
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
				_ = repo.Close()
			}()

			uc, err := buildUseCases(ctx, repo, &bankCfg, &geminiCfg, appCfg)
			if err != nil {
				return err
			}

			assistantName := color.New(color.FgCyan, color.Bold).SprintFunc()
			suggestionText := color.New(color.FgYellow).SprintFunc()
			promptText := color.New(color.FgGreen).SprintFunc()
			errorText := color.New(color.FgRed).SprintFunc()

			fmt.Println(assistantName("vaani"), "ready. Type your request, or \"exit\" to quit.")

			var sessionID types.SessionID
			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print(promptText("> "))
				if !scanner.Scan() {
					break
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					break
				}

				result, err := uc.Conversation.HandleUtterance(ctx, token, sessionID, line, model.SourceText)
				if err != nil {
					fmt.Println(errorText("error:"), err.Error())
					continue
				}
				sessionID = result.SessionID

				fmt.Println(assistantName("vaani:"), result.Message.Text)
				for _, s := range result.Message.Suggestions {
					fmt.Println("  ", suggestionText(s.Label), "-", s.Utterance)
				}
				if result.Message.SessionExpired {
					fmt.Println(errorText("The banking session has ended. Sign in again to continue."))
					break
				}
			}
			if err := scanner.Err(); err != nil {
				return goerr.Wrap(err, "failed to read input")
			}
			return nil
		},
	}
}
