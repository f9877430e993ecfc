package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sunbank-labs/vaani/pkg/cli/config"
	"github.com/sunbank-labs/vaani/pkg/service/nlu"
	"github.com/sunbank-labs/vaani/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

type evalSample struct {
	Text           string `json:"text"`
	ExpectedIntent string `json:"expected_intent"`
}

type intentScore struct {
	truePositive  int
	falsePositive int
	falseNegative int
	support       int
}

func (s intentScore) precision() float64 {
	if s.truePositive+s.falsePositive == 0 {
		return 0
	}
	return float64(s.truePositive) / float64(s.truePositive+s.falsePositive)
}

func (s intentScore) recall() float64 {
	if s.truePositive+s.falseNegative == 0 {
		return 0
	}
	return float64(s.truePositive) / float64(s.truePositive+s.falseNegative)
}

func (s intentScore) f1() float64 {
	p, r := s.precision(), s.recall()
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

func cmdEvaluate() *cli.Command {
	var datasetPath string
	var geminiCfg config.Gemini

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "dataset",
			Usage:       "Path to labelled utterances (JSON array of {text, expected_intent})",
			Sources:     cli.EnvVars("VAANI_EVAL_DATASET"),
			Destination: &datasetPath,
			Required:    true,
		},
	}
	flags = append(flags, geminiCfg.Flags()...)

	return &cli.Command{
		Name:    "evaluate",
		Aliases: []string{"e"},
		Usage:   "Score the intent classifier against labelled utterances",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			raw, err := os.ReadFile(datasetPath)
			if err != nil {
				return goerr.Wrap(err, "failed to read evaluation dataset", goerr.V("path", datasetPath))
			}
			var samples []evalSample
			if err := json.Unmarshal(raw, &samples); err != nil {
				return goerr.Wrap(err, "failed to parse evaluation dataset", goerr.V("path", datasetPath))
			}
			if len(samples) == 0 {
				return goerr.New("evaluation dataset is empty", goerr.V("path", datasetPath))
			}

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return err
			}
			classifierOpts := []nlu.ClassifierOption{}
			if llmClient != nil {
				classifierOpts = append(classifierOpts, nlu.WithLLMClient(llmClient))
			}
			classifier := nlu.NewClassifier(classifierOpts...)

			scores := map[string]*intentScore{}
			score := func(intent string) *intentScore {
				s, ok := scores[intent]
				if !ok {
					s = &intentScore{}
					scores[intent] = s
				}
				return s
			}

			correct := 0
			for _, sample := range samples {
				result, err := classifier.Interpret(ctx, sample.Text, "")
				if err != nil {
					return goerr.Wrap(err, "classification failed", goerr.V("utterance", sample.Text))
				}
				predicted := result.Intent.String()

				score(sample.ExpectedIntent).support++
				if predicted == sample.ExpectedIntent {
					correct++
					score(sample.ExpectedIntent).truePositive++
				} else {
					score(sample.ExpectedIntent).falseNegative++
					score(predicted).falsePositive++
				}
			}

			intents := make([]string, 0, len(scores))
			for intent := range scores {
				intents = append(intents, intent)
			}
			sort.Strings(intents)

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "intent\tprecision\trecall\tf1\tsupport")
			for _, intent := range intents {
				s := scores[intent]
				fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%d\n",
					intent, s.precision(), s.recall(), s.f1(), s.support)
			}
			fmt.Fprintf(w, "\naccuracy\t%.2f\t\t\t%d\n", float64(correct)/float64(len(samples)), len(samples))
			if err := w.Flush(); err != nil {
				return goerr.Wrap(err, "failed to write report")
			}

			logging.Default().Info("Evaluation completed",
				"samples", len(samples),
				"correct", correct,
			)
			return nil
		},
	}
}
