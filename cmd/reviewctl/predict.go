package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"review_dash/internal/app"
	"review_dash/internal/bootstrap"
	"review_dash/internal/domain"
)

var predictCmd = &cobra.Command{
	Use:   "predict [text...]",
	Short: "Resolve the sentiment of a review text",
	Long: `Resolves the sentiment of the given text. Keyword overrides are checked first,
the classifier decides otherwise. With no arguments the text is read from stdin.`,
	RunE: runPredict,
}

func runPredict(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if len(args) == 0 {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(b)
	}

	clf, err := bootstrap.OpenClassifier(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	return printPrediction(cmd.Context(), cmd.OutOrStdout(), clf, text)
}

func printPrediction(ctx context.Context, w io.Writer, clf domain.Classifier, text string) error {
	res, err := app.NewSentimentResolver(clf)
	if err != nil {
		return err
	}
	r, err := app.NewPredictService(res, nil).Predict(ctx, text)
	if err != nil {
		return err
	}
	if r.Keyword != "" {
		_, err = fmt.Fprintf(w, "%s\t(%s: %q)\n", r.Sentiment, r.Source, r.Keyword)
	} else {
		_, err = fmt.Fprintf(w, "%s\t(%s)\n", r.Sentiment, r.Source)
	}
	return err
}
