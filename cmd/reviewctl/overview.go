package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"review_dash/internal/app"
	"review_dash/internal/bootstrap"
	"review_dash/internal/domain"
)

var topKeywords int

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Print the dashboard KPIs and chart tables",
	Args:  cobra.NoArgs,
	RunE:  runOverview,
}

func init() {
	overviewCmd.Flags().IntVar(&topKeywords, "top", 10, "keywords listed per sentiment")
}

func runOverview(cmd *cobra.Command, args []string) error {
	src, closeSrc, err := bootstrap.OpenSource(cfg)
	if err != nil {
		return err
	}
	defer closeSrc()
	ds, err := app.NewLoadService(src, nil).Load(cmd.Context())
	if err != nil {
		return err
	}
	return printOverview(cmd.Context(), cmd.OutOrStdout(), app.NewDashboardService(ds, nil, 0, topKeywords))
}

func printOverview(ctx context.Context, out io.Writer, d *app.DashboardService) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	ov := d.Overview(ctx)
	fmt.Fprintf(w, "Total reviews\t%d\n", ov.TotalReviews)
	fmt.Fprintf(w, "Average rating\t%.2f\n", ov.AverageRating)
	fmt.Fprintf(w, "Positive\t%.1f%%\n", ov.PositivePct)
	fmt.Fprintf(w, "Negative\t%.1f%%\n", ov.NegativePct)

	fmt.Fprintln(w, "\nSentiment distribution")
	for _, c := range d.SentimentDistribution(ctx) {
		fmt.Fprintf(w, "  %s\t%d\n", c.Label, c.Count)
	}

	printCrosstab(w, "Rating vs sentiment", d.RatingBySentiment(ctx))
	printCrosstab(w, "Verified purchase vs sentiment", d.VerifiedBySentiment(ctx))

	printMeans(w, "Mean review length by sentiment", d.ReviewLengthBySentiment(ctx))
	printMeans(w, "Mean rating by platform", d.RatingByPlatform(ctx))
	printMeans(w, "Mean rating by major version", d.RatingByMajorVersion(ctx))

	for _, l := range []domain.SentimentLabel{domain.Positive, domain.Negative} {
		kw, err := d.Keywords(ctx, l, 0)
		if err != nil {
			return err
		}
		words := make([]string, 0, len(kw))
		for _, k := range kw {
			words = append(words, fmt.Sprintf("%s(%d)", k.Word, k.Count))
		}
		fmt.Fprintf(w, "\nTop %s keywords\n  %s\n", strings.ToLower(string(l)), strings.Join(words, " "))
	}
	return w.Flush()
}

func printCrosstab(w io.Writer, title string, ct domain.Crosstab) {
	fmt.Fprintf(w, "\n%s\n ", title)
	for _, c := range ct.Columns {
		fmt.Fprintf(w, "\t%s", c)
	}
	fmt.Fprintln(w)
	for i, row := range ct.Rows {
		fmt.Fprintf(w, "  %s", row)
		for _, n := range ct.Counts[i] {
			fmt.Fprintf(w, "\t%d", n)
		}
		fmt.Fprintln(w)
	}
}

func printMeans(w io.Writer, title string, means []domain.GroupMean) {
	fmt.Fprintf(w, "\n%s\n", title)
	for _, m := range means {
		fmt.Fprintf(w, "  %s\t%.2f\n", m.Key, m.Mean)
	}
}
