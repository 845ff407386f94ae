// Package charts renders the dashboard views as an ECharts HTML page.
package charts

import (
	"context"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"review_dash/internal/app"
	"review_dash/internal/domain"
)

var labelColors = map[domain.SentimentLabel]string{
	domain.Positive: "green",
	domain.Neutral:  "gray",
	domain.Negative: "red",
}

// RenderDashboard writes every dashboard view to w as one HTML page.
func RenderDashboard(ctx context.Context, w io.Writer, d *app.DashboardService) error {
	page := components.NewPage()
	page.AddCharts(
		SentimentPie(d.SentimentDistribution(ctx)),
		CrosstabBar("Sentiment vs Star Rating", d.RatingBySentiment(ctx), true),
	)
	for _, l := range domain.Labels {
		kw, err := d.Keywords(ctx, l, 0)
		if err != nil {
			return err
		}
		page.AddCharts(KeywordCloud(l, kw))
	}
	page.AddCharts(
		CrosstabBar("Verified Purchase vs Sentiment", d.VerifiedBySentiment(ctx), false),
		MeanBar("Review Length vs Sentiment", "avg length", d.ReviewLengthBySentiment(ctx)),
		MeanBar("Average Rating by Platform", "avg rating", d.RatingByPlatform(ctx)),
		MeanBar("Average Rating by Major Version", "avg rating", d.RatingByMajorVersion(ctx)),
	)
	return page.Render(w)
}

func SentimentPie(counts []domain.LabelCount) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Overall Sentiment Distribution"}))
	data := make([]opts.PieData, 0, len(counts))
	for _, c := range counts {
		data = append(data, opts.PieData{
			Name:      string(c.Label),
			Value:     c.Count,
			ItemStyle: &opts.ItemStyle{Color: labelColors[c.Label]},
		})
	}
	pie.AddSeries("sentiment", data)
	return pie
}

// CrosstabBar draws one series per label; stacked or grouped.
func CrosstabBar(title string, ct domain.Crosstab, stacked bool) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))
	bar.SetXAxis(ct.Rows)
	for j, l := range ct.Columns {
		data := make([]opts.BarData, 0, len(ct.Rows))
		for i := range ct.Rows {
			data = append(data, opts.BarData{
				Value:     ct.Counts[i][j],
				ItemStyle: &opts.ItemStyle{Color: labelColors[l]},
			})
		}
		if stacked {
			bar.AddSeries(string(l), data, charts.WithBarChartOpts(opts.BarChart{Stack: "total"}))
		} else {
			bar.AddSeries(string(l), data)
		}
	}
	return bar
}

func MeanBar(title, series string, means []domain.GroupMean) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))
	keys := make([]string, 0, len(means))
	data := make([]opts.BarData, 0, len(means))
	for _, m := range means {
		keys = append(keys, m.Key)
		data = append(data, opts.BarData{Value: fmt.Sprintf("%.2f", m.Mean)})
	}
	bar.SetXAxis(keys).AddSeries(series, data)
	return bar
}

func KeywordCloud(label domain.SentimentLabel, kw []domain.KeywordCount) *charts.WordCloud {
	wc := charts.NewWordCloud()
	wc.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Word Cloud: " + string(label)}))
	data := make([]opts.WordCloudData, 0, len(kw))
	for _, k := range kw {
		data = append(data, opts.WordCloudData{Name: k.Word, Value: k.Count})
	}
	wc.AddSeries(string(label), data)
	return wc
}
