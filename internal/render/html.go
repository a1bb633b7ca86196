package render

import (
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/gitchart/gitchart/internal/binning"
)

const defaultHTMLPath = "gitchart.html"

// HTMLRenderer writes a self-contained HTML page with a stacked bar chart:
// one series per top-ranked author plus an "Others" remainder.
type HTMLRenderer struct{}

// Render builds the chart and writes it to the output path.
func (r *HTMLRenderer) Render(series *binning.TimeSeries, options Options) error {
	path := options.OutputPath
	if path == "" {
		path = defaultHTMLPath
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return buildBarChart(series, options).Render(file)
}

func buildBarChart(series *binning.TimeSeries, options Options) *charts.Bar {
	labels := make([]string, len(series.Buckets))
	for i, bucket := range series.Buckets {
		labels[i] = bucketLabel(bucket, series, options)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:     "980px",
			Height:    "520px",
			PageTitle: chartTitle(options),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    chartTitle(options),
			Subtitle: series.Policy.String() + " buckets",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Commits"}),
	)
	bar.SetXAxis(labels)

	top := legendAuthors(series, options)
	topSet := make(map[string]bool, len(top))
	for _, author := range top {
		topSet[author.Author] = true
	}

	for _, author := range top {
		data := make([]opts.BarData, len(series.Buckets))
		for i, bucket := range series.Buckets {
			data[i] = opts.BarData{Value: bucket.ByAuthor[author.Author]}
		}
		bar.AddSeries(author.Author, data, charts.WithBarChartOpts(opts.BarChart{Stack: "total"}))
	}

	if len(series.AuthorTotals) > len(top) {
		bar.AddSeries("Others", othersSeries(series, topSet),
			charts.WithBarChartOpts(opts.BarChart{Stack: "total"}))
	}

	return bar
}

// othersSeries sums per-bucket counts of every author outside the top set.
func othersSeries(series *binning.TimeSeries, topSet map[string]bool) []opts.BarData {
	data := make([]opts.BarData, len(series.Buckets))
	for i, bucket := range series.Buckets {
		total := 0
		for author, count := range bucket.ByAuthor {
			if !topSet[author] {
				total += count
			}
		}
		data[i] = opts.BarData{Value: total}
	}
	return data
}
