package render

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gitchart/gitchart/internal/binning"
)

const chartURLEndpoint = "https://image-charts.com/chart"

// Pixel size of the requested chart image.
const (
	chartURLWidth  = 700
	chartURLHeight = 300
)

// ChartURLRenderer composes a chart-API URL for the series. It only builds
// and prints the URL; no HTTP request is made.
type ChartURLRenderer struct{}

// Render writes the composed URL.
func (r *ChartURLRenderer) Render(series *binning.TimeSeries, options Options) error {
	w, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	_, err = fmt.Fprintln(w, buildChartURL(series, options))
	return err
}

// buildChartURL encodes the bucket totals as a vertical bar chart request.
func buildChartURL(series *binning.TimeSeries, options Options) string {
	totals := make([]string, len(series.Buckets))
	for i, bucket := range series.Buckets {
		totals[i] = strconv.Itoa(bucket.Total)
	}

	first, last := series.Span()
	layout := series.Policy.LabelLayout()
	if options.TimeFormat != "" {
		layout = options.TimeFormat
	}

	values := url.Values{}
	values.Set("cht", "bvs")
	values.Set("chs", fmt.Sprintf("%dx%d", chartURLWidth, chartURLHeight))
	values.Set("chd", "t:"+strings.Join(totals, ","))
	values.Set("chds", fmt.Sprintf("0,%d", series.Max))
	values.Set("chxt", "x,y")
	values.Set("chxr", fmt.Sprintf("1,0,%d", series.Max))
	values.Set("chxl", fmt.Sprintf("0:|%s|%s", first.Format(layout), last.Format(layout)))
	values.Set("chtt", chartTitle(options))

	return chartURLEndpoint + "?" + values.Encode()
}
