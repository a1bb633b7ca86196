package render

import (
	"io"
	"os"

	"github.com/gitchart/gitchart/internal/binning"
)

const defaultLegendSize = 5

func openOutputWriter(outputPath string) (io.Writer, *os.File, error) {
	if outputPath == "" {
		return os.Stdout, nil, nil
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}

// bucketLabel formats a bucket start for display, honoring the format
// override and otherwise the policy's own label layout.
func bucketLabel(bucket binning.Bucket, series *binning.TimeSeries, options Options) string {
	layout := options.TimeFormat
	if layout == "" {
		layout = series.Policy.LabelLayout()
	}
	return bucket.Start.Format(layout)
}

// legendAuthors returns the ranked authors capped to the legend size.
func legendAuthors(series *binning.TimeSeries, options Options) []binning.AuthorTotal {
	limit := options.MaxLegend
	if limit <= 0 {
		limit = defaultLegendSize
	}

	ranked := series.RankedAuthors()
	if limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked
}

func chartTitle(options Options) string {
	if options.Title != "" {
		return options.Title
	}
	return "Commit activity"
}
