package render

import (
	"encoding/csv"
	"fmt"
	"sort"
	"strings"

	"github.com/gitchart/gitchart/internal/binning"
)

// CSVRenderer writes one row per bucket.
type CSVRenderer struct{}

// Render outputs the series as CSV.
func (r *CSVRenderer) Render(series *binning.TimeSeries, options Options) error {
	w, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Start", "StartUnix", "Total", "Authors"}); err != nil {
		return err
	}

	for _, bucket := range series.Buckets {
		row := []string{
			bucketLabel(bucket, series, options),
			fmt.Sprintf("%d", bucket.Start.Unix()),
			fmt.Sprintf("%d", bucket.Total),
			formatBucketAuthors(bucket),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return nil
}

// formatBucketAuthors flattens a bucket's per-author counts into a single
// "name=count|name=count" cell, sorted by name for determinism.
func formatBucketAuthors(bucket binning.Bucket) string {
	if len(bucket.ByAuthor) == 0 {
		return ""
	}

	names := make([]string, 0, len(bucket.ByAuthor))
	for name := range bucket.ByAuthor {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%d", name, bucket.ByAuthor[name]))
	}
	return strings.Join(parts, "|")
}
