package render

import (
	"encoding/json"

	"github.com/gitchart/gitchart/internal/binning"
)

// JSONRenderer writes the series as machine-readable JSON.
type JSONRenderer struct{}

// JSONSeriesReport is the JSON output structure for a binned series.
type JSONSeriesReport struct {
	Policy       string            `json:"policy"`
	Start        string            `json:"start"`
	End          string            `json:"end"`
	Max          int               `json:"max"`
	TotalCommits int               `json:"totalCommits"`
	Buckets      []JSONBucket      `json:"buckets"`
	Authors      []JSONAuthorTotal `json:"authors"`
}

// JSONBucket is the JSON output structure for a single bucket.
type JSONBucket struct {
	Start     string         `json:"start"`
	StartUnix int64          `json:"startUnix"`
	Total     int            `json:"total"`
	ByAuthor  map[string]int `json:"byAuthor,omitempty"`
}

// JSONAuthorTotal is one entry of the series-wide author ranking.
type JSONAuthorTotal struct {
	Author string `json:"author"`
	Total  int    `json:"total"`
}

// Render outputs the series report as indented JSON.
func (r *JSONRenderer) Render(series *binning.TimeSeries, options Options) error {
	w, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildJSONReport(series, options))
}

func buildJSONReport(series *binning.TimeSeries, options Options) JSONSeriesReport {
	first, last := series.Span()
	layout := series.Policy.LabelLayout()
	if options.TimeFormat != "" {
		layout = options.TimeFormat
	}

	report := JSONSeriesReport{
		Policy:       series.Policy.String(),
		Start:        first.Format(layout),
		End:          last.Format(layout),
		Max:          series.Max,
		TotalCommits: series.TotalCommits(),
		Buckets:      make([]JSONBucket, 0, len(series.Buckets)),
	}

	for _, bucket := range series.Buckets {
		jb := JSONBucket{
			Start:     bucket.Start.Format(layout),
			StartUnix: bucket.Start.Unix(),
			Total:     bucket.Total,
		}
		if len(bucket.ByAuthor) > 0 {
			jb.ByAuthor = bucket.ByAuthor
		}
		report.Buckets = append(report.Buckets, jb)
	}

	for _, author := range series.RankedAuthors() {
		report.Authors = append(report.Authors, JSONAuthorTotal{
			Author: author.Author,
			Total:  author.Total,
		})
	}

	return report
}
