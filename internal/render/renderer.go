package render

import (
	"github.com/gitchart/gitchart/internal/binning"
)

// Compile-time interface conformance checks.
// These ensure that all renderer types correctly implement Renderer.
var (
	_ Renderer = (*SparkRenderer)(nil)
	_ Renderer = (*GnuplotRenderer)(nil)
	_ Renderer = (*ChartURLRenderer)(nil)
	_ Renderer = (*HTMLRenderer)(nil)
	_ Renderer = (*JSONRenderer)(nil)
	_ Renderer = (*CSVRenderer)(nil)
)

// Format selects the renderer that turns a time series into a visual artifact.
type Format string

const (
	FormatSpark   Format = "spark"
	FormatGnuplot Format = "gnuplot"
	FormatURL     Format = "url"
	FormatHTML    Format = "html"
	FormatJSON    Format = "json"
	FormatCSV     Format = "csv"
)

// Options controls presentation. It is constructed once from flags and
// config and passed by value; renderers never mutate it.
type Options struct {
	Format     Format
	Height     int    // Rows for the glyph chart
	Width      int    // Max glyph columns; 0 means detect from the terminal
	MaxLegend  int    // Authors shown in legends and stacked series
	OutputPath string // Empty means stdout (HTML defaults to gitchart.html)
	TimeFormat string // Overrides the policy's bucket label layout
	Title      string
	Spawn      bool // gnuplot: pipe the script to a gnuplot process
}

// Renderer consumes a binned time series and produces the final artifact.
type Renderer interface {
	Render(series *binning.TimeSeries, options Options) error
}

// NewRenderer creates a renderer for the specified format.
func NewRenderer(format Format) Renderer {
	switch format {
	case FormatGnuplot:
		return &GnuplotRenderer{}
	case FormatURL:
		return &ChartURLRenderer{}
	case FormatHTML:
		return &HTMLRenderer{}
	case FormatJSON:
		return &JSONRenderer{}
	case FormatCSV:
		return &CSVRenderer{}
	default:
		return &SparkRenderer{}
	}
}

// ParseFormat parses the renderer selection flag.
func ParseFormat(s string) Format {
	switch s {
	case "gnuplot":
		return FormatGnuplot
	case "url":
		return FormatURL
	case "html":
		return FormatHTML
	case "json":
		return FormatJSON
	case "csv":
		return FormatCSV
	default:
		return FormatSpark
	}
}
