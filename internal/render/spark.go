package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/gitchart/gitchart/internal/binning"
)

// Block glyphs from one-eighth to full, indexed by cell count minus one.
var sparkGlyphs = []rune("▁▂▃▄▅▆▇█")

const cellsPerRow = 8

// SparkRenderer draws the series as glyph columns in the terminal: a classic
// one-line sparkline at height 1, stacked block rows above that.
type SparkRenderer struct{}

// Render writes the glyph chart and an author legend.
func (r *SparkRenderer) Render(series *binning.TimeSeries, options Options) error {
	w, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	buckets := series.Buckets
	width := options.Width
	if width <= 0 {
		width = terminalWidth()
	}

	trimmed := 0
	if width > 0 && len(buckets) > width {
		trimmed = len(buckets) - width
		buckets = buckets[trimmed:]
	}

	height := options.Height
	if height < 1 {
		height = 1
	}

	if file != nil {
		fmt.Fprintf(w, "%s (%s buckets)\n", chartTitle(options), series.Policy)
	} else {
		color.Green("%s (%s buckets)", chartTitle(options), series.Policy)
	}
	first, last := series.Span()
	layout := series.Policy.LabelLayout()
	if options.TimeFormat != "" {
		layout = options.TimeFormat
	}
	fmt.Fprintf(w, "Range: %s to %s\n", first.Format(layout), last.Format(layout))
	fmt.Fprintf(w, "Commits: %d  Peak bucket: %d\n\n", series.TotalCommits(), series.Max)

	for _, row := range sparkRows(buckets, series.Max, height) {
		fmt.Fprintln(w, row)
	}

	if trimmed > 0 {
		fmt.Fprintf(w, "(showing last %d of %d buckets)\n", len(buckets), len(series.Buckets))
	}

	writeLegend(w, series, options, file == nil)
	return nil
}

// sparkRows scales each bucket to height*8 cells and renders rows top-down.
// A non-empty bucket always shows at least one cell.
func sparkRows(buckets []binning.Bucket, max, height int) []string {
	if max < 1 {
		max = 1
	}

	levels := make([]int, len(buckets))
	for i, bucket := range buckets {
		cells := bucket.Total * height * cellsPerRow / max
		if bucket.Total > 0 && cells == 0 {
			cells = 1
		}
		levels[i] = cells
	}

	rows := make([]string, height)
	for row := 0; row < height; row++ {
		var b strings.Builder
		// Cells already covered by the rows below this one.
		base := (height - 1 - row) * cellsPerRow
		for _, cells := range levels {
			remaining := cells - base
			switch {
			case remaining <= 0:
				b.WriteRune(' ')
			case remaining >= cellsPerRow:
				b.WriteRune(sparkGlyphs[cellsPerRow-1])
			default:
				b.WriteRune(sparkGlyphs[remaining-1])
			}
		}
		rows[row] = b.String()
	}
	return rows
}

var legendColors = []color.Attribute{
	color.FgGreen,
	color.FgCyan,
	color.FgYellow,
	color.FgMagenta,
	color.FgBlue,
	color.FgRed,
}

func writeLegend(w io.Writer, series *binning.TimeSeries, options Options, colored bool) {
	ranked := legendAuthors(series, options)
	if len(ranked) == 0 {
		return
	}

	total := series.TotalCommits()
	fmt.Fprintln(w)
	for i, author := range ranked {
		name := author.Author
		if colored {
			name = color.New(legendColors[i%len(legendColors)]).Sprint(name)
		}
		pct := 100 * float64(author.Total) / float64(total)
		fmt.Fprintf(w, "  %s %d (%.1f%%)\n", name, author.Total, pct)
	}
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}
