package render

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/gitchart/gitchart/internal/binning"
)

// GnuplotRenderer composes a gnuplot script for the series. By default the
// script is printed so it can be piped or saved; with Spawn set it is fed
// straight to a gnuplot process.
type GnuplotRenderer struct{}

// Render emits or executes the gnuplot script. A gnuplot process that fails
// to start or exits abnormally is reported with the underlying cause; this
// is a single-shot tool, so there are no retries.
func (r *GnuplotRenderer) Render(series *binning.TimeSeries, options Options) error {
	script := buildGnuplotScript(series, options)

	if !options.Spawn {
		w, file, err := openOutputWriter(options.OutputPath)
		if err != nil {
			return err
		}
		if file != nil {
			defer file.Close()
		}
		_, err = fmt.Fprint(w, script)
		return err
	}

	cmd := exec.CommandContext(context.Background(), "gnuplot", "-persist")
	cmd.Stdin = strings.NewReader(script)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("gnuplot failed: %w", err)
	}
	return nil
}

// buildGnuplotScript renders the series as an inline-data boxes plot with a
// time-formatted x axis.
func buildGnuplotScript(series *binning.TimeSeries, options Options) string {
	var b strings.Builder

	fmt.Fprintf(&b, "set title %q\n", chartTitle(options))
	b.WriteString("set xdata time\n")
	b.WriteString("set timefmt \"%s\"\n")
	fmt.Fprintf(&b, "set format x %q\n", gnuplotTimeFormat(series.Policy))
	b.WriteString("set ylabel \"commits\"\n")
	b.WriteString("set style fill solid 0.5\n")
	fmt.Fprintf(&b, "set boxwidth %d\n", series.Policy.Width()*9/10)
	b.WriteString("set yrange [0:*]\n")

	// When spawning, an output path means a PNG artifact. Without Spawn the
	// path receives the script itself, so the terminal is left alone.
	if options.Spawn && options.OutputPath != "" {
		b.WriteString("set terminal png size 1000,400\n")
		fmt.Fprintf(&b, "set output %q\n", options.OutputPath)
	}

	b.WriteString("plot '-' using 1:2 with boxes notitle\n")
	for _, bucket := range series.Buckets {
		fmt.Fprintf(&b, "%d %d\n", bucket.Start.Unix(), bucket.Total)
	}
	b.WriteString("e\n")

	return b.String()
}

// gnuplotTimeFormat maps a bucket policy to a gnuplot x-axis time format.
func gnuplotTimeFormat(policy binning.BucketPolicy) string {
	if policy.IsFixed() {
		return "%Y-%m-%d %H:%M"
	}
	switch policy.Granularity {
	case binning.Hourly:
		return "%m-%d %H:%M"
	case binning.Monthly:
		return "%b %Y"
	case binning.Yearly:
		return "%Y"
	default:
		return "%Y-%m-%d"
	}
}
