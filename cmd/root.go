package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/gitchart/gitchart/internal/binning"
	"github.com/gitchart/gitchart/internal/render"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:      "gitchart",
		Usage:     "Chart commit activity over time for a Git repository",
		Version:   "1.0.0",
		ArgsUsage: "[-- extra git log arguments]",
		Flags:     chartFlags(),
		Action:    chartAction,
	}
}

func chartFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
		},
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "Path to Git repository",
			Value:   ".",
		},
		&cli.StringFlag{
			Name:    "branch",
			Aliases: []string{"b"},
			Usage:   "Branch or revision to chart",
		},
		&cli.StringFlag{
			Name:  "since",
			Usage: "Chart commits since this date (YYYY-MM-DD)",
		},
		&cli.StringFlag{
			Name:  "until",
			Usage: "Chart commits until this date (YYYY-MM-DD)",
		},
		&cli.BoolFlag{Name: "hourly", Usage: "Use hourly buckets"},
		&cli.BoolFlag{Name: "daily", Usage: "Use daily buckets"},
		&cli.BoolFlag{Name: "weekly", Usage: "Use weekly buckets (weeks start Sunday)"},
		&cli.BoolFlag{Name: "monthly", Usage: "Use monthly buckets"},
		&cli.BoolFlag{Name: "yearly", Usage: "Use yearly buckets"},
		&cli.StringFlag{
			Name:    "step",
			Aliases: []string{"s"},
			Usage:   "Fixed bucket width in seconds, or a granularity name",
		},
		&cli.StringFlag{
			Name:    "renderer",
			Aliases: []string{"f"},
			Usage:   "Renderer (spark, gnuplot, url, html, json, csv)",
		},
		&cli.IntFlag{
			Name:  "chart-height",
			Usage: "Rows for the glyph chart",
		},
		&cli.IntFlag{
			Name:  "chart-width",
			Usage: "Max glyph columns (default: terminal width)",
		},
		&cli.IntFlag{
			Name:    "top",
			Aliases: []string{"n"},
			Usage:   "Number of authors in legends and stacked series",
		},
		&cli.StringFlag{
			Name:  "title",
			Usage: "Chart title",
		},
		&cli.StringFlag{
			Name:  "time-format",
			Usage: "Go time layout override for bucket labels",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
		&cli.BoolFlag{
			Name:  "plot",
			Usage: "Pipe the gnuplot script to a gnuplot process",
		},
		&cli.StringFlag{
			Name:  "tz",
			Usage: "IANA timezone for calendar buckets (default: local)",
		},
		&cli.BoolFlag{
			Name:  "git-cli",
			Usage: "Shell to the git CLI instead of reading in-process",
		},
		&cli.StringSliceFlag{
			Name:    "author",
			Aliases: []string{"a"},
			Usage:   "Author glob to include (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude-author",
			Usage: "Author glob to exclude (can be specified multiple times)",
		},
		&cli.BoolFlag{
			Name:  "merges",
			Usage: "Count merge commits too",
		},
	}
}

func chartAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	series, err := binning.Bin(ctx.Records, ctx.Policy, ctx.Location)
	if err != nil {
		if errors.Is(err, binning.ErrNoCommits) {
			return fmt.Errorf("no commits found in the specified range")
		}
		return err
	}

	options := RenderOptions(c, ctx.Config)
	return render.NewRenderer(options.Format).Render(series, options)
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
