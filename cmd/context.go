package cmd

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/gitchart/gitchart/config"
	"github.com/gitchart/gitchart/internal/binning"
	"github.com/gitchart/gitchart/internal/git"
	"github.com/gitchart/gitchart/internal/render"
)

// Granularity flag names, in the order they are checked for conflicts.
var granularityFlags = []string{"hourly", "daily", "weekly", "monthly", "yearly"}

// CommandContext holds the state gathered before binning: configuration,
// the resolved bucket policy and timezone, and the fetched commit records.
type CommandContext struct {
	Config   *config.Config
	RepoPath string
	Policy   *binning.BucketPolicy // nil means auto-select
	Location *time.Location
	Records  []git.CommitRecord
}

// NewCommandContext creates a context from CLI flags. The bucket policy is
// resolved first so an invalid step aborts before any commit source runs.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	policy, err := resolvePolicy(selectedGranularities(c), c.String("step"))
	if err != nil {
		return nil, err
	}

	tz := c.String("tz")
	if tz == "" {
		tz = cfg.Source.Timezone
	}
	loc, err := loadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone: %w", err)
	}

	since, err := parseDateFlag(c.String("since"))
	if err != nil {
		return nil, fmt.Errorf("invalid since date: %w", err)
	}
	until, err := parseDateFlag(c.String("until"))
	if err != nil {
		return nil, fmt.Errorf("invalid until date: %w", err)
	}

	branch := c.String("branch")
	if branch == "" {
		branch = cfg.Source.Branch
	}

	logOpts := git.LogOptions{
		RepoPath:       c.String("repo"),
		Branch:         branch,
		Since:          since,
		Until:          until,
		NoMerges:       cfg.Source.NoMerges && !c.Bool("merges"),
		Authors:        append(cfg.Authors.Include, c.StringSlice("author")...),
		ExcludeAuthors: append(cfg.Authors.Exclude, c.StringSlice("exclude-author")...),
		ExtraArgs:      c.Args().Slice(),
	}

	source, err := newCommitSource(c, cfg, logOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	records, err := source.Read(c.Context)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	return &CommandContext{
		Config:   cfg,
		RepoPath: logOpts.RepoPath,
		Policy:   policy,
		Location: loc,
		Records:  records,
	}, nil
}

// newCommitSource picks the git CLI reader when asked for explicitly or when
// passthrough log arguments are present, which only the CLI understands.
func newCommitSource(c *cli.Context, cfg *config.Config, logOpts git.LogOptions) (git.CommitSource, error) {
	if c.Bool("git-cli") || cfg.Source.UseCLI || len(logOpts.ExtraArgs) > 0 {
		return git.NewLogReader(logOpts), nil
	}
	return git.NewHistoryReader(logOpts)
}

// selectedGranularities returns the granularity flags set on the command line.
func selectedGranularities(c *cli.Context) []string {
	var selected []string
	for _, name := range granularityFlags {
		if c.Bool(name) {
			selected = append(selected, name)
		}
	}
	return selected
}

// resolvePolicy turns granularity flags and the step flag into a bucket
// policy. Returns nil when nothing was requested, letting the binner pick.
func resolvePolicy(granularities []string, step string) (*binning.BucketPolicy, error) {
	if len(granularities) > 1 {
		return nil, fmt.Errorf("conflicting granularity flags: --%s and --%s", granularities[0], granularities[1])
	}
	if len(granularities) == 1 && step != "" {
		return nil, fmt.Errorf("--step conflicts with --%s", granularities[0])
	}

	if len(granularities) == 1 {
		policy := binning.CalendarPolicy(binning.Granularity(granularities[0]))
		return &policy, nil
	}
	if step != "" {
		policy, err := binning.ParsePolicy(step)
		if err != nil {
			return nil, err
		}
		return &policy, nil
	}
	return nil, nil
}

// parseDateFlag parses a date string flag.
func parseDateFlag(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", s)
	}
	return &t, nil
}

// loadLocation resolves a timezone name, defaulting to the system zone.
func loadLocation(name string) (*time.Location, error) {
	switch name {
	case "", "Local":
		return time.Local, nil
	case "UTC":
		return time.UTC, nil
	default:
		return time.LoadLocation(name)
	}
}

// RenderOptions creates render.Options from CLI flags, falling back to the
// configuration file for anything not set on the command line.
func RenderOptions(c *cli.Context, cfg *config.Config) render.Options {
	renderer := c.String("renderer")
	if renderer == "" {
		renderer = cfg.Chart.Renderer
	}

	height := c.Int("chart-height")
	if height <= 0 {
		height = cfg.Chart.Height
	}

	legend := c.Int("top")
	if legend <= 0 {
		legend = cfg.Chart.MaxLegend
	}

	timeFormat := c.String("time-format")
	if timeFormat == "" {
		timeFormat = cfg.Chart.TimeFormat
	}

	title := c.String("title")
	if title == "" {
		title = cfg.Chart.Title
	}

	return render.Options{
		Format:     render.ParseFormat(renderer),
		Height:     height,
		Width:      c.Int("chart-width"),
		MaxLegend:  legend,
		OutputPath: c.String("output"),
		TimeFormat: timeFormat,
		Title:      title,
		Spawn:      c.Bool("plot"),
	}
}
