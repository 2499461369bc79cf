package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/pfrederiksen/pickem-schedule/internal/calendar"
	"github.com/pfrederiksen/pickem-schedule/internal/config"
	"github.com/pfrederiksen/pickem-schedule/internal/filter"
	"github.com/pfrederiksen/pickem-schedule/internal/logger"
	"github.com/pfrederiksen/pickem-schedule/internal/schedule"
	"github.com/pfrederiksen/pickem-schedule/internal/scraper"
	"github.com/pfrederiksen/pickem-schedule/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// Version is reported by --version and set from main at build time
var Version = "dev"

// stdoutPath as --output writes the schedule JSON to stdout instead of a file
const stdoutPath = "-"

// options holds flag values shared by all subcommands
type options struct {
	envFile  string
	season   int
	sourceTZ string
	destTZ   string
	url      string
	output   string
	timeout  time.Duration
	format   string
	logLevel string
	verbose  bool
}

// filterOptions holds the game filter flags of show and calendar
type filterOptions struct {
	teams   []string
	days    string
	neutral bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "pickem-schedule",
		Short: "Build the pick'em season schedule from the published NFL schedule",
		Long: `A CLI tool that turns the published weekly NFL schedule page into the
schedule JSON used by the pick'em app, with kickoff times converted to the
league's local time zone.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.envFile, "env-file", config.DefaultEnvFile, "Environment file to load before reading settings")
	flags.IntVar(&opts.season, "season", config.DefaultSeason, "Season year (or env: SCHEDULE_SEASON)")
	flags.StringVar(&opts.sourceTZ, "source-tz", config.DefaultSourceZone, "Time zone of the published kickoff times (or env: SCHEDULE_SOURCE_TZ)")
	flags.StringVar(&opts.destTZ, "dest-tz", config.DefaultDestZone, "Time zone written to kickoff_local (or env: SCHEDULE_DEST_TZ)")
	flags.StringVar(&opts.output, "output", config.DefaultOutputPath, "Schedule JSON path, '-' for stdout (or env: SCHEDULE_OUTPUT)")
	flags.StringVar(&opts.format, "format", "text", "Output format: text or json")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (or env: LOG_LEVEL)")
	flags.BoolVar(&opts.verbose, "verbose", false, "Enable verbose output and debug logging")

	cmd.AddCommand(newFetchCmd(opts))
	cmd.AddCommand(newParseCmd(opts))
	cmd.AddCommand(newShowCmd(opts))
	cmd.AddCommand(newCalendarCmd(opts))

	return cmd
}

func newFetchCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the schedule page and write the schedule JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.url, "url", scraper.ScheduleURL, "Schedule page URL (or env: SCHEDULE_URL)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", scraper.Timeout, "HTTP timeout for the page fetch (or env: SCHEDULE_TIMEOUT)")
	return cmd
}

func newParseCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Build the schedule JSON from a saved page (.html) or text lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, opts, args[0])
		},
	}
}

func newShowCmd(opts *options) *cobra.Command {
	var week int
	fo := &filterOptions{}
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one week of a schedule file, or a summary of all weeks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, opts, fo, week)
		},
	}
	cmd.Flags().IntVar(&week, "week", 0, "Week number to show (default: summary of all weeks)")
	addFilterFlags(cmd, fo)
	return cmd
}

func newCalendarCmd(opts *options) *cobra.Command {
	var weeks, icsPath string
	fo := &filterOptions{}
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Export games from a schedule file as an iCalendar (.ics) feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalendar(cmd, opts, fo, weeks, icsPath)
		},
	}
	cmd.Flags().StringVar(&weeks, "weeks", "", "Weeks to export, e.g. '5' or '1-4' (default: all weeks)")
	cmd.Flags().StringVar(&icsPath, "ics", stdoutPath, "Path of the .ics file, '-' for stdout")
	addFilterFlags(cmd, fo)
	return cmd
}

func addFilterFlags(cmd *cobra.Command, fo *filterOptions) {
	cmd.Flags().StringSliceVar(&fo.teams, "team", nil, "Only games involving this team (repeatable, substring match)")
	cmd.Flags().StringVar(&fo.days, "days", "", "Only games kicking off on these days, e.g. 'thu,mon'")
	cmd.Flags().BoolVar(&fo.neutral, "neutral", false, "Only neutral-site games")
}

// buildFilter turns the filter flags into a game filter
func buildFilter(fo *filterOptions) (*filter.Filter, error) {
	f := filter.NewFilter()
	f.Teams = append(f.Teams, fo.teams...)
	f.NeutralOnly = fo.neutral
	if fo.days != "" {
		days, err := filter.ParseDays(fo.days)
		if err != nil {
			return nil, err
		}
		f.Days = days
	}
	return f, nil
}

// resolveConfig layers flags that were set explicitly over the env file and
// environment, validates the result and configures the default logger.
func resolveConfig(cmd *cobra.Command, opts *options) (*config.Config, OutputFormat, error) {
	format, err := ParseFormat(strings.ToLower(opts.format))
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return nil, "", fmt.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("season") {
		cfg.Season = opts.season
	}
	if flags.Changed("source-tz") {
		cfg.SourceZone = opts.sourceTZ
	}
	if flags.Changed("dest-tz") {
		cfg.DestZone = opts.destTZ
	}
	if flags.Changed("output") {
		cfg.OutputPath = opts.output
	}
	if flags.Changed("url") {
		cfg.URL = opts.url
	}
	if flags.Changed("timeout") {
		cfg.Timeout = opts.timeout
	}
	if opts.logLevel != "" {
		level, err := logger.ParseLevel(opts.logLevel)
		if err != nil {
			return nil, "", err
		}
		cfg.LogLevel = level
	}
	if opts.verbose {
		cfg.LogLevel = logger.LevelDebug
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid config: %w", err)
	}

	logger.SetDefault(logger.New(cfg.LogLevel, cmd.ErrOrStderr()))

	return cfg, format, nil
}

// runFetch downloads the schedule page and writes the schedule
func runFetch(cmd *cobra.Command, opts *options) error {
	cfg, format, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}

	sc := scraper.New(cfg.URL, cfg.Timeout)
	logger.Info("Fetching schedule", logger.Fields{"url": sc.URL(), "timeout": cfg.Timeout.String()})

	start := time.Now()
	lines, err := sc.FetchLines(cmd.Context())
	logger.RecordTiming("scraper.fetch", time.Since(start))
	if err != nil {
		logger.Error("Fetch failed", logger.Fields{"url": sc.URL()}, err)
		return fmt.Errorf("fetching schedule: %w", err)
	}

	return extractAndWrite(cmd, cfg, format, opts.verbose, sc.URL(), lines)
}

// runParse builds the schedule from a local file
func runParse(cmd *cobra.Command, opts *options, path string) error {
	cfg, format, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	var lines []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		lines, err = scraper.ParseLines(f)
	default:
		lines, err = scraper.SplitLines(f)
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	return extractAndWrite(cmd, cfg, format, opts.verbose, path, lines)
}

// extractAndWrite runs the extractor over lines and saves the schedule
func extractAndWrite(cmd *cobra.Command, cfg *config.Config, format OutputFormat, verbose bool, source string, lines []string) error {
	extractorOpts, err := cfg.ExtractorOptions()
	if err != nil {
		return err
	}

	start := time.Now()
	sched, report := schedule.NewExtractor(extractorOpts).Extract(lines)
	logger.RecordTiming("schedule.extract", time.Since(start))
	recordReport(report)

	if cfg.OutputPath == stdoutPath {
		data, err := storage.Encode(sched)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	changes := compareWithPrevious(cfg, sched)

	start = time.Now()
	if err := storage.Save(cfg.OutputPath, sched); err != nil {
		logger.Error("Write failed", logger.Fields{"path": cfg.OutputPath}, err)
		return fmt.Errorf("writing schedule: %w", err)
	}
	logger.RecordTiming("storage.save", time.Since(start))
	logger.Info("Schedule written", logger.Fields{
		"path":    cfg.OutputPath,
		"weeks":   report.Weeks,
		"games":   report.Games,
		"changes": len(changes),
	})

	result := NewRunResult(source, cfg.OutputPath, sched, report)
	result.Changes = changes
	if verbose {
		result.Metrics = logger.GetMetricsSnapshot()
	}
	if err := WriteOutput(cmd.OutOrStdout(), result, format, verbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// recordReport feeds the extraction report into metrics and logs the lines
// that were dropped. Losing these lines degrades the schedule without
// failing the run.
func recordReport(report schedule.Report) {
	logger.AddCounter("schedule.lines", int64(report.Lines))
	for kind, n := range report.Kinds {
		logger.AddCounter("schedule.lines."+kind.String(), int64(n))
	}
	logger.SetGauge("schedule.weeks", float64(report.Weeks))
	logger.SetGauge("schedule.games", float64(report.Games))

	logger.Debug("Extraction finished", logger.Fields{
		"lines": report.Lines,
		"weeks": report.Weeks,
		"games": report.Games,
	})

	if report.Games == 0 {
		logger.Warn("No games extracted", logger.Fields{"lines": report.Lines})
	}
	if report.DroppedTimes > 0 {
		logger.Warn("Dropped kickoff times with no active week, date, or matchup", logger.Fields{"count": report.DroppedTimes})
	}
	if report.DiscardedMatchups > 0 {
		logger.Warn("Discarded matchups that never received a kickoff time", logger.Fields{"count": report.DiscardedMatchups})
	}
	if report.BadDates > 0 {
		logger.Warn("Ignored unparseable date lines", logger.Fields{"count": report.BadDates})
	}
	if report.UnknownKickoffs > 0 {
		logger.Warn("Games written with unknown kickoff", logger.Fields{"count": report.UnknownKickoffs})
	}
}

// compareWithPrevious diffs a fresh schedule against the file it is about to
// replace. Nothing is reported when there is no usable previous schedule.
func compareWithPrevious(cfg *config.Config, sched *schedule.Schedule) []schedule.GameChange {
	previous, err := storage.Load(cfg.OutputPath, cfg.Season)
	if err != nil {
		logger.Warn("Previous schedule unreadable, skipping change detection", logger.Fields{"path": cfg.OutputPath, "error": err.Error()})
		return nil
	}
	if previous.GameCount() == 0 {
		return nil
	}

	changes := schedule.Diff(previous, sched)
	logger.SetGauge("schedule.changes", float64(len(changes)))
	for _, c := range changes {
		logger.Debug("Game changed", logger.Fields{
			"game_id": c.GameID,
			"week":    c.Week,
			"change":  string(c.ChangeType),
			"old":     c.OldValue,
			"new":     c.NewValue,
		})
	}
	return changes
}

// loadSchedule reads the configured schedule file for the read-only commands
func loadSchedule(cfg *config.Config) *schedule.Schedule {
	sched, err := storage.Load(cfg.OutputPath, cfg.Season)
	if err != nil {
		logger.Warn("Schedule unavailable", logger.Fields{"path": cfg.OutputPath, "error": err.Error()})
	}
	return sched
}

// runShow prints a week, or all weeks, of an existing schedule file
func runShow(cmd *cobra.Command, opts *options, fo *filterOptions, week int) error {
	cfg, format, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}

	f, err := buildFilter(fo)
	if err != nil {
		return err
	}

	sched := loadSchedule(cfg)

	var result interface{}
	if cmd.Flags().Changed("week") {
		result = NewWeekResult(sched, week, f)
	} else {
		result = NewWeekSummary(sched, f)
	}

	return WriteOutput(cmd.OutOrStdout(), result, format, opts.verbose)
}

// runCalendar writes the selected games of a schedule file as iCalendar
func runCalendar(cmd *cobra.Command, opts *options, fo *filterOptions, weeks, icsPath string) error {
	cfg, _, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}

	f, err := buildFilter(fo)
	if err != nil {
		return err
	}

	_, dst, err := cfg.Zones()
	if err != nil {
		return err
	}

	sched := loadSchedule(cfg)

	selected := sched.WeekNumbers()
	if weeks != "" {
		from, to, err := filter.ParseWeekRange(weeks)
		if err != nil {
			return err
		}
		selected = nil
		for w := from; w <= to; w++ {
			selected = append(selected, w)
		}
	}

	var games []schedule.Game
	for _, w := range selected {
		games = append(games, f.Apply(sched.GamesForWeek(w))...)
	}

	ics, skipped := calendar.GenerateICS(sched.Year, games, dst, time.Now())
	logger.Info("Calendar generated", logger.Fields{
		"games":   len(games) - skipped,
		"skipped": skipped,
		"filter":  f.String(),
	})
	if skipped > 0 {
		logger.Warn("Games left out of the calendar with unknown kickoff", logger.Fields{"count": skipped})
	}

	if icsPath == stdoutPath {
		_, err = io.WriteString(cmd.OutOrStdout(), ics)
		return err
	}
	if err := storage.WriteFile(icsPath, []byte(ics)); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved: %s (%d games)\n", icsPath, len(games)-skipped)
	return nil
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(ExitError)
	}
}
