package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/pfrederiksen/pickem-schedule/internal/filter"
	"github.com/pfrederiksen/pickem-schedule/internal/schedule"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ParseFormat validates a --format value
func ParseFormat(s string) (OutputFormat, error) {
	format := OutputFormat(s)
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", s)
	}
	return format, nil
}

// RunResult summarizes an extraction run
type RunResult struct {
	Source   string                 `json:"source"`
	Output   string                 `json:"output"`
	Year     int                    `json:"year"`
	Weeks    int                    `json:"weeks"`
	Games    int                    `json:"games"`
	PerWeek  map[string]int         `json:"per_week"`
	Report   schedule.Report        `json:"report"`
	LineKind map[string]int         `json:"line_kinds,omitempty"`
	Changes  []schedule.GameChange  `json:"changes,omitempty"`
	Metrics  map[string]interface{} `json:"metrics,omitempty"`
}

// NewRunResult builds the summary for a finished extraction
func NewRunResult(source, output string, sched *schedule.Schedule, report schedule.Report) *RunResult {
	perWeek := make(map[string]int, len(sched.Weeks))
	for k, games := range sched.Weeks {
		perWeek[k] = len(games)
	}

	kinds := make(map[string]int, len(report.Kinds))
	for k, n := range report.Kinds {
		kinds[k.String()] = n
	}

	return &RunResult{
		Source:   source,
		Output:   output,
		Year:     sched.Year,
		Weeks:    len(sched.Weeks),
		Games:    sched.GameCount(),
		PerWeek:  perWeek,
		Report:   report,
		LineKind: kinds,
	}
}

// WeekGame is a game with its kickoff formatted for display
type WeekGame struct {
	schedule.Game
	KickoffFmt string `json:"kickoff_fmt"`
}

// WeekResult is one week of a schedule file
type WeekResult struct {
	Year   int        `json:"year"`
	Week   int        `json:"week"`
	Filter string     `json:"filter,omitempty"`
	Games  []WeekGame `json:"games"`
}

// NewWeekResult looks up a week, applies f and formats the kickoffs
func NewWeekResult(sched *schedule.Schedule, week int, f *filter.Filter) *WeekResult {
	games := f.Apply(sched.GamesForWeek(week))
	result := &WeekResult{
		Year:  sched.Year,
		Week:  week,
		Games: make([]WeekGame, 0, len(games)),
	}
	if !f.IsEmpty() {
		result.Filter = f.String()
	}
	for _, g := range games {
		result.Games = append(result.Games, WeekGame{
			Game:       g,
			KickoffFmt: schedule.FormatKickoff(g.KickoffLocal),
		})
	}
	return result
}

// WeekSummary lists the weeks in a schedule file with their game counts
type WeekSummary struct {
	Year   int            `json:"year"`
	Filter string         `json:"filter,omitempty"`
	Weeks  []WeekOverview `json:"weeks"`
}

// WeekOverview is one line of a WeekSummary
type WeekOverview struct {
	Week  int `json:"week"`
	Games int `json:"games"`
}

// NewWeekSummary builds an overview of every week in the schedule, counting
// only games that pass f
func NewWeekSummary(sched *schedule.Schedule, f *filter.Filter) *WeekSummary {
	summary := &WeekSummary{Year: sched.Year}
	if !f.IsEmpty() {
		summary.Filter = f.String()
	}
	for _, w := range sched.WeekNumbers() {
		summary.Weeks = append(summary.Weeks, WeekOverview{
			Week:  w,
			Games: len(f.Apply(sched.GamesForWeek(w))),
		})
	}
	return summary
}

// WriteOutput writes a result in the specified format
func WriteOutput(w io.Writer, result interface{}, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result interface{}, verbose bool) error {
	switch r := result.(type) {
	case *RunResult:
		writeRunText(w, r, verbose)
	case *WeekResult:
		writeWeekText(w, r, verbose)
	case *WeekSummary:
		writeSummaryText(w, r)
	default:
		return fmt.Errorf("no text output for %T", result)
	}
	return nil
}

func writeRunText(w io.Writer, r *RunResult, verbose bool) {
	fmt.Fprintf(w, "Saved: %s\n", r.Output)
	fmt.Fprintf(w, "Weeks: %d | Games: %d\n", r.Weeks, r.Games)

	if r.Report.DroppedTimes > 0 || r.Report.DiscardedMatchups > 0 || r.Report.BadDates > 0 || r.Report.UnknownKickoffs > 0 {
		fmt.Fprintf(w, "Skipped: %d kickoff times without context, %d matchups without a time, %d bad date lines, %d unknown kickoffs\n",
			r.Report.DroppedTimes, r.Report.DiscardedMatchups, r.Report.BadDates, r.Report.UnknownKickoffs)
	}

	if len(r.Changes) > 0 {
		fmt.Fprintf(w, "\nChanges since last run (%d):\n", len(r.Changes))
		for _, c := range r.Changes {
			switch c.ChangeType {
			case schedule.ChangeAdded:
				fmt.Fprintf(w, "  + %s %s\n", c.GameID, c.NewValue)
			case schedule.ChangeRemoved:
				fmt.Fprintf(w, "  - %s %s\n", c.GameID, c.OldValue)
			default:
				fmt.Fprintf(w, "  ~ %s %s: %s -> %s\n", c.GameID, c.ChangeType, displayValue(c.OldValue), displayValue(c.NewValue))
			}
		}
	}

	if !verbose {
		return
	}

	fmt.Fprintf(w, "\nSource: %s\n", r.Source)
	fmt.Fprintf(w, "Lines: %d\n", r.Report.Lines)
	kinds := make([]string, 0, len(r.LineKind))
	for k := range r.LineKind {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(w, "  %-13s %d\n", k+":", r.LineKind[k])
	}

	keys := schedule.Weeks{}
	for k := range r.PerWeek {
		keys[k] = nil
	}
	for _, k := range keys.Keys() {
		fmt.Fprintf(w, "  Week %s: %d games\n", k, r.PerWeek[k])
	}
}

func displayValue(v string) string {
	if v == "" {
		return "(none)"
	}
	return v
}

func writeWeekText(w io.Writer, r *WeekResult, verbose bool) {
	if r.Filter != "" {
		fmt.Fprintf(w, "Filter: %s\n", r.Filter)
	}
	if len(r.Games) == 0 {
		fmt.Fprintf(w, "No games found for week %d.\n", r.Week)
		return
	}

	fmt.Fprintf(w, "Week %d (%d games):\n", r.Week, len(r.Games))
	for _, g := range r.Games {
		sep := "at"
		if g.Neutral {
			sep = "vs"
		}
		line := fmt.Sprintf("  %s %s %s", g.Away, sep, g.Home)
		if g.Note != "" {
			line += fmt.Sprintf(" (%s)", g.Note)
		}
		fmt.Fprintln(w, line)

		kickoff := g.KickoffFmt
		if kickoff == "" {
			kickoff = "TBD"
		}
		fmt.Fprintf(w, "       %s\n", kickoff)
		if verbose {
			fmt.Fprintf(w, "       ID: %s\n", g.ID)
		}
	}
}

func writeSummaryText(w io.Writer, r *WeekSummary) {
	if r.Filter != "" {
		fmt.Fprintf(w, "Filter: %s\n", r.Filter)
	}
	total := 0
	for _, wk := range r.Weeks {
		fmt.Fprintf(w, "Week %2d: %d games\n", wk.Week, wk.Games)
		total += wk.Games
	}
	fmt.Fprintf(w, "\nTotal: %d games in %d season\n", total, r.Year)
}
