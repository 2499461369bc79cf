package schedule

import (
	"strconv"
	"time"
)

// Options configures an Extractor
type Options struct {
	Season      int
	Source      *time.Location
	Destination *time.Location
}

// Report counts what happened to the input during one extraction. Dropped
// and discarded lines degrade the schedule without failing the run, so they
// are surfaced here for logging.
type Report struct {
	Lines             int          `json:"lines"`
	Kinds             map[Kind]int `json:"-"`
	Weeks             int          `json:"weeks"`
	Games             int          `json:"games"`
	BadDates          int          `json:"bad_dates"`
	DiscardedMatchups int          `json:"discarded_matchups"`
	DroppedTimes      int          `json:"dropped_times"`
	UnknownKickoffs   int          `json:"unknown_kickoffs"`
}

// Extractor builds a Schedule from flattened schedule lines
type Extractor struct {
	opts       Options
	classifier *Classifier
}

// NewExtractor creates an Extractor. Nil zones default to UTC.
func NewExtractor(opts Options) *Extractor {
	if opts.Source == nil {
		opts.Source = time.UTC
	}
	if opts.Destination == nil {
		opts.Destination = time.UTC
	}
	return &Extractor{
		opts:       opts,
		classifier: NewClassifier(opts.Season),
	}
}

// run is the state of a single extraction. It is created per Extract call
// and never shared.
type run struct {
	weeks    Weeks
	counters map[int]int

	week    int
	hasWeek bool
	date    *Date
	pending *Matchup

	report Report
}

// Extract consumes lines in order and returns the schedule. Malformed lines
// never fail the run: they are dropped or leave state unchanged, and are
// counted in the Report.
func (e *Extractor) Extract(lines []string) (*Schedule, Report) {
	r := &run{
		weeks:    make(Weeks),
		counters: make(map[int]int),
		report:   Report{Kinds: make(map[Kind]int)},
	}

	for _, text := range lines {
		line := e.classifier.Classify(text)
		r.report.Lines++
		r.report.Kinds[line.Kind]++

		switch line.Kind {
		case KindWeek:
			r.startWeek(line.Week)
		case KindDate:
			if d, ok := ParseDateHeader(line.Text); ok {
				r.date = &d
			} else {
				r.report.BadDates++
			}
		case KindMatchup:
			if !r.hasWeek {
				continue
			}
			// Only the newest matchup waits for a time. One that never
			// received its bare time is lost here.
			if r.pending != nil {
				r.report.DiscardedMatchups++
			}
			m := line.Matchup
			r.pending = &m
		case KindZonedTime:
			// informational only
		case KindBareTime:
			e.finalize(r, line.Text)
		}
	}

	r.report.Weeks = len(r.weeks)
	for _, games := range r.weeks {
		r.report.Games += len(games)
	}

	return &Schedule{Year: e.opts.Season, Weeks: r.weeks}, r.report
}

func (r *run) startWeek(week int) {
	r.week = week
	r.hasWeek = true
	r.weeks[strconv.Itoa(week)] = []Game{}
	r.counters[week] = 0
	r.date = nil
	r.pending = nil
}

func (e *Extractor) finalize(r *run, timeText string) {
	if !r.hasWeek || r.date == nil || r.pending == nil {
		r.report.DroppedTimes++
		return
	}

	kickoff := NormalizeKickoff(*r.date, timeText, e.opts.Source, e.opts.Destination)
	if kickoff == "" {
		r.report.UnknownKickoffs++
	}

	r.counters[r.week]++
	key := strconv.Itoa(r.week)
	r.weeks[key] = append(r.weeks[key], Game{
		ID:           GameID(r.week, r.counters[r.week]),
		Away:         r.pending.Away,
		Home:         r.pending.Home,
		KickoffLocal: kickoff,
		Note:         r.pending.Note,
		Neutral:      r.pending.Neutral,
	})
	r.pending = nil
}
