package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind identifies what a schedule line announces
type Kind int

const (
	KindUnrecognized Kind = iota
	KindWeek
	KindDate
	KindMatchup
	KindZonedTime
	KindBareTime
)

func (k Kind) String() string {
	switch k {
	case KindWeek:
		return "week"
	case KindDate:
		return "date"
	case KindMatchup:
		return "matchup"
	case KindZonedTime:
		return "zoned_time"
	case KindBareTime:
		return "bare_time"
	default:
		return "unrecognized"
	}
}

// Matchup holds the teams captured from a matchup line
type Matchup struct {
	Away    string
	Home    string
	Note    string
	Neutral bool
}

// Line is a classified input line with its captures. Only the fields for
// its Kind are set.
type Line struct {
	Kind    Kind
	Text    string
	Week    int
	Matchup Matchup
}

var (
	weekPattern = regexp.MustCompile(`(?i)^WEEK\s+(\d+)$`)

	// "Dallas Cowboys at Philadelphia Eagles"
	// "Kansas City Chiefs vs Los Angeles Chargers (Sao Paulo)"
	matchupPattern = regexp.MustCompile(`(?i)^(.+?)\s+(at|vs\.?)\s+(.+?)(?:\s+\(([^)]+)\))?$`)

	// "8:20p (ET)" is the local time at the venue; the bare line after it is
	// the source-zone kickoff.
	zonedTimePattern = regexp.MustCompile(`^\d{1,2}:\d{2}[ap]\s+\([A-Z]{2,4}\)$`)
	bareTimePattern  = regexp.MustCompile(`^\d{1,2}:\d{2}[ap]$`)
)

type matcher func(line string) (Line, bool)

// Classifier categorizes normalized schedule lines. Date headers are only
// recognized for the configured season year.
type Classifier struct {
	datePattern *regexp.Regexp
	matchers    []matcher
}

// NewClassifier creates a Classifier for the given season year
func NewClassifier(season int) *Classifier {
	c := &Classifier{
		datePattern: regexp.MustCompile(fmt.Sprintf(
			`(?i)^(Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday),?\s+[A-Za-z]+\.?\s+\d{1,2},\s+%d$`, season)),
	}
	// Order matters: the first matcher that accepts a line wins.
	c.matchers = []matcher{
		matchWeek,
		c.matchDate,
		matchMatchup,
		matchZonedTime,
		matchBareTime,
	}
	return c
}

// Classify returns the classification of a single normalized line
func (c *Classifier) Classify(line string) Line {
	for _, m := range c.matchers {
		if l, ok := m(line); ok {
			return l
		}
	}
	return Line{Kind: KindUnrecognized, Text: line}
}

func matchWeek(line string) (Line, bool) {
	m := weekPattern.FindStringSubmatch(line)
	if m == nil {
		return Line{}, false
	}
	week, err := strconv.Atoi(m[1])
	if err != nil {
		return Line{}, false
	}
	return Line{Kind: KindWeek, Text: line, Week: week}, true
}

func (c *Classifier) matchDate(line string) (Line, bool) {
	if !c.datePattern.MatchString(line) {
		return Line{}, false
	}
	return Line{Kind: KindDate, Text: line}, true
}

func matchMatchup(line string) (Line, bool) {
	m := matchupPattern.FindStringSubmatch(line)
	if m == nil {
		return Line{}, false
	}
	return Line{
		Kind: KindMatchup,
		Text: line,
		Matchup: Matchup{
			Away:    strings.TrimSpace(m[1]),
			Home:    strings.TrimSpace(m[3]),
			Note:    strings.TrimSpace(m[4]),
			Neutral: strings.HasPrefix(strings.ToLower(m[2]), "vs"),
		},
	}, true
}

func matchZonedTime(line string) (Line, bool) {
	if !zonedTimePattern.MatchString(line) {
		return Line{}, false
	}
	return Line{Kind: KindZonedTime, Text: line}, true
}

func matchBareTime(line string) (Line, bool) {
	if !bareTimePattern.MatchString(line) {
		return Line{}, false
	}
	return Line{Kind: KindBareTime, Text: line}, true
}
