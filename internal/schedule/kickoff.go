package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	// Embed the zone database so conversions work on hosts without
	// /usr/share/zoneinfo (scratch containers, CI runners).
	_ "time/tzdata"
)

// KickoffLayout is the wall-clock format written to kickoff_local. The
// source page has minute precision, so seconds are always zero.
const KickoffLayout = "2006-01-02T15:04:00"

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})([ap])$`)

// LoadZones resolves the source and destination zone identifiers
func LoadZones(source, destination string) (*time.Location, *time.Location, error) {
	src, err := time.LoadLocation(source)
	if err != nil {
		return nil, nil, fmt.Errorf("loading source zone %q: %w", source, err)
	}
	dst, err := time.LoadLocation(destination)
	if err != nil {
		return nil, nil, fmt.Errorf("loading destination zone %q: %w", destination, err)
	}
	return src, dst, nil
}

// NormalizeKickoff converts a 12-hour clock time like "8:20p", read as wall
// clock time in src on the given date, to the wall clock in dst.
// Returns "" if the time cannot be parsed; callers treat that as an unknown
// kickoff rather than an error.
func NormalizeKickoff(date Date, timeText string, src, dst *time.Location) string {
	hour, minute, ok := parseClock(timeText)
	if !ok {
		return ""
	}

	kickoff := time.Date(date.Year, date.Month, date.Day, hour, minute, 0, 0, src)
	return kickoff.In(dst).Format(KickoffLayout)
}

// parseClock returns the 24-hour hour and minute for "H:MMa" / "H:MMp".
// A second, forgiving pass accepts "8:15 pm" and "8:15PM". The hour is taken
// mod 12 before the p offset, so "13:00p" reads as 1 PM and "0:30a" as
// half past midnight.
func parseClock(text string) (int, int, bool) {
	s := strings.ToLower(strings.TrimSpace(text))
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		s = strings.NewReplacer("pm", "p", "am", "a").Replace(s)
		s = strings.Join(strings.Fields(s), "")
		m = clockPattern.FindStringSubmatch(s)
		if m == nil {
			return 0, 0, false
		}
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	// time.Date would roll 8:75 over into the next hour
	if minute > 59 {
		return 0, 0, false
	}

	hour %= 12
	if m[3] == "p" {
		hour += 12
	}
	return hour, minute, true
}
