package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var weekRangeRe = regexp.MustCompile(`^(\d{1,2})\s*(?:-\s*(\d{1,2}))?$`)

// ParseWeekRange parses a week selection into an inclusive range.
//
// Supported formats:
//   - "5" - a single week
//   - "1-4" - weeks 1 through 4
//
// Returns (from, to, error).
func ParseWeekRange(input string) (int, int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, 0, fmt.Errorf("week range cannot be empty")
	}

	matches := weekRangeRe.FindStringSubmatch(input)
	if matches == nil {
		return 0, 0, fmt.Errorf("invalid week range format. Use '5' or '1-4'")
	}

	from, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid week: %s", matches[1])
	}

	to := from
	if matches[2] != "" {
		to, err = strconv.Atoi(matches[2])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid week: %s", matches[2])
		}
	}

	if from > to {
		return 0, 0, fmt.Errorf("start week must not be after end week")
	}

	return from, to, nil
}

// ParseDays parses a comma-separated list of weekday names ("sun,mon",
// "Thursday") into weekdays. Duplicates are dropped.
func ParseDays(input string) ([]time.Weekday, error) {
	var days []time.Weekday
	seen := make(map[time.Weekday]bool)

	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		day, ok := parseWeekday(part)
		if !ok {
			return nil, fmt.Errorf("invalid day: %s", part)
		}
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}

	if len(days) == 0 {
		return nil, fmt.Errorf("day list cannot be empty")
	}

	return days, nil
}

// parseWeekday converts a weekday name or abbreviation to time.Weekday
func parseWeekday(name string) (time.Weekday, bool) {
	weekdays := map[string]time.Weekday{
		"sun": time.Sunday, "sunday": time.Sunday,
		"mon": time.Monday, "monday": time.Monday,
		"tue": time.Tuesday, "tues": time.Tuesday, "tuesday": time.Tuesday,
		"wed": time.Wednesday, "wednesday": time.Wednesday,
		"thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday, "thursday": time.Thursday,
		"fri": time.Friday, "friday": time.Friday,
		"sat": time.Saturday, "saturday": time.Saturday,
	}

	day, ok := weekdays[strings.ToLower(name)]
	return day, ok
}
