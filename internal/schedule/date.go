package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is a calendar day with no time zone attached
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

var months = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// ParseDateHeader parses a date header such as "Thursday, Sept. 4, 2025" or
// "Sunday, Sept. 07, 2025". The second return value is false when the text
// names an unknown month or an impossible day.
func ParseDateHeader(text string) (Date, bool) {
	s := strings.NewReplacer(",", "", ".", "").Replace(text)
	parts := strings.Fields(s)
	if len(parts) < 4 {
		return Date{}, false
	}

	month, ok := months[strings.ToLower(parts[1])]
	if !ok {
		return Date{}, false
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return Date{}, false
	}
	year, err := strconv.Atoi(parts[3])
	if err != nil {
		return Date{}, false
	}

	// time.Date normalizes overflow (Feb 30 -> Mar 2), so round-trip to
	// reject days the month does not have.
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Date{}, false
	}

	return Date{Year: year, Month: month, Day: day}, true
}
