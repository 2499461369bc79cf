package schedule

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// DefaultWeeks is the regular season length used when a schedule file has no
// usable week keys.
const DefaultWeeks = 18

// GamesForWeek returns the games for a week. Hand-edited files may key weeks
// as "Week 3" in any letter case, so both forms are accepted.
func (s *Schedule) GamesForWeek(week int) []Game {
	if s == nil || s.Weeks == nil {
		return nil
	}

	wk := strconv.Itoa(week)
	if games, ok := s.Weeks[wk]; ok {
		return games
	}

	want := "week " + wk
	for _, key := range s.Weeks.Keys() {
		if strings.EqualFold(strings.Join(strings.Fields(key), " "), want) {
			return s.Weeks[key]
		}
	}
	return nil
}

// WeekNumbers returns the numeric week keys in ascending order, or weeks
// 1..DefaultWeeks when the schedule has none.
func (s *Schedule) WeekNumbers() []int {
	seen := make(map[int]bool)
	if s != nil {
		for key := range s.Weeks {
			if n, ok := weekNumber(key); ok {
				seen[n] = true
			}
		}
	}

	weeks := make([]int, 0, len(seen))
	for n := range seen {
		weeks = append(weeks, n)
	}
	sort.Ints(weeks)

	if len(weeks) == 0 {
		for i := 1; i <= DefaultWeeks; i++ {
			weeks = append(weeks, i)
		}
	}
	return weeks
}

func weekNumber(key string) (int, bool) {
	fields := strings.Fields(key)
	if len(fields) == 2 && strings.EqualFold(fields[0], "week") {
		fields = fields[1:]
	}
	if len(fields) != 1 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, false
	}
	return n, true
}

// FormatKickoff renders a kickoff_local value for display, e.g.
// "Sun, Sep 07 • 12:00 PM". Values that are not in KickoffLayout are
// returned unchanged.
func FormatKickoff(kickoff string) string {
	if kickoff == "" {
		return ""
	}
	t, err := time.Parse(KickoffLayout, kickoff)
	if err != nil {
		return kickoff
	}
	return t.Format("Mon, Jan 02 • 03:04 PM")
}
