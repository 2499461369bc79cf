package schedule

import (
	"reflect"
	"testing"
)

func TestGamesForWeek(t *testing.T) {
	g1 := Game{ID: "W1G1", Away: "Dallas Cowboys", Home: "Philadelphia Eagles"}
	g2 := Game{ID: "W2G1", Away: "Chicago Bears", Home: "Detroit Lions"}
	g3 := Game{ID: "W3G1", Away: "Miami Dolphins", Home: "Buffalo Bills"}

	s := &Schedule{
		Year: 2025,
		Weeks: Weeks{
			"1":      {g1},
			"Week 2": {g2},
			"WEEK 3": {g3},
		},
	}

	tests := []struct {
		name string
		week int
		want []Game
	}{
		{"bare number", 1, []Game{g1}},
		{"title case key", 2, []Game{g2}},
		{"upper case key", 3, []Game{g3}},
		{"missing week", 4, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.GamesForWeek(tt.week)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GamesForWeek(%d) = %+v, want %+v", tt.week, got, tt.want)
			}
		})
	}
}

func TestGamesForWeekNilSchedule(t *testing.T) {
	var s *Schedule
	if got := s.GamesForWeek(1); got != nil {
		t.Errorf("GamesForWeek on nil schedule = %+v, want nil", got)
	}
}

func TestWeekNumbers(t *testing.T) {
	s := &Schedule{Weeks: Weeks{"10": nil, "2": nil, "Week 1": nil, "bye": nil}}
	if got := s.WeekNumbers(); !reflect.DeepEqual(got, []int{1, 2, 10}) {
		t.Errorf("WeekNumbers() = %v, want [1 2 10]", got)
	}

	empty := New(2025)
	got := empty.WeekNumbers()
	if len(got) != DefaultWeeks || got[0] != 1 || got[DefaultWeeks-1] != DefaultWeeks {
		t.Errorf("WeekNumbers() on empty schedule = %v, want 1..%d", got, DefaultWeeks)
	}
}

func TestFormatKickoff(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-09-07T12:00:00", "Sun, Sep 07 • 12:00 PM"},
		{"2025-09-04T19:20:00", "Thu, Sep 04 • 07:20 PM"},
		{"", ""},
		{"sometime sunday", "sometime sunday"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := FormatKickoff(tt.in); got != tt.want {
				t.Errorf("FormatKickoff(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
