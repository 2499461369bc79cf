package schedule

import (
	"reflect"
	"testing"
)

func TestDiff(t *testing.T) {
	previous := &Schedule{Year: 2025, Weeks: Weeks{
		"1": {
			{ID: "W1G1", Away: "Dallas Cowboys", Home: "Philadelphia Eagles", KickoffLocal: "2025-09-04T19:20:00"},
			{ID: "W1G2", Away: "Kansas City Chiefs", Home: "Los Angeles Chargers", KickoffLocal: "2025-09-05T19:00:00", Note: "Sao Paulo", Neutral: true},
			{ID: "W1G3", Away: "Tampa Bay Buccaneers", Home: "Atlanta Falcons", KickoffLocal: "2025-09-07T12:00:00"},
		},
		"2": {
			{ID: "W2G1", Away: "Washington Commanders", Home: "Green Bay Packers", KickoffLocal: "2025-09-11T19:15:00"},
		},
	}}

	current := &Schedule{Year: 2025, Weeks: Weeks{
		"1": {
			{ID: "W1G1", Away: "Dallas Cowboys", Home: "Philadelphia Eagles", KickoffLocal: "2025-09-04T19:20:00"},
			{ID: "W1G2", Away: "Kansas City Chiefs", Home: "Los Angeles Chargers", KickoffLocal: "2025-09-05T19:00:00", Note: "São Paulo", Neutral: true},
		},
		"2": {
			{ID: "W2G1", Away: "Washington Commanders", Home: "Green Bay Packers", KickoffLocal: "2025-09-11T19:20:00"},
			{ID: "W2G2", Away: "Chicago Bears", Home: "Detroit Lions", KickoffLocal: ""},
		},
		"10": {
			{ID: "W10G1", Away: "Las Vegas Raiders", Home: "Denver Broncos", KickoffLocal: "2025-11-06T19:15:00"},
		},
	}}

	got := Diff(previous, current)

	want := []GameChange{
		{GameID: "W1G2", Week: "1", ChangeType: ChangeNote, OldValue: "Sao Paulo", NewValue: "São Paulo"},
		{GameID: "W1G3", Week: "1", ChangeType: ChangeRemoved, OldValue: "Tampa Bay Buccaneers at Atlanta Falcons"},
		{GameID: "W2G1", Week: "2", ChangeType: ChangeKickoff, OldValue: "2025-09-11T19:15:00", NewValue: "2025-09-11T19:20:00"},
		{GameID: "W2G2", Week: "2", ChangeType: ChangeAdded, NewValue: "Chicago Bears at Detroit Lions"},
		{GameID: "W10G1", Week: "10", ChangeType: ChangeAdded, NewValue: "Las Vegas Raiders at Denver Broncos"},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Diff() =\n%+v\nwant\n%+v", got, want)
	}
}

func TestDiffIdentical(t *testing.T) {
	s := &Schedule{Year: 2025, Weeks: Weeks{
		"1": {{ID: "W1G1", Away: "A", Home: "B", KickoffLocal: "2025-09-04T19:20:00"}},
	}}
	if got := Diff(s, s); len(got) != 0 {
		t.Errorf("Diff() of identical schedules = %+v, want none", got)
	}
}

func TestDiffNilPrevious(t *testing.T) {
	current := &Schedule{Year: 2025, Weeks: Weeks{
		"1": {{ID: "W1G1", Away: "A", Home: "B"}, {ID: "W1G2", Away: "C", Home: "D", Neutral: true}},
	}}

	got := Diff(nil, current)
	if len(got) != 2 || got[0].ChangeType != ChangeAdded || got[1].NewValue != "C vs D" {
		t.Errorf("Diff(nil, current) = %+v", got)
	}
}

func TestDetectChangesMatchup(t *testing.T) {
	prev := Game{ID: "W5G3", Away: "New York Giants", Home: "New Orleans Saints"}
	cur := Game{ID: "W5G3", Away: "Denver Broncos", Home: "Philadelphia Eagles"}

	got := DetectChanges("5", prev, cur)
	if len(got) != 1 || got[0].ChangeType != ChangeMatchup {
		t.Fatalf("DetectChanges() = %+v, want one matchup change", got)
	}
	if got[0].OldValue != "New York Giants at New Orleans Saints" || got[0].NewValue != "Denver Broncos at Philadelphia Eagles" {
		t.Errorf("DetectChanges() = %+v", got[0])
	}
}

func TestGameSeq(t *testing.T) {
	tests := map[string]int{
		"W1G1":   1,
		"W10G12": 12,
		"bogus":  0,
		"W1Gx":   0,
	}
	for id, want := range tests {
		if got := gameSeq(id); got != want {
			t.Errorf("gameSeq(%q) = %d, want %d", id, got, want)
		}
	}
}
