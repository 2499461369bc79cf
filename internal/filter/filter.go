// Package filter narrows a list of schedule games for display and export.
//
// A filter can restrict games by:
//   - Teams (substring matching on either side of the matchup, case-insensitive)
//   - Kickoff weekday (Thursday, Sunday, Monday, ...)
//   - Neutral-site games only
//
// Example usage:
//
//	f := filter.NewFilter()
//	f.Teams = []string{"Chiefs"}
//	f.Days = []time.Weekday{time.Sunday}
//
//	games = f.Apply(games)
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/pickem-schedule/internal/schedule"
)

// Filter represents game filtering criteria
type Filter struct {
	// Team name filtering (case-insensitive substring match on away or home)
	Teams []string

	// Kickoff weekday filtering, read from kickoff_local
	Days []time.Weekday

	// Only games played at a neutral site
	NeutralOnly bool
}

// NewFilter creates a new empty filter with no active criteria.
// The filter will match all games until criteria are added.
func NewFilter() *Filter {
	return &Filter{
		Teams: []string{},
		Days:  []time.Weekday{},
	}
}

// IsEmpty checks if the filter has any active criteria.
func (f *Filter) IsEmpty() bool {
	return f == nil || (len(f.Teams) == 0 && len(f.Days) == 0 && !f.NeutralOnly)
}

// Matches checks if a game matches all active filter criteria.
// An empty filter matches all games.
//
// Matching logic:
//   - Teams: away or home must contain at least one team name (case-insensitive)
//   - Days: the kickoff must fall on one of the weekdays; games with an
//     unknown kickoff never match a day filter
//   - NeutralOnly: the game must be flagged neutral
func (f *Filter) Matches(g schedule.Game) bool {
	if f.IsEmpty() {
		return true
	}

	if f.NeutralOnly && !g.Neutral {
		return false
	}

	if len(f.Teams) > 0 {
		matched := false
		away := strings.ToLower(g.Away)
		home := strings.ToLower(g.Home)
		for _, team := range f.Teams {
			team = strings.ToLower(strings.TrimSpace(team))
			if team == "" {
				continue
			}
			if strings.Contains(away, team) || strings.Contains(home, team) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if len(f.Days) > 0 {
		kickoff, err := time.Parse(schedule.KickoffLayout, g.KickoffLocal)
		if err != nil {
			return false
		}
		matched := false
		for _, day := range f.Days {
			if kickoff.Weekday() == day {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

// Apply returns only the games that match. If the filter is empty the
// original slice is returned unchanged.
func (f *Filter) Apply(games []schedule.Game) []schedule.Game {
	if f.IsEmpty() {
		return games
	}

	filtered := []schedule.Game{}
	for _, g := range games {
		if f.Matches(g) {
			filtered = append(filtered, g)
		}
	}

	return filtered
}

// String returns a human-readable description of the active filter criteria.
// Format: "Teams: Chiefs, Bills | Days: Sun, Mon | Neutral site only"
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string

	if len(f.Teams) > 0 {
		parts = append(parts, fmt.Sprintf("Teams: %s", strings.Join(f.Teams, ", ")))
	}

	if len(f.Days) > 0 {
		days := make([]string, 0, len(f.Days))
		for _, d := range f.Days {
			days = append(days, d.String()[:3])
		}
		parts = append(parts, fmt.Sprintf("Days: %s", strings.Join(days, ", ")))
	}

	if f.NeutralOnly {
		parts = append(parts, "Neutral site only")
	}

	return strings.Join(parts, " | ")
}
