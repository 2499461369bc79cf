package schedule

import (
	"sort"
	"strconv"
	"strings"
)

// ChangeType describes how a game differs between two schedules
type ChangeType string

const (
	ChangeAdded   ChangeType = "added"
	ChangeRemoved ChangeType = "removed"
	ChangeKickoff ChangeType = "kickoff"
	ChangeMatchup ChangeType = "matchup"
	ChangeNote    ChangeType = "note"
)

// GameChange is one detected difference, keyed by game ID
type GameChange struct {
	GameID     string     `json:"game_id"`
	Week       string     `json:"week"`
	ChangeType ChangeType `json:"change_type"`
	OldValue   string     `json:"old_value"`
	NewValue   string     `json:"new_value"`
}

// Diff compares a previously written schedule with a freshly extracted one.
// Games are matched by week and ID. Changes are ordered by week, then game
// ID, then change type.
func Diff(previous, current *Schedule) []GameChange {
	if previous == nil {
		previous = New(0)
	}
	if current == nil {
		current = New(0)
	}

	changes := make([]GameChange, 0)

	for week, games := range current.Weeks {
		old := indexGames(previous.Weeks[week])
		for _, g := range games {
			prev, ok := old[g.ID]
			if !ok {
				changes = append(changes, GameChange{
					GameID:     g.ID,
					Week:       week,
					ChangeType: ChangeAdded,
					NewValue:   matchupLabel(g),
				})
				continue
			}
			changes = append(changes, DetectChanges(week, prev, g)...)
		}
	}

	for week, games := range previous.Weeks {
		cur := indexGames(current.Weeks[week])
		for _, g := range games {
			if _, ok := cur[g.ID]; !ok {
				changes = append(changes, GameChange{
					GameID:     g.ID,
					Week:       week,
					ChangeType: ChangeRemoved,
					OldValue:   matchupLabel(g),
				})
			}
		}
	}

	sort.SliceStable(changes, func(i, j int) bool {
		a, b := changes[i], changes[j]
		if a.Week != b.Week {
			ra, rb := weekRank(a.Week), weekRank(b.Week)
			if ra != rb {
				return ra < rb
			}
			return a.Week < b.Week
		}
		if a.GameID != b.GameID {
			return gameSeq(a.GameID) < gameSeq(b.GameID)
		}
		return a.ChangeType < b.ChangeType
	})

	return changes
}

// DetectChanges compares two versions of the same game
func DetectChanges(week string, previous, current Game) []GameChange {
	var changes []GameChange

	if previous.KickoffLocal != current.KickoffLocal {
		changes = append(changes, GameChange{
			GameID:     current.ID,
			Week:       week,
			ChangeType: ChangeKickoff,
			OldValue:   previous.KickoffLocal,
			NewValue:   current.KickoffLocal,
		})
	}

	if previous.Away != current.Away || previous.Home != current.Home || previous.Neutral != current.Neutral {
		changes = append(changes, GameChange{
			GameID:     current.ID,
			Week:       week,
			ChangeType: ChangeMatchup,
			OldValue:   matchupLabel(previous),
			NewValue:   matchupLabel(current),
		})
	}

	if previous.Note != current.Note {
		changes = append(changes, GameChange{
			GameID:     current.ID,
			Week:       week,
			ChangeType: ChangeNote,
			OldValue:   previous.Note,
			NewValue:   current.Note,
		})
	}

	return changes
}

func indexGames(games []Game) map[string]Game {
	idx := make(map[string]Game, len(games))
	for _, g := range games {
		idx[g.ID] = g
	}
	return idx
}

func matchupLabel(g Game) string {
	if g.Neutral {
		return g.Away + " vs " + g.Home
	}
	return g.Away + " at " + g.Home
}

// weekRank orders numeric week keys numerically and everything else after
func weekRank(key string) int {
	if n, ok := weekNumber(key); ok {
		return n
	}
	return int(^uint(0) >> 1)
}

// gameSeq extracts the sequence number from an ID like W3G12
func gameSeq(id string) int {
	i := strings.LastIndexByte(id, 'G')
	if i < 0 {
		return 0
	}
	n, err := strconv.Atoi(id[i+1:])
	if err != nil {
		return 0
	}
	return n
}
