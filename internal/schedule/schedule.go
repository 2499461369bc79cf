package schedule

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Game is a single finalized matchup with its kickoff time
type Game struct {
	ID           string `json:"id"`
	Away         string `json:"away"`
	Home         string `json:"home"`
	KickoffLocal string `json:"kickoff_local"` // destination zone wall clock, empty if unknown
	Note         string `json:"note"`
	Neutral      bool   `json:"neutral"`
}

// Weeks maps a week key (normally the bare week number) to its games in
// emission order.
type Weeks map[string][]Game

// Schedule is the document written for the pick'em application
type Schedule struct {
	Year  int   `json:"year"`
	Weeks Weeks `json:"weeks"`
}

// New returns an empty schedule for the given season
func New(year int) *Schedule {
	return &Schedule{
		Year:  year,
		Weeks: make(Weeks),
	}
}

// GameID builds the per-week game identifier, e.g. W1G3
func GameID(week, seq int) string {
	return fmt.Sprintf("W%dG%d", week, seq)
}

// Keys returns the week keys with numeric keys first in ascending order,
// followed by any other keys sorted lexicographically.
func (w Weeks) Keys() []string {
	keys := make([]string, 0, len(w))
	for k := range w {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ni, errI := strconv.Atoi(keys[i])
		nj, errJ := strconv.Atoi(keys[j])
		switch {
		case errI == nil && errJ == nil:
			return ni < nj
		case errI == nil:
			return true
		case errJ == nil:
			return false
		}
		return keys[i] < keys[j]
	})
	return keys
}

// MarshalJSON writes weeks in numeric order so the file diffs cleanly
// between runs. encoding/json would otherwise order "10" before "2".
func (w Weeks) MarshalJSON() ([]byte, error) {
	if w == nil {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range w.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := marshalRaw(key)
		if err != nil {
			return nil, fmt.Errorf("encoding week key %q: %w", key, err)
		}
		games := w[key]
		if games == nil {
			games = []Game{}
		}
		v, err := marshalRaw(games)
		if err != nil {
			return nil, fmt.Errorf("encoding week %q: %w", key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalRaw encodes v without escaping &, < and >, so notes like "A&M"
// are written as-is.
func marshalRaw(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// GameCount returns the total number of games across all weeks
func (s *Schedule) GameCount() int {
	total := 0
	for _, games := range s.Weeks {
		total += len(games)
	}
	return total
}
