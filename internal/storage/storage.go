package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/pickem-schedule/internal/schedule"
)

// ExpandPath expands a leading ~/ to the user's home directory
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// Encode renders a schedule as indented JSON with a trailing newline. Text
// such as "Texas A&M" is kept literal rather than HTML-escaped.
func Encode(s *schedule.Schedule) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encoding schedule: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the schedule to path, creating parent directories as needed.
// On failure the previous file, if any, is left untouched.
func Save(path string, s *schedule.Schedule) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}
	return WriteFile(path, data)
}

// WriteFile replaces path with data through a temp file in the same
// directory, so readers see either the old contents or the new, never a
// partial write.
func WriteFile(path string, data []byte) error {
	path, err := ExpandPath(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}

	committed = true
	return nil
}

// Load reads a schedule file. A missing file yields an empty schedule and no
// error. A malformed file yields an empty schedule together with the parse
// error, so callers can log it and carry on.
func Load(path string, season int) (*schedule.Schedule, error) {
	empty := schedule.New(season)

	path, err := ExpandPath(path)
	if err != nil {
		return empty, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return empty, nil
		}
		return empty, fmt.Errorf("reading schedule: %w", err)
	}

	var raw struct {
		Year  *int            `json:"year"`
		Weeks json.RawMessage `json:"weeks"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return empty, fmt.Errorf("parsing schedule: %w", err)
	}

	s := schedule.New(season)
	if raw.Year != nil {
		s.Year = *raw.Year
	}
	if len(raw.Weeks) == 0 || string(raw.Weeks) == "null" {
		return s, nil
	}

	var weeks map[string][]schedule.Game
	if err := json.Unmarshal(raw.Weeks, &weeks); err != nil {
		return s, fmt.Errorf("parsing schedule weeks: %w", err)
	}
	for k, v := range weeks {
		s.Weeks[k] = v
	}

	return s, nil
}
