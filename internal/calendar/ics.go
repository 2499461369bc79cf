// Package calendar exports schedule games as an iCalendar (.ics) feed.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/pickem-schedule/internal/schedule"
)

// GameLength is the block each game occupies on the calendar
const GameLength = 3*time.Hour + 30*time.Minute

// GenerateICS builds an iCalendar document with one VEVENT per game. Kickoff
// values are read as wall clock time in loc. Games without a usable kickoff
// are left out and counted in the second return value. stamp is written as
// DTSTAMP so the output is reproducible for a fixed stamp.
func GenerateICS(year int, games []schedule.Game, loc *time.Location, stamp time.Time) (string, int) {
	var ics strings.Builder
	skipped := 0

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//Pickem//pickem-schedule//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	ics.WriteString(fmt.Sprintf("X-WR-CALNAME:%s\r\n", escapeICS(fmt.Sprintf("NFL %d Schedule", year))))

	for _, g := range games {
		if g.KickoffLocal == "" {
			skipped++
			continue
		}
		start, err := time.ParseInLocation(schedule.KickoffLayout, g.KickoffLocal, loc)
		if err != nil {
			skipped++
			continue
		}
		writeEvent(&ics, year, g, start, stamp)
	}

	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String(), skipped
}

func writeEvent(ics *strings.Builder, year int, g schedule.Game, start, stamp time.Time) {
	sep := "at"
	if g.Neutral {
		sep = "vs"
	}

	ics.WriteString("BEGIN:VEVENT\r\n")

	// UID stays stable across regenerations so calendar apps update in place
	ics.WriteString(fmt.Sprintf("UID:%d-%s@pickem-schedule\r\n", year, g.ID))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(stamp)))
	ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(start)))
	ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(start.Add(GameLength))))
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(fmt.Sprintf("%s %s %s", g.Away, sep, g.Home))))
	ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(fmt.Sprintf("Pick'em game %s", g.ID))))
	if g.Note != "" {
		ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(g.Note)))
	}
	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("TRANSP:TRANSPARENT\r\n")

	ics.WriteString("END:VEVENT\r\n")
}

// formatICSTime formats a time.Time as an iCalendar UTC datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// Replace special characters according to RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
