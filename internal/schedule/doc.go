// Package schedule turns the flattened text of a published season schedule
// into a structured weekly game schedule.
//
// Each input line is classified (week header, date header, matchup, zoned
// time, bare time or unrecognized) and fed through a small state machine that
// pairs matchups with their kickoff times. Kickoffs are converted from the
// page's source time zone into the destination zone using the zone database.
// The package also holds the read-side helpers used by consumers of the
// written schedule file.
package schedule
