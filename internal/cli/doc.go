// Package cli implements the command-line interface for pickem-schedule.
//
// The cli package provides the Cobra-based CLI: fetch downloads the published
// schedule page, parse reads a saved copy of it, show prints one week of an
// existing schedule file the way the pick'em application reads it, and
// calendar exports games as an .ics feed. Rebuilding a schedule over an
// existing file reports the games that changed since the last run.
package cli
