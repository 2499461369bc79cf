// Package storage persists the extracted schedule as a JSON file.
//
// Writes are atomic: the document is written to a temporary file in the
// target directory and renamed over the destination, so readers never see a
// partially written schedule. Loading is tolerant, matching how the pick'em
// application treats a missing or malformed file as "no schedule yet".
package storage
