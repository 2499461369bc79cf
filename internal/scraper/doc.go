// Package scraper fetches the published season schedule page and flattens it
// into ordered text lines.
//
// The schedule page has no useful structure beyond the order of its text, so
// the scraper walks every text node in document order, splits on newlines,
// collapses internal whitespace and drops blank lines. Classification of the
// lines is left to the schedule package.
package scraper
