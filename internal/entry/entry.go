// Package entry loads source documents from a directory and turns them into
// fully rendered entries ready for ordering, pagination, and output.
package entry

import "time"

// Entry is one source document after parsing and rendering. The loader
// creates entries and never mutates them afterwards; later stages read
// fields or copy them into view structures.
type Entry struct {
	Title         string
	CreatedAt     time.Time
	RenderedAt    time.Time
	Tags          []string
	URL           string
	HTML          string
	PlainText     string
	TruncatedText string
	Description   string
	HeroImage     string
	ShareImage    string
	Author        string
	SourceFile    string
}
