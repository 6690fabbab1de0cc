package frontmatter

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var delimiter = []byte("---")

// Preamble is the typed metadata header of a source document.
type Preamble struct {
	Date        string  `yaml:"date"`
	Title       string  `yaml:"title"`
	Tags        TagList `yaml:"tags"`
	HeroImage   string  `yaml:"hero_image"`
	ShareImage  string  `yaml:"share_image"`
	Author      string  `yaml:"author"`
	Description string  `yaml:"description"`
}

// Split separates the preamble from the markdown body. The preamble sits
// between the first two `---` delimiter lines and the body is everything
// after the second. Delimiter lines are matched exactly, tolerating a
// trailing \r for CRLF input.
func Split(content []byte) (preamble, body []byte, err error) {
	preambleStart := -1
	offset := 0
	for offset < len(content) {
		lineEnd := len(content)
		next := len(content)
		if i := bytes.IndexByte(content[offset:], '\n'); i >= 0 {
			lineEnd = offset + i
			next = offset + i + 1
		}
		line := bytes.TrimSuffix(content[offset:lineEnd], []byte("\r"))
		if bytes.Equal(line, delimiter) {
			if preambleStart < 0 {
				preambleStart = next
			} else {
				return content[preambleStart:offset], content[next:], nil
			}
		}
		offset = next
	}
	return nil, nil, ErrMalformedPreamble
}

// Parse decodes raw preamble text (without delimiters) into a Preamble and
// validates the required fields.
func Parse(preamble []byte) (Preamble, error) {
	var p Preamble
	if err := yaml.Unmarshal(preamble, &p); err != nil {
		return Preamble{}, fmt.Errorf("%w: %w", ErrMalformedPreamble, err)
	}
	if strings.TrimSpace(p.Title) == "" {
		return Preamble{}, &MissingFieldError{Field: "title"}
	}
	if strings.TrimSpace(p.Date) == "" {
		return Preamble{}, &MissingFieldError{Field: "date"}
	}
	return p, nil
}

// CreatedAt parses the date field as an RFC3339 timestamp, preserving the
// document's own zone offset.
func (p Preamble) CreatedAt() (time.Time, error) {
	ts, err := time.Parse(time.RFC3339, strings.TrimSpace(p.Date))
	if err != nil {
		return time.Time{}, &DateParseError{Value: p.Date, Err: err}
	}
	return ts, nil
}
