package site

import (
	"sort"

	"github.com/toddself/site-gen/internal/entry"
)

// TagRef points from a tag back to one entry.
type TagRef struct {
	URL   string
	Title string
	Tag   string
}

// TagIndex maps tag names to entry references in entry-sort order. Tags are
// compared by exact string match; no case folding or deduplication happens
// here.
type TagIndex map[string][]TagRef

// BuildTagIndex folds every entry's tag list, in the given entry order,
// into a tag index. An entry listing the same tag twice contributes two
// references.
func BuildTagIndex(entries []entry.Entry) TagIndex {
	idx := make(TagIndex)
	for _, e := range entries {
		for _, tag := range e.Tags {
			idx[tag] = append(idx[tag], TagRef{URL: e.URL, Title: e.Title, Tag: tag})
		}
	}
	return idx
}

// Tags returns the tag names in ascending lexicographic order.
func (t TagIndex) Tags() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
