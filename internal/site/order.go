package site

import (
	"fmt"
	"sort"

	"github.com/toddself/site-gen/internal/entry"
)

// Order sorts entries newest first, in place. The sort is stable: entries
// with equal timestamps keep their load order.
func Order(entries []entry.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
}

// PageRef is one navigation link in the pagination strip.
type PageRef struct {
	Name string
	URL  string
}

// Page is one contiguous chunk of sorted entries plus the navigation
// metadata shared by every page in the run.
type Page struct {
	Number  int
	Entries []entry.Entry
	Refs    []PageRef
}

// PageFileName returns the output filename for page n: the first page is
// index.html, later pages index1.html, index2.html, and so on.
func PageFileName(n int) string {
	if n == 0 {
		return "index.html"
	}
	return fmt.Sprintf("index%d.html", n)
}

// Paginate splits sorted entries into pages of at most pageSize entries
// each; the last page may be shorter. Every page carries the full
// navigation list with one ref per page, page 0 being "home". A pageSize
// below 1 is treated as 1.
func Paginate(entries []entry.Entry, pageSize int) []Page {
	if len(entries) == 0 {
		return nil
	}
	if pageSize < 1 {
		pageSize = 1
	}
	numPages := (len(entries) + pageSize - 1) / pageSize

	refs := make([]PageRef, numPages)
	for i := range refs {
		name := "home"
		if i > 0 {
			name = fmt.Sprintf("page %d", i)
		}
		refs[i] = PageRef{Name: name, URL: PageFileName(i)}
	}

	pages := make([]Page, 0, numPages)
	for i := 0; i < numPages; i++ {
		lo := i * pageSize
		hi := min(lo+pageSize, len(entries))
		pages = append(pages, Page{Number: i, Entries: entries[lo:hi], Refs: refs})
	}
	return pages
}
