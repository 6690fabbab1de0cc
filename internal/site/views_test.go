package site

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/toddself/site-gen/internal/config"
	"github.com/toddself/site-gen/internal/entry"
)

var viewSite = config.SiteConfig{
	Title:       "Example Blog",
	URL:         "https://blog.example.com",
	Description: "notes",
}

func TestNewEntryView_FormatsDates(t *testing.T) {
	created, err := time.Parse(time.RFC3339, "2021-05-07T00:00:00-07:00")
	require.NoError(t, err)
	buildTime := time.Date(2023, 4, 1, 10, 30, 0, 0, time.UTC)

	e := entry.Entry{
		Title:         "First",
		URL:           "first.html",
		HTML:          "<p>body</p>",
		CreatedAt:     created,
		TruncatedText: "short",
		Description:   "about it",
		HeroImage:     "hero.png",
		ShareImage:    "card.png",
		Tags:          []string{"go"},
		Author:        "todd",
	}

	view := newEntryView(e, viewSite, buildTime)

	require.Equal(t, "Friday, May  7, 2021", view.DisplayDate)
	require.Equal(t, "2021-05-07T00:00:00-07:00", view.Timestamp)
	require.Equal(t, "<p>body</p>", view.Contents)
	require.Equal(t, "Example Blog", view.SiteTitle)
	require.Equal(t, "https://blog.example.com", view.SiteURL)
	require.Equal(t, "2023", view.Year)
}

func TestNewIndexView_CarriesPaginationAndBuildDates(t *testing.T) {
	created := time.Date(2021, 5, 7, 0, 0, 0, 0, time.UTC)
	buildTime := time.Date(2023, 4, 1, 10, 30, 0, 0, time.UTC)

	page := Page{
		Number:  1,
		Entries: []entry.Entry{{Title: "One", URL: "one.html", CreatedAt: created}},
		Refs: []PageRef{
			{Name: "home", URL: "index.html"},
			{Name: "page 1", URL: "index1.html"},
		},
	}

	view := newIndexView(page, viewSite, buildTime)

	require.Equal(t, "Example Blog", view.Title)
	require.Equal(t, "notes", view.Description)
	require.Equal(t, 1, view.PageNumber)
	require.Equal(t, page.Refs, view.Pagination)
	require.Len(t, view.Entries, 1)
	require.Equal(t, "One", view.Entries[0].Title)
	require.Equal(t, "2023", view.Year)
	require.Equal(t, "Sat,  1 Apr, 2023 10:30:00 UTC", view.PubDate)
	require.Equal(t, "2023-04-01T10:30:00Z", view.Timestamp)
}

func TestNewTagListView_GroupsSortedByName(t *testing.T) {
	buildTime := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)
	idx := TagIndex{
		"go":   {{URL: "a.html", Title: "A", Tag: "go"}},
		"blog": {{URL: "b.html", Title: "B", Tag: "blog"}},
	}

	view := newTagListView(idx, viewSite, buildTime)

	require.Len(t, view.Tags, 2)
	require.Equal(t, "blog", view.Tags[0].Name)
	require.Equal(t, "go", view.Tags[1].Name)
	require.Equal(t, idx["go"], view.Tags[1].Refs)
}

func TestNewFeedView_FormatsEntryAndBuildDates(t *testing.T) {
	created, err := time.Parse(time.RFC3339, "2021-05-07T08:15:00-07:00")
	require.NoError(t, err)
	buildTime := time.Date(2023, 4, 1, 10, 30, 0, 0, time.UTC)

	feed := Feed{
		Title:       "Example Blog",
		Description: "notes",
		SiteURL:     "https://blog.example.com",
		Domain:      "blog.example.com",
		BuildTime:   buildTime,
		Entries: []FeedEntry{
			{
				Title:       "First",
				Description: "about it",
				URL:         "first.html",
				HTML:        "<p>body</p>",
				CreatedAt:   created,
				Author:      "todd",
			},
		},
	}

	view := newFeedView(feed)

	require.Equal(t, "2023-04-01T10:30:00Z", view.Timestamp)
	require.Equal(t, "Sat,  1 Apr, 2023 10:30:00 UTC", view.PubDate)
	require.Equal(t, "2023-04-01", view.TagDate)
	require.Equal(t, "2023", view.Year)

	require.Len(t, view.Entries, 1)
	fe := view.Entries[0]
	require.Equal(t, "2021-05-07T08:15:00-07:00", fe.Published)
	require.Equal(t, "2023-04-01T10:30:00Z", fe.Timestamp)
	require.Equal(t, "2023-04-01", fe.TagDate)
	require.Equal(t, "blog.example.com", fe.Domain)
	require.Equal(t, "https://blog.example.com", fe.SiteURL)
	require.Equal(t, "<p>body</p>", fe.Contents)
}
