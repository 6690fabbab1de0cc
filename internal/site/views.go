package site

import (
	"strconv"
	"time"

	"github.com/toddself/site-gen/internal/config"
	"github.com/toddself/site-gen/internal/entry"
)

// Output date formats. displayDateFormat is the long human form shown on
// pages, pubDateFormat heads the feed, and tagDateFormat anchors the feed's
// tag URIs.
const (
	displayDateFormat = "Monday, Jan _2, 2006"
	pubDateFormat     = "Mon, _2 Jan, 2006 15:04:05 MST"
	tagDateFormat     = "2006-01-02"
)

// EntryView is the data handed to the "entry" template, and one element of
// an index page's entry list.
type EntryView struct {
	Title         string
	URL           string
	Contents      string
	DisplayDate   string
	Timestamp     string
	TruncatedText string
	Description   string
	HeroImage     string
	ShareImage    string
	Tags          []string
	Author        string
	SiteURL       string
	SiteTitle     string
	Year          string
}

func newEntryView(e entry.Entry, s config.SiteConfig, buildTime time.Time) EntryView {
	return EntryView{
		Title:         e.Title,
		URL:           e.URL,
		Contents:      e.HTML,
		DisplayDate:   e.CreatedAt.Format(displayDateFormat),
		Timestamp:     e.CreatedAt.Format(time.RFC3339),
		TruncatedText: e.TruncatedText,
		Description:   e.Description,
		HeroImage:     e.HeroImage,
		ShareImage:    e.ShareImage,
		Tags:          e.Tags,
		Author:        e.Author,
		SiteURL:       s.URL,
		SiteTitle:     s.Title,
		Year:          strconv.Itoa(buildTime.Year()),
	}
}

// IndexView is the data handed to the "index" template for one page.
type IndexView struct {
	Title       string
	Description string
	SiteURL     string
	Entries     []EntryView
	Pagination  []PageRef
	PageNumber  int
	Year        string
	PubDate     string
	Timestamp   string
}

func newIndexView(p Page, s config.SiteConfig, buildTime time.Time) IndexView {
	views := make([]EntryView, 0, len(p.Entries))
	for _, e := range p.Entries {
		views = append(views, newEntryView(e, s, buildTime))
	}
	return IndexView{
		Title:       s.Title,
		Description: s.Description,
		SiteURL:     s.URL,
		Entries:     views,
		Pagination:  p.Refs,
		PageNumber:  p.Number,
		Year:        strconv.Itoa(buildTime.Year()),
		PubDate:     buildTime.Format(pubDateFormat),
		Timestamp:   buildTime.Format(time.RFC3339),
	}
}

// TagGroup is one tag and its references, ordered for rendering.
type TagGroup struct {
	Name string
	Refs []TagRef
}

// TagListView is the data handed to the "tag-list" template. Tags iterate
// in ascending name order.
type TagListView struct {
	Title   string
	SiteURL string
	Tags    []TagGroup
	Year    string
}

func newTagListView(idx TagIndex, s config.SiteConfig, buildTime time.Time) TagListView {
	groups := make([]TagGroup, 0, len(idx))
	for _, name := range idx.Tags() {
		groups = append(groups, TagGroup{Name: name, Refs: idx[name]})
	}
	return TagListView{
		Title:   s.Title,
		SiteURL: s.URL,
		Tags:    groups,
		Year:    strconv.Itoa(buildTime.Year()),
	}
}

// FeedView is the data handed to the feed template.
type FeedView struct {
	Title       string
	SiteURL     string
	Description string
	Domain      string
	Timestamp   string
	PubDate     string
	TagDate     string
	Year        string
	Entries     []FeedEntryView
}

// FeedEntryView is one feed item with its dates preformatted.
type FeedEntryView struct {
	Title       string
	URL         string
	SiteURL     string
	Contents    string
	Description string
	Author      string
	Domain      string
	Published   string
	Timestamp   string
	TagDate     string
}

func newFeedView(f Feed) FeedView {
	view := FeedView{
		Title:       f.Title,
		SiteURL:     f.SiteURL,
		Description: f.Description,
		Domain:      f.Domain,
		Timestamp:   f.BuildTime.Format(time.RFC3339),
		PubDate:     f.BuildTime.Format(pubDateFormat),
		TagDate:     f.BuildTime.Format(tagDateFormat),
		Year:        strconv.Itoa(f.BuildTime.Year()),
		Entries:     make([]FeedEntryView, 0, len(f.Entries)),
	}
	for _, e := range f.Entries {
		view.Entries = append(view.Entries, FeedEntryView{
			Title:       e.Title,
			URL:         e.URL,
			SiteURL:     f.SiteURL,
			Contents:    e.HTML,
			Description: e.Description,
			Author:      e.Author,
			Domain:      f.Domain,
			Published:   e.CreatedAt.Format(time.RFC3339),
			Timestamp:   f.BuildTime.Format(time.RFC3339),
			TagDate:     f.BuildTime.Format(tagDateFormat),
		})
	}
	return view
}
