package site

import (
	"time"

	"github.com/toddself/site-gen/internal/config"
	"github.com/toddself/site-gen/internal/entry"
)

// Feed is the syndication feed derived from the newest page of entries.
type Feed struct {
	Title       string
	Description string
	SiteURL     string
	Domain      string
	BuildTime   time.Time
	Entries     []FeedEntry
}

// FeedEntry is one feed item.
type FeedEntry struct {
	Title       string
	Description string
	URL         string
	HTML        string
	CreatedAt   time.Time
	Author      string
}

// BuildFeed derives the feed from the most recent entries. It fails when
// the configured site URL has no host to anchor feed identifiers to.
func BuildFeed(newest []entry.Entry, cfg *config.Config, buildTime time.Time) (Feed, error) {
	domain, err := cfg.Domain()
	if err != nil {
		return Feed{}, err
	}

	feed := Feed{
		Title:       cfg.Site.Title,
		Description: cfg.Site.Description,
		SiteURL:     cfg.Site.URL,
		Domain:      domain,
		BuildTime:   buildTime,
		Entries:     make([]FeedEntry, 0, len(newest)),
	}
	for _, e := range newest {
		feed.Entries = append(feed.Entries, FeedEntry{
			Title:       e.Title,
			Description: e.Description,
			URL:         e.URL,
			HTML:        e.HTML,
			CreatedAt:   e.CreatedAt,
			Author:      e.Author,
		})
	}
	return feed, nil
}
