package site

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toddself/site-gen/internal/entry"
)

func TestBuildTagIndex_FoldsInEntryOrder(t *testing.T) {
	entries := []entry.Entry{
		{Title: "Newest", URL: "newest.html", Tags: []string{"go", "blog"}},
		{Title: "Older", URL: "older.html", Tags: []string{"go"}},
	}

	idx := BuildTagIndex(entries)

	require.Len(t, idx, 2)
	require.Equal(t, []TagRef{
		{URL: "newest.html", Title: "Newest", Tag: "go"},
		{URL: "older.html", Title: "Older", Tag: "go"},
	}, idx["go"])
	require.Equal(t, []TagRef{
		{URL: "newest.html", Title: "Newest", Tag: "blog"},
	}, idx["blog"])
}

func TestBuildTagIndex_RepeatedTagContributesTwice(t *testing.T) {
	entries := []entry.Entry{
		{Title: "Echoes", URL: "echoes.html", Tags: []string{"go", "go"}},
	}

	idx := BuildTagIndex(entries)

	require.Len(t, idx["go"], 2)
}

func TestBuildTagIndex_ExactStringKeys(t *testing.T) {
	entries := []entry.Entry{
		{Title: "One", URL: "one.html", Tags: []string{"Go"}},
		{Title: "Two", URL: "two.html", Tags: []string{"go"}},
	}

	idx := BuildTagIndex(entries)

	require.Len(t, idx, 2)
	require.Len(t, idx["Go"], 1)
	require.Len(t, idx["go"], 1)
}

func TestBuildTagIndex_UntaggedEntriesLeaveNoTrace(t *testing.T) {
	entries := []entry.Entry{
		{Title: "Plain", URL: "plain.html"},
	}

	idx := BuildTagIndex(entries)

	require.Empty(t, idx)
}

func TestTagIndexTags_SortedAscending(t *testing.T) {
	idx := TagIndex{
		"zsh":  nil,
		"ada":  nil,
		"Bash": nil,
		"blog": nil,
	}

	require.Equal(t, []string{"Bash", "ada", "blog", "zsh"}, idx.Tags())
}
