package site

import "errors"

// ErrNoEntries reports an empty source directory. The build continues and
// still renders the feed and tag page, just with nothing in them.
var ErrNoEntries = errors.New("no entries found")
