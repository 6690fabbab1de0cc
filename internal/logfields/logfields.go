package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeySource     = "source"
	KeyDest       = "destination"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyTemplate   = "template"
	KeyEntries    = "entries"
	KeyPages      = "pages"
	KeyFiles      = "files"
	KeyWorkers    = "workers"
	KeyTag        = "tag"
	KeyURL        = "url"
	KeyOutcome    = "outcome"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr      { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Source(dir string) slog.Attr      { return slog.String(KeySource, dir) }
func Destination(dir string) slog.Attr { return slog.String(KeyDest, dir) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func File(name string) slog.Attr       { return slog.String(KeyFile, name) }
func Template(name string) slog.Attr   { return slog.String(KeyTemplate, name) }
func Entries(n int) slog.Attr          { return slog.Int(KeyEntries, n) }
func Pages(n int) slog.Attr            { return slog.Int(KeyPages, n) }
func Files(n int) slog.Attr            { return slog.Int(KeyFiles, n) }
func Workers(n int) slog.Attr          { return slog.Int(KeyWorkers, n) }
func Tag(t string) slog.Attr           { return slog.String(KeyTag, t) }
func URL(u string) slog.Attr           { return slog.String(KeyURL, u) }
func Outcome(o string) slog.Attr       { return slog.String(KeyOutcome, o) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
