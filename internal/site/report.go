package site

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/toddself/site-gen/internal/templates"
)

// BuildOutcome is the typed enumeration of final build result states.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeWarning  BuildOutcome = "warning"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// StageCount aggregates outcome counts for a stage.
type StageCount struct {
	Success  int `json:"success"`
	Warning  int `json:"warning"`
	Fatal    int `json:"fatal"`
	Canceled int `json:"canceled"`
}

// BuildReport captures high-level metrics about one site build.
type BuildReport struct {
	SchemaVersion   int
	BuildID         string
	Entries         int
	Pages           int
	Tags            int
	RenderedFiles   int
	Start           time.Time
	End             time.Time
	Errors          []error
	Warnings        []error
	StageDurations  map[StageName]time.Duration
	StageErrorKinds map[StageName]StageErrorKind
	StageCounts     map[StageName]StageCount
	Outcome         BuildOutcome
	TemplateSources map[string]templates.Source
}

func newBuildReport(buildID string) *BuildReport {
	return &BuildReport{
		SchemaVersion:   1,
		BuildID:         buildID,
		Start:           time.Now(),
		StageDurations:  make(map[StageName]time.Duration),
		StageErrorKinds: make(map[StageName]StageErrorKind),
		StageCounts:     make(map[StageName]StageCount),
	}
}

func (r *BuildReport) finish() { r.End = time.Now() }

// Summary returns a human-readable single-line summary.
func (r *BuildReport) Summary() string {
	dur := r.End.Sub(r.Start)
	return fmt.Sprintf("entries=%d pages=%d tags=%d files=%d duration=%s errors=%d warnings=%d outcome=%s",
		r.Entries, r.Pages, r.Tags, r.RenderedFiles, dur.Truncate(time.Millisecond), len(r.Errors), len(r.Warnings), r.Outcome)
}

// deriveOutcome sets the Outcome field based on recorded errors and warnings.
func (r *BuildReport) deriveOutcome() {
	if len(r.Errors) > 0 {
		for _, e := range r.Errors {
			if se, ok := e.(*StageError); ok && se.Kind == StageErrorCanceled {
				r.Outcome = OutcomeCanceled
				return
			}
		}
		r.Outcome = OutcomeFailed
		return
	}
	if len(r.Warnings) > 0 {
		r.Outcome = OutcomeWarning
		return
	}
	r.Outcome = OutcomeSuccess
}

// Persist writes the report as JSON to path atomically (temp file plus
// rename). Best effort; errors are returned for caller logging but do not
// change the build outcome.
func (r *BuildReport) Persist(path string) error {
	if r.End.IsZero() {
		r.finish()
		r.deriveOutcome()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("ensure report directory: %w", err)
		}
	}

	jb, err := json.MarshalIndent(r.serializable(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report json: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, jb, 0644); err != nil {
		return fmt.Errorf("write temp report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("atomic rename report: %w", err)
	}
	return nil
}

// serializable returns a copy with error fields converted to strings and
// typed map keys flattened for JSON stability.
func (r *BuildReport) serializable() *buildReportSerializable {
	durations := make(map[string]time.Duration, len(r.StageDurations))
	for k, v := range r.StageDurations {
		durations[string(k)] = v
	}
	kinds := make(map[string]string, len(r.StageErrorKinds))
	for k, v := range r.StageErrorKinds {
		kinds[string(k)] = string(v)
	}
	counts := make(map[string]StageCount, len(r.StageCounts))
	for k, v := range r.StageCounts {
		counts[string(k)] = v
	}

	s := &buildReportSerializable{
		SchemaVersion:   r.SchemaVersion,
		BuildID:         r.BuildID,
		Entries:         r.Entries,
		Pages:           r.Pages,
		Tags:            r.Tags,
		RenderedFiles:   r.RenderedFiles,
		Start:           r.Start,
		End:             r.End,
		Errors:          make([]string, len(r.Errors)),
		Warnings:        make([]string, len(r.Warnings)),
		StageDurations:  durations,
		StageErrorKinds: kinds,
		StageCounts:     counts,
		Outcome:         string(r.Outcome),
		TemplateSources: r.TemplateSources,
	}
	for i, e := range r.Errors {
		s.Errors[i] = e.Error()
	}
	for i, w := range r.Warnings {
		s.Warnings[i] = w.Error()
	}
	return s
}

// buildReportSerializable mirrors BuildReport with string errors for JSON
// output.
type buildReportSerializable struct {
	SchemaVersion   int                         `json:"schema_version"`
	BuildID         string                      `json:"build_id"`
	Entries         int                         `json:"entries"`
	Pages           int                         `json:"pages"`
	Tags            int                         `json:"tags"`
	RenderedFiles   int                         `json:"rendered_files"`
	Start           time.Time                   `json:"start"`
	End             time.Time                   `json:"end"`
	Errors          []string                    `json:"errors"`
	Warnings        []string                    `json:"warnings"`
	StageDurations  map[string]time.Duration    `json:"stage_durations"`
	StageErrorKinds map[string]string           `json:"stage_error_kinds"`
	StageCounts     map[string]StageCount       `json:"stage_counts"`
	Outcome         string                      `json:"outcome"`
	TemplateSources map[string]templates.Source `json:"template_sources,omitempty"`
}
