package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/toddself/site-gen/internal/logfields"
	"github.com/toddself/site-gen/internal/metrics"
)

// Stage is a discrete unit of work in the site build.
type Stage func(ctx context.Context, bs *BuildState) error

// StageName is a strongly-typed identifier for a build stage.
type StageName string

// Canonical stage names, in execution order.
const (
	StagePrepareOutput StageName = "prepare_output"
	StageLoadEntries   StageName = "load_entries"
	StageOrderEntries  StageName = "order_entries"
	StageBuildTagIndex StageName = "build_tag_index"
	StageBuildFeed     StageName = "build_feed"
	StageRenderEntries StageName = "render_entries"
	StageRenderIndexes StageName = "render_indexes"
	StageRenderTagList StageName = "render_tag_list"
	StageRenderFeed    StageName = "render_feed"
)

// StageErrorKind classifies the outcome of a stage.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Build must abort.
	StageErrorWarning  StageErrorKind = "warning"  // Non-fatal; record and continue.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a structured error carrying category and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}

func newWarnStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}

func newCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
}

// Pipeline is a fluent builder for ordered stage definitions.
type Pipeline struct{ Defs []StageDef }

// NewPipeline creates an empty pipeline.
func NewPipeline() *Pipeline { return &Pipeline{Defs: make([]StageDef, 0, 9)} }

// Add appends a stage.
func (p *Pipeline) Add(name StageName, fn Stage) *Pipeline {
	p.Defs = append(p.Defs, StageDef{Name: name, Fn: fn})
	return p
}

// Build returns a copy of the registered stage definitions.
func (p *Pipeline) Build() []StageDef {
	out := make([]StageDef, len(p.Defs))
	copy(out, p.Defs)
	return out
}

// runStages executes stages in order, recording timing and classification.
// Warnings are recorded and execution continues; fatal and canceled errors
// stop the build. Errors that are not already StageErrors count as fatal.
func runStages(ctx context.Context, bs *BuildState, defs []StageDef, recorder metrics.Recorder) error {
	for _, st := range defs {
		select {
		case <-ctx.Done():
			se := newCanceledStageError(st.Name, ctx.Err())
			bs.Report.Errors = append(bs.Report.Errors, se)
			bs.Report.StageErrorKinds[st.Name] = se.Kind
			recorder.IncStageResult(string(st.Name), metrics.ResultCanceled)
			return se
		default:
		}

		t0 := time.Now()
		err := st.Fn(ctx, bs)
		dur := time.Since(t0)
		bs.Report.StageDurations[st.Name] = dur
		recorder.ObserveStageDuration(string(st.Name), dur)

		if err == nil {
			sc := bs.Report.StageCounts[st.Name]
			sc.Success++
			bs.Report.StageCounts[st.Name] = sc
			recorder.IncStageResult(string(st.Name), metrics.ResultSuccess)
			continue
		}

		var se *StageError
		if !errors.As(err, &se) {
			// Wrap unknown errors as fatal by default.
			se = newFatalStageError(st.Name, err)
		}
		bs.Report.StageErrorKinds[st.Name] = se.Kind

		sc := bs.Report.StageCounts[st.Name]
		switch se.Kind {
		case StageErrorWarning:
			sc.Warning++
		case StageErrorCanceled:
			sc.Canceled++
		default:
			sc.Fatal++
		}
		bs.Report.StageCounts[st.Name] = sc

		switch se.Kind {
		case StageErrorWarning:
			bs.Report.Warnings = append(bs.Report.Warnings, se)
			recorder.IncStageResult(string(st.Name), metrics.ResultWarning)
			slog.Warn("Stage finished with warning", logfields.Stage(string(st.Name)), logfields.Error(se))
			continue
		case StageErrorCanceled:
			bs.Report.Errors = append(bs.Report.Errors, se)
			recorder.IncStageResult(string(st.Name), metrics.ResultCanceled)
			return se
		default:
			bs.Report.Errors = append(bs.Report.Errors, se)
			recorder.IncStageResult(string(st.Name), metrics.ResultFatal)
			return se
		}
	}
	return nil
}
