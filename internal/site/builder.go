// Package site runs the build pipeline: load and render entries, order and
// paginate them, fold the tag index, derive the feed, and materialize every
// output file through the template engine and output writer.
package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/toddself/site-gen/internal/config"
	"github.com/toddself/site-gen/internal/entry"
	"github.com/toddself/site-gen/internal/logfields"
	"github.com/toddself/site-gen/internal/markdown"
	"github.com/toddself/site-gen/internal/metrics"
	"github.com/toddself/site-gen/internal/output"
	"github.com/toddself/site-gen/internal/templates"
)

// Fixed output filenames next to the per-entry and per-page files.
const (
	feedFileName    = "index.rss"
	tagListFileName = "tags.html"
)

// TemplateRenderer is the slice of the template engine the builder needs.
type TemplateRenderer interface {
	Render(name string, data any) ([]byte, error)
	Sources() map[string]templates.Source
}

// BuildState is the shared state threaded through the build stages.
type BuildState struct {
	Builder *Builder
	Entries []entry.Entry
	Pages   []Page
	Tags    TagIndex
	Feed    Feed
	Report  *BuildReport
}

// Builder wires the loader, pipeline stages, template renderer, and output
// writer into one site build.
type Builder struct {
	cfg       *config.Config
	renderer  *markdown.Renderer
	templates TemplateRenderer
	writer    output.Writer
	recorder  metrics.Recorder
	buildTime time.Time
	buildID   string
}

// NewBuilder returns a builder for one site build.
func NewBuilder(cfg *config.Config, renderer *markdown.Renderer, tpl TemplateRenderer, w output.Writer) *Builder {
	return &Builder{
		cfg:       cfg,
		renderer:  renderer,
		templates: tpl,
		writer:    w,
		recorder:  metrics.NoopRecorder{},
		buildTime: time.Now(),
		buildID:   uuid.NewString(),
	}
}

// SetRecorder injects a metrics recorder. Defaults to a no-op recorder.
func (b *Builder) SetRecorder(r metrics.Recorder) *Builder {
	if r != nil {
		b.recorder = r
	}
	return b
}

// SetBuildTime fixes the timestamp rendered into pages and the feed.
// Defaults to the wall clock at construction.
func (b *Builder) SetBuildTime(t time.Time) *Builder {
	if !t.IsZero() {
		b.buildTime = t
	}
	return b
}

// Build runs the full pipeline. The returned report is non-nil even when
// the build fails, so callers can always persist diagnostics.
func (b *Builder) Build(ctx context.Context) (*BuildReport, error) {
	report := newBuildReport(b.buildID)
	report.TemplateSources = b.templates.Sources()
	bs := &BuildState{Builder: b, Report: report}

	slog.Info("Starting site build",
		logfields.BuildID(b.buildID),
		logfields.Source(b.cfg.Source),
		logfields.Destination(b.cfg.Destination))

	defs := NewPipeline().
		Add(StagePrepareOutput, stagePrepareOutput).
		Add(StageLoadEntries, stageLoadEntries).
		Add(StageOrderEntries, stageOrderEntries).
		Add(StageBuildTagIndex, stageBuildTagIndex).
		Add(StageBuildFeed, stageBuildFeed).
		Add(StageRenderEntries, stageRenderEntries).
		Add(StageRenderIndexes, stageRenderIndexes).
		Add(StageRenderTagList, stageRenderTagList).
		Add(StageRenderFeed, stageRenderFeed).
		Build()

	err := runStages(ctx, bs, defs, b.recorder)

	report.finish()
	report.deriveOutcome()
	duration := report.End.Sub(report.Start)
	b.recorder.ObserveBuildDuration(duration)
	b.recorder.IncBuildOutcome(string(report.Outcome))

	slog.Info("Site build finished",
		logfields.BuildID(b.buildID),
		logfields.Outcome(string(report.Outcome)),
		logfields.Files(report.RenderedFiles),
		logfields.DurationMS(float64(duration.Milliseconds())))

	return report, err
}

func stagePrepareOutput(_ context.Context, bs *BuildState) error {
	return bs.Builder.writer.Prepare()
}

func stageLoadEntries(ctx context.Context, bs *BuildState) error {
	b := bs.Builder
	loader := entry.NewLoader(b.cfg.Source, b.renderer, entry.LoaderOptions{
		TruncateLength:    b.cfg.TruncateLength,
		DefaultAuthor:     b.cfg.Site.Author,
		DefaultShareImage: b.cfg.Site.ShareImage,
		RenderedAt:        b.buildTime,
		Concurrency:       b.cfg.Concurrency,
	}).SetRecorder(b.recorder)

	entries, err := loader.Load(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return newCanceledStageError(StageLoadEntries, err)
		}
		return newFatalStageError(StageLoadEntries, err)
	}

	bs.Entries = entries
	bs.Report.Entries = len(entries)
	slog.Info("Loaded entries", logfields.Entries(len(entries)), logfields.Source(b.cfg.Source))

	if len(entries) == 0 {
		return newWarnStageError(StageLoadEntries, fmt.Errorf("%w in %s", ErrNoEntries, b.cfg.Source))
	}
	return nil
}

func stageOrderEntries(_ context.Context, bs *BuildState) error {
	Order(bs.Entries)
	bs.Pages = Paginate(bs.Entries, bs.Builder.cfg.EntriesPerPage)
	bs.Report.Pages = len(bs.Pages)
	return nil
}

func stageBuildTagIndex(_ context.Context, bs *BuildState) error {
	bs.Tags = BuildTagIndex(bs.Entries)
	bs.Report.Tags = len(bs.Tags)
	return nil
}

func stageBuildFeed(_ context.Context, bs *BuildState) error {
	var newest []entry.Entry
	if len(bs.Pages) > 0 {
		newest = bs.Pages[0].Entries
	}
	feed, err := BuildFeed(newest, bs.Builder.cfg, bs.Builder.buildTime)
	if err != nil {
		return newFatalStageError(StageBuildFeed, err)
	}
	bs.Feed = feed
	return nil
}

func stageRenderEntries(ctx context.Context, bs *BuildState) error {
	b := bs.Builder
	for _, e := range bs.Entries {
		select {
		case <-ctx.Done():
			return newCanceledStageError(StageRenderEntries, ctx.Err())
		default:
		}

		view := newEntryView(e, b.cfg.Site, b.buildTime)
		rendered, err := b.templates.Render(templates.EntryTemplate, view)
		if err != nil {
			return newFatalStageError(StageRenderEntries, fmt.Errorf("entry %s: %w", e.SourceFile, err))
		}

		slog.Info("Writing entry", slog.String("title", e.Title), logfields.File(e.URL))
		if err := b.writer.WriteFile(e.URL, rendered); err != nil {
			return newFatalStageError(StageRenderEntries, fmt.Errorf("entry %s: %w", e.SourceFile, err))
		}
		bs.Report.RenderedFiles++
		b.recorder.AddFilesWritten(1)
	}
	return nil
}

func stageRenderIndexes(ctx context.Context, bs *BuildState) error {
	b := bs.Builder
	for _, p := range bs.Pages {
		select {
		case <-ctx.Done():
			return newCanceledStageError(StageRenderIndexes, ctx.Err())
		default:
		}

		view := newIndexView(p, b.cfg.Site, b.buildTime)
		rendered, err := b.templates.Render(templates.IndexTemplate, view)
		if err != nil {
			return newFatalStageError(StageRenderIndexes, fmt.Errorf("page %d: %w", p.Number, err))
		}

		name := PageFileName(p.Number)
		slog.Info("Writing index page", slog.Int("page", p.Number), logfields.File(name))
		if err := b.writer.WriteFile(name, rendered); err != nil {
			return newFatalStageError(StageRenderIndexes, fmt.Errorf("page %d: %w", p.Number, err))
		}
		bs.Report.RenderedFiles++
		b.recorder.AddFilesWritten(1)
	}
	return nil
}

func stageRenderTagList(_ context.Context, bs *BuildState) error {
	b := bs.Builder
	view := newTagListView(bs.Tags, b.cfg.Site, b.buildTime)
	rendered, err := b.templates.Render(templates.TagListTemplate, view)
	if err != nil {
		return newFatalStageError(StageRenderTagList, err)
	}

	slog.Info("Writing tag list", logfields.File(tagListFileName), slog.Int("tags", len(view.Tags)))
	if err := b.writer.WriteFile(tagListFileName, rendered); err != nil {
		return newFatalStageError(StageRenderTagList, err)
	}
	bs.Report.RenderedFiles++
	b.recorder.AddFilesWritten(1)
	return nil
}

func stageRenderFeed(_ context.Context, bs *BuildState) error {
	b := bs.Builder
	view := newFeedView(bs.Feed)
	rendered, err := b.templates.Render(templates.FeedTemplate, view)
	if err != nil {
		return newFatalStageError(StageRenderFeed, err)
	}

	slog.Info("Writing feed", logfields.File(feedFileName), logfields.Entries(len(view.Entries)))
	if err := b.writer.WriteFile(feedFileName, rendered); err != nil {
		return newFatalStageError(StageRenderFeed, err)
	}
	bs.Report.RenderedFiles++
	b.recorder.AddFilesWritten(1)
	return nil
}
