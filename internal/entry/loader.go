package entry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/toddself/site-gen/internal/frontmatter"
	"github.com/toddself/site-gen/internal/markdown"
	"github.com/toddself/site-gen/internal/metrics"
	"github.com/toddself/site-gen/internal/textutil"
)

// Pool sizing bounds for the render workers when no explicit concurrency is
// configured.
const (
	minWorkers = 1
	maxWorkers = 8
)

// defaultTruncateLength bounds entry summaries when no length is
// configured. The generated description falls back to the same summary, so
// feed descriptions never exceed the configured length.
const defaultTruncateLength = 300

// LoaderOptions carries the per-build knobs for entry loading.
type LoaderOptions struct {
	TruncateLength    int
	DefaultAuthor     string
	DefaultShareImage string
	RenderedAt        time.Time
	Concurrency       int
}

// Loader reads every regular file in a source directory and produces one
// Entry per file. Rendering runs on a small worker pool since entries are
// independent until they are sorted.
type Loader struct {
	dir      string
	renderer *markdown.Renderer
	opts     LoaderOptions
	recorder metrics.Recorder
}

// NewLoader returns a loader for the given source directory.
func NewLoader(dir string, renderer *markdown.Renderer, opts LoaderOptions) *Loader {
	if opts.RenderedAt.IsZero() {
		opts.RenderedAt = time.Now()
	}
	if opts.TruncateLength <= 0 {
		opts.TruncateLength = defaultTruncateLength
	}
	return &Loader{
		dir:      dir,
		renderer: renderer,
		opts:     opts,
		recorder: metrics.NoopRecorder{},
	}
}

// SetRecorder injects a metrics recorder. Defaults to a no-op recorder.
func (l *Loader) SetRecorder(r metrics.Recorder) *Loader {
	if r != nil {
		l.recorder = r
	}
	return l
}

// Load parses and renders every source file. The returned entries keep
// directory listing order; sorting is the caller's concern. A single failed
// file fails the whole load, and with several failures the first one in
// directory order is reported so reruns point at the same file.
func (l *Loader) Load(ctx context.Context) ([]Entry, error) {
	files, err := listSourceFiles(l.dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	concurrency := resolveWorkers(l.opts.Concurrency)
	if concurrency > len(files) {
		concurrency = len(files)
	}
	l.recorder.SetLoadConcurrency(concurrency)

	// Each task writes to its own slot, so no lock is needed around results.
	entries := make([]Entry, len(files))
	errs := make([]error, len(files))

	type loadTask struct {
		index int
		name  string
	}
	tasks := make(chan loadTask)
	var wg sync.WaitGroup
	worker := func() {
		defer wg.Done()
		for task := range tasks {
			select {
			case <-ctx.Done():
				return
			default:
			}
			start := time.Now()
			e, err := l.loadOne(task.name)
			l.recorder.ObserveEntryRender(time.Since(start), err == nil)
			entries[task.index] = e
			errs[task.index] = err
		}
	}
	wg.Add(concurrency)
	for range concurrency {
		go worker()
	}
	for i, name := range files {
		select {
		case <-ctx.Done():
			close(tasks)
			wg.Wait()
			return nil, ctx.Err()
		default:
		}
		tasks <- loadTask{index: i, name: name}
	}
	close(tasks)
	wg.Wait()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	seen := make(map[string]string, len(entries))
	for _, e := range entries {
		if prev, ok := seen[e.URL]; ok {
			return nil, &FileError{
				File: e.SourceFile,
				Err:  fmt.Errorf("%w: %q already produced by %s", ErrDuplicateURL, e.URL, prev),
			}
		}
		seen[e.URL] = e.SourceFile
	}

	return entries, nil
}

func (l *Loader) loadOne(name string) (Entry, error) {
	path := filepath.Join(l.dir, name)
	// #nosec G304 - name comes from listing the configured source directory
	raw, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, &FileError{File: name, Err: err}
	}

	preambleBytes, body, err := frontmatter.Split(raw)
	if err != nil {
		return Entry{}, &FileError{File: name, Err: err}
	}
	preamble, err := frontmatter.Parse(preambleBytes)
	if err != nil {
		return Entry{}, &FileError{File: name, Err: err}
	}
	createdAt, err := preamble.CreatedAt()
	if err != nil {
		return Entry{}, &FileError{File: name, Err: err}
	}

	rendered, err := l.renderer.Render(body)
	if err != nil {
		return Entry{}, &FileError{File: name, Err: err}
	}

	author := strings.TrimSpace(preamble.Author)
	if author == "" {
		author = strings.TrimSpace(l.opts.DefaultAuthor)
	}
	if author == "" {
		author = "anonymous"
	}

	shareImage := preamble.ShareImage
	if shareImage == "" {
		shareImage = l.opts.DefaultShareImage
	}

	truncated := textutil.Truncate(rendered.PlainText, l.opts.TruncateLength)
	description := strings.TrimSpace(preamble.Description)
	if description == "" {
		description = truncated
	}

	return Entry{
		Title:         preamble.Title,
		CreatedAt:     createdAt,
		RenderedAt:    l.opts.RenderedAt,
		Tags:          preamble.Tags,
		URL:           entryURL(name),
		HTML:          rendered.HTML,
		PlainText:     rendered.PlainText,
		TruncatedText: truncated,
		Description:   description,
		HeroImage:     preamble.HeroImage,
		ShareImage:    shareImage,
		Author:        author,
		SourceFile:    name,
	}, nil
}

// listSourceFiles returns the names of the regular, non-hidden files in dir,
// in directory listing order.
func listSourceFiles(dir string) ([]string, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read source directory: %w", err)
	}

	files := make([]string, 0, len(dirEntries))
	for _, d := range dirEntries {
		if !d.Type().IsRegular() {
			continue
		}
		if strings.HasPrefix(d.Name(), ".") {
			continue
		}
		files = append(files, d.Name())
	}
	return files, nil
}

// resolveWorkers picks the pool size: an explicit request wins, otherwise
// the available CPUs clamped to [minWorkers, maxWorkers].
func resolveWorkers(requested int) int {
	if requested > 0 {
		return requested
	}
	n := runtime.GOMAXPROCS(0)
	if n < minWorkers {
		return minWorkers
	}
	if n > maxWorkers {
		return maxWorkers
	}
	return n
}

// entryURL swaps the source extension for .html: "post.md" becomes
// "post.html".
func entryURL(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".html"
}
