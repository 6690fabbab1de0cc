// Package templates renders named templates against view data prepared by
// the build pipeline. Each known template has an embedded default body that
// a file of the same name in the configured template directory overrides.
package templates

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"strings"
	"text/template"

	"github.com/toddself/site-gen/internal/textutil"
)

// Names of the templates the renderer knows about. The feed template is
// called "atom" because the feed it produces is an Atom document, even
// though the output file keeps the historical index.rss name.
const (
	EntryTemplate   = "entry"
	IndexTemplate   = "index"
	TagListTemplate = "tag-list"
	FeedTemplate    = "atom"
)

// Names lists every template an engine loads, in a fixed order.
var Names = []string{EntryTemplate, IndexTemplate, TagListTemplate, FeedTemplate}

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrTemplateParse    = errors.New("template parse failed")
	ErrTemplateRender   = errors.New("template render failed")
)

// Source records where a template body came from. Kind is "embedded" for
// built-in defaults and "file" for user overrides; Path is empty for
// embedded sources.
type Source struct {
	Kind string `json:"kind"`
	Path string `json:"path,omitempty"`
}

// Engine holds the parsed templates for one build. It is immutable after
// construction and safe for concurrent Render calls.
type Engine struct {
	templates map[string]*template.Template
	sources   map[string]Source
}

// NewEngine parses every known template, preferring overrides found in
// templateDir over the embedded defaults. An empty templateDir loads the
// embedded defaults only.
func NewEngine(templateDir string) (*Engine, error) {
	e := &Engine{
		templates: make(map[string]*template.Template, len(Names)),
		sources:   make(map[string]Source, len(Names)),
	}

	for _, name := range Names {
		body, source, err := resolveBody(templateDir, name)
		if err != nil {
			return nil, err
		}

		tpl, err := template.New(name).Funcs(helperFuncs()).Option("missingkey=error").Parse(body)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrTemplateParse, name, err)
		}

		e.templates[name] = tpl
		e.sources[name] = source
	}

	return e, nil
}

// Render executes the named template with the provided data.
func (e *Engine) Render(name string, data any) ([]byte, error) {
	tpl, ok := e.templates[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTemplateRender, name, err)
	}
	return buf.Bytes(), nil
}

// Sources reports where each loaded template body came from, keyed by
// template name.
func (e *Engine) Sources() map[string]Source {
	return maps.Clone(e.sources)
}

func helperFuncs() template.FuncMap {
	return template.FuncMap{
		"titleCase":  textutil.TitleCase,
		"replaceAll": replaceAll,
		"lower":      strings.ToLower,
	}
}

// replaceAll reorders strings.ReplaceAll for pipeline use:
// {{.Name | replaceAll "-" " "}}.
func replaceAll(old, new, s string) string {
	return strings.ReplaceAll(s, old, new)
}
