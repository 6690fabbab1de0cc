package markdown

import (
	"bytes"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrConversion indicates markdown to HTML conversion failed.
var ErrConversion = errors.New("markdown conversion failed")

// Result carries both renditions of an entry body.
type Result struct {
	HTML      string
	PlainText string
}

// Renderer converts an entry body to HTML plus a markup-stripped plain text
// form. A Renderer is immutable after construction and safe for concurrent
// use by the loader workers.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer configures goldmark with GFM, smart punctuation, and syntax
// highlighting. Raw HTML embedded in entries is passed through unchanged:
// the site author is the only input source.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,          // Tables, strikethrough, autolinks, task lists
			extension.Typographer,  // Smart quotes, dashes, ellipses
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // CSS classes for external stylesheet control
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	return &Renderer{md: md}
}

// Render converts body to HTML and derives its plain text. Pure function of
// the input.
func (r *Renderer) Render(body []byte) (Result, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(body, &buf); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrConversion, err)
	}
	plain, err := stripMarkup(buf.Bytes())
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrConversion, err)
	}
	return Result{HTML: buf.String(), PlainText: plain}, nil
}
