package md2man

import (
	"fmt"
	"sync"

	"github.com/alnah/go-md2man/internal/pipeline"
)

// engineConfig holds engine options.
type engineConfig struct {
	highlightStyle string
}

// Option configures an Engine.
type Option func(*engineConfig)

// WithHighlighting enables chroma syntax highlighting of fenced code
// blocks that name a language, using CSS classes styled by the named
// chroma style. Only HTML engines highlight; an empty style disables it.
func WithHighlighting(style string) Option {
	return func(c *engineConfig) {
		c.highlightStyle = style
	}
}

// Heading describes one heading of a rendered document.
type Heading struct {
	Level int    // 1-6
	Text  string // Visible text
	Slug  string // Unique within the document
}

// Document is a rendered page with its headings in document order.
type Document struct {
	Output   string
	Headings []Heading
}

// Engine renders manual page Markdown to one output format.
// An Engine is safe for concurrent use.
type Engine struct {
	inner *pipeline.Engine
}

// NewHTMLEngine creates an engine producing HTML fragments.
// Returns ErrHighlightStyle if WithHighlighting names an unknown style.
func NewHTMLEngine(opts ...Option) (*Engine, error) {
	return newEngine(pipeline.FormatHTML, opts)
}

// NewRoffEngine creates an engine producing roff for man(1).
func NewRoffEngine(opts ...Option) (*Engine, error) {
	return newEngine(pipeline.FormatRoff, opts)
}

func newEngine(format pipeline.Format, opts []Option) (*Engine, error) {
	var cfg engineConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var engineOpts []pipeline.EngineOption
	if format == pipeline.FormatHTML && cfg.highlightStyle != "" {
		engineOpts = append(engineOpts, pipeline.WithHighlighting(cfg.highlightStyle))
	}

	inner, err := pipeline.NewEngine(format, engineOpts...)
	if err != nil {
		return nil, convertError(err)
	}
	return &Engine{inner: inner}, nil
}

// Format returns "html" or "roff".
func (e *Engine) Format() string {
	return e.inner.Format().String()
}

// Render renders source. Empty input renders to empty output.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (e *Engine) Render(source string) (output string, err error) {
	doc, err := e.RenderDocument(source)
	if err != nil {
		return "", err
	}
	return doc.Output, nil
}

// RenderDocument renders source and reports its headings.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (e *Engine) RenderDocument(source string) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("%w: internal error: %v", ErrRender, r)
		}
	}()

	rendered, err := e.inner.RenderDocument(source)
	if err != nil {
		return nil, convertError(err)
	}
	return fromPipelineDocument(rendered), nil
}

func fromPipelineDocument(d *pipeline.Document) *Document {
	headings := make([]Heading, len(d.Headings))
	for i, h := range d.Headings {
		headings[i] = Heading{Level: h.Level, Text: h.Text, Slug: h.Slug}
	}
	return &Document{Output: d.Output, Headings: headings}
}

func toPipelineDocument(d *Document) *pipeline.Document {
	headings := make([]pipeline.HeadingRecord, len(d.Headings))
	for i, h := range d.Headings {
		headings[i] = pipeline.HeadingRecord{Level: h.Level, Text: h.Text, Slug: h.Slug}
	}
	return &pipeline.Document{Output: d.Output, Headings: headings}
}

// Default engines, created on first use.
var (
	defaultHTMLEngine = sync.OnceValues(func() (*Engine, error) { return NewHTMLEngine() })
	defaultRoffEngine = sync.OnceValues(func() (*Engine, error) { return NewRoffEngine() })
)

// RenderHTML renders source to an HTML fragment with the default engine.
func RenderHTML(source string) (string, error) {
	engine, err := defaultHTMLEngine()
	if err != nil {
		return "", err
	}
	return engine.Render(source)
}

// RenderRoff renders source to roff with the default engine.
func RenderRoff(source string) (string, error) {
	engine, err := defaultRoffEngine()
	if err != nil {
		return "", err
	}
	return engine.Render(source)
}

// HighlightStyles returns the names of the available highlighting styles.
func HighlightStyles() []string {
	return pipeline.HighlightStyles()
}
