package pipeline

import (
	"bytes"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Sentinel errors for engine construction and rendering.
var (
	ErrRender        = errors.New("rendering failed")
	ErrUnknownFormat = errors.New("unknown output format")
)

// Format selects the markup an Engine emits.
type Format int

const (
	// FormatHTML renders an HTML fragment.
	FormatHTML Format = iota
	// FormatRoff renders roff for man(1).
	FormatRoff
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatHTML:
		return "html"
	case FormatRoff:
		return "roff"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Transformer priorities. goldmark runs lower values first; the tagged
// paragraph transformer must see paragraphs after link reference
// definitions have been removed (priority 100).
const (
	taggedParagraphPriority = 200
	referencePriority       = 100
	headingPriority         = 200
	htmlRendererPriority    = 100
	roffRendererPriority    = 1000
)

// engineConfig holds the options of an Engine.
type engineConfig struct {
	highlightStyle string
}

// EngineOption configures an Engine.
type EngineOption func(*engineConfig)

// WithHighlighting enables chroma syntax highlighting of fenced code blocks
// that name a language. It only affects HTML engines; an empty style
// disables highlighting.
func WithHighlighting(style string) EngineOption {
	return func(c *engineConfig) {
		c.highlightStyle = style
	}
}

// Engine renders manual page Markdown into one output format.
// An Engine is safe for concurrent use: all per-document state lives in
// the parser context created by each Render call.
type Engine struct {
	format Format
	md     goldmark.Markdown
	pre    MarkdownPreprocessor
}

// Document is the result of rendering one source document.
type Document struct {
	Output   string
	Headings []HeadingRecord
}

// NewEngine creates an Engine for format.
func NewEngine(format Format, opts ...EngineOption) (*Engine, error) {
	var cfg engineConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	gmOpts := []goldmark.Option{
		goldmark.WithExtensions(extension.Linkify),
		goldmark.WithParserOptions(
			parser.WithParagraphTransformers(
				util.Prioritized(&taggedParagraphTransformer{}, taggedParagraphPriority),
			),
			parser.WithASTTransformers(
				util.Prioritized(&referenceTransformer{}, referencePriority),
				util.Prioritized(&headingTransformer{}, headingPriority),
			),
		),
	}

	switch format {
	case FormatHTML:
		gmOpts = append(gmOpts, goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(util.Prioritized(NewHTMLRenderer(), htmlRendererPriority)),
		))
		if cfg.highlightStyle != "" {
			if err := ValidateHighlightStyle(cfg.highlightStyle); err != nil {
				return nil, err
			}
			gmOpts = append(gmOpts, goldmark.WithExtensions(
				highlighting.NewHighlighting(
					highlighting.WithStyle(cfg.highlightStyle),
					highlighting.WithFormatOptions(
						chromahtml.WithClasses(true), // styled by the stylesheet from HighlightCSS
					),
				),
			))
		}
	case FormatRoff:
		gmOpts = append(gmOpts, goldmark.WithRenderer(
			renderer.NewRenderer(renderer.WithNodeRenderers(
				util.Prioritized(NewRoffRenderer(), roffRendererPriority),
			)),
		))
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}

	return &Engine{
		format: format,
		md:     goldmark.New(gmOpts...),
		pre:    &SourcePreprocessor{},
	}, nil
}

// Format returns the output format of the engine.
func (e *Engine) Format() Format {
	return e.format
}

// Render renders source and returns the output unmodified.
func (e *Engine) Render(source string) (string, error) {
	doc, err := e.RenderDocument(source)
	if err != nil {
		return "", err
	}
	return doc.Output, nil
}

// RenderDocument renders source and also reports its headings.
// Each call uses a fresh slug registry.
func (e *Engine) RenderDocument(source string) (*Document, error) {
	src := []byte(e.pre.PreprocessMarkdown(source))

	pc := parser.NewContext(parser.WithIDs(NewSlugRegistry()))
	root := e.md.Parser().Parse(text.NewReader(src), parser.WithContext(pc))

	var buf bytes.Buffer
	if err := e.md.Renderer().Render(&buf, src, root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	return &Document{
		Output:   buf.String(),
		Headings: Headings(pc),
	}, nil
}
