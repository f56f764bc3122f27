package md2man

import (
	"fmt"

	"github.com/alnah/go-md2man/internal/pipeline"
)

// pageConfig holds PageBuilder options.
type pageConfig struct {
	loader         AssetLoader
	assetPath      string
	style          string
	template       string
	highlightStyle string
}

// PageOption configures a PageBuilder.
type PageOption func(*pageConfig)

// WithAssetLoader serves the stylesheet and template from loader.
func WithAssetLoader(loader AssetLoader) PageOption {
	return func(c *pageConfig) {
		c.loader = loader
	}
}

// WithAssetPath serves assets from a directory, falling back to the
// built-in ones. Ignored when WithAssetLoader is also given.
func WithAssetPath(path string) PageOption {
	return func(c *pageConfig) {
		c.assetPath = path
	}
}

// WithStyle selects the stylesheet by name (default "manpage").
func WithStyle(name string) PageOption {
	return func(c *pageConfig) {
		c.style = name
	}
}

// WithTemplate selects the page template by name (default "page").
func WithTemplate(name string) PageOption {
	return func(c *pageConfig) {
		c.template = name
	}
}

// WithPageHighlighting appends the CSS of a chroma style, matching pages
// rendered by an engine created with WithHighlighting(style).
func WithPageHighlighting(style string) PageOption {
	return func(c *pageConfig) {
		c.highlightStyle = style
	}
}

// PageBuilder wraps rendered HTML documents in standalone pages.
// A PageBuilder is safe for concurrent use.
type PageBuilder struct {
	tmpl *pipeline.PageTemplate
	css  string
}

// NewPageBuilder loads the stylesheet and page template and parses the
// template once.
func NewPageBuilder(opts ...PageOption) (*PageBuilder, error) {
	cfg := pageConfig{
		style:    DefaultStyle,
		template: DefaultTemplate,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	loader := cfg.loader
	if loader == nil {
		var err error
		if loader, err = NewAssetLoader(cfg.assetPath); err != nil {
			return nil, err
		}
	}

	css, err := loader.LoadStyle(cfg.style)
	if err != nil {
		return nil, fmt.Errorf("loading style: %w", err)
	}
	if cfg.highlightStyle != "" {
		chromaCSS, err := pipeline.HighlightCSS(cfg.highlightStyle)
		if err != nil {
			return nil, convertError(err)
		}
		css += "\n" + chromaCSS
	}

	content, err := loader.LoadTemplate(cfg.template)
	if err != nil {
		return nil, fmt.Errorf("loading template: %w", err)
	}
	tmpl, err := pipeline.NewPageTemplate(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageRender, err)
	}

	return &PageBuilder{tmpl: tmpl, css: css}, nil
}

// Build returns doc as a complete HTML page. The title is the first
// heading; the description is the NAME section summary.
func (b *PageBuilder) Build(doc *Document) (string, error) {
	page, err := b.tmpl.Render(toPipelineDocument(doc), b.css)
	if err != nil {
		return "", convertError(err)
	}
	return page, nil
}
