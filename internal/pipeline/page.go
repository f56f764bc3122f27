package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"html/template"
	"strings"
)

// ErrPageRender indicates the standalone page template failed to execute.
var ErrPageRender = errors.New("page template rendering failed")

// TOC depth bounds: NAME-level sections (h2) and their subsections (h3).
const (
	tocMinDepth = 2
	tocMaxDepth = 3
)

// PageData is the input of the standalone page template.
type PageData struct {
	Title       string
	Description string
	CSS         template.CSS
	TOC         template.HTML
	Body        template.HTML
}

// PageTemplate wraps rendered manual pages in a complete HTML document.
type PageTemplate struct {
	tmpl *template.Template
}

// NewPageTemplate creates a PageTemplate from template content.
// Returns error if the template cannot be parsed.
func NewPageTemplate(tmplContent string) (*PageTemplate, error) {
	tmpl, err := template.New("page").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &PageTemplate{tmpl: tmpl}, nil
}

// Render builds a standalone page around a rendered document. The title
// comes from the first heading, the description from the NAME section.
// css is sanitized before it is placed in a <style> block.
func (p *PageTemplate) Render(doc *Document, css string) (string, error) {
	data := PageData{
		Title:       pageTitle(doc.Headings),
		Description: ExtractDescription(doc.Output),
		CSS:         template.CSS(sanitizeCSS(css)), // #nosec G203 -- sanitized above
		TOC:         template.HTML(generateTOC(doc.Headings, tocMinDepth, tocMaxDepth)), // #nosec G203 -- built from escaped text
		Body:        template.HTML(doc.Output),                                             // #nosec G203 -- rendered by goldmark without raw HTML
	}

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return buf.String(), nil
}

// pageTitle returns the text of the first heading, or "".
func pageTitle(headings []HeadingRecord) string {
	if len(headings) == 0 {
		return ""
	}
	return headings[0].Text
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// depthTracker normalizes heading levels for TOC nesting: the shallowest
// level seen first becomes depth 1 and level jumps nest by one step only.
type depthTracker struct {
	minLevelSeen int
	lastDepth    int
}

// next returns the effective depth of a heading at level.
func (d *depthTracker) next(level int) int {
	if d.minLevelSeen == 0 {
		d.minLevelSeen = level
	}

	depth := level - d.minLevelSeen + 1
	if depth < 1 {
		depth = 1
	}
	// H2 -> H4 becomes depth 1 -> depth 2
	if d.lastDepth > 0 && depth > d.lastDepth+1 {
		depth = d.lastDepth + 1
	}

	d.lastDepth = depth
	return depth
}

// generateTOC creates the table of contents of a page from its headings
// between minDepth and maxDepth. Returns "" when no heading qualifies.
func generateTOC(headings []HeadingRecord, minDepth, maxDepth int) string {
	var buf strings.Builder
	var tracker depthTracker

	for _, h := range headings {
		if h.Level < minDepth || h.Level > maxDepth {
			continue
		}
		if buf.Len() == 0 {
			buf.WriteString(`<nav class="toc"><div class="toc-list">`)
		}

		depth := tracker.next(h.Level)
		buf.WriteString(`<div class="toc-item"`)
		if depth > 1 {
			buf.WriteString(fmt.Sprintf(` style="padding-left:%.1fem"`, float64(depth-1)*1.5))
		}
		buf.WriteString(`><a href="#`)
		buf.WriteString(html.EscapeString(h.Slug))
		buf.WriteString(`">`)
		buf.WriteString(html.EscapeString(h.Text))
		buf.WriteString(`</a></div>`)
	}

	if buf.Len() == 0 {
		return ""
	}
	buf.WriteString(`</div></nav>`)
	return buf.String()
}
