package pipeline

import (
	"bytes"
	"strconv"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// RoffRenderer renders a manual page AST as roff for man(1).
// It is stateless and safe for concurrent use.
type RoffRenderer struct{}

// NewRoffRenderer returns a new RoffRenderer.
func NewRoffRenderer() renderer.NodeRenderer {
	return &RoffRenderer{}
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *RoffRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	// blocks
	reg.Register(ast.KindDocument, r.renderNothing)
	reg.Register(ast.KindHeading, r.renderHeading)
	reg.Register(ast.KindBlockquote, r.renderBlockquote)
	reg.Register(ast.KindCodeBlock, r.renderCodeBlock)
	reg.Register(ast.KindFencedCodeBlock, r.renderCodeBlock)
	reg.Register(ast.KindHTMLBlock, r.renderSkip)
	reg.Register(ast.KindList, r.renderList)
	reg.Register(ast.KindListItem, r.renderListItem)
	reg.Register(ast.KindParagraph, r.renderParagraph)
	reg.Register(ast.KindTextBlock, r.renderTextBlock)
	reg.Register(ast.KindThematicBreak, r.renderThematicBreak)
	reg.Register(extast.KindDefinitionList, r.renderNothing)
	reg.Register(extast.KindDefinitionTerm, r.renderDefinitionTerm)
	reg.Register(extast.KindDefinitionDescription, r.renderDefinitionDescription)

	// inlines
	reg.Register(ast.KindAutoLink, r.renderAutoLink)
	reg.Register(ast.KindCodeSpan, r.renderCodeSpan)
	reg.Register(ast.KindEmphasis, r.renderEmphasis)
	reg.Register(ast.KindImage, r.renderImage)
	reg.Register(ast.KindLink, r.renderLink)
	reg.Register(ast.KindRawHTML, r.renderSkip)
	reg.Register(ast.KindText, r.renderText)
	reg.Register(ast.KindString, r.renderString)
	reg.Register(KindReference, r.renderReference)
	reg.Register(KindSpan, r.renderNothing)
}

func (r *RoffRenderer) renderNothing(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	return ast.WalkContinue, nil
}

func (r *RoffRenderer) renderSkip(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	return ast.WalkSkipChildren, nil
}

// ---------------------------------------------------------------------------
// Blocks
// ---------------------------------------------------------------------------

func (r *RoffRenderer) renderHeading(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Heading)
	if !entering {
		_ = w.WriteByte('\n')
		return ast.WalkContinue, nil
	}
	switch {
	case n.Level == 1 && isTitle(n):
		_, _ = w.WriteString(".TH ")
	case n.Level <= 2:
		_, _ = w.WriteString(".SH ")
	default:
		_, _ = w.WriteString(".SS ")
	}
	return ast.WalkContinue, nil
}

func (r *RoffRenderer) renderParagraph(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_ = w.WriteByte('\n')
		return ast.WalkContinue, nil
	}
	if node.Parent() != nil && node.Parent().Kind() == ast.KindListItem {
		if node.PreviousSibling() != nil {
			_, _ = w.WriteString(".sp\n")
		}
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString(".PP\n")
	return ast.WalkContinue, nil
}

func (r *RoffRenderer) renderTextBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func (r *RoffRenderer) renderBlockquote(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(".PP\n.RS\n")
	} else {
		_, _ = w.WriteString(".RE\n")
	}
	return ast.WalkContinue, nil
}

func (r *RoffRenderer) renderCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString(".PP\n.RS\n.nf\n")
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		writeRoffEscaped(w, line.Value(source), true)
	}
	_, _ = w.WriteString(".fi\n.RE\n")
	return ast.WalkSkipChildren, nil
}

func (r *RoffRenderer) renderList(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !isNestedList(node) {
		return ast.WalkContinue, nil
	}
	if entering {
		_, _ = w.WriteString(".RS\n")
	} else {
		_, _ = w.WriteString(".RE\n")
	}
	return ast.WalkContinue, nil
}

func isNestedList(n ast.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Kind() == ast.KindListItem {
			return true
		}
	}
	return false
}

func (r *RoffRenderer) renderListItem(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	list, ok := node.Parent().(*ast.List)
	if !ok || !list.IsOrdered() {
		_, _ = w.WriteString(".IP \\(bu 2\n")
		return ast.WalkContinue, nil
	}
	index := 0
	for c := node.PreviousSibling(); c != nil; c = c.PreviousSibling() {
		index++
	}
	_, _ = w.WriteString(".IP " + strconv.Itoa(list.Start+index) + ". 4\n")
	return ast.WalkContinue, nil
}

func (r *RoffRenderer) renderThematicBreak(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(".ti 0\n\\l'\\n(.lu'\n")
	}
	return ast.WalkContinue, nil
}

func (r *RoffRenderer) renderDefinitionTerm(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(".TP\n")
	} else {
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func (r *RoffRenderer) renderDefinitionDescription(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	prev := node.PreviousSibling()
	if prev == nil || prev.Kind() != extast.KindDefinitionTerm {
		_, _ = w.WriteString(".IP\n")
	}
	return ast.WalkContinue, nil
}

// ---------------------------------------------------------------------------
// Inlines
// ---------------------------------------------------------------------------

func (r *RoffRenderer) renderText(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Text)
	writeRoffEscaped(w, n.Segment.Value(source), atLineStart(n))
	switch {
	case n.HardLineBreak():
		_, _ = w.WriteString("\n.br\n")
	case n.SoftLineBreak():
		if inHeading(n) {
			_ = w.WriteByte(' ')
		} else {
			_ = w.WriteByte('\n')
		}
	}
	return ast.WalkContinue, nil
}

func (r *RoffRenderer) renderString(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		n := node.(*ast.String)
		writeRoffEscaped(w, n.Value, atLineStart(n))
	}
	return ast.WalkContinue, nil
}

func (r *RoffRenderer) renderEmphasis(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Emphasis)
	switch {
	case !entering:
		_, _ = w.WriteString("\\fP")
	case n.Level >= 2:
		_, _ = w.WriteString("\\fB")
	default:
		_, _ = w.WriteString("\\fI")
	}
	return ast.WalkContinue, nil
}

func (r *RoffRenderer) renderCodeSpan(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	var buf bytes.Buffer
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			buf.Write(v.Segment.Value(source))
		case *ast.String:
			buf.Write(v.Value)
		}
	}
	_, _ = w.WriteString("\\fB")
	writeRoffEscaped(w, bytes.ReplaceAll(buf.Bytes(), []byte{'\n'}, []byte{' '}), false)
	_, _ = w.WriteString("\\fP")
	return ast.WalkSkipChildren, nil
}

func (r *RoffRenderer) renderLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Link)
	_, _ = w.WriteString(" \\[la]")
	writeRoffEscaped(w, n.Destination, false)
	_, _ = w.WriteString("\\[ra]")
	return ast.WalkContinue, nil
}

func (r *RoffRenderer) renderAutoLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.AutoLink)
	_, _ = w.WriteString("\\[la]")
	writeRoffEscaped(w, n.Label(source), false)
	_, _ = w.WriteString("\\[ra]")
	return ast.WalkSkipChildren, nil
}

func (r *RoffRenderer) renderImage(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		writeRoffEscaped(w, []byte(visibleText(node, source)), atLineStart(node))
	}
	return ast.WalkSkipChildren, nil
}

func (r *RoffRenderer) renderReference(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*Reference)
	_, _ = w.WriteString("\\fB")
	writeRoffEscaped(w, n.Name, false)
	_, _ = w.WriteString("\\fP(")
	_, _ = w.Write(n.Section)
	_ = w.WriteByte(')')
	return ast.WalkSkipChildren, nil
}

// ---------------------------------------------------------------------------
// Escaping
// ---------------------------------------------------------------------------

// atLineStart reports whether n is written at the beginning of an output
// line.
func atLineStart(n ast.Node) bool {
	prev := n.PreviousSibling()
	if prev == nil {
		parent := n.Parent()
		if parent == nil {
			return false
		}
		// Links and spans write nothing before their first child.
		switch parent.Kind() {
		case ast.KindLink, KindSpan:
			return atLineStart(parent)
		}
		return parent.Type() == ast.TypeBlock && parent.Kind() != ast.KindHeading
	}
	if t, ok := prev.(*ast.Text); ok {
		return t.HardLineBreak() || (t.SoftLineBreak() && !inHeading(n))
	}
	return false
}

func inHeading(n ast.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Kind() == ast.KindHeading {
			return true
		}
	}
	return false
}

// writeRoffEscaped writes value with roff escapes. When lineStart is set,
// a control character at the start of the value or of any line in it is
// neutralized.
func writeRoffEscaped(w util.BufWriter, value []byte, lineStart bool) {
	for _, c := range value {
		if lineStart && (c == '.' || c == '\'') {
			_, _ = w.WriteString("\\&")
		}
		switch c {
		case '\\':
			_, _ = w.WriteString("\\e")
		case '-':
			_, _ = w.WriteString("\\-")
		default:
			_ = w.WriteByte(c)
		}
		lineStart = c == '\n'
	}
}
