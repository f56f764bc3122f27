package pipeline

import (
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// HTMLRenderer renders the manual page specific nodes as HTML. It is
// layered over goldmark's HTML renderer, which handles every other node.
type HTMLRenderer struct {
	html.Config
}

// NewHTMLRenderer returns a new HTMLRenderer.
func NewHTMLRenderer(opts ...html.Option) renderer.NodeRenderer {
	r := &HTMLRenderer{Config: html.NewConfig()}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *HTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHeading, r.renderHeading)
	reg.Register(extast.KindDefinitionList, r.renderDefinitionList)
	reg.Register(extast.KindDefinitionTerm, r.renderDefinitionTerm)
	reg.Register(extast.KindDefinitionDescription, r.renderDefinitionDescription)
	reg.Register(KindReference, r.renderReference)
	reg.Register(KindSpan, r.renderSpan)
}

func (r *HTMLRenderer) renderHeading(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Heading)
	if !entering {
		_, _ = w.WriteString("</h")
		_ = w.WriteByte("0123456"[n.Level])
		_, _ = w.WriteString(">\n")
		return ast.WalkContinue, nil
	}

	_, _ = w.WriteString("<h")
	_ = w.WriteByte("0123456"[n.Level])
	id, ok := n.AttributeString("id")
	if !ok {
		_ = w.WriteByte('>')
		return ast.WalkContinue, nil
	}
	slug := util.EscapeHTML(id.([]byte))
	_, _ = w.WriteString(` id="`)
	_, _ = w.Write(slug)
	_, _ = w.WriteString(`"><a name="`)
	_, _ = w.Write(slug)
	_, _ = w.WriteString(`" href="#`)
	_, _ = w.Write(slug)
	_, _ = w.WriteString(`" class="` + PermalinkClass + `" title="permalink"></a>`)
	return ast.WalkContinue, nil
}

func (r *HTMLRenderer) renderDefinitionList(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("<dl>")
	} else {
		_, _ = w.WriteString("</dl>\n")
	}
	return ast.WalkContinue, nil
}

func (r *HTMLRenderer) renderDefinitionTerm(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("<dt>")
	} else {
		_, _ = w.WriteString("</dt>")
	}
	return ast.WalkContinue, nil
}

func (r *HTMLRenderer) renderDefinitionDescription(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("<dd>")
	} else {
		_, _ = w.WriteString("</dd>")
	}
	return ast.WalkContinue, nil
}

func (r *HTMLRenderer) renderReference(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*Reference)
	if entering {
		_, _ = w.WriteString(`<a class="` + ReferenceClass + `" href="`)
		_, _ = w.Write(util.EscapeHTML(util.URLEscape([]byte(n.Href()), true)))
		_, _ = w.WriteString(`">`)
	} else {
		_, _ = w.WriteString("</a>")
	}
	return ast.WalkContinue, nil
}

func (r *HTMLRenderer) renderSpan(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*Span)
	if entering {
		_, _ = w.WriteString(`<span class="` + string(n.Class) + `">`)
	} else {
		_, _ = w.WriteString("</span>")
	}
	return ast.WalkContinue, nil
}
