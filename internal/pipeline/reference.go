package pipeline

import (
	"regexp"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// ReferenceClass marks generated cross-reference links in HTML output.
const ReferenceClass = "md2man-reference"

// referencePattern matches a manual page cross-reference such as printf(3).
var referencePattern = regexp.MustCompile(`([\w-]+)\((\d+)\)`)

// ReferenceMatch is one cross-reference found in a text run.
// Start and End are byte offsets into the scanned text.
type ReferenceMatch struct {
	Start   int
	End     int
	Name    string
	Section string
}

// FindReferences returns the non-overlapping cross-references in text,
// scanning left to right.
func FindReferences(text []byte) []ReferenceMatch {
	locs := referencePattern.FindAllSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}
	matches := make([]ReferenceMatch, 0, len(locs))
	for _, loc := range locs {
		matches = append(matches, ReferenceMatch{
			Start:   loc[0],
			End:     loc[1],
			Name:    string(text[loc[2]:loc[3]]),
			Section: string(text[loc[4]:loc[5]]),
		})
	}
	return matches
}

// ReferenceHref returns the relative path of a manual page rendered to HTML.
func ReferenceHref(name, section string) string {
	return "../man" + section + "/" + name + "." + section + ".html"
}

// ---------------------------------------------------------------------------
// AST node
// ---------------------------------------------------------------------------

// KindReference is the NodeKind of Reference nodes.
var KindReference = ast.NewNodeKind("Reference")

// Reference is an inline node linking to another manual page.
// Its children hold the matched text, e.g. "printf(3)".
type Reference struct {
	ast.BaseInline
	Name    []byte
	Section []byte
}

// NewReference returns a Reference node for name(section).
func NewReference(name, section []byte) *Reference {
	return &Reference{Name: name, Section: section}
}

// Kind implements ast.Node.
func (n *Reference) Kind() ast.NodeKind {
	return KindReference
}

// Href returns the link target of the reference.
func (n *Reference) Href() string {
	return ReferenceHref(string(n.Name), string(n.Section))
}

// Dump implements ast.Node.
func (n *Reference) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Name":    string(n.Name),
		"Section": string(n.Section),
	}, nil)
}

// ---------------------------------------------------------------------------
// Transformer
// ---------------------------------------------------------------------------

// referenceTransformer replaces name(section) tokens found in text runs
// with Reference nodes.
type referenceTransformer struct{}

// Compile-time interface implementation check.
var _ parser.ASTTransformer = (*referenceTransformer)(nil)

// textRun is a sequence of adjacent Text siblings covering one contiguous
// source range.
type textRun struct {
	nodes []*ast.Text
}

func (r textRun) segment() text.Segment {
	first := r.nodes[0].Segment
	last := r.nodes[len(r.nodes)-1].Segment
	return text.NewSegment(first.Start, last.Stop)
}

// Transform implements parser.ASTTransformer.
func (t *referenceTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()

	var runs []textRun
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if !isLinkable(n) {
			return ast.WalkSkipChildren, nil
		}
		if n.HasChildren() {
			runs = append(runs, collectRuns(n)...)
		}
		return ast.WalkContinue, nil
	})

	// Rewriting happens after the walk so new nodes are never visited.
	for _, run := range runs {
		linkRun(run, source)
	}
}

// isLinkable reports whether text below n may hold cross-references.
func isLinkable(n ast.Node) bool {
	switch n.Kind() {
	case ast.KindCodeSpan, ast.KindCodeBlock, ast.KindFencedCodeBlock,
		ast.KindHTMLBlock, ast.KindRawHTML, ast.KindImage, ast.KindLink,
		ast.KindAutoLink, KindReference:
		return false
	}
	return true
}

// collectRuns groups the direct Text children of parent into runs. A run
// ends at any other node, at a raw or non-contiguous segment, and after a
// line break.
func collectRuns(parent ast.Node) []textRun {
	var runs []textRun
	var cur textRun

	flush := func() {
		if len(cur.nodes) > 0 {
			runs = append(runs, cur)
			cur = textRun{}
		}
	}

	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		txt, ok := c.(*ast.Text)
		if !ok || txt.IsRaw() {
			flush()
			continue
		}
		if len(cur.nodes) > 0 {
			prev := cur.nodes[len(cur.nodes)-1]
			if prev.SoftLineBreak() || prev.HardLineBreak() || prev.Segment.Stop != txt.Segment.Start {
				flush()
			}
		}
		cur.nodes = append(cur.nodes, txt)
	}
	flush()
	return runs
}

// linkRun rewrites one run, leaving it untouched when it holds no match.
func linkRun(run textRun, source []byte) {
	seg := run.segment()
	value := seg.Value(source)
	matches := FindReferences(value)
	if len(matches) == 0 {
		return
	}

	first := run.nodes[0]
	last := run.nodes[len(run.nodes)-1]
	parent := first.Parent()
	anchor := last.NextSibling()
	soft, hard := last.SoftLineBreak(), last.HardLineBreak()

	for _, n := range run.nodes {
		parent.RemoveChild(parent, n)
	}

	insert := func(n ast.Node) {
		if anchor == nil {
			parent.AppendChild(parent, n)
			return
		}
		parent.InsertBefore(parent, anchor, n)
	}

	pos := 0
	for _, m := range matches {
		if m.Start > pos {
			insert(ast.NewTextSegment(text.NewSegment(seg.Start+pos, seg.Start+m.Start)))
		}
		ref := NewReference([]byte(m.Name), []byte(m.Section))
		ref.AppendChild(ref, ast.NewTextSegment(text.NewSegment(seg.Start+m.Start, seg.Start+m.End)))
		insert(ref)
		pos = m.End
	}

	var end *ast.Text
	if pos < len(value) {
		end = ast.NewTextSegment(text.NewSegment(seg.Start+pos, seg.Stop))
		insert(end)
	} else if soft || hard {
		end = ast.NewTextSegment(text.NewSegment(seg.Stop, seg.Stop))
		insert(end)
	}
	if end != nil {
		end.SetSoftLineBreak(soft)
		end.SetHardLineBreak(hard)
	}
}
