package pipeline

import (
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// bodyIndent is the exact indentation of a tagged paragraph body line.
// Deeper indentation belongs to code blocks.
const bodyIndent = 2

// scanState is the state of the tagged paragraph line scanner.
type scanState int

const (
	awaitingTerm scanState = iota
	inBody
)

// taggedEntry is one definition list entry found by scanTagged.
// Values are line indexes; term is -1 for a body without label.
type taggedEntry struct {
	term int
	body []int
}

// scanTagged groups paragraph lines into (label, body) entries using their
// indentation. A label is an unindented line, a body line is indented by
// exactly bodyIndent spaces. Any other indentation (reported as -1 by the
// caller for tabs), two labels in a row or a trailing label without body
// means the lines are an ordinary paragraph and ok is false.
func scanTagged(indents []int) (entries []taggedEntry, ok bool) {
	state := awaitingTerm
	pendingTerm := -1

	for i, indent := range indents {
		switch indent {
		case 0:
			if state == awaitingTerm && pendingTerm >= 0 {
				return nil, false
			}
			pendingTerm = i
			state = awaitingTerm
		case bodyIndent:
			if state == awaitingTerm {
				entries = append(entries, taggedEntry{term: pendingTerm})
				pendingTerm = -1
				state = inBody
			}
			last := &entries[len(entries)-1]
			last.body = append(last.body, i)
		default:
			return nil, false
		}
	}

	if pendingTerm >= 0 || len(entries) == 0 {
		return nil, false
	}
	return entries, true
}

// lineIndent measures the indentation of the source line holding seg.
// It returns the number of leading spaces, the offset of the first content
// byte, and false when the line is nested in a container (something other
// than spaces precedes the segment) or is indented with tabs.
func lineIndent(source []byte, seg text.Segment) (indent, contentStart int, ok bool) {
	lineStart := seg.Start
	for lineStart > 0 && source[lineStart-1] == ' ' {
		lineStart--
	}
	if lineStart > 0 && source[lineStart-1] != '\n' {
		return 0, 0, false
	}

	contentStart = seg.Start
	for contentStart < seg.Stop && source[contentStart] == ' ' {
		contentStart++
	}
	if contentStart < seg.Stop && source[contentStart] == '\t' {
		return 0, 0, false
	}
	return contentStart - lineStart, contentStart, true
}

// taggedParagraphTransformer turns top-level paragraphs made of
// "label + two-space indented body" groups into definition lists.
type taggedParagraphTransformer struct{}

// Compile-time interface implementation check.
var _ parser.ParagraphTransformer = (*taggedParagraphTransformer)(nil)

// Transform implements parser.ParagraphTransformer.
func (t *taggedParagraphTransformer) Transform(node *ast.Paragraph, reader text.Reader, pc parser.Context) {
	parent := node.Parent()
	if parent == nil || parent.Kind() != ast.KindDocument {
		return
	}

	source := reader.Source()
	lines := node.Lines()
	if lines.Len() == 0 {
		return
	}

	indents := make([]int, lines.Len())
	starts := make([]int, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		indent, start, ok := lineIndent(source, lines.At(i))
		if !ok {
			return
		}
		indents[i], starts[i] = indent, start
	}

	entries, ok := scanTagged(indents)
	if !ok {
		return
	}

	list := extast.NewDefinitionList(0, nil)
	for _, entry := range entries {
		if entry.term >= 0 {
			term := extast.NewDefinitionTerm()
			term.Lines().Append(lineContent(source, lines.At(entry.term), starts[entry.term], true))
			list.AppendChild(list, term)
		}

		body := ast.NewTextBlock()
		for k, idx := range entry.body {
			last := k == len(entry.body)-1
			body.Lines().Append(lineContent(source, lines.At(idx), starts[idx], last))
		}
		desc := extast.NewDefinitionDescription()
		desc.AppendChild(desc, body)
		list.AppendChild(list, desc)
	}

	parent.ReplaceChild(parent, node, list)
}

// lineContent returns the segment of a line without its indentation.
// The final line of a block also loses its trailing whitespace so the
// inline parser does not emit a dangling line break.
func lineContent(source []byte, seg text.Segment, contentStart int, final bool) text.Segment {
	out := text.NewSegment(contentStart, seg.Stop)
	if final {
		out = out.TrimRightSpace(source)
	}
	return out
}
