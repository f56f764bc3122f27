package pipeline

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/unicode/norm"
)

// PermalinkClass marks the permalink anchor injected into headings.
const PermalinkClass = "md2man-permalink"

// fallbackSlug is used when a heading has no letters or digits.
const fallbackSlug = "section"

// slugSeparators matches runs of characters that do not survive in a slug.
var slugSeparators = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// Slugify derives a fragment identifier from visible heading text.
// Text is NFC-normalized first so decomposed accents stay in their word.
func Slugify(s string) string {
	slug := slugSeparators.ReplaceAllString(strings.ToLower(norm.NFC.String(s)), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return fallbackSlug
	}
	return slug
}

// ---------------------------------------------------------------------------
// Slug registry
// ---------------------------------------------------------------------------

// SlugRegistry hands out document-unique heading slugs.
// A registry serves exactly one render call.
type SlugRegistry struct {
	seen map[string]int
}

// Compile-time interface implementation check.
var _ parser.IDs = (*SlugRegistry)(nil)

// NewSlugRegistry returns an empty registry.
func NewSlugRegistry() *SlugRegistry {
	return &SlugRegistry{seen: make(map[string]int)}
}

// Register returns the slug for candidate: candidate itself the first time,
// candidate-N once it has been seen N times before.
func (r *SlugRegistry) Register(candidate string) string {
	n, taken := r.seen[candidate]
	if !taken {
		r.seen[candidate] = 0
		return candidate
	}
	for {
		n++
		slug := candidate + "-" + strconv.Itoa(n)
		if _, used := r.seen[slug]; !used {
			r.seen[candidate] = n
			r.seen[slug] = 0
			return slug
		}
	}
}

// Generate implements parser.IDs.
func (r *SlugRegistry) Generate(value []byte, kind ast.NodeKind) []byte {
	return []byte(r.Register(Slugify(string(value))))
}

// Put implements parser.IDs.
func (r *SlugRegistry) Put(value []byte) {
	if _, ok := r.seen[string(value)]; !ok {
		r.seen[string(value)] = 0
	}
}

// ---------------------------------------------------------------------------
// Heading records
// ---------------------------------------------------------------------------

// HeadingRecord describes one processed heading.
type HeadingRecord struct {
	Level int
	Text  string
	Slug  string
}

var headingsKey = parser.NewContextKey()

// Headings returns the headings recorded in pc, in document order.
func Headings(pc parser.Context) []HeadingRecord {
	v, _ := pc.Get(headingsKey).([]HeadingRecord)
	return v
}

// visibleText concatenates the text of n's descendants without markup.
// Line breaks read as a single space.
func visibleText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := c.(type) {
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			buf.Write(v.Segment.Value(source))
			if v.SoftLineBreak() || v.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(v.Value)
		case *ast.AutoLink:
			buf.Write(v.Label(source))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}

// ---------------------------------------------------------------------------
// Transformer
// ---------------------------------------------------------------------------

// headingTransformer assigns slugs to headings and marks the manual title.
type headingTransformer struct{}

// Compile-time interface implementation check.
var _ parser.ASTTransformer = (*headingTransformer)(nil)

// Transform implements parser.ASTTransformer.
func (t *headingTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()
	ids := pc.IDs()

	var records []HeadingRecord
	titled := false
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		visible := visibleText(heading, source)
		slug := ids.Generate([]byte(visible), ast.KindHeading)
		heading.SetAttributeString("id", slug)
		records = append(records, HeadingRecord{
			Level: heading.Level,
			Text:  visible,
			Slug:  string(slug),
		})

		if heading.Level == 1 && !titled {
			titled = true
			markTitle(heading, source)
		}
		return ast.WalkSkipChildren, nil
	})

	pc.Set(headingsKey, records)
}

// titleAttr marks the heading that carries the manual title.
const titleAttr = "md2man-title"

// isTitle reports whether heading was marked as the manual title.
func isTitle(heading *ast.Heading) bool {
	_, ok := heading.AttributeString(titleAttr)
	return ok
}

// markTitle flags heading as the manual title, then wraps its first word in
// a title span and everything after the following whitespace in a section
// span. The word may be made of several inline nodes, e.g. emphasis or a
// cross-reference; inline nodes other than text are never split.
// Headings that do not read "<word><space><rest>" get no spans.
func markTitle(heading *ast.Heading, source []byte) {
	heading.SetAttributeString(titleAttr, true)

	var word []ast.Node
	for c := heading.FirstChild(); c != nil; c = c.NextSibling() {
		t, ok := c.(*ast.Text)
		if !ok {
			if strings.ContainsAny(visibleText(c, source), " \t") {
				return
			}
			word = append(word, c)
			continue
		}
		cut := bytes.IndexAny(t.Segment.Value(source), " \t")
		if cut < 0 && !t.SoftLineBreak() && !t.HardLineBreak() {
			word = append(word, c)
			continue
		}
		splitTitle(heading, word, t, cut, source)
		return
	}
}

// splitTitle rebuilds heading as title span, gap, section span. The gap
// starts at byte cut of at, or at its line break when cut is negative.
func splitTitle(heading *ast.Heading, word []ast.Node, at *ast.Text, cut int, source []byte) {
	seg := at.Segment
	value := seg.Value(source)
	if cut < 0 {
		cut = len(value)
	}
	if cut == 0 && len(word) == 0 {
		return
	}
	gapEnd := cut
	for gapEnd < len(value) && (value[gapEnd] == ' ' || value[gapEnd] == '\t') {
		gapEnd++
	}

	var rest []ast.Node
	if gapEnd < len(value) {
		tail := ast.NewTextSegment(text.NewSegment(seg.Start+gapEnd, seg.Stop))
		tail.SetSoftLineBreak(at.SoftLineBreak())
		tail.SetHardLineBreak(at.HardLineBreak())
		rest = append(rest, tail)
	}
	for c := at.NextSibling(); c != nil; c = c.NextSibling() {
		rest = append(rest, c)
	}
	if len(rest) == 0 {
		return
	}

	heading.RemoveChildren(heading)

	title := NewSpan(SpanTitle)
	for _, n := range word {
		title.AppendChild(title, n)
	}
	if cut > 0 {
		title.AppendChild(title, ast.NewTextSegment(text.NewSegment(seg.Start, seg.Start+cut)))
	}
	heading.AppendChild(heading, title)

	gap := ast.NewTextSegment(text.NewSegment(seg.Start+cut, seg.Start+gapEnd))
	if gapEnd == len(value) {
		gap.SetSoftLineBreak(at.SoftLineBreak())
		gap.SetHardLineBreak(at.HardLineBreak())
	}
	heading.AppendChild(heading, gap)

	section := NewSpan(SpanSection)
	for _, n := range rest {
		section.AppendChild(section, n)
	}
	heading.AppendChild(heading, section)
}

// ---------------------------------------------------------------------------
// Span node
// ---------------------------------------------------------------------------

// SpanClass names the role of a Span.
type SpanClass string

// Span classes of a manual title heading.
const (
	SpanTitle   SpanClass = "md2man-title"
	SpanSection SpanClass = "md2man-section"
)

// KindSpan is the NodeKind of Span nodes.
var KindSpan = ast.NewNodeKind("Span")

// Span is an inline node grouping part of a title heading.
type Span struct {
	ast.BaseInline
	Class SpanClass
}

// NewSpan returns an empty Span of the given class.
func NewSpan(class SpanClass) *Span {
	return &Span{Class: class}
}

// Kind implements ast.Node.
func (n *Span) Kind() ast.NodeKind {
	return KindSpan
}

// Dump implements ast.Node.
func (n *Span) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Class": string(n.Class)}, nil)
}
