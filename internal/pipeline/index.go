package pipeline

import (
	"html"
	"regexp"
	"strings"

	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// nameSection is the heading text of the section holding a page's
// one-line description.
const nameSection = "NAME"

// descriptionSeparator splits "page - description" in a NAME section.
var descriptionSeparator = regexp.MustCompile(`\s+-\s+`)

// whitespaceRun collapses line breaks and indentation in extracted text.
var whitespaceRun = regexp.MustCompile(`\s+`)

// ExtractDescription returns the one-line description of a rendered HTML
// manual page: the text of its NAME section after the first " - ".
// Returns "" when the page has no NAME section or cannot be parsed.
func ExtractDescription(htmlContent string) string {
	doc, _, err := parseHTML(htmlContent)
	if err != nil {
		return ""
	}

	heading := findNameHeading(doc)
	if heading == nil {
		return ""
	}

	var buf strings.Builder
	for n := heading.NextSibling; n != nil; n = n.NextSibling {
		if n.Type == nethtml.ElementNode && n.DataAtom == atom.H2 {
			break
		}
		writeText(&buf, n)
	}

	text := strings.TrimSpace(whitespaceRun.ReplaceAllString(buf.String(), " "))
	parts := descriptionSeparator.Split(text, 2)
	return strings.TrimSpace(parts[len(parts)-1])
}

// findNameHeading returns the first h2 whose text is NAME.
func findNameHeading(n *nethtml.Node) *nethtml.Node {
	if n.Type == nethtml.ElementNode && n.DataAtom == atom.H2 {
		var buf strings.Builder
		writeText(&buf, n)
		if strings.TrimSpace(buf.String()) == nameSection {
			return n
		}
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNameHeading(c); found != nil {
			return found
		}
	}
	return nil
}

// writeText appends the text content of n to buf.
func writeText(buf *strings.Builder, n *nethtml.Node) {
	if n.Type == nethtml.TextNode {
		buf.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(buf, c)
	}
}

// ---------------------------------------------------------------------------
// Index page
// ---------------------------------------------------------------------------

// IndexPage is one rendered manual page listed in the index.
type IndexPage struct {
	File        string // page file name, e.g. "foo.1.html"
	Description string
}

// IndexSection groups the pages of one manN directory.
type IndexSection struct {
	Dir   string // directory name, e.g. "man1"
	Pages []IndexPage
}

// PageLabel turns a page file name into its reference label:
// "foo.1.html" becomes "foo(1)".
func PageLabel(file string) string {
	base := strings.TrimSuffix(file, ".html")
	name, section, ok := strings.Cut(base, ".")
	if !ok {
		return base
	}
	return name + "(" + section + ")"
}

// BuildIndex renders the index page of a manual tree: one heading per
// section directory followed by one definition list per page.
func BuildIndex(sections []IndexSection) string {
	var buf strings.Builder
	for _, s := range sections {
		dir := html.EscapeString(s.Dir)
		buf.WriteString(`<h2 id="` + dir + `">` + dir + "</h2>\n")
		for _, p := range s.Pages {
			buf.WriteString(`<dl><dt><a href="`)
			buf.WriteString(dir + "/" + html.EscapeString(p.File))
			buf.WriteString(`">`)
			buf.WriteString(html.EscapeString(PageLabel(p.File)))
			buf.WriteString(`</a></dt><dd>`)
			buf.WriteString(html.EscapeString(p.Description))
			buf.WriteString("</dd></dl>\n")
		}
	}
	return buf.String()
}

// IndexHeadings returns the heading records of an index page, used to
// build its table of contents.
func IndexHeadings(sections []IndexSection) []HeadingRecord {
	records := make([]HeadingRecord, 0, len(sections))
	for _, s := range sections {
		records = append(records, HeadingRecord{Level: 2, Text: s.Dir, Slug: s.Dir})
	}
	return records
}

// BuildSectionRedirect renders the index.html of a section directory,
// which redirects to the section's anchor in the top-level index.
func BuildSectionRedirect(dir string) string {
	return `<meta http-equiv="refresh" content="0;url=../index.html#` + html.EscapeString(dir) + `"/>`
}
