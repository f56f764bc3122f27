package md2man

import (
	"html"

	"github.com/alnah/go-md2man/internal/pipeline"
)

// IndexPage is one rendered page listed in an index.
type IndexPage struct {
	File        string // HTML file name within its section, e.g. "foo.1.html"
	Description string // NAME section summary
}

// IndexSection groups the pages of one man<N> directory.
type IndexSection struct {
	Dir   string // e.g. "man1"
	Pages []IndexPage
}

// ExtractDescription returns the summary of a rendered HTML page: the text
// after " - " in its NAME section, or "" when there is no NAME section.
func ExtractDescription(htmlContent string) string {
	return pipeline.ExtractDescription(htmlContent)
}

// BuildIndex renders the index listing of sections as an HTML fragment.
func BuildIndex(sections []IndexSection) string {
	return pipeline.BuildIndex(toPipelineSections(sections))
}

// BuildIndexDocument renders the index listing under a level-1 title,
// ready for PageBuilder.Build.
func BuildIndexDocument(title string, sections []IndexSection) *Document {
	inner := toPipelineSections(sections)

	output := pipeline.BuildIndex(inner)
	headings := []Heading{}
	if title != "" {
		output = "<h1>" + html.EscapeString(title) + "</h1>\n" + output
		headings = append(headings, Heading{Level: 1, Text: title})
	}
	for _, h := range pipeline.IndexHeadings(inner) {
		headings = append(headings, Heading{Level: h.Level, Text: h.Text, Slug: h.Slug})
	}

	return &Document{Output: output, Headings: headings}
}

// BuildSectionRedirect returns the content of man<N>/index.html, a
// redirect to the section anchor of the top-level index.
func BuildSectionRedirect(dir string) string {
	return pipeline.BuildSectionRedirect(dir)
}

// RewriteRelativePaths rewrites relative image and link targets of a page
// rendered from sourceDir so they resolve from outputDir. Cross-reference
// links are left alone.
func RewriteRelativePaths(htmlContent, sourceDir, outputDir string) (string, error) {
	return pipeline.RewriteRelativePaths(htmlContent, sourceDir, outputDir)
}

func toPipelineSections(sections []IndexSection) []pipeline.IndexSection {
	out := make([]pipeline.IndexSection, len(sections))
	for i, s := range sections {
		pages := make([]pipeline.IndexPage, len(s.Pages))
		for j, p := range s.Pages {
			pages[j] = pipeline.IndexPage{File: p.File, Description: p.Description}
		}
		out[i] = pipeline.IndexSection{Dir: s.Dir, Pages: pages}
	}
	return out
}
