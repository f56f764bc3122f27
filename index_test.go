package md2man

import (
	"strings"
	"testing"
)

var testSections = []IndexSection{
	{Dir: "man1", Pages: []IndexPage{{File: "foo.1.html", Description: "frobnicate"}}},
	{Dir: "man5", Pages: []IndexPage{{File: "foo.conf.5.html", Description: "a & b"}}},
}

func TestBuildIndex(t *testing.T) {
	t.Parallel()

	want := `<h2 id="man1">man1</h2>` + "\n" +
		`<dl><dt><a href="man1/foo.1.html">foo(1)</a></dt><dd>frobnicate</dd></dl>` + "\n" +
		`<h2 id="man5">man5</h2>` + "\n" +
		`<dl><dt><a href="man5/foo.conf.5.html">foo(conf.5)</a></dt><dd>a &amp; b</dd></dl>` + "\n"

	if got := BuildIndex(testSections); got != want {
		t.Errorf("BuildIndex() mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestBuildIndexDocument(t *testing.T) {
	t.Parallel()

	doc := BuildIndexDocument("Manual <pages>", testSections)

	if !strings.HasPrefix(doc.Output, "<h1>Manual &lt;pages&gt;</h1>\n<h2 id=\"man1\">") {
		t.Errorf("Output = %q, want escaped title then listing", doc.Output)
	}

	want := []Heading{
		{Level: 1, Text: "Manual <pages>"},
		{Level: 2, Text: "man1", Slug: "man1"},
		{Level: 2, Text: "man5", Slug: "man5"},
	}
	if len(doc.Headings) != len(want) {
		t.Fatalf("Headings = %+v, want %+v", doc.Headings, want)
	}
	for i := range want {
		if doc.Headings[i] != want[i] {
			t.Errorf("Headings[%d] = %+v, want %+v", i, doc.Headings[i], want[i])
		}
	}

	if untitled := BuildIndexDocument("", testSections); strings.Contains(untitled.Output, "<h1>") {
		t.Errorf("untitled index should have no <h1>: %q", untitled.Output)
	}
}

func TestBuildSectionRedirect(t *testing.T) {
	t.Parallel()

	want := `<meta http-equiv="refresh" content="0;url=../index.html#man5"/>`
	if got := BuildSectionRedirect("man5"); got != want {
		t.Errorf("BuildSectionRedirect() = %q, want %q", got, want)
	}
}

func TestRewriteRelativePaths(t *testing.T) {
	t.Parallel()

	got, err := RewriteRelativePaths(`<img src="logo.png">`, "man/man1", "site/man1")
	if err != nil {
		t.Fatalf("RewriteRelativePaths() error = %v", err)
	}
	if !strings.Contains(got, `src="../../man/man1/logo.png"`) {
		t.Errorf("RewriteRelativePaths() = %q", got)
	}
}
