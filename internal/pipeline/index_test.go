package pipeline

import (
	"testing"
)

// ---------------------------------------------------------------------------
// TestExtractDescription - NAME section parsing
// ---------------------------------------------------------------------------

func TestExtractDescription(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "plain name section",
			html: "<h2>NAME</h2>\n<p>foo - frobnicate the bar</p>\n<h2>SYNOPSIS</h2>\n<p>foo</p>\n",
			want: "frobnicate the bar",
		},
		{
			name: "permalinked heading and inline markup",
			html: `<h2 id="name"><a name="name" href="#name" class="md2man-permalink" title="permalink"></a>NAME</h2>` + "\n" +
				"<p>foo - convert <em>markdown</em> into\n<code>roff</code></p>\n",
			want: "convert markdown into roff",
		},
		{
			name: "no separator",
			html: "<h2>NAME</h2><p>just words</p>",
			want: "just words",
		},
		{
			name: "only first separator splits",
			html: "<h2>NAME</h2><p>foo - a - b</p>",
			want: "a - b",
		},
		{
			name: "entities decoded",
			html: "<h2>NAME</h2><p>foo - cats &amp; dogs</p>",
			want: "cats & dogs",
		},
		{
			name: "no name section",
			html: "<h2>SYNOPSIS</h2><p>foo - bar</p>",
			want: "",
		},
		{
			name: "full document",
			html: "<!DOCTYPE html><html><head><title>x</title></head><body><main><h2>NAME</h2><p>foo - bar</p></main></body></html>",
			want: "bar",
		},
		{
			name: "empty input",
			html: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ExtractDescription(tt.html); got != tt.want {
				t.Errorf("ExtractDescription() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractDescription_RenderedPage(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, FormatHTML)
	out := mustRender(t, engine, "# foo 1\n\n## NAME\n\nfoo - see bar(1) for more\n\n## SYNOPSIS\n\n`foo`\n")

	if got, want := ExtractDescription(out), "see bar(1) for more"; got != want {
		t.Errorf("ExtractDescription() = %q, want %q", got, want)
	}
}

// ---------------------------------------------------------------------------
// TestBuildIndex - Index page
// ---------------------------------------------------------------------------

func TestPageLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		file string
		want string
	}{
		{"foo.1.html", "foo(1)"},
		{"foo.3p.html", "foo(3p)"},
		{"noext.html", "noext"},
	}

	for _, tt := range tests {
		if got := PageLabel(tt.file); got != tt.want {
			t.Errorf("PageLabel(%q) = %q, want %q", tt.file, got, tt.want)
		}
	}
}

func TestBuildIndex(t *testing.T) {
	t.Parallel()

	sections := []IndexSection{
		{
			Dir: "man1",
			Pages: []IndexPage{
				{File: "foo.1.html", Description: "frobnicate the bar"},
				{File: "bar.1.html", Description: "cats & dogs"},
			},
		},
		{
			Dir:   "man5",
			Pages: []IndexPage{{File: "foo.conf.5.html", Description: ""}},
		},
	}

	want := `<h2 id="man1">man1</h2>` + "\n" +
		`<dl><dt><a href="man1/foo.1.html">foo(1)</a></dt><dd>frobnicate the bar</dd></dl>` + "\n" +
		`<dl><dt><a href="man1/bar.1.html">bar(1)</a></dt><dd>cats &amp; dogs</dd></dl>` + "\n" +
		`<h2 id="man5">man5</h2>` + "\n" +
		`<dl><dt><a href="man5/foo.conf.5.html">foo(conf.5)</a></dt><dd></dd></dl>` + "\n"

	if got := BuildIndex(sections); got != want {
		t.Errorf("BuildIndex() mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestBuildIndex_Empty(t *testing.T) {
	t.Parallel()

	if got := BuildIndex(nil); got != "" {
		t.Errorf("BuildIndex(nil) = %q, want empty", got)
	}
}

func TestIndexHeadings(t *testing.T) {
	t.Parallel()

	got := IndexHeadings([]IndexSection{{Dir: "man1"}, {Dir: "man8"}})
	want := []HeadingRecord{
		{Level: 2, Text: "man1", Slug: "man1"},
		{Level: 2, Text: "man8", Slug: "man8"},
	}
	if len(got) != len(want) {
		t.Fatalf("IndexHeadings() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("IndexHeadings()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestBuildSectionRedirect(t *testing.T) {
	t.Parallel()

	want := `<meta http-equiv="refresh" content="0;url=../index.html#man1"/>`
	if got := BuildSectionRedirect("man1"); got != want {
		t.Errorf("BuildSectionRedirect() = %q, want %q", got, want)
	}
}
