// Package md2man renders Markdown manual pages to roff and HTML.
//
// # Quick Start
//
// Render a page with the default engines:
//
//	roff, err := md2man.RenderRoff(source)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("man/man1/foo.1", []byte(roff), 0644)
//
//	html, err := md2man.RenderHTML(source)
//
// # Manual Page Conventions
//
// On top of CommonMark, both engines understand three manual page idioms:
//
//   - Tagged paragraphs: a paragraph whose lines alternate between an
//     unindented label and a body indented by two spaces becomes a
//     definition list (.TP in roff, <dl> in HTML)
//   - Cross-references: name(section) tokens in running text link to
//     ../man<section>/<name>.<section>.html
//   - Permalinks: every heading gets a unique slug and, in HTML, an anchor
//     pointing at it; the first level-1 heading is the manual title
//     ("name section") and maps to .TH in roff
//
// # Configuration
//
// Use functional options to customize an engine:
//
//	engine, err := md2man.NewHTMLEngine(
//	    md2man.WithHighlighting("monokai"),
//	)
//
// Engines are safe for concurrent use. Each Render call keeps its own slug
// registry, so headings are numbered per document.
//
// # Standalone Pages
//
// HTML output is a fragment. PageBuilder wraps it in a complete document
// with the built-in man page stylesheet, a table of contents and the NAME
// description as meta description:
//
//	builder, err := md2man.NewPageBuilder(md2man.WithPageHighlighting("monokai"))
//	doc, err := engine.RenderDocument(source)
//	page, err := builder.Build(doc)
//
// Override the stylesheet or template with WithAssetPath:
//
//	assets/
//	├── styles/
//	│   └── manpage.css
//	└── templates/
//	    └── page.html
//
// # Index Pages
//
// ExtractDescription and BuildIndex produce the index.html listing of a
// man/ tree, one definition per page with its NAME description.
package md2man
