// Package pipeline implements the manual page rendering pipeline.
//
// This package drives goldmark with three manual page hooks and two leaf
// renderers:
//   - Tagged paragraphs: a paragraph transformer turning "label + two-space
//     indented body" groups into definition lists
//   - Cross-references: an AST transformer linking name(section) tokens
//   - Permalinks: an AST transformer giving every heading a unique slug,
//     with title and section spans on the manual title heading
//   - HTML and roff node renderers
//
// An Engine owns one goldmark instance per output format. Per-document
// state (the slug registry and the heading records) lives in the parser
// context created by each render call, so engines are shared freely.
//
// The package also holds the HTML post-processing used by the build
// command: NAME description extraction, index pages, standalone page
// wrapping and relative path rewriting.
package pipeline
