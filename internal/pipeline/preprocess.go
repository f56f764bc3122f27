package pipeline

import (
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)
)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(content string) string
}

// SourcePreprocessor prepares manual page source before it reaches goldmark.
// It never touches indentation: tagged paragraphs and code blocks are
// recognized from the exact leading spaces of each line.
type SourcePreprocessor struct{}

// PreprocessMarkdown applies all transformations to prepare Markdown for parsing.
func (p *SourcePreprocessor) PreprocessMarkdown(content string) string {
	content = normalizeLineEndings(content)
	content = ensureFinalNewline(content)
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// ensureFinalNewline terminates the last line so code blocks always end
// with a line break.
func ensureFinalNewline(content string) string {
	if content == "" || strings.HasSuffix(content, "\n") {
		return content
	}
	return content + "\n"
}
