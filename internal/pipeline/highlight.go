package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrHighlightStyle indicates an unknown chroma style name.
var ErrHighlightStyle = errors.New("unknown highlight style")

// ValidateHighlightStyle checks that style names a registered chroma style.
func ValidateHighlightStyle(style string) error {
	if _, ok := styles.Registry[style]; ok {
		return nil
	}
	return fmt.Errorf("%w: %q (available: %s)", ErrHighlightStyle, style, strings.Join(HighlightStyles(), ", "))
}

// HighlightStyles returns the registered chroma style names, sorted.
func HighlightStyles() []string {
	names := make([]string, 0, len(styles.Registry))
	for name := range styles.Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HighlightCSS returns the stylesheet matching the class-based markup of
// highlighted code blocks.
func HighlightCSS(style string) (string, error) {
	if err := ValidateHighlightStyle(style); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(style)); err != nil {
		return "", fmt.Errorf("writing %s stylesheet: %w", style, err)
	}
	return buf.String(), nil
}
