package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that an asset name is a plain file stem:
// ASCII letters, digits, '-' and '_' only. Anything else, notably path
// separators and dots, returns ErrInvalidAssetName.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.IndexFunc(name, invalidNameRune) >= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

func invalidNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case r == '-', r == '_':
		return false
	}
	return true
}
