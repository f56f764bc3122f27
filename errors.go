package md2man

import (
	"errors"

	"github.com/alnah/go-md2man/internal/assets"
	"github.com/alnah/go-md2man/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrRender         = errors.New("rendering failed")
	ErrHighlightStyle = errors.New("unknown highlight style")
	ErrPageRender     = errors.New("page rendering failed")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

// convertError maps internal errors to public sentinels.
func convertError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, pipeline.ErrRender):
		return wrapError(ErrRender, err)
	case errors.Is(err, pipeline.ErrHighlightStyle):
		return wrapError(ErrHighlightStyle, err)
	case errors.Is(err, pipeline.ErrPageRender):
		return wrapError(ErrPageRender, err)
	case errors.Is(err, assets.ErrStyleNotFound):
		return wrapError(ErrStyleNotFound, err)
	case errors.Is(err, assets.ErrTemplateNotFound):
		return wrapError(ErrTemplateNotFound, err)
	case errors.Is(err, assets.ErrInvalidBasePath), errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrStyleNotFound, err) // Invalid name means not found
	default:
		return err
	}
}

// wrapError creates an error that reads like original and matches
// sentinel with errors.Is.
func wrapError(sentinel, original error) error {
	return &wrappedError{sentinel: sentinel, original: original}
}

type wrappedError struct {
	sentinel error
	original error
}

func (e *wrappedError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching.
// Internal errors are not exposed since they're in internal/ packages.
func (e *wrappedError) Unwrap() error {
	return e.sentinel
}
