package configbox

import (
	"errors"
	"fmt"

	"github.com/samber/oops"
)

var (
	// ErrNotFound is returned when the configuration file does not exist.
	ErrNotFound = errors.New("configuration file not found")

	// ErrEmptyDocument is returned when the document parses to nothing.
	ErrEmptyDocument = errors.New("configuration document is empty")

	// ErrParse is returned when the document is not well-formed.
	// The parser diagnostic is kept in the error message.
	ErrParse = errors.New("malformed configuration document")
)

func errorBuilder(code, path string) oops.OopsErrorBuilder {
	return oops.
		In("configbox").
		Code(code).
		With("path", path)
}

func notFoundError(path string, cause error) error {
	return errorBuilder("not_found", path).Wrapf(fmt.Errorf("%w: %w", ErrNotFound, cause), "failed to open %s", path)
}

func emptyDocumentError(path string) error {
	return errorBuilder("empty_document", path).Wrapf(ErrEmptyDocument, "failed to load %s", path)
}

func parseError(path string, cause error) error {
	return errorBuilder("parse", path).Wrapf(fmt.Errorf("%w: %w", ErrParse, cause), "failed to parse %s", path)
}
