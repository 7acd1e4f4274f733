package changelog

import (
	"errors"
	"fmt"
)

// ErrMissingRepoURL is returned when rendering needs to derive a compare
// link but no repository URL was configured or inferred from the source.
var ErrMissingRepoURL = errors.New("missing repository URL")

// ParseError is a terminal parse failure with source context. Line is the
// 1-based source line of the offending token; Kind names its token kind
// when one applies.
type ParseError struct {
	Line    int
	Kind    string
	Message string
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Kind != "":
		return fmt.Sprintf("line %d (%s): %s", e.Line, e.Kind, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	default:
		return e.Message
	}
}

// parseErrorf builds a ParseError for the given token.
func parseErrorf(tok Token, format string, args ...any) *ParseError {
	return &ParseError{
		Line:    tok.Line,
		Kind:    tok.Kind.String(),
		Message: fmt.Sprintf(format, args...),
	}
}

// IsParseError reports whether err is (or wraps) a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
