package codec

import (
	"errors"
	"fmt"
)

// ErrUnsupportedVersion is wrapped by the FormatError returned for files
// written by a newer format version.
var ErrUnsupportedVersion = errors.New("unsupported format version")

// FormatError reports serialized input that is malformed or incomplete.
// Field names the offending field using a JSON-path-like notation such as
// "strokes[2].points[0].x"; it is empty for errors about the whole input.
type FormatError struct {
	Field  string
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	msg := "sketch format"
	if e.Field != "" {
		msg += ": " + e.Field
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error { return e.Err }

func missing(field string) error {
	return &FormatError{Field: field, Reason: "missing required field"}
}

func invalid(field, format string, args ...any) error {
	return &FormatError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
