package validators

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrContentRequired = errors.New("content is required")
	ErrContentTooShort = errors.New("content is too short")
	ErrInvalidNoteID   = errors.New("invalid note id")
	ErrInvalidSkip     = errors.New("invalid skip")
	ErrInvalidLimit    = errors.New("invalid limit")
)

// ValidationError is a field-level validation failure. Fields maps a field
// name to its human-readable messages; Err is the first rule that failed.
type ValidationError struct {
	Fields map[string][]string
	Err    error
}

func (e *ValidationError) Error() string {
	var parts []string
	for _, field := range slices.Sorted(maps.Keys(e.Fields)) {
		parts = append(parts, strings.Join(e.Fields[field], "; "))
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Message returns the first message recorded for field, or "".
func (e *ValidationError) Message(field string) string {
	if msgs := e.Fields[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func (e *ValidationError) add(field, msg string, err error) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
	if e.Err == nil {
		e.Err = err
	}
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
