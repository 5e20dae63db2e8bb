package validators

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-notes-keeper/models"
)

const (
	FieldContent = "content"
	FieldID      = "id"
	FieldSkip    = "skip"
	FieldLimit   = "limit"
)

// DefaultMinContentLength is the shortest note content accepted by the client.
const DefaultMinContentLength = 5

// NoteValidator validates note content, note ids and list pages.
type NoteValidator struct {
	minContent int
	trim       bool
	maxLimit   int
}

// NoteOption tunes a NoteValidator.
type NoteOption func(*NoteValidator)

// WithMinContentLength sets the minimum content length in characters.
func WithMinContentLength(n int) NoteOption {
	return func(v *NoteValidator) {
		v.minContent = n
	}
}

// WithTrimmedContent makes length checks ignore surrounding whitespace.
func WithTrimmedContent() NoteOption {
	return func(v *NoteValidator) {
		v.trim = true
	}
}

// WithMaxLimit caps the page size. Zero means no cap.
func WithMaxLimit(n int) NoteOption {
	return func(v *NoteValidator) {
		v.maxLimit = n
	}
}

// NewNoteValidator returns a validator requiring at least
// DefaultMinContentLength characters, whitespace included.
func NewNoteValidator(opts ...NoteOption) Validator {
	v := &NoteValidator{minContent: DefaultMinContentLength}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *NoteValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.NoteContent:
		return v.validateContent(value, fields...)
	case *models.NoteContent:
		return v.validateContent(*value, fields...)

	case models.Note:
		return v.validateNote(value, fields...)
	case *models.Note:
		return v.validateNote(*value, fields...)

	case models.NotesPage:
		return v.validatePage(value, fields...)
	case *models.NotesPage:
		return v.validatePage(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// ContentMessage is the message reported for content shorter than the minimum.
func (v *NoteValidator) ContentMessage() string {
	if v.minContent <= 1 {
		return "Content is required"
	}
	return fmt.Sprintf("Content must be at least %d characters long", v.minContent)
}

func (v *NoteValidator) validateContent(c models.NoteContent, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldContent}
	}

	verr := &ValidationError{}
	for _, f := range fields {
		switch f {
		case FieldContent:
			v.checkContent(verr, c.Content)
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}
	return verr.orNil()
}

func (v *NoteValidator) validateNote(n models.Note, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldContent}
	}

	verr := &ValidationError{}
	for _, f := range fields {
		switch f {
		case FieldID:
			if strings.TrimSpace(n.ID) == "" {
				verr.add(FieldID, "Note id is required", ErrInvalidNoteID)
			}
		case FieldContent:
			v.checkContent(verr, n.Content)
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}
	return verr.orNil()
}

func (v *NoteValidator) validatePage(p models.NotesPage, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldSkip, FieldLimit}
	}

	verr := &ValidationError{}
	for _, f := range fields {
		switch f {
		case FieldSkip:
			if p.Skip < 0 {
				verr.add(FieldSkip, "Skip must not be negative", ErrInvalidSkip)
			}
		case FieldLimit:
			if p.Limit <= 0 {
				verr.add(FieldLimit, "Limit must be positive", ErrInvalidLimit)
			} else if v.maxLimit > 0 && p.Limit > v.maxLimit {
				verr.add(FieldLimit, fmt.Sprintf("Limit must not exceed %d", v.maxLimit), ErrInvalidLimit)
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}
	return verr.orNil()
}

func (v *NoteValidator) checkContent(verr *ValidationError, content string) {
	if v.trim {
		content = strings.TrimSpace(content)
	}

	n := utf8.RuneCountInString(content)
	switch {
	case n == 0 && v.minContent > 0:
		verr.add(FieldContent, v.ContentMessage(), ErrContentRequired)
	case n < v.minContent:
		verr.add(FieldContent, v.ContentMessage(), ErrContentTooShort)
	}
}
