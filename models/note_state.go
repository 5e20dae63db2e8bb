package models

// ErrorSource tells a view where a mutation error came from so it can label it.
type ErrorSource string

const (
	ErrorSourceNone       ErrorSource = ""
	ErrorSourceValidation ErrorSource = "validation"
	ErrorSourceAPI        ErrorSource = "api"
)

// NoteState is the outcome of a create, update or delete mutation.
//
// On success Message holds a confirmation and Note (for create and update)
// holds the server copy. On failure Source tells whether the input was
// rejected locally or by the API, Errors holds field-level messages for
// validation failures and Message a human-readable summary.
type NoteState struct {
	Note    *Note
	Message string
	Source  ErrorSource
	Errors  map[string][]string
}

// Failed reports whether the mutation was rejected.
func (s NoteState) Failed() bool {
	return s.Source != ErrorSourceNone
}
