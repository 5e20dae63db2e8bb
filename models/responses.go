package models

// MessageResponse is a plain confirmation body, e.g. after a delete.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the error body returned by the notes API.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
