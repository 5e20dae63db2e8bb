// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context keys, HTTP response writing,
// HTTP client initialization, JWT validation and parsing, and id generation.
package utils

// contextKey is a private type for context keys.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

// TraceIDCtxKey is the key under which the trace id of a request is stored.
var TraceIDCtxKey = contextKey("traceID")
