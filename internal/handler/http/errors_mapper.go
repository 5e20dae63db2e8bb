package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-notes-keeper/internal/service"
	"github.com/MKhiriev/go-notes-keeper/internal/store"
)

var errorStatusMap = []struct {
	err    error
	status int
}{
	{service.ErrNoteNotFound, http.StatusNotFound},
	{service.ErrInvalidDataProvided, http.StatusUnprocessableEntity},
	{service.ErrInvalidToken, http.StatusUnauthorized},

	{store.ErrNoteNotFound, http.StatusNotFound},
	{store.ErrNoteAlreadyExists, http.StatusConflict},
	{store.ErrTemporarilyUnavailable, http.StatusServiceUnavailable},
}

func statusFromError(err error) int {
	for _, e := range errorStatusMap {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}
