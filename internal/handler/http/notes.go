package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-notes-keeper/internal/app"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/utils"
	"github.com/MKhiriev/go-notes-keeper/internal/validators"
	"github.com/MKhiriev/go-notes-keeper/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) countNotes(w http.ResponseWriter, r *http.Request) {
	count, err := h.services.NotesService.Count(r.Context())
	if err != nil {
		h.writeServiceError(w, r, "*Handler.countNotes", err)
		return
	}

	_, _ = utils.WriteJSON(w, models.NotesCount{Count: count}, http.StatusOK)
}

func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.listNotes").Msg("invalid query params")
		utils.WriteError(w, app.MsgInvalidQueryParams, http.StatusUnprocessableEntity)
		return
	}

	notes, err := h.services.NotesService.List(r.Context(), page)
	if err != nil {
		h.writeServiceError(w, r, "*Handler.listNotes", err)
		return
	}

	_, _ = utils.WriteJSON(w, notes, http.StatusOK)
}

func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	note, err := h.services.NotesService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, "*Handler.getNote", err)
		return
	}

	_, _ = utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeContent(w, r)
	if !ok {
		return
	}

	note, err := h.services.NotesService.Create(r.Context(), body.Content)
	if err != nil {
		h.writeServiceError(w, r, "*Handler.createNote", err)
		return
	}

	_, _ = utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeContent(w, r)
	if !ok {
		return
	}

	note, err := h.services.NotesService.Update(r.Context(), chi.URLParam(r, "id"), body.Content)
	if err != nil {
		h.writeServiceError(w, r, "*Handler.updateNote", err)
		return
	}

	_, _ = utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	if err := h.services.NotesService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, r, "*Handler.deleteNote", err)
		return
	}

	_, _ = utils.WriteJSON(w, models.MessageResponse{Message: app.MsgNoteDeleted}, http.StatusOK)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, fn string, err error) {
	status := statusFromError(err)
	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", fn).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("func", fn).Int("status", status).Msg("request rejected")
	}

	var verr *validators.ValidationError
	if errors.As(err, &verr) {
		utils.WriteError(w, verr.Error(), status)
		return
	}

	utils.WriteError(w, detailFor(status), status)
}

// decodeContent reads {"content": "..."}; it writes a 422 and reports false
// when the body is not that shape.
func decodeContent(w http.ResponseWriter, r *http.Request) (models.NoteContent, bool) {
	var body struct {
		Content *string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Content == nil {
		logger.FromRequest(r).Debug().Err(err).Msg("invalid note body")
		utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusUnprocessableEntity)
		return models.NoteContent{}, false
	}

	return models.NoteContent{Content: *body.Content}, true
}

// pageFromQuery reads skip and limit, defaulting to the first page of 10.
func pageFromQuery(r *http.Request) (models.NotesPage, error) {
	page := models.DefaultNotesPage()
	q := r.URL.Query()

	if v := q.Get("skip"); v != "" {
		skip, err := strconv.Atoi(v)
		if err != nil {
			return models.NotesPage{}, err
		}
		page.Skip = skip
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return models.NotesPage{}, err
		}
		page.Limit = limit
	}

	return page, nil
}
