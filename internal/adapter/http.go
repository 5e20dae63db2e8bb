package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/utils"
	"github.com/MKhiriev/go-notes-keeper/models"
	"github.com/go-resty/resty/v2"
)

type httpNotesAdapter struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPNotesAdapter creates a [NotesAPI] bound to cfg.HTTPAddress.
func NewHTTPNotesAdapter(cfg config.ClientAdapter, log *logger.Logger) (NotesAPI, error) {
	if cfg.HTTPAddress == "" {
		return nil, fmt.Errorf("%w: empty notes API address", config.ErrInvalidAdapterConfigs)
	}

	return &httpNotesAdapter{
		client: utils.NewHTTPClient(cfg.HTTPAddress, cfg.RequestTimeout),
		logger: log,
	}, nil
}

func (h *httpNotesAdapter) GetNotesCount(ctx context.Context, token string) (int64, error) {
	resp, err := h.authedRequest(ctx, token).Get("/notes-count")
	if err := h.check("get notes count", resp, err); err != nil {
		return 0, err
	}

	var count models.NotesCount
	if err := decode(resp, &count); err != nil {
		return 0, fmt.Errorf("get notes count: %w", err)
	}

	return count.Count, nil
}

func (h *httpNotesAdapter) ListNotes(ctx context.Context, token string, skip, limit int) ([]models.Note, error) {
	resp, err := h.authedRequest(ctx, token).
		SetQueryParam("skip", strconv.Itoa(skip)).
		SetQueryParam("limit", strconv.Itoa(limit)).
		Get("/notes/")
	if err := h.check("list notes", resp, err); err != nil {
		return nil, err
	}

	notes := make([]models.Note, 0)
	if err := decode(resp, &notes); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	return notes, nil
}

func (h *httpNotesAdapter) GetNote(ctx context.Context, token, id string) (models.Note, error) {
	resp, err := h.authedRequest(ctx, token).
		SetPathParam("id", id).
		Get("/notes/{id}/")
	if err := h.check("get note", resp, err); err != nil {
		return models.Note{}, err
	}

	var note models.Note
	if err := decode(resp, &note); err != nil {
		return models.Note{}, fmt.Errorf("get note: %w", err)
	}

	return note, nil
}

func (h *httpNotesAdapter) CreateNote(ctx context.Context, token string, content models.NoteContent) (models.Note, error) {
	resp, err := h.authedRequest(ctx, token).
		SetHeader("Content-Type", "application/json").
		SetBody(content).
		Post("/notes/")
	if err := h.check("create note", resp, err); err != nil {
		return models.Note{}, err
	}

	var note models.Note
	if err := decode(resp, &note); err != nil {
		return models.Note{}, fmt.Errorf("create note: %w", err)
	}

	return note, nil
}

func (h *httpNotesAdapter) UpdateNote(ctx context.Context, token, id string, content models.NoteContent) (models.Note, error) {
	resp, err := h.authedRequest(ctx, token).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", id).
		SetBody(content).
		Put("/notes/{id}")
	if err := h.check("update note", resp, err); err != nil {
		return models.Note{}, err
	}

	var note models.Note
	if err := decode(resp, &note); err != nil {
		return models.Note{}, fmt.Errorf("update note: %w", err)
	}

	return note, nil
}

func (h *httpNotesAdapter) DeleteNote(ctx context.Context, token, id string) error {
	resp, err := h.authedRequest(ctx, token).
		SetPathParam("id", id).
		Delete("/notes/{id}")

	return h.check("delete note", resp, err)
}

func (h *httpNotesAdapter) authedRequest(ctx context.Context, token string) *resty.Request {
	return h.client.R().
		SetContext(ctx).
		SetAuthToken(token)
}

// check turns a transport error or a non-2xx response into an error wrapped
// with op.
func (h *httpNotesAdapter) check(op string, resp *resty.Response, err error) error {
	if err != nil {
		h.logger.Debug().Err(err).Str("op", op).Msg("notes API request failed")
		return fmt.Errorf("%s request: %w: %w", op, ErrTransport, err)
	}

	if err := mapHTTPError(resp); err != nil {
		h.logger.Debug().Err(err).Str("op", op).Int("status", resp.StatusCode()).Msg("notes API returned error status")
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func decode(resp *resty.Response, v any) error {
	if err := json.Unmarshal(resp.Body(), v); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return nil
}
