package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/metrics"
	"github.com/MKhiriev/go-notes-keeper/internal/mock"
	"github.com/MKhiriev/go-notes-keeper/internal/service"
	"github.com/MKhiriev/go-notes-keeper/internal/store"
	"github.com/MKhiriev/go-notes-keeper/internal/validators"
	"github.com/MKhiriev/go-notes-keeper/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	validToken = "valid-token"
	noteID     = "0190a5c4-1c1e-7cc4-a7a5-1d1f2f3e4d5c"
)

type routerFixture struct {
	notes   *mock.MockNotesAPIService
	auth    *mock.MockAuthService
	metrics *metrics.Manager
	router  http.Handler
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	notes := mock.NewMockNotesAPIService(ctrl)
	auth := mock.NewMockAuthService(ctrl)
	m, reg := metrics.NewTestManagerAndRegistry()

	auth.EXPECT().ParseToken(gomock.Any(), validToken).
		Return(models.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"}}, nil).AnyTimes()
	auth.EXPECT().ParseToken(gomock.Any(), gomock.Not(validToken)).
		Return(models.Claims{}, service.ErrInvalidToken).AnyTimes()

	h := NewHandler(&service.Services{AuthService: auth, NotesService: notes}, m, reg,
		models.NewAppBuildInfo("1.0.0", "2026-01-01", "abc123"), logger.Nop())

	return &routerFixture{notes: notes, auth: auth, metrics: m, router: h.Init()}
}

func (f *routerFixture) do(method, target, body string, authorized bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if authorized {
		req.Header.Set("Authorization", "Bearer "+validToken)
	}

	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func detailOf(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body.Detail
}

// ── public routes ───────────────────────────────────────────────────────────

func TestRoutes_Root(t *testing.T) {
	f := newRouterFixture(t)

	rr := f.do(http.MethodGet, "/", "", false)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Hello World"}`, rr.Body.String())
}

func TestRoutes_Version(t *testing.T) {
	f := newRouterFixture(t)

	rr := f.do(http.MethodGet, "/version", "", false)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Build version: 1.0.0")
	assert.Contains(t, rr.Body.String(), "Build commit: abc123")
}

func TestRoutes_Metrics(t *testing.T) {
	f := newRouterFixture(t)
	f.do(http.MethodGet, "/", "", false)

	rr := f.do(http.MethodGet, "/metrics", "", false)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "notes_test_request")
}

// ── auth ────────────────────────────────────────────────────────────────────

func TestRoutes_Notes_RequireAuth(t *testing.T) {
	f := newRouterFixture(t)

	rr := f.do(http.MethodGet, "/notes/", "", false)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))
	assert.Equal(t, "Not authenticated", detailOf(t, rr))
}

func TestRoutes_Notes_InvalidToken(t *testing.T) {
	f := newRouterFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/notes-count", nil)
	req.Header.Set("Authorization", "Bearer forged")
	rr := httptest.NewRecorder()

	f.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Could not validate credentials", detailOf(t, rr))
}

// ── notes ───────────────────────────────────────────────────────────────────

func TestRoutes_CountNotes(t *testing.T) {
	f := newRouterFixture(t)
	f.notes.EXPECT().Count(gomock.Any()).Return(int64(12), nil)

	rr := f.do(http.MethodGet, "/notes-count", "", true)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"count":12}`, rr.Body.String())
}

func TestRoutes_ListNotes_DefaultsAndTrailingSlash(t *testing.T) {
	f := newRouterFixture(t)
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f.notes.EXPECT().List(gomock.Any(), models.NotesPage{Skip: 0, Limit: 10}).
		Return([]models.Note{{ID: noteID, Content: "hello world", CreatedAt: created}}, nil).Times(2)

	for _, target := range []string{"/notes/", "/notes"} {
		rr := f.do(http.MethodGet, target, "", true)

		assert.Equal(t, http.StatusOK, rr.Code, target)
		var notes []models.Note
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &notes))
		require.Len(t, notes, 1)
		assert.Equal(t, noteID, notes[0].ID)
	}
}

func TestRoutes_ListNotes_Paging(t *testing.T) {
	f := newRouterFixture(t)
	f.notes.EXPECT().List(gomock.Any(), models.NotesPage{Skip: 20, Limit: 5}).Return([]models.Note{}, nil)

	rr := f.do(http.MethodGet, "/notes/?skip=20&limit=5", "", true)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestRoutes_ListNotes_BadQuery(t *testing.T) {
	f := newRouterFixture(t)

	rr := f.do(http.MethodGet, "/notes/?limit=ten", "", true)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestRoutes_ListNotes_LimitTooLarge(t *testing.T) {
	f := newRouterFixture(t)
	verr := &validators.ValidationError{
		Fields: map[string][]string{"limit": {"Limit must not exceed 100"}},
		Err:    validators.ErrInvalidLimit,
	}
	f.notes.EXPECT().List(gomock.Any(), gomock.Any()).
		Return(nil, errors.Join(service.ErrInvalidDataProvided, verr))

	rr := f.do(http.MethodGet, "/notes/?limit=1000", "", true)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, detailOf(t, rr), "Limit must not exceed 100")
}

func TestRoutes_GetNote(t *testing.T) {
	f := newRouterFixture(t)
	f.notes.EXPECT().Get(gomock.Any(), noteID).Return(models.Note{ID: noteID, Content: "hello world"}, nil).Times(2)

	for _, target := range []string{"/notes/" + noteID, "/notes/" + noteID + "/"} {
		rr := f.do(http.MethodGet, target, "", true)
		assert.Equal(t, http.StatusOK, rr.Code, target)
	}
}

func TestRoutes_GetNote_NotFound(t *testing.T) {
	f := newRouterFixture(t)
	f.notes.EXPECT().Get(gomock.Any(), "missing").Return(models.Note{}, service.ErrNoteNotFound)

	rr := f.do(http.MethodGet, "/notes/missing/", "", true)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"detail":"Note not found"}`, rr.Body.String())
}

func TestRoutes_CreateNote(t *testing.T) {
	f := newRouterFixture(t)
	f.notes.EXPECT().Create(gomock.Any(), "hello world").Return(models.Note{ID: noteID, Content: "hello world"}, nil)

	rr := f.do(http.MethodPost, "/notes/", `{"content":"hello world"}`, true)

	assert.Equal(t, http.StatusOK, rr.Code)
	var note models.Note
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &note))
	assert.Equal(t, noteID, note.ID)
}

func TestRoutes_CreateNote_BadBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `content=hello`},
		{name: "missing content", body: `{"text":"hello"}`},
		{name: "wrong type", body: `{"content":42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRouterFixture(t)

			rr := f.do(http.MethodPost, "/notes/", tt.body, true)

			assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
			assert.Equal(t, "Invalid data provided", detailOf(t, rr))
		})
	}
}

func TestRoutes_UpdateNote(t *testing.T) {
	f := newRouterFixture(t)
	f.notes.EXPECT().Update(gomock.Any(), noteID, "new text").Return(models.Note{ID: noteID, Content: "new text"}, nil)

	rr := f.do(http.MethodPut, "/notes/"+noteID, `{"content":"new text"}`, true)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "new text")
}

func TestRoutes_DeleteNote(t *testing.T) {
	f := newRouterFixture(t)
	f.notes.EXPECT().Delete(gomock.Any(), noteID).Return(nil)

	rr := f.do(http.MethodDelete, "/notes/"+noteID, "", true)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Note deleted successfully"}`, rr.Body.String())
}

func TestRoutes_StoreUnavailable(t *testing.T) {
	f := newRouterFixture(t)
	f.notes.EXPECT().Count(gomock.Any()).Return(int64(0), store.ErrTemporarilyUnavailable)

	rr := f.do(http.MethodGet, "/notes-count", "", true)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestRoutes_InternalError(t *testing.T) {
	f := newRouterFixture(t)
	f.notes.EXPECT().Delete(gomock.Any(), noteID).Return(errors.New("disk on fire"))

	rr := f.do(http.MethodDelete, "/notes/"+noteID, "", true)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Internal server error", detailOf(t, rr))
}

// ── routing errors ──────────────────────────────────────────────────────────

func TestRoutes_MethodNotAllowed(t *testing.T) {
	f := newRouterFixture(t)

	rr := f.do(http.MethodPatch, "/notes/"+noteID, "", true)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Contains(t, rr.Header().Get("Allow"), http.MethodPut)
	assert.Contains(t, rr.Header().Get("Allow"), http.MethodDelete)
}

func TestRoutes_UnknownPath(t *testing.T) {
	f := newRouterFixture(t)

	rr := f.do(http.MethodGet, "/users", "", true)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRoutes_CountsRequests(t *testing.T) {
	f := newRouterFixture(t)
	f.notes.EXPECT().Count(gomock.Any()).Return(int64(1), nil)

	f.do(http.MethodGet, "/notes-count", "", true)
	f.do(http.MethodGet, "/notes-count", "", false)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CounterRequests.WithLabelValues("GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CounterRequests.WithLabelValues("GET", "401")))
}
