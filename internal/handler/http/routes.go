package http

import (
	"net/http"

	"github.com/MKhiriev/go-notes-keeper/internal/app"
	"github.com/MKhiriev/go-notes-keeper/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withRecovery, h.withMetrics, h.withLogging, withGZip)
	router.Use(middleware.StripSlashes)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/", h.root)
		r.Get("/version", h.getServerVersion)
		if h.gatherer != nil {
			r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
		}
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/notes-count", h.countNotes)
		r.Route("/notes", func(r chi.Router) {
			r.Get("/", h.listNotes)
			r.Post("/", h.createNote)
			r.Get("/{id}", h.getNote)
			r.Put("/{id}", h.updateNote)
			r.Delete("/{id}", h.deleteNote)
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	_, _ = utils.WriteJSON(w, map[string]string{"message": "Hello World"}, http.StatusOK)
}

// detailFor is the body detail written for a status code.
func detailFor(status int) string {
	switch status {
	case http.StatusNotFound:
		return app.MsgNoteNotFound
	case http.StatusUnauthorized:
		return app.MsgInvalidToken
	case http.StatusInternalServerError:
		return app.MsgInternalServerError
	default:
		return http.StatusText(status)
	}
}
