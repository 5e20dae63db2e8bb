package http

import (
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/MKhiriev/go-notes-keeper/internal/app"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/utils"
	"github.com/prometheus/client_golang/prometheus"
)

// withMetrics counts requests by method and status and observes their
// duration.
func (h *Handler) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.metrics == nil {
			next.ServeHTTP(w, r)
			return
		}

		h.metrics.GaugeRequests.Inc()
		defer h.metrics.GaugeRequests.Dec()

		defer func(begin time.Time) {
			h.metrics.HistRequestDuration.Observe(time.Since(begin).Seconds())
		}(time.Now())

		rw := wrapResponseWriter(w)
		next.ServeHTTP(rw, r)

		h.metrics.CounterRequests.With(prometheus.Labels{
			"method": r.Method,
			"status": strconv.Itoa(rw.Status()),
		}).Inc()
	})
}

// withRecovery turns a handler panic into a 500 and counts it.
func (h *Handler) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.FromRequest(r).Error().
				Str("path", r.URL.Path).
				Any("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("panic serving request")
			if h.metrics != nil {
				h.metrics.CounterHandleRequestPanic.Inc()
			}
			utils.WriteError(w, app.MsgInternalServerError, http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}
