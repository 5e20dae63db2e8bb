package http

import (
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/metrics"
	"github.com/MKhiriev/go-notes-keeper/internal/service"
	"github.com/MKhiriev/go-notes-keeper/internal/utils"
	"github.com/MKhiriev/go-notes-keeper/models"
	"github.com/prometheus/client_golang/prometheus"
)

type Handler struct {
	services *service.Services
	metrics  *metrics.Manager
	gatherer prometheus.Gatherer
	build    models.AppBuildInfo
	traceIDs *utils.UUIDGenerator

	logger *logger.Logger
}

// NewHandler builds the notes API handler. gatherer backs GET /metrics;
// the route is not registered when it is nil.
func NewHandler(services *service.Services, m *metrics.Manager, gatherer prometheus.Gatherer, build models.AppBuildInfo, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		metrics:  m,
		gatherer: gatherer,
		build:    build,
		traceIDs: utils.NewUUIDGenerator(),
		logger:   logger,
	}
}
