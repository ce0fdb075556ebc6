package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aheadley/packagetrack/internal/carriers"
	"github.com/aheadley/packagetrack/internal/database"
)

// Server exposes the carrier registry and the shipment store over HTTP.
type Server struct {
	registry *carriers.Registry
	db       *database.DB
	logger   *slog.Logger
}

// New creates a server.
func New(registry *carriers.Registry, db *database.DB, logger *slog.Logger) *Server {
	return &Server{registry: registry, db: db, logger: logger}
}

// Router builds the HTTP handler with middleware and all routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RecoveryMiddleware(s.logger))
	r.Use(LoggingMiddleware(s.logger))

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/carriers", s.handleListCarriers)
		r.Get("/track/{trackingNumber}", s.handleTrack)
		r.Get("/shipments", s.handleListShipments)
		r.Get("/shipments/{trackingNumber}", s.handleGetShipment)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type carrierInfo struct {
	ShortName string `json:"short_name"`
	LongName  string `json:"long_name"`
}

func (s *Server) handleListCarriers(w http.ResponseWriter, r *http.Request) {
	var out []carrierInfo
	for _, c := range s.registry.Carriers() {
		out = append(out, carrierInfo{ShortName: c.ShortName(), LongName: c.LongName()})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleTrack performs a live lookup through the matching carrier backend
// and stores the result as the shipment's latest snapshot.
func (s *Server) handleTrack(w http.ResponseWriter, r *http.Request) {
	trackingNumber := chi.URLParam(r, "trackingNumber")

	carrier, ok := s.registry.Find(trackingNumber)
	if !ok {
		writeError(w, http.StatusBadRequest, "no carrier recognizes this tracking number")
		return
	}

	info, err := carrier.Track(r.Context(), trackingNumber)
	if err != nil {
		var numberErr *carriers.NumberError
		var apiErr *carriers.APIError
		switch {
		case errors.As(err, &numberErr):
			writeError(w, http.StatusNotFound, numberErr.Message)
		case errors.As(err, &apiErr):
			writeError(w, http.StatusBadGateway, apiErr.Error())
		default:
			s.logger.Error("track failed", "tracking_number", trackingNumber, "error", err)
			writeError(w, http.StatusInternalServerError, "tracking failed")
		}
		return
	}

	if err := s.storeSnapshot(info); err != nil {
		// The lookup succeeded; losing the snapshot is not fatal to it.
		s.logger.Warn("failed to store shipment snapshot",
			"tracking_number", trackingNumber, "error", err)
	}

	writeJSON(w, http.StatusOK, info)
}

func (s *Server) storeSnapshot(info *carriers.TrackingInfo) error {
	shipment := &database.Shipment{
		TrackingNumber: info.TrackingNumber,
		Carrier:        info.Carrier,
		Status:         info.Status(),
		IsDelivered:    info.IsDelivered,
		DeliveryDate:   info.DeliveryDate,
	}
	if len(info.Events) > 0 {
		lastUpdate := info.LastUpdate()
		shipment.LastUpdate = &lastUpdate
	}
	events := make([]database.TrackingEvent, 0, len(info.Events))
	for _, ev := range info.Events {
		events = append(events, database.TrackingEvent{
			Timestamp: ev.Timestamp,
			Location:  ev.Location,
			Detail:    ev.Detail,
		})
	}
	return s.db.Shipments.Upsert(shipment, events)
}

func (s *Server) handleListShipments(w http.ResponseWriter, r *http.Request) {
	shipments, err := s.db.Shipments.GetAll()
	if err != nil {
		s.logger.Error("failed to list shipments", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list shipments")
		return
	}
	if shipments == nil {
		shipments = []database.Shipment{}
	}
	writeJSON(w, http.StatusOK, shipments)
}

type shipmentDetail struct {
	database.Shipment
	Events []database.TrackingEvent `json:"events"`
}

func (s *Server) handleGetShipment(w http.ResponseWriter, r *http.Request) {
	trackingNumber := chi.URLParam(r, "trackingNumber")

	shipment, err := s.db.Shipments.GetByTrackingNumber(trackingNumber)
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, http.StatusNotFound, "shipment not found")
		return
	}
	if err != nil {
		s.logger.Error("failed to get shipment", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get shipment")
		return
	}

	events, err := s.db.Shipments.EventsByShipment(shipment.ID)
	if err != nil {
		s.logger.Error("failed to get events", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get events")
		return
	}
	if events == nil {
		events = []database.TrackingEvent{}
	}

	writeJSON(w, http.StatusOK, shipmentDetail{Shipment: *shipment, Events: events})
}
