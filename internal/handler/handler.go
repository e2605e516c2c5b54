package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"netdiagram/internal/domain"
	"netdiagram/internal/hub"
	"netdiagram/internal/metrics"
	"netdiagram/internal/repository"
	"netdiagram/internal/service"
)

// maxBodyBytes caps request bodies, including CSV and document imports
const maxBodyBytes = 8 << 20

// Handler serves the diagram API
type Handler struct {
	svc            *service.DiagramService
	hub            *hub.Hub
	metrics        *metrics.Metrics
	log            zerolog.Logger
	validate       *validator.Validate
	requestTimeout time.Duration
}

// New creates a handler. events and m may be nil; without a hub the event
// stream answers 503.
func New(svc *service.DiagramService, events *hub.Hub, m *metrics.Metrics, log zerolog.Logger, requestTimeout time.Duration) *Handler {
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}
	return &Handler{
		svc:            svc,
		hub:            events,
		metrics:        m,
		log:            log.With().Str("component", "http").Logger(),
		validate:       newValidator(),
		requestTimeout: requestTimeout,
	}
}

// Router builds the route tree
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(h.accessLog)

	r.Get("/healthz", h.handleHealthz)
	r.Handle("/metrics", h.metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// The event stream outlives the request timeout
		r.Get("/events", h.handleEvents)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(h.requestTimeout))
			r.Use(middleware.RequestSize(maxBodyBytes))

			r.Route("/state", func(r chi.Router) {
				r.Get("/", h.handleGetState)
				r.Put("/", h.handleImportState)
				r.Delete("/", h.handleClearState)
			})
			r.Get("/labels", h.handleGetLabels)
			r.Put("/labels", h.handleSetLabels)
			r.Get("/export/{format}", h.handleExport)
			r.Post("/import/csv", h.handleImportCSV)

			r.Route("/devices", func(r chi.Router) {
				r.Get("/", h.handleListDevices)
				r.Post("/", h.handleCreateDevice)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.handleGetDevice)
					r.Patch("/", h.handleUpdateDevice)
					r.Delete("/", h.handleDeleteDevice)
					r.Put("/position", h.handleMoveDevice)
					r.Get("/connections", h.handleDeviceConnections)
					r.Get("/peers", h.handleConnectedDevices)
					r.Post("/vlans/{vlan}/toggle", h.handleToggleVLAN)
					r.Post("/ssids/{ssid}/toggle", h.handleToggleSSID)
					r.Post("/vms", h.handleAddVM)
					r.Delete("/vms/{index}", h.handleRemoveVM)
				})
			})

			r.Route("/connections", func(r chi.Router) {
				r.Get("/", h.handleListConnections)
				r.Post("/", h.handleCreateConnection)
				r.Get("/type", h.handleGetConnectionType)
				r.Put("/type", h.handleSetConnectionType)
				r.Get("/{id}/path", h.handleConnectionPath)
				r.Delete("/{id}", h.handleDeleteConnection)
			})

			r.Route("/zones", func(r chi.Router) {
				r.Get("/", h.handleListZones)
				r.Post("/", h.handleCreateZone)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.handleGetZone)
					r.Patch("/", h.handleUpdateZone)
					r.Delete("/", h.handleDeleteZone)
					r.Put("/position", h.handleMoveZone)
					r.Put("/size", h.handleResizeZone)
				})
			})

			r.Route("/selection", func(r chi.Router) {
				r.Get("/", h.handleGetSelection)
				r.Put("/", h.handleSelect)
				r.Delete("/", h.handleClearSelection)
				r.Put("/device", h.handleUpdateSelectedDevice)
				r.Put("/device/status", h.handleSetSelectedStatus)
				r.Put("/zone", h.handleUpdateSelectedZone)
			})

			r.Route("/vlans", func(r chi.Router) {
				r.Get("/", h.handleListVLANs)
				r.Post("/", h.handleAddVLAN)
				r.Delete("/{index}", h.handleDeleteVLAN)
			})
			r.Route("/ssids", func(r chi.Router) {
				r.Get("/", h.handleListSSIDs)
				r.Post("/", h.handleAddSSID)
				r.Delete("/{index}", h.handleDeleteSSID)
			})
			r.Get("/config", h.handleGetNetworkConfig)
			r.Patch("/config", h.handleUpdateNetworkConfig)

			r.Get("/view", h.handleGetView)
			r.Put("/view", h.handleSetView)
			r.Post("/view/zoom", h.handleZoom)
			r.Get("/bounds", h.handleBounds)

			r.Route("/snapshots", func(r chi.Router) {
				r.Get("/", h.handleListSnapshots)
				r.Post("/", h.handleSaveSnapshot)
				r.Post("/{id}/restore", h.handleRestoreSnapshot)
				r.Delete("/{id}", h.handleDeleteSnapshot)
			})
		})
	})

	return r
}

func (h *Handler) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		duration := time.Since(start)
		h.metrics.ObserveHTTPRequest(r.Method, route, ww.Status(), duration)

		h.log.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Int64("duration_ms", duration.Milliseconds()).
			Msg("http_request")
	})
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		h.writeError(w, http.StatusServiceUnavailable, "events_unavailable", "event stream not configured")
		return
	}
	h.hub.ServeHTTP(w, r)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Warn().Err(err).Msg("failed to encode response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, msg string) {
	h.writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": msg,
		},
	})
}

// writeServiceError maps a service or domain error onto a status code
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := errorStatus(err)
	if status == http.StatusInternalServerError {
		h.log.Error().Err(err).
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("path", r.URL.Path).
			Msg("request failed")
	}
	h.writeError(w, status, code, err.Error())
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrDuplicateConnection),
		errors.Is(err, domain.ErrDuplicateVLAN),
		errors.Is(err, domain.ErrDuplicateSSID):
		return http.StatusConflict, "conflict"
	case errors.Is(err, domain.ErrUnknownDeviceType),
		errors.Is(err, domain.ErrUnknownZoneType),
		errors.Is(err, domain.ErrIndexOutOfRange),
		errors.Is(err, domain.ErrNoSelection),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidMedium),
		errors.Is(err, domain.ErrSelfConnection),
		errors.Is(err, domain.ErrMissingField),
		errors.Is(err, domain.ErrWrongDeviceType),
		errors.Is(err, domain.ErrUnknownField),
		errors.Is(err, service.ErrUnknownFormat):
		return http.StatusUnprocessableEntity, "validation_failed"
	case errors.Is(err, service.ErrSnapshotsDisabled):
		return http.StatusServiceUnavailable, "storage_unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// decodeRequest strictly decodes the body into dst and runs struct
// validation. It writes the error response and returns false on failure.
func (h *Handler) decodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := decodeJSONStrict(r, dst); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_body", "invalid json body: "+err.Error())
		return false
	}
	if reflect.Indirect(reflect.ValueOf(dst)).Kind() != reflect.Struct {
		return true
	}
	if err := h.validate.Struct(dst); err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, "validation_failed", validationMessage(err))
		return false
	}
	return true
}

func decodeJSONStrict(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return errors.New("unexpected extra data after JSON body")
		}
		return err
	}
	return nil
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationMessage lists each failing field as field:tag
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, len(verrs))
	for i, fe := range verrs {
		parts[i] = fe.Field() + ":" + fe.Tag()
	}
	return "invalid fields: " + strings.Join(parts, ", ")
}
