package handler

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"

	"netdiagram/internal/codec"
	"netdiagram/internal/domain"
)

// exportMedia maps an export format to its content type and file extension
var exportMedia = map[string]struct{ contentType, ext string }{
	"json":    {"application/json", "json"},
	"yaml":    {"application/x-yaml", "yaml"},
	"csv":     {"text/csv; charset=utf-8", "csv"},
	"ansible": {"application/x-yaml", "inventory.yml"},
}

type selectRequest struct {
	DeviceID string `json:"deviceId"`
	ZoneID   string `json:"zoneId"`
}

type selectionResponse struct {
	Device *domain.Device `json:"device"`
	Zone   *domain.Zone   `json:"zone"`
}

type propertyRequest struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

type zoomRequest struct {
	Zoom   float64 `json:"zoom" validate:"gt=0"`
	MouseX float64 `json:"mouseX"`
	MouseY float64 `json:"mouseY"`
}

type viewRequest struct {
	Zoom float64 `json:"zoom" validate:"gt=0"`
	PanX float64 `json:"panX"`
	PanY float64 `json:"panY"`
}

func (h *Handler) handleGetState(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.svc.Document())
}

// handleImportState replaces the diagram with the request body. The format
// query parameter selects json (default) or yaml.
func (h *Handler) handleImportState(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	if _, ok := codec.Importers()[format]; !ok {
		h.writeError(w, http.StatusUnprocessableEntity, "validation_failed", "unsupported import format: "+format)
		return
	}

	meta, err := h.svc.Import(format, r.Body)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, meta)
}

func (h *Handler) handleClearState(w http.ResponseWriter, r *http.Request) {
	h.svc.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGetLabels(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.svc.Labels())
}

func (h *Handler) handleSetLabels(w http.ResponseWriter, r *http.Request) {
	var meta codec.Meta
	if !h.decodeRequest(w, r, &meta) {
		return
	}
	h.svc.SetLabels(meta)
	h.writeJSON(w, http.StatusOK, meta)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	media, ok := exportMedia[format]
	if !ok {
		h.writeError(w, http.StatusNotFound, "not_found", "unknown export format: "+format)
		return
	}

	// Buffer so an export failure can still produce an error response
	var buf bytes.Buffer
	if err := h.svc.Export(format, &buf); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", media.contentType)
	w.Header().Set("Content-Disposition", "attachment; filename=network-diagram."+media.ext)
	if _, err := buf.WriteTo(w); err != nil {
		h.log.Warn().Err(err).Str("format", format).Msg("failed to write export")
	}
}

func (h *Handler) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	added, err := h.svc.ImportCSVFrom(r.Body)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	h.writeJSON(w, http.StatusCreated, added)
}

func (h *Handler) handleGetSelection(w http.ResponseWriter, r *http.Request) {
	d, z := h.svc.Selection()
	h.writeJSON(w, http.StatusOK, selectionResponse{Device: d, Zone: z})
}

// handleSelect selects the given device and zone. Empty ids leave that part
// of the selection untouched.
func (h *Handler) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if !h.decodeRequest(w, r, &req) {
		return
	}

	if req.DeviceID != "" {
		if err := h.svc.SelectDevice(req.DeviceID); err != nil {
			h.writeServiceError(w, r, err)
			return
		}
	}
	if req.ZoneID != "" {
		if err := h.svc.SelectZone(req.ZoneID); err != nil {
			h.writeServiceError(w, r, err)
			return
		}
	}
	h.handleGetSelection(w, r)
}

func (h *Handler) handleClearSelection(w http.ResponseWriter, r *http.Request) {
	h.svc.ClearSelection()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleUpdateSelectedDevice(w http.ResponseWriter, r *http.Request) {
	var req propertyRequest
	if !h.decodeRequest(w, r, &req) {
		return
	}
	if err := h.svc.UpdateSelectedDevice(req.Key, req.Value); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.handleGetSelection(w, r)
}

func (h *Handler) handleSetSelectedStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !h.decodeRequest(w, r, &req) {
		return
	}
	if err := h.svc.SetSelectedStatus(domain.Status(req.Status)); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.handleGetSelection(w, r)
}

func (h *Handler) handleUpdateSelectedZone(w http.ResponseWriter, r *http.Request) {
	var req propertyRequest
	if !h.decodeRequest(w, r, &req) {
		return
	}
	if err := h.svc.UpdateSelectedZone(req.Key, req.Value); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.handleGetSelection(w, r)
}

func (h *Handler) handleGetView(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.svc.View())
}

func (h *Handler) handleSetView(w http.ResponseWriter, r *http.Request) {
	var req viewRequest
	if !h.decodeRequest(w, r, &req) {
		return
	}
	h.writeJSON(w, http.StatusOK, h.svc.SetView(codec.View{Zoom: req.Zoom, PanX: req.PanX, PanY: req.PanY}))
}

func (h *Handler) handleZoom(w http.ResponseWriter, r *http.Request) {
	var req zoomRequest
	if !h.decodeRequest(w, r, &req) {
		return
	}
	h.writeJSON(w, http.StatusOK, h.svc.ZoomAt(req.Zoom, req.MouseX, req.MouseY))
}

func (h *Handler) handleBounds(w http.ResponseWriter, r *http.Request) {
	b, ok := h.svc.Bounds()
	if !ok {
		h.writeError(w, http.StatusNotFound, "empty_diagram", "diagram has no devices or zones")
		return
	}
	h.writeJSON(w, http.StatusOK, b)
}
