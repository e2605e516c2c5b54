package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"netdiagram/internal/domain"
)

type createZoneRequest struct {
	Type string  `json:"type" validate:"required"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type sizeRequest struct {
	Width  float64 `json:"width" validate:"gt=0"`
	Height float64 `json:"height" validate:"gt=0"`
}

func (h *Handler) handleListZones(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.svc.Zones())
}

func (h *Handler) handleCreateZone(w http.ResponseWriter, r *http.Request) {
	var req createZoneRequest
	if !h.decodeRequest(w, r, &req) {
		return
	}

	z, err := h.svc.CreateZone(domain.ZoneType(req.Type), req.X, req.Y)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, z)
}

func (h *Handler) handleGetZone(w http.ResponseWriter, r *http.Request) {
	z, err := h.svc.Zone(chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, z)
}

func (h *Handler) handleUpdateZone(w http.ResponseWriter, r *http.Request) {
	var props map[string]string
	if !h.decodeRequest(w, r, &props) {
		return
	}

	z, err := h.svc.UpdateZone(chi.URLParam(r, "id"), props)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, z)
}

func (h *Handler) handleDeleteZone(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteZone(chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleMoveZone(w http.ResponseWriter, r *http.Request) {
	var req positionRequest
	if !h.decodeRequest(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.svc.MoveZone(id, *req.X, *req.Y); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.respondZone(w, r, id)
}

func (h *Handler) handleResizeZone(w http.ResponseWriter, r *http.Request) {
	var req sizeRequest
	if !h.decodeRequest(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.svc.ResizeZone(id, req.Width, req.Height); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.respondZone(w, r, id)
}

func (h *Handler) respondZone(w http.ResponseWriter, r *http.Request, id string) {
	z, err := h.svc.Zone(id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, z)
}
