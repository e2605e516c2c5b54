package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"netdiagram/internal/domain"
)

type createDeviceRequest struct {
	Type string  `json:"type" validate:"required"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type positionRequest struct {
	X *float64 `json:"x" validate:"required"`
	Y *float64 `json:"y" validate:"required"`
}

type vmRequest struct {
	Name   string `json:"name" validate:"required"`
	Status string `json:"status" validate:"omitempty,oneof=online offline warning error maintenance"`
}

type createConnectionRequest struct {
	From    string `json:"from" validate:"required"`
	FromPos string `json:"fromPos" validate:"required,oneof=top bottom left right"`
	To      string `json:"to" validate:"required"`
	ToPos   string `json:"toPos" validate:"required,oneof=top bottom left right"`
}

type connectionTypeRequest struct {
	Type string `json:"type" validate:"required"`
}

func (h *Handler) handleListDevices(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.svc.Devices())
}

func (h *Handler) handleCreateDevice(w http.ResponseWriter, r *http.Request) {
	var req createDeviceRequest
	if !h.decodeRequest(w, r, &req) {
		return
	}

	d, err := h.svc.CreateDevice(domain.DeviceType(req.Type), req.X, req.Y)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, d)
}

func (h *Handler) handleGetDevice(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Device(chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, d)
}

// handleUpdateDevice takes a flat object of property names to string values
func (h *Handler) handleUpdateDevice(w http.ResponseWriter, r *http.Request) {
	var props map[string]string
	if !h.decodeRequest(w, r, &props) {
		return
	}

	d, err := h.svc.UpdateDevice(chi.URLParam(r, "id"), props)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, d)
}

func (h *Handler) handleDeleteDevice(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteDevice(chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleMoveDevice(w http.ResponseWriter, r *http.Request) {
	var req positionRequest
	if !h.decodeRequest(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.svc.MoveDevice(id, *req.X, *req.Y); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.respondDevice(w, r, id)
}

func (h *Handler) handleDeviceConnections(w http.ResponseWriter, r *http.Request) {
	conns, err := h.svc.DeviceConnections(chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, conns)
}

func (h *Handler) handleConnectedDevices(w http.ResponseWriter, r *http.Request) {
	peers, err := h.svc.ConnectedDevices(chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, peers)
}

func (h *Handler) handleToggleVLAN(w http.ResponseWriter, r *http.Request) {
	vlanID, err := strconv.Atoi(chi.URLParam(r, "vlan"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_id", "vlan id must be an integer")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.svc.ToggleVLAN(id, vlanID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.respondDevice(w, r, id)
}

func (h *Handler) handleToggleSSID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.ToggleSSID(id, chi.URLParam(r, "ssid")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.respondDevice(w, r, id)
}

func (h *Handler) handleAddVM(w http.ResponseWriter, r *http.Request) {
	var req vmRequest
	if !h.decodeRequest(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.svc.AddVM(id, req.Name, domain.Status(req.Status)); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.respondDevice(w, r, id)
}

func (h *Handler) handleRemoveVM(w http.ResponseWriter, r *http.Request) {
	index, ok := h.indexParam(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.svc.RemoveVM(id, index); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.respondDevice(w, r, id)
}

// respondDevice writes the current state of a device after a mutation
func (h *Handler) respondDevice(w http.ResponseWriter, r *http.Request, id string) {
	d, err := h.svc.Device(id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, d)
}

func (h *Handler) handleListConnections(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.svc.Connections())
}

func (h *Handler) handleCreateConnection(w http.ResponseWriter, r *http.Request) {
	var req createConnectionRequest
	if !h.decodeRequest(w, r, &req) {
		return
	}

	c, err := h.svc.AddConnection(req.From, domain.Side(req.FromPos), req.To, domain.Side(req.ToPos))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) handleDeleteConnection(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteConnection(chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleConnectionPath(w http.ResponseWriter, r *http.Request) {
	path, err := h.svc.ConnectionPath(chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"path": path})
}

func (h *Handler) handleGetConnectionType(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, connectionTypeRequest{Type: string(h.svc.ConnectionType())})
}

func (h *Handler) handleSetConnectionType(w http.ResponseWriter, r *http.Request) {
	var req connectionTypeRequest
	if !h.decodeRequest(w, r, &req) {
		return
	}

	if err := h.svc.SetConnectionType(domain.ConnectionMedium(req.Type)); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, req)
}

// indexParam parses the {index} path segment
func (h *Handler) indexParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_index", "index must be an integer")
		return 0, false
	}
	return index, true
}
