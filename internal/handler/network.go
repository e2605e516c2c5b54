package handler

import (
	"net/http"

	"netdiagram/internal/domain"
)

type vlanRequest struct {
	ID      int    `json:"id" validate:"min=1,max=4094"`
	Name    string `json:"name" validate:"required"`
	Subnet  string `json:"subnet" validate:"required,cidr"`
	Gateway string `json:"gateway" validate:"omitempty,ip"`
}

type ssidRequest struct {
	Name     string `json:"name" validate:"required"`
	Security string `json:"security"`
	VLAN     string `json:"vlan"`
}

func (h *Handler) handleListVLANs(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.svc.VLANs())
}

func (h *Handler) handleAddVLAN(w http.ResponseWriter, r *http.Request) {
	var req vlanRequest
	if !h.decodeRequest(w, r, &req) {
		return
	}

	v := domain.VLAN{ID: req.ID, Name: req.Name, Subnet: req.Subnet, Gateway: req.Gateway}
	if err := h.svc.AddVLAN(v); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, v)
}

func (h *Handler) handleDeleteVLAN(w http.ResponseWriter, r *http.Request) {
	index, ok := h.indexParam(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteVLAN(index); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListSSIDs(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.svc.SSIDs())
}

func (h *Handler) handleAddSSID(w http.ResponseWriter, r *http.Request) {
	var req ssidRequest
	if !h.decodeRequest(w, r, &req) {
		return
	}

	s := domain.SSID{Name: req.Name, Security: req.Security, VLAN: req.VLAN}
	if err := h.svc.AddSSID(s); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, s)
}

func (h *Handler) handleDeleteSSID(w http.ResponseWriter, r *http.Request) {
	index, ok := h.indexParam(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteSSID(index); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGetNetworkConfig(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.svc.NetworkConfig())
}

func (h *Handler) handleUpdateNetworkConfig(w http.ResponseWriter, r *http.Request) {
	var settings map[string]any
	if !h.decodeRequest(w, r, &settings) {
		return
	}
	h.svc.UpdateNetworkConfig(settings)
	h.writeJSON(w, http.StatusOK, h.svc.NetworkConfig())
}
