package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type snapshotRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

func (h *Handler) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	snaps, err := h.svc.ListSnapshots(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, snaps)
}

func (h *Handler) handleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	var req snapshotRequest
	if !h.decodeRequest(w, r, &req) {
		return
	}

	snap, err := h.svc.SaveSnapshot(r.Context(), req.Name)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	snap.Data = nil
	h.writeJSON(w, http.StatusCreated, snap)
}

func (h *Handler) handleRestoreSnapshot(w http.ResponseWriter, r *http.Request) {
	id, ok := h.snapshotID(w, r)
	if !ok {
		return
	}

	meta, err := h.svc.RestoreSnapshot(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, meta)
}

func (h *Handler) handleDeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	id, ok := h.snapshotID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteSnapshot(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) snapshotID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_id", "snapshot id is not a valid uuid")
		return uuid.Nil, false
	}
	return id, true
}
