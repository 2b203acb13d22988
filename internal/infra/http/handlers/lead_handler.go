package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xcarvalho/leadtrack/internal/infra/http/middleware"
	"github.com/xcarvalho/leadtrack/internal/usecase"
)

type LeadHandler struct {
	Store *usecase.LeadStore
	Log   *zap.Logger
}

func NewLeadHandler(store *usecase.LeadStore, log *zap.Logger) *LeadHandler {
	return &LeadHandler{Store: store, Log: log}
}

// List handles GET /api/leads with an optional ?search= filter.
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	leads := h.Store.List(r.URL.Query().Get("search"))
	writeJSON(w, http.StatusOK, leads)
}

// Get handles GET /api/leads/{id}.
func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	lead, err := h.Store.Get(id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

// Create handles POST /api/leads. A duplicate email does not block the
// creation; the warning is part of the 201 body.
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.LeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.Log.Error("failed to decode json", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request payload"})
		return
	}

	output, err := h.Store.Create(r.Context(), input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	middleware.RecordLeadOperation("create")
	if output.Warning != "" {
		middleware.RecordDuplicateEmailWarning()
	}
	writeJSON(w, http.StatusCreated, output)
}

// Update handles PUT /api/leads/{id}.
func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input usecase.LeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.Log.Error("failed to decode json", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request payload"})
		return
	}

	output, err := h.Store.Update(r.Context(), id, input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	middleware.RecordLeadOperation("update")
	if output.Warning != "" {
		middleware.RecordDuplicateEmailWarning()
	}
	writeJSON(w, http.StatusOK, output)
}

// Delete handles DELETE /api/leads/{id}. No soft delete.
func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	middleware.RecordLeadOperation("delete")
	w.WriteHeader(http.StatusNoContent)
}

func (h *LeadHandler) writeError(w http.ResponseWriter, err error) {
	var verrs usecase.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": verrs})
	case usecase.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Lead not found"})
	default:
		h.Log.Error("lead operation failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
