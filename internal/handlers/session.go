package handlers

import (
	"net/http"

	"docqa/internal/service"
)

// SessionHandler handles conversation lifecycle requests.
type SessionHandler struct {
	qa service.QAService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(qa service.QAService) *SessionHandler {
	return &SessionHandler{qa: qa}
}

// StatusResponse is a simple acknowledgment payload.
type StatusResponse struct {
	Status string `json:"status"`
}

// Clear forgets the conversation history but keeps the indexed documents.
func (h *SessionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.qa.ClearHistory(ctx)
	writeJSON(w, ctx, http.StatusOK, StatusResponse{Status: "history cleared"})
}

// Reset wipes both the conversation and the document index.
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.qa.ResetAll(ctx); err != nil {
		handleServiceError(w, ctx, err, "Failed to reset")
		return
	}
	writeJSON(w, ctx, http.StatusOK, StatusResponse{Status: "reset"})
}

// Stats reports index and conversation sizes.
func (h *SessionHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stats, err := h.qa.Stats(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to collect stats")
		return
	}
	writeJSON(w, ctx, http.StatusOK, stats)
}
