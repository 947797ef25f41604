package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"docqa/internal/contextutil"
	"docqa/internal/llm"
	"docqa/internal/loader"
	"docqa/internal/rag"
	"docqa/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, ctx context.Context, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeError sends an error response with the given status.
func writeError(w http.ResponseWriter, ctx context.Context, status int, message string) {
	writeJSON(w, ctx, status, ErrorResponse{Error: message})
}

// handleServiceError maps service errors to appropriate HTTP status codes.
func handleServiceError(w http.ResponseWriter, ctx context.Context, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)
	logger.ErrorContext(ctx, "service error", "error", err)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, ctx, http.StatusBadRequest, fmt.Sprintf("Validation error: %s", validationErr.Error()))
		return
	}
	if errors.Is(err, rag.ErrInvalidArgument) || errors.Is(err, service.ErrInvalidInput) {
		writeError(w, ctx, http.StatusBadRequest, "Invalid input")
		return
	}
	if errors.Is(err, loader.ErrUnsupportedFormat) {
		writeError(w, ctx, http.StatusBadRequest, "Unsupported document format")
		return
	}

	var fetchErr *loader.FetchError
	if errors.As(err, &fetchErr) {
		writeError(w, ctx, http.StatusBadGateway, "Failed to fetch document")
		return
	}
	var embedErr *llm.EmbeddingError
	var genErr *llm.GenerationError
	if errors.As(err, &embedErr) || errors.As(err, &genErr) || errors.Is(err, service.ErrExternalService) {
		writeError(w, ctx, http.StatusBadGateway, "External service error")
		return
	}

	writeError(w, ctx, http.StatusInternalServerError, defaultMsg)
}
