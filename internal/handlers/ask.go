package handlers

import (
	"encoding/json"
	"net/http"

	"docqa/internal/contextutil"
	"docqa/internal/rag"
	"docqa/internal/service"
)

// AskHandler handles HTTP requests for question answering.
type AskHandler struct {
	qa service.QAService
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(qa service.QAService) *AskHandler {
	return &AskHandler{qa: qa}
}

// AskRequest represents the HTTP request payload for a question.
type AskRequest struct {
	Question string `json:"question"`
}

// CitationResponse is one source reference in an answer.
type CitationResponse struct {
	ChunkID string `json:"chunk_id"`
	Origin  string `json:"origin"`
	Offset  int    `json:"offset"`
	Page    int    `json:"page,omitempty"`
	Snippet string `json:"snippet,omitempty"`
}

// AskResponse represents the HTTP response payload for an answer.
type AskResponse struct {
	Answer    string             `json:"answer"`
	Kind      string             `json:"kind"`
	Citations []CitationResponse `json:"citations"`
}

// ServeHTTP handles HTTP requests for question answering.
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	answer, err := h.qa.Ask(ctx, req.Question)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to answer question")
		return
	}

	writeJSON(w, ctx, http.StatusOK, askResponse(answer))
}

func askResponse(answer *rag.Answer) AskResponse {
	citations := make([]CitationResponse, 0, len(answer.Citations))
	for _, c := range answer.Citations {
		citations = append(citations, CitationResponse{
			ChunkID: c.ChunkID,
			Origin:  c.Origin,
			Offset:  c.Offset,
			Page:    c.Page,
			Snippet: c.Snippet,
		})
	}
	return AskResponse{
		Answer:    answer.Text,
		Kind:      string(answer.Kind),
		Citations: citations,
	}
}
