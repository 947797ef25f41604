package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"docqa/internal/contextutil"
	"docqa/internal/indexer"
	"docqa/internal/service"
)

// maxUploadBytes caps the total size of a multipart upload.
const maxUploadBytes = 32 << 20 // 32 MB

// DocumentsHandler handles file uploads for ingestion.
type DocumentsHandler struct {
	qa service.QAService
}

// NewDocumentsHandler creates a new DocumentsHandler.
func NewDocumentsHandler(qa service.QAService) *DocumentsHandler {
	return &DocumentsHandler{qa: qa}
}

// IngestResultResponse is the per-document outcome of an ingestion request.
type IngestResultResponse struct {
	Origin string `json:"origin"`
	Chunks int    `json:"chunks"`
	Error  string `json:"error,omitempty"`
}

// IngestResponse represents the HTTP response for an ingestion request.
type IngestResponse struct {
	Results []IngestResultResponse `json:"results"`
}

// ServeHTTP handles multipart file uploads. Each file is ingested
// independently; the response carries one result per file.
func (h *DocumentsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		logger.WarnContext(ctx, "invalid multipart form", "error", err)
		writeError(w, ctx, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeError(w, ctx, http.StatusBadRequest, "No files provided")
		return
	}

	uploads := make([]service.Upload, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			logger.WarnContext(ctx, "failed to open uploaded file", "filename", header.Filename, "error", err)
			writeError(w, ctx, http.StatusBadRequest, "Failed to read uploaded file")
			return
		}
		data, err := io.ReadAll(file)
		_ = file.Close()
		if err != nil {
			logger.WarnContext(ctx, "failed to read uploaded file", "filename", header.Filename, "error", err)
			writeError(w, ctx, http.StatusBadRequest, "Failed to read uploaded file")
			return
		}
		uploads = append(uploads, service.Upload{Filename: header.Filename, Data: data})
	}

	results := h.qa.IngestUploads(ctx, uploads)
	writeJSON(w, ctx, http.StatusOK, ingestResponse(results))
}

// URLHandler handles web page ingestion by URL.
type URLHandler struct {
	qa service.QAService
}

// NewURLHandler creates a new URLHandler.
func NewURLHandler(qa service.QAService) *URLHandler {
	return &URLHandler{qa: qa}
}

// URLRequest represents the HTTP request payload for URL ingestion.
type URLRequest struct {
	URL string `json:"url"`
}

// ServeHTTP handles URL ingestion requests.
func (h *URLHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req URLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	result := h.qa.IngestURL(ctx, req.URL)
	if result.Err != nil {
		handleServiceError(w, ctx, result.Err, "Failed to ingest URL")
		return
	}

	writeJSON(w, ctx, http.StatusOK, ingestResponse([]indexer.IngestResult{result}))
}

func ingestResponse(results []indexer.IngestResult) IngestResponse {
	out := IngestResponse{Results: make([]IngestResultResponse, 0, len(results))}
	for _, res := range results {
		r := IngestResultResponse{Origin: res.Origin, Chunks: res.Chunks}
		if res.Err != nil {
			r.Error = res.Err.Error()
		}
		out.Results = append(out.Results, r)
	}
	return out
}
