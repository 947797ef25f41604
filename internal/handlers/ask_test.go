package handlers_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"docqa/internal/handlers"
	"docqa/internal/llm"
	"docqa/internal/rag"
	"docqa/internal/service"
	"docqa/internal/service/mocks"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestAskHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	qa := mocks.NewMockQAService(ctrl)
	handler := handlers.NewAskHandler(qa)

	qa.EXPECT().
		Ask(gomock.Any(), "what is this about?").
		Return(&rag.Answer{
			Kind: rag.AnswerGenerated,
			Text: "It is about Go [1].",
			Citations: []rag.Citation{
				{ChunkID: "c-1", Origin: "go.md", Offset: 400, Snippet: "Go is..."},
			},
		}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`{"question":"what is this about?"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", rec.Code, rec.Body.String())
	}
	var resp handlers.AskResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Answer != "It is about Go [1]." || resp.Kind != "generated" {
		t.Errorf("response = %+v", resp)
	}
	if len(resp.Citations) != 1 || resp.Citations[0].Origin != "go.md" {
		t.Errorf("citations = %+v", resp.Citations)
	}
}

func TestAskHandler_NoContextAnswer(t *testing.T) {
	ctrl := gomock.NewController(t)
	qa := mocks.NewMockQAService(ctrl)
	handler := handlers.NewAskHandler(qa)

	qa.EXPECT().
		Ask(gomock.Any(), gomock.Any()).
		Return(&rag.Answer{Kind: rag.AnswerNoContext, Text: "nothing indexed yet"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`{"question":"anything?"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp handlers.AskResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Kind != "no_context" {
		t.Errorf("Kind = %q, want no_context", resp.Kind)
	}
	if len(resp.Citations) != 0 {
		t.Errorf("Citations = %+v, want empty", resp.Citations)
	}
}

func TestAskHandler_InvalidBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	handler := handlers.NewAskHandler(mocks.NewMockQAService(ctrl))

	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAskHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "validation error",
			err:        &service.ValidationError{Field: "question", Message: "cannot be empty"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid argument",
			err:        service.WrapError(rag.ErrInvalidArgument, "failed to answer question"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "generation failure",
			err:        service.WrapError(&llm.GenerationError{Transient: true, Err: errors.New("overloaded")}, "failed to answer question"),
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "embedding failure",
			err:        service.WrapError(&llm.EmbeddingError{Transient: false, Err: errors.New("bad key")}, "failed to answer question"),
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "unknown error",
			err:        errors.New("broken"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			qa := mocks.NewMockQAService(ctrl)
			handler := handlers.NewAskHandler(qa)

			qa.EXPECT().Ask(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`{"question":"q"}`))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
