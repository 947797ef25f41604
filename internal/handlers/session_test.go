package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"docqa/internal/handlers"
	"docqa/internal/service"
	"docqa/internal/service/mocks"
)

func TestSessionHandler_Clear(t *testing.T) {
	ctrl := gomock.NewController(t)
	qa := mocks.NewMockQAService(ctrl)
	handler := handlers.NewSessionHandler(qa)

	qa.EXPECT().ClearHistory(gomock.Any())

	req := httptest.NewRequest(http.MethodPost, "/api/session/clear", nil)
	rec := httptest.NewRecorder()
	handler.Clear(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestSessionHandler_Reset(t *testing.T) {
	ctrl := gomock.NewController(t)
	qa := mocks.NewMockQAService(ctrl)
	handler := handlers.NewSessionHandler(qa)

	qa.EXPECT().ResetAll(gomock.Any()).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/session/reset", nil)
	rec := httptest.NewRecorder()
	handler.Reset(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestSessionHandler_ResetFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	qa := mocks.NewMockQAService(ctrl)
	handler := handlers.NewSessionHandler(qa)

	qa.EXPECT().ResetAll(gomock.Any()).Return(errors.New("db locked"))

	req := httptest.NewRequest(http.MethodPost, "/api/session/reset", nil)
	rec := httptest.NewRecorder()
	handler.Reset(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestSessionHandler_Stats(t *testing.T) {
	ctrl := gomock.NewController(t)
	qa := mocks.NewMockQAService(ctrl)
	handler := handlers.NewSessionHandler(qa)

	qa.EXPECT().Stats(gomock.Any()).Return(service.Stats{
		Documents:    2,
		Chunks:       17,
		Vectors:      17,
		HistoryTurns: 4,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rec := httptest.NewRecorder()
	handler.Stats(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var stats service.Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if stats.Documents != 2 || stats.Chunks != 17 || stats.HistoryTurns != 4 {
		t.Errorf("stats = %+v", stats)
	}
}
