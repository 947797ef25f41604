package http_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	internalhttp "docqa/internal/http"
	"docqa/internal/rag"
	"docqa/internal/service"
	"docqa/internal/service/mocks"
	"docqa/internal/vectorstore"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newRouter(t *testing.T) (http.Handler, *mocks.MockQAService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	qa := mocks.NewMockQAService(ctrl)
	router := internalhttp.NewRouter(&internalhttp.Deps{
		QAService:   qa,
		VectorStore: vectorstore.NewMemoryStore(),
	})
	return router, qa
}

func TestRouter_Ask(t *testing.T) {
	router, qa := newRouter(t)

	qa.EXPECT().
		Ask(gomock.Any(), "q").
		Return(&rag.Answer{Kind: rag.AnswerGenerated, Text: "a"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`{"question":"q"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("POST /api/ask status = %d, want 200", rec.Code)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	router, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/ask", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /api/ask status = %d, want 405", rec.Code)
	}
}

func TestRouter_SessionRoutes(t *testing.T) {
	router, qa := newRouter(t)

	qa.EXPECT().ClearHistory(gomock.Any())
	qa.EXPECT().ResetAll(gomock.Any()).Return(nil)
	qa.EXPECT().Stats(gomock.Any()).Return(service.Stats{}, nil)

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/session/clear"},
		{http.MethodPost, "/api/session/reset"},
		{http.MethodGet, "/api/stats"},
	} {
		req := httptest.NewRequest(route.method, route.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("%s %s status = %d, want 200", route.method, route.path, rec.Code)
		}
	}
}

func TestRouter_Health(t *testing.T) {
	router, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("GET /healthz status = %d, want 200", rec.Code)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	router, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("GET /api/unknown status = %d, want 404", rec.Code)
	}
}
