package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"docqa/internal/handlers"
	"docqa/internal/service"
	"docqa/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	QAService   service.QAService
	VectorStore vectorstore.VectorStore
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	askHandler := handlers.NewAskHandler(deps.QAService)
	documentsHandler := handlers.NewDocumentsHandler(deps.QAService)
	urlHandler := handlers.NewURLHandler(deps.QAService)
	sessionHandler := handlers.NewSessionHandler(deps.QAService)
	healthHandler := handlers.NewHealthHandler(deps.VectorStore)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/documents", documentsHandler)
		r.Method(http.MethodPost, "/documents/url", urlHandler)
		r.Method(http.MethodPost, "/ask", askHandler)
		r.Post("/session/clear", sessionHandler.Clear)
		r.Post("/session/reset", sessionHandler.Reset)
		r.Get("/stats", sessionHandler.Stats)
	})

	r.Method(http.MethodGet, "/healthz", healthHandler)

	return r
}
