package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/workforce-labs/caseflow/pkg/stream"
	"github.com/workforce-labs/caseflow/pkg/usecase"
	"github.com/workforce-labs/caseflow/pkg/utils/errutil"
	"github.com/workforce-labs/caseflow/pkg/utils/logging"
)

// Server is the REST + SSE surface over the case engine. Authentication is
// handled upstream; callers identify themselves through the actor/requester
// parameters the gateway injects.
type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
	hub    *stream.Hub
}

type Options func(*Server)

// WithHub enables the /api/events SSE endpoint
func WithHub(hub *stream.Hub) Options {
	return func(s *Server) {
		s.hub = hub
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/cases", func(r chi.Router) {
			r.Post("/", s.handleCreateCase)
			r.Get("/", s.handleListCases)
			r.Get("/overdue", s.handleListOverdue)

			r.Route("/{caseID}", func(r chi.Router) {
				r.Get("/", s.handleViewCase)
				r.Delete("/", s.handleDeleteCase)
				r.Post("/transitions/{action}", s.handleTransition)
				r.Post("/evidence", s.handleAttachEvidence)
				r.Get("/audit", s.handleListAudit)
			})
		})

		if s.hub != nil {
			r.Get("/events", s.handleEvents)
		}
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data) //nolint:errcheck // header already committed
}
