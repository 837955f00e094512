package proxy

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"github.com/amplistack/amplistack/pkg/store"
)

const shutdownTimeout = 10 * time.Second

// Option configures a [Server].
type Option func(*Server)

// WithCompleter sets the language model. Without one the transcript route
// answers 500.
func WithCompleter(c Completer) Option { return func(s *Server) { s.completer = c } }

// WithStore enables the shared diagram routes.
func WithStore(st store.Store) Option { return func(s *Server) { s.store = st } }

// WithLogger sets the logger. Defaults to log.Default().
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.log = l } }

// Server is the HTTP API.
type Server struct {
	cfg       Config
	completer Completer
	store     store.Store
	log       *log.Logger
	validate  *validator.Validate
}

// New creates a server.
func New(cfg Config, opts ...Option) *Server {
	cfg.setDefaults()
	s := &Server{cfg: cfg, validate: validator.New()}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = log.Default()
	}
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.log))
	r.Use(cors.Handler(s.corsOptions()))

	r.Get("/health", s.handleHealth)
	r.Post("/api/ai/transcript", s.handleTranscript)
	if s.store != nil {
		r.Route("/api/diagrams", func(r chi.Router) {
			r.Post("/", s.handleCreateDiagram)
			r.Get("/{id}", s.handleGetDiagram)
			r.Put("/{id}", s.handlePutDiagram)
		})
	}
	return r
}

func (s *Server) corsOptions() cors.Options {
	origins := []string{"*"}
	if s.cfg.AllowedOrigin != "" {
		origins = []string{s.cfg.AllowedOrigin}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info("AI proxy listening", "addr", srv.Addr, "model", s.cfg.Model, "store", s.store != nil)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
