package http

import (
	"log/slog"
	"net/http"
	"time"

	"datesheet/internal/core"
	applog "datesheet/internal/log"
	"datesheet/internal/middleware/security"
	"datesheet/internal/middleware/trace"
)

// Renderer produces the PDF for the month containing start.
type Renderer interface {
	RenderMonth(start time.Time, size core.PageSize) ([]byte, error)
}

type Server struct {
	http.Server
	renderer Renderer
	logger   *applog.Logger
	tracer   *trace.Middleware
	page     core.PageSize
	now      func() time.Time
}

// Option customizes a Server.
type Option func(*Server)

// WithClock replaces time.Now, used for the redirect target.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithPageSize sets the page size of rendered sheets (A4 landscape by default).
func WithPageSize(size core.PageSize) Option {
	return func(s *Server) { s.page = size }
}

// WithLogger sets the logger used by the request middleware and handlers.
func WithLogger(logger *applog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// NewServer configures routes and middleware, returning a ready-to-run http.Server.
func NewServer(addr string, r Renderer, opts ...Option) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:           addr,
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: 1 << 16, // 64KB
		},
		renderer: r,
		page:     core.A4Landscape,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = applog.New(applog.Config{Level: slog.LevelInfo, Handler: slog.Default().Handler()})
	}
	s.logger = s.logger.WithComponent(applog.ComponentHTTP)

	mux.HandleFunc("GET /{$}", security.NoStore(s.handleIndex))
	mux.HandleFunc("GET /{year}/{month}", s.handleDatesheet)
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	s.tracer = trace.NewMiddleware(s.logger, trace.ClientIP)

	var h http.Handler = mux
	h = applog.RequestIDMiddleware(trace.RequestID)(h)
	h = applog.Middleware(s.logger)(h)
	h = s.tracer.Middleware(h)
	h = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(h)
	s.Handler = h

	return s
}

// Metrics returns request counters collected by the trace middleware.
func (s *Server) Metrics() trace.Metrics {
	return s.tracer.GetMetrics()
}
