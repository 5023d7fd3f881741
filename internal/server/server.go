// Package server exposes exports over HTTP.
//
// Each POST /exports request carries a scene snapshot and an optional TOML
// configuration. The export is written to its own directory, named by the
// export's run ID, below the server's root directory; the files can then be
// fetched one by one. Exports run one at a time.
//
// Routes:
//
//	POST   /exports              export a scene, returns the run ID and files
//	GET    /exports/{id}         list the files of an export
//	GET    /exports/{id}/{file}  download one file
//	DELETE /exports/{id}         remove an export
//	GET    /stats                export and renderer counters
//	GET    /healthz              liveness
package server

import (
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/rtexport/pkg/errors"
	"github.com/matzehuels/rtexport/pkg/observability"
	"github.com/matzehuels/rtexport/pkg/pipeline"
)

// DefaultMaxBody limits request bodies to 32 MiB.
const DefaultMaxBody = 32 << 20

// Options configures a [Server].
type Options struct {
	// Dir is the root directory for export directories. Required.
	Dir string
	// Logger receives request and export logs. Nil discards them.
	Logger *log.Logger
	// Counter backs /stats. It only sees events when it is installed as
	// the global hooks, see [observability.SetExportHooks].
	Counter *observability.Counter
	// MaxBody limits the request body size in bytes.
	MaxBody int64
}

// Server is the HTTP export service.
type Server struct {
	dir     string
	logger  *log.Logger
	counter *observability.Counter
	maxBody int64
	runner  *pipeline.Runner
	router  chi.Router

	// mu serializes exports.
	mu sync.Mutex
}

// New creates the root directory and the router.
func New(opts Options) (*Server, error) {
	if opts.Dir == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "server directory is required")
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeOutput, err, "create %s", opts.Dir)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Counter == nil {
		opts.Counter = observability.NewCounter()
	}
	if opts.MaxBody <= 0 {
		opts.MaxBody = DefaultMaxBody
	}

	s := &Server{
		dir:     opts.Dir,
		logger:  opts.Logger,
		counter: opts.Counter,
		maxBody: opts.MaxBody,
		runner:  pipeline.NewRunner(opts.Logger),
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Get("/stats", s.handleStats)
	r.Route("/exports", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/{id}", s.handleList)
		r.Delete("/{id}", s.handleDelete)
		r.Get("/{id}/*", s.handleFile)
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Counter returns the counter served on /stats.
func (s *Server) Counter() *observability.Counter {
	return s.counter
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
