// Package web serves the client book as HTML pages.
//
// The server holds a single raw table, the last uploaded one or the example
// dataset. Every request runs a whole reporting cycle over it.
package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/convexa/clientbook"
	"github.com/convexa/clientbook/app"
	"github.com/convexa/clientbook/format"
	"github.com/convexa/clientbook/renderer"
	"github.com/convexa/clientbook/source"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// MaxUploadSize bounds the size of an uploaded file.
const MaxUploadSize = 32 << 20

// Config holds the server dependencies.
type Config struct {
	Addr      string
	Log       zerolog.Logger
	Aliases   clientbook.Aliases
	Status    clientbook.StatusOptions
	Formatter *format.Formatter
	Source    source.Options
	Raw       *clientbook.RawTable // initial table, the example dataset when nil
}

// Server is the HTTP view.
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger
	md     goldmark.Markdown

	aliases clientbook.Aliases
	status  clientbook.StatusOptions
	f       *format.Formatter
	source  source.Options

	raw atomic.Pointer[clientbook.RawTable] // replaced as a whole on upload
}

// New returns a server configured by cfg.
func New(cfg Config) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		log:     cfg.Log.With().Str("component", "web").Logger(),
		md:      goldmark.New(goldmark.WithExtensions(extension.GFM)),
		aliases: cfg.Aliases,
		status:  cfg.Status,
		f:       cfg.Formatter,
		source:  cfg.Source,
	}
	if s.f == nil {
		s.f = format.Default()
	}
	raw := cfg.Raw
	if raw == nil {
		ex := clientbook.Example()
		raw = &ex
	}
	s.raw.Store(raw)

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(30 * time.Second))
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleReport)
	s.router.Get("/advisors", s.handleAdvisors)
	s.router.Get("/clients/{name}", s.handleClient)
	s.router.With(httprate.LimitByIP(10, time.Minute)).Post("/upload", s.handleUpload)
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// Start listens and serves until Shutdown.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("starting HTTP server")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}

// report runs a cycle over the current table.
func (s *Server) report(opts clientbook.StatusOptions, c clientbook.Criteria) (*clientbook.Report, error) {
	return app.Run(clientbook.State{
		Raw:      *s.raw.Load(),
		Aliases:  s.aliases,
		Status:   opts,
		Criteria: c,
	}, s.log)
}

// query runs a cycle for the status options and criteria of the request query.
func (s *Server) query(w http.ResponseWriter, r *http.Request) (*clientbook.Report, bool) {
	opts, err := parseStatusOptions(r, s.status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	c, err := parseCriteria(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	rep, err := s.report(opts, c)
	if err != nil {
		s.log.Error().Err(err).Msg("cannot build report")
		http.Error(w, "cannot build report", http.StatusInternalServerError)
		return nil, false
	}
	return rep, true
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.query(w, r)
	if !ok {
		return
	}
	fs := DefaultFilters(rep, s.f)
	fs.Ref, fs.Window = r.URL.Query().Get("ref"), r.URL.Query().Get("window")
	s.writeMarkdown(w, r, page{Title: "Client Book", Filters: fs}, renderer.RenderReport(rep, s.f, renderer.ReportOptions{}))
}

func (s *Server) handleAdvisors(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.query(w, r)
	if !ok {
		return
	}
	s.writeMarkdown(w, r, page{Title: "Advisors"}, renderer.AdvisorsMarkdown(rep.Advisors, s.f))
}

func (s *Server) handleClient(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	opts, err := parseStatusOptions(r, s.status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rep, err := s.report(opts, clientbook.Criteria{})
	if err != nil {
		s.log.Error().Err(err).Msg("cannot build report")
		http.Error(w, "cannot build report", http.StatusInternalServerError)
		return
	}
	row, ok := rep.Client(name)
	if !ok {
		http.Error(w, fmt.Sprintf("no client named %q", name), http.StatusNotFound)
		return
	}
	s.writeMarkdown(w, r, page{Title: row.Client}, renderer.ClientMarkdown(row, s.f))
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, fmt.Sprintf("missing file: %v", err), http.StatusBadRequest)
		return
	}
	defer file.Close()

	raw, err := source.Read(file, header.Filename, s.source)
	if err != nil {
		s.log.Warn().Err(err).Str("file", header.Filename).Msg("upload rejected")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.raw.Store(&raw)
	s.log.Info().Str("file", header.Filename).Int("rows", len(raw.Rows)).Msg("table uploaded")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// writeMarkdown writes src as HTML in the page layout, or as is when the
// request asks for format=md.
func (s *Server) writeMarkdown(w http.ResponseWriter, r *http.Request, p page, src string) {
	if r.URL.Query().Get("format") == "md" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		fmt.Fprint(w, src)
		return
	}
	var body bytes.Buffer
	if err := s.md.Convert([]byte(src), &body); err != nil {
		s.log.Error().Err(err).Msg("cannot convert markdown")
		http.Error(w, "cannot render page", http.StatusInternalServerError)
		return
	}
	var out bytes.Buffer
	if err := p.render(&out, body.String()); err != nil {
		s.log.Error().Err(err).Msg("cannot render page")
		http.Error(w, "cannot render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	out.WriteTo(w)
}
