// Package api exposes the HTTP backend: a PIN-gated chat endpoint that
// edits the config document through a pluggable Editor and persists
// accepted edits through a Committer, plus a layout endpoint backed by
// the shared pipeline Runner.
package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mfbx9da4/meanwhile/pkg/config"
	"github.com/mfbx9da4/meanwhile/pkg/highlight"
	"github.com/mfbx9da4/meanwhile/pkg/pipeline"
)

// Source supplies the current config document to the chat handler.
type Source interface {
	Load(ctx context.Context) (config.Document, error)
}

// FileSource loads the document from a local config file.
type FileSource struct {
	Path string
}

func (s FileSource) Load(context.Context) (config.Document, error) {
	return config.Load(s.Path)
}

// Storer is an optional Source extension. A source that caches or
// mirrors the document implements it to pick up accepted edits.
type Storer interface {
	Store(doc config.Document)
}

// funcSource adapts a function to the Source interface.
type funcSource func(ctx context.Context) (config.Document, error)

func (f funcSource) Load(ctx context.Context) (config.Document, error) { return f(ctx) }

// SourceFunc adapts a function to the Source interface.
func SourceFunc(f func(ctx context.Context) (config.Document, error)) Source {
	return funcSource(f)
}

// Server holds the dependencies of the HTTP API.
type Server struct {
	pin       string
	source    Source
	editor    Editor
	committer Committer
	runner    *pipeline.Runner
	highlight *highlight.Value
	logger    *log.Logger
}

// ServerConfig configures a Server.
type ServerConfig struct {
	// PIN gates the chat endpoint. Required.
	PIN string

	// Source supplies the current document. Required.
	Source Source

	// Editor applies chat instructions to the document. Required.
	Editor Editor

	// Committer persists accepted edits. Optional; without one, edits
	// are acknowledged but not persisted and no commit URL is returned.
	Committer Committer

	// Runner serves the layout endpoint. Optional; when nil a
	// cacheless runner is used.
	Runner *pipeline.Runner

	Logger *log.Logger
}

// NewServer wires the API server.
func NewServer(cfg ServerConfig) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.New(os.Stderr)
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	return &Server{
		pin:       cfg.PIN,
		source:    cfg.Source,
		editor:    cfg.Editor,
		committer: cfg.Committer,
		runner:    cfg.Runner,
		highlight: highlight.NewValue(),
		logger:    cfg.Logger,
	}
}

// Highlight exposes the server's highlight selection, letting embedders
// observe updates pushed through the highlight endpoint.
func (s *Server) Highlight() *highlight.Value {
	return s.highlight
}

// Router builds the chi router with middleware and routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/api/chat", s.handleChat)
	r.Get("/api/layout", s.handleLayout)
	r.Post("/api/highlight", s.handleHighlight)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// checkPIN compares in constant time.
func (s *Server) checkPIN(pin string) bool {
	return subtle.ConstantTimeCompare([]byte(pin), []byte(s.pin)) == 1
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
