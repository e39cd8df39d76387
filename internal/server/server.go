// Package server exposes the batch driver over HTTP for the interactive
// operator flow: upload PDFs, review the extracted table, download the
// consolidated workbook.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/EliasGomez98/PDF-Scrapping/internal/batch"
	"github.com/EliasGomez98/PDF-Scrapping/internal/common"
	"github.com/EliasGomez98/PDF-Scrapping/internal/export"
)

// Server holds the wired services and the single operator's current batch.
// The current batch is replaced wholesale on every upload and survives
// export failures, so results stay redisplayable.
type Server struct {
	proc   *batch.Processor
	export *export.Service
	cfg    common.Config
	fields []string
	logger *slog.Logger

	mu      sync.Mutex
	current *batch.Result
}

func New(proc *batch.Processor, exp *export.Service, cfg common.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		proc:   proc,
		export: exp,
		cfg:    cfg,
		fields: proc.Registry.Fields(),
		logger: logger,
	}
}

// Routes builds the HTTP router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Route("/v1", func(r chi.Router) {
		r.Post("/batches", s.handleCreateBatch)
		r.Get("/batches/current", s.handleCurrentBatch)
		r.Get("/batches/current/export", s.handleExport)
	})
	return r
}

func (s *Server) setCurrent(res *batch.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = res
}

func (s *Server) currentBatch() *batch.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("server.write.failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	s.writeJSON(w, code, map[string]string{"error": msg})
}
