package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/silinternational/ecs-canary-deploy/internal/demo/handler"
	"github.com/silinternational/ecs-canary-deploy/internal/demo/middleware"
	"github.com/silinternational/ecs-canary-deploy/internal/demo/store"
)

type Server struct {
	db     *sql.DB
	noteH  *handler.NoteHandler
	logger *slog.Logger
}

func New(db *sql.DB, logger *slog.Logger) *Server {
	noteStore := store.NewNoteStore(db)

	return &Server{
		db:     db,
		noteH:  handler.NewNoteHandler(noteStore, logger.With("component", "note")),
		logger: logger,
	}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	// Target-group health checks and deploy-time validation probe this.
	mux.HandleFunc("GET /health", s.healthHandler)

	mux.HandleFunc("POST /api/notes", s.noteH.Create)
	mux.HandleFunc("GET /api/notes", s.noteH.List)
	mux.HandleFunc("GET /api/notes/{id}", s.noteH.Get)
	mux.HandleFunc("PUT /api/notes/{id}", s.noteH.Update)
	mux.HandleFunc("DELETE /api/notes/{id}", s.noteH.Delete)
	mux.HandleFunc("POST /api/notes/{id}/done", s.noteH.ToggleDone)

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
