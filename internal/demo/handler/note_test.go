package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/silinternational/ecs-canary-deploy/internal/demo/database"
	"github.com/silinternational/ecs-canary-deploy/internal/demo/model"
	"github.com/silinternational/ecs-canary-deploy/internal/demo/store"
)

func setupNoteHandler(t *testing.T) http.Handler {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewNoteHandler(store.NewNoteStore(db), logger)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/notes", h.Create)
	mux.HandleFunc("GET /api/notes", h.List)
	mux.HandleFunc("GET /api/notes/{id}", h.Get)
	mux.HandleFunc("PUT /api/notes/{id}", h.Update)
	mux.HandleFunc("DELETE /api/notes/{id}", h.Delete)
	mux.HandleFunc("POST /api/notes/{id}/done", h.ToggleDone)
	return mux
}

func doJSON(t *testing.T, mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestNoteHandlerCRUD(t *testing.T) {
	mux := setupNoteHandler(t)

	// Create
	rec := doJSON(t, mux, "POST", "/api/notes", `{"text":"Water the plants"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want %d", rec.Code, http.StatusCreated)
	}
	var created model.Note
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created note: %v", err)
	}
	if created.Text != "Water the plants" {
		t.Errorf("text = %q, want %q", created.Text, "Water the plants")
	}
	if created.Done {
		t.Error("expected not done")
	}

	// Get
	rec = doJSON(t, mux, "GET", "/api/notes/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want %d", rec.Code, http.StatusOK)
	}

	// List
	rec = doJSON(t, mux, "GET", "/api/notes", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want %d", rec.Code, http.StatusOK)
	}
	var notes []model.Note
	if err := json.Unmarshal(rec.Body.Bytes(), &notes); err != nil {
		t.Fatalf("decode notes: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(notes))
	}

	// Update
	rec = doJSON(t, mux, "PUT", "/api/notes/1", `{"text":"Water the garden","done":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, want %d", rec.Code, http.StatusOK)
	}
	var updated model.Note
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode updated note: %v", err)
	}
	if updated.Text != "Water the garden" || !updated.Done {
		t.Errorf("updated = %+v, want text %q done true", updated, "Water the garden")
	}

	// Toggle done
	rec = doJSON(t, mux, "POST", "/api/notes/1/done", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle status = %d, want %d", rec.Code, http.StatusOK)
	}
	var toggled model.Note
	if err := json.Unmarshal(rec.Body.Bytes(), &toggled); err != nil {
		t.Fatalf("decode toggled note: %v", err)
	}
	if toggled.Done {
		t.Error("expected not done after toggle")
	}

	// Delete
	rec = doJSON(t, mux, "DELETE", "/api/notes/1", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	rec = doJSON(t, mux, "GET", "/api/notes/1", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestNoteHandlerValidation(t *testing.T) {
	mux := setupNoteHandler(t)

	rec := doJSON(t, mux, "POST", "/api/notes", `not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad JSON status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	rec = doJSON(t, mux, "POST", "/api/notes", `{"text":"   "}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty text status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	rec = doJSON(t, mux, "GET", "/api/notes/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestNoteHandlerNotFound(t *testing.T) {
	mux := setupNoteHandler(t)

	for _, tt := range []struct {
		method, path, body string
	}{
		{"GET", "/api/notes/42", ""},
		{"PUT", "/api/notes/42", `{"text":"x"}`},
		{"DELETE", "/api/notes/42", ""},
		{"POST", "/api/notes/42/done", ""},
	} {
		rec := doJSON(t, mux, tt.method, tt.path, tt.body)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s %s status = %d, want %d", tt.method, tt.path, rec.Code, http.StatusNotFound)
		}
	}
}

func TestNoteHandlerListEmpty(t *testing.T) {
	mux := setupNoteHandler(t)

	rec := doJSON(t, mux, "GET", "/api/notes", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("empty list body = %q, want %q", got, "[]")
	}
}
