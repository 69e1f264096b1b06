package web

import (
	"net/http"

	"novel/internal/journal"
)

// GET /journal downloads the session's route so far as a PDF.
func (s *Server) handleJournal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := s.sessionID(r)
	if id == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	play, ok, err := s.Store.Get(r.Context(), id)
	if err != nil || !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	play.mu.Lock()
	page := journal.FromController(s.Book.Title, play.Ctrl, s.Book.Registry)
	play.mu.Unlock()

	pdf, err := journal.Render(page)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="journal.pdf"`)
	if _, err := w.Write(pdf); err != nil {
		s.logger().Printf("write journal: %v", err)
	}
}
