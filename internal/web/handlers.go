package web

import (
	"context"
	"errors"
	"html/template"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"golang.org/x/text/language"

	"novel/internal/game"
	"novel/internal/i18n"
	"novel/internal/session"
	"novel/internal/story"
)

// Play is one browser session. Handlers and timer callbacks both take
// mu before touching Ctrl.
type Play struct {
	mu   sync.Mutex
	Ctrl *game.Controller
	Lang language.Tag
}

type Server struct {
	Book   *story.Book
	Store  session.Store[*Play]
	Tmpl   *template.Template
	Assets string // directory holding story images

	Lang       string // fallback when the browser sends no Accept-Language
	Slots      int
	MessageTTL time.Duration
	Logger     *log.Logger
}

const cookieName = "novel_sid"

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)

	mux.HandleFunc("/play", s.handlePlay)
	mux.HandleFunc("/dialogue", s.handleDialogue)
	mux.HandleFunc("/item", s.handleItem)
	mux.HandleFunc("/restart", s.handleRestart)
	mux.HandleFunc("/journal", s.handleJournal)

	mux.HandleFunc("/images/", s.handleImage)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	return mux
}

func (s *Server) logger() *log.Logger {
	if s.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return s.Logger
}

// GET /
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	play, _, err := s.getOrCreatePlay(r.Context(), w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	play.mu.Lock()
	vm := s.makeViewModel(play)
	play.mu.Unlock()

	w.Header().Set("Cache-Control", "no-store")
	if err := s.Tmpl.ExecuteTemplate(w, "layout.html", vm); err != nil {
		s.logger().Printf("render layout: %v", err)
	}
}

// GET /play refreshes the scene; POST /play runs a choice.
func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, func(c *game.Controller) error {
		if r.Method == http.MethodGet {
			return nil
		}
		return c.Choose(r.FormValue("choice"))
	})
}

// POST /dialogue
func (s *Server) handleDialogue(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, func(c *game.Controller) error {
		c.NextDialogue()
		return nil
	})
}

// POST /item opens an item, or drops it while the bag is full.
func (s *Server) handleItem(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, func(c *game.Controller) error {
		err := c.OpenItem(r.FormValue("item"))
		if errors.Is(err, game.ErrItemsLocked) {
			// The refusal is already on the message line.
			return nil
		}
		return err
	})
}

// POST /restart
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, func(c *game.Controller) error {
		return c.Restart()
	})
}

// act runs fn against the session's controller and renders the game
// fragment for htmx.
func (s *Server) act(w http.ResponseWriter, r *http.Request, fn func(*game.Controller) error) {
	if r.Method != http.MethodPost && !(r.Method == http.MethodGet && r.URL.Path == "/play") {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	play, _, err := s.getOrCreatePlay(r.Context(), w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	play.mu.Lock()
	err = fn(play.Ctrl)
	vm := s.makeViewModel(play)
	play.mu.Unlock()

	switch {
	case errors.Is(err, game.ErrUnknownChoice), errors.Is(err, game.ErrUnknownItem), errors.Is(err, game.ErrNotAbandoning):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		s.logger().Printf("session action: %v", err)
		vm.Error = err.Error()
	}

	w.Header().Set("Cache-Control", "no-store")
	if err := s.Tmpl.ExecuteTemplate(w, "game.html", vm); err != nil {
		s.logger().Printf("render game: %v", err)
	}
}

func (s *Server) getOrCreatePlay(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Play, string, error) {
	id := s.sessionID(r)
	if id != "" {
		play, ok, err := s.Store.Get(ctx, id)
		if err != nil {
			return nil, "", err
		}
		if ok {
			return play, id, nil
		}
	} else {
		id = s.Store.NewID()
		http.SetCookie(w, &http.Cookie{
			Name:     cookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	play, err := s.newPlay(r)
	if err != nil {
		return nil, "", err
	}
	if err := s.Store.Put(ctx, id, play); err != nil {
		play.Ctrl.Stop()
		return nil, "", err
	}
	return play, id, nil
}

func (s *Server) newPlay(r *http.Request) (*Play, error) {
	lang := r.Header.Get("Accept-Language")
	if lang == "" {
		lang = s.Lang
	}
	play := &Play{Lang: i18n.Tag(lang)}
	ctrl, err := s.Book.NewController(game.Options{
		Capacity:   s.Slots,
		MessageTTL: s.MessageTTL,
		Printer:    i18n.Printer(play.Lang),
		Logger:     s.Logger,
		Scheduler:  game.LockedScheduler{Locker: &play.mu},
	})
	if err != nil {
		return nil, err
	}
	play.Ctrl = ctrl
	return play, nil
}

func (s *Server) sessionID(r *http.Request) string {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// Evict stops an idle session's timers. It is passed to the store's
// janitor.
func Evict(p *Play) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Ctrl.Stop()
}
