package main

import (
	"context"
	"errors"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"novel/internal/config"
	"novel/internal/session"
	"novel/internal/story"
	"novel/internal/web"
)

func main() {
	cfg, err := config.Load(config.DotenvPath())
	if err != nil {
		log.Fatal(err)
	}

	book, err := story.Load(cfg.StoryPath, story.DefaultScripts())
	if err != nil {
		log.Fatal(err)
	}

	tmpl := template.Must(template.ParseFiles(
		filepath.Join(cfg.Templates, "layout.html"),
		filepath.Join(cfg.Templates, "game.html"),
	))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := session.NewMemoryStore[*web.Play](cfg.SessionIdle)
	go store.Janitor(ctx, time.Minute, web.Evict)

	srv := &web.Server{
		Book:       book,
		Store:      store,
		Tmpl:       tmpl,
		Assets:     cfg.Assets,
		Lang:       cfg.Lang,
		Slots:      cfg.Slots,
		MessageTTL: cfg.MessageTTL,
		Logger:     log.Default(),
	}
	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdown)
	}()

	log.Printf("%q loaded, listening on http://localhost%s", book.Title, cfg.Addr)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
