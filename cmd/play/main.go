package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"novel/internal/config"
	"novel/internal/game"
	"novel/internal/i18n"
	"novel/internal/story"
	"novel/internal/tui"
)

func main() {
	cfg, err := config.Load(config.DotenvPath())
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	book, err := story.Load(cfg.StoryPath, story.DefaultScripts())
	if err != nil {
		fmt.Printf("Error loading story: %v\n", err)
		os.Exit(1)
	}

	logger := log.New(io.Discard, "", 0)
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec // operator-chosen log path
		if err != nil {
			fmt.Printf("Error opening log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = log.New(f, "novel: ", log.LstdFlags)
	}

	opts := game.Options{
		Capacity:   cfg.Slots,
		MessageTTL: cfg.MessageTTL,
		Printer:    i18n.Printer(i18n.Tag(cfg.Lang)),
		Logger:     logger,
	}
	if err := tui.Run(book, opts, cfg.Journal); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
