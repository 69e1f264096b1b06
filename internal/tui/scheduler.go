package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"novel/internal/game"
)

// timerMsg carries a fired timer callback back onto the update loop, so
// the controller is only ever touched from Update.
type timerMsg struct {
	f func()
}

// Scheduler implements game.Scheduler for a bubbletea program.
type Scheduler struct {
	fired chan func()
}

func NewScheduler() *Scheduler {
	return &Scheduler{fired: make(chan func(), 16)}
}

func (s *Scheduler) AfterFunc(d time.Duration, f func()) game.Timer {
	return time.AfterFunc(d, func() { s.fired <- f })
}

// Wait blocks until a timer fires. Update re-arms it after each one.
func (s *Scheduler) Wait() tea.Cmd {
	return func() tea.Msg {
		return timerMsg{f: <-s.fired}
	}
}
