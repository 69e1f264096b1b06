// Package tui plays a story in the terminal.
package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"novel/internal/game"
	"novel/internal/i18n"
	"novel/internal/journal"
	"novel/internal/story"
)

type mode int

const (
	modeScene mode = iota
	modeBag
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	dialogueStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5F5F87")).
			Padding(0, 1).
			Width(60)

	choiceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE"))

	statStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))

	brokenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Strikethrough(true)

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#C9B458")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E05555"))
)

// Model is the bubbletea model for one play session.
type Model struct {
	book    *story.Book
	ctrl    *game.Controller
	sched   *Scheduler
	keys    keyMap
	help    help.Model
	mode    mode
	journal string // where "save journal" writes
	err     error
}

// NewModel starts a session of book. opts carries host settings; its
// scheduler is replaced by sched.
func NewModel(book *story.Book, sched *Scheduler, opts game.Options, journalPath string) (Model, error) {
	opts.Scheduler = sched
	ctrl, err := book.NewController(opts)
	if err != nil {
		return Model{}, err
	}
	return Model{
		book:    book,
		ctrl:    ctrl,
		sched:   sched,
		keys:    defaultKeys(),
		help:    help.New(),
		journal: journalPath,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return m.sched.Wait()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerMsg:
		msg.f()
		return m, m.sched.Wait()

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		m.err = nil
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.ctrl.Stop()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Restart):
			m.mode = modeScene
			m.err = m.ctrl.Restart()
		case key.Matches(msg, m.keys.Journal):
			m.err = m.saveJournal()
		case key.Matches(msg, m.keys.Bag):
			if m.mode == modeBag {
				m.mode = modeScene
			} else {
				m.mode = modeBag
			}
		case key.Matches(msg, m.keys.Back):
			m.mode = modeScene
		case key.Matches(msg, m.keys.Next):
			m.ctrl.NextDialogue()
		case key.Matches(msg, m.keys.Pick) && len(msg.Runes) == 1:
			m.pick(int(msg.Runes[0] - '1'))
		}
	}
	return m, nil
}

// pick runs the n-th (zero-based) choice or item, depending on mode.
func (m *Model) pick(n int) {
	if m.mode == modeBag {
		items := m.ctrl.Player().Items
		if n >= len(items) {
			return
		}
		m.mode = modeScene
		if err := m.ctrl.OpenItem(items[n].ID); err != nil && !errors.Is(err, game.ErrItemsLocked) {
			m.err = err
		}
		return
	}
	if m.hasMoreDialogue() {
		return
	}
	choices := m.ctrl.Choices()
	if n >= len(choices) {
		return
	}
	m.err = m.ctrl.Choose(choices[n].Key)
}

func (m Model) hasMoreDialogue() bool {
	sc := m.ctrl.CurrentScene()
	return sc != nil && m.ctrl.DialogueIndex()+1 < len(sc.Dialogues)
}

func (m Model) saveJournal() error {
	if m.journal == "" {
		return nil
	}
	pdf, err := journal.Render(journal.FromController(m.book.Title, m.ctrl, m.book.Registry))
	if err != nil {
		return err
	}
	if err := os.WriteFile(m.journal, pdf, 0o600); err != nil { //nolint:gosec // user-chosen output path
		return fmt.Errorf("save journal: %w", err)
	}
	m.ctrl.ShowMessage(m.ctrl.Printer().Sprintf(i18n.JournalSaved, m.journal))
	return nil
}

func (m Model) View() string {
	var b strings.Builder
	st := m.ctrl.Player()
	sc := m.ctrl.CurrentScene()

	if top := m.ctrl.Messages().Current(game.Top); top != "" {
		b.WriteString(messageStyle.Render(top) + "\n")
	}
	b.WriteString(statStyle.Render(m.ctrl.Printer().Sprintf(i18n.Status,
		st.Health, st.MaxHealth, st.Spirit, st.MaxSpirit, st.Money)) + "\n\n")

	if sc != nil {
		b.WriteString(titleStyle.Render(sc.Title) + "\n")
		if i := m.ctrl.DialogueIndex(); i < len(sc.Dialogues) {
			b.WriteString(dialogueStyle.Render(sc.Dialogues[i]) + "\n")
		}
	}

	if m.mode == modeBag {
		b.WriteString(m.renderBag())
	} else if !m.hasMoreDialogue() {
		for i, ch := range m.ctrl.Choices() {
			if i >= 9 {
				break
			}
			b.WriteString(choiceStyle.Render(fmt.Sprintf("%d) %s", i+1, ch.Text)) + "\n")
		}
	}

	if msg := m.ctrl.Messages().Current(game.Bottom); msg != "" {
		b.WriteString("\n" + messageStyle.Render(msg) + "\n")
	}
	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m Model) renderBag() string {
	var b strings.Builder
	pr := m.ctrl.Printer()
	label := pr.Sprintf(i18n.BagTitle)
	if m.ctrl.CurrentID() == game.SceneAbandon {
		label = pr.Sprintf(i18n.BagDrop)
	}
	b.WriteString("\n" + titleStyle.Render(label) + "\n")
	items := m.ctrl.Player().Items
	if len(items) == 0 {
		b.WriteString(pr.Sprintf(i18n.BagEmpty) + "\n")
	}
	for i, it := range items {
		line := fmt.Sprintf("%d) %s", i+1, it.DisplayName())
		if it.Quantity > 1 {
			line += fmt.Sprintf(" x%d", it.Quantity)
		}
		if it.Condition == game.Depleted {
			line = brokenStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// Run plays book until the user quits.
func Run(book *story.Book, opts game.Options, journalPath string) error {
	m, err := NewModel(book, NewScheduler(), opts, journalPath)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
