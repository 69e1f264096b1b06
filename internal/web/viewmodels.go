package web

import (
	"novel/internal/game"
	"novel/internal/i18n"
)

// ChoiceView is one button under the dialogue box.
type ChoiceView struct {
	Key  string
	Text string
}

// ItemView is one inventory slot.
type ItemView struct {
	ID          string
	Name        string
	Description string
	Image       string
	Quantity    int
	Broken      bool
}

// ViewModel is everything game.html draws for one scene.
type ViewModel struct {
	Title      string
	SceneTitle string
	Image      string
	Transition string
	Dialogue   string
	More       bool // further dialogue lines follow
	Choices    []ChoiceView

	Health, MaxHealth int
	Spirit, MaxSpirit int
	Money             int
	Items             []ItemView
	SlotsUsed, Slots  int

	Locked     bool // scene moves on by itself; the page polls
	Abandoning bool
	Fatal      bool
	TopMessage string
	Message    string
	Error      string
	Lang       string

	// Localized host labels.
	Status       string
	RestartLabel string
	JournalLabel string
}

// Poll is true when server-side timers may change what the page shows.
func (vm ViewModel) Poll() bool {
	return vm.Locked || vm.Message != "" || vm.TopMessage != ""
}

func (s *Server) makeViewModel(p *Play) ViewModel {
	c := p.Ctrl
	st := c.Player()
	pr := c.Printer()
	vm := ViewModel{
		Title:      s.Book.Title,
		Health:     st.Health,
		MaxHealth:  st.MaxHealth,
		Spirit:     st.Spirit,
		MaxSpirit:  st.MaxSpirit,
		Money:      st.Money,
		SlotsUsed:  st.SlotsUsed(),
		Slots:      s.Slots,
		Locked:     c.ItemsLocked(),
		Abandoning: c.CurrentID() == game.SceneAbandon,
		TopMessage: c.Messages().Current(game.Top),
		Message:    c.Messages().Current(game.Bottom),
		Lang:       p.Lang.String(),

		Status:       pr.Sprintf(i18n.Status, st.Health, st.MaxHealth, st.Spirit, st.MaxSpirit, st.Money),
		RestartLabel: pr.Sprintf(i18n.Restart),
		JournalLabel: pr.Sprintf(i18n.JournalLink),
	}
	if vm.Slots < 1 {
		vm.Slots = game.DefaultCapacity
	}

	if sc := c.CurrentScene(); sc != nil {
		vm.SceneTitle = sc.Title
		vm.Image = sc.Image
		vm.Transition = sc.Transition
		vm.Fatal = sc.Fatal
		if i := c.DialogueIndex(); i < len(sc.Dialogues) {
			vm.Dialogue = sc.Dialogues[i]
			vm.More = i+1 < len(sc.Dialogues)
		}
	}
	for _, ch := range c.Choices() {
		vm.Choices = append(vm.Choices, ChoiceView{Key: ch.Key, Text: ch.Text})
	}
	for _, it := range st.Items {
		vm.Items = append(vm.Items, ItemView{
			ID:          it.ID,
			Name:        it.DisplayName(),
			Description: it.DisplayDescription(),
			Image:       it.DisplayImage(),
			Quantity:    it.Quantity,
			Broken:      it.Condition == game.Depleted,
		})
	}
	return vm
}
