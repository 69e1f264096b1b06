package game

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"novel/internal/i18n"
)

// UseEffect is a per-item consume action shown in the item scene.
type UseEffect struct {
	Label   string `yaml:"label"`
	Health  int    `yaml:"health"`
	Spirit  int    `yaml:"spirit"`
	Message string `yaml:"message"`
}

// UseTable maps an item id to its consume action.
type UseTable map[string]UseEffect

// Synthesizer builds the item scenes from player state and parameters.
// Its methods have no side effects; the returned choices do the work
// when selected. They return nil when the parameters cannot be resolved.
type Synthesizer struct {
	Capacity int
	Uses     UseTable
	Printer  *message.Printer
	// Template lets item scenes borrow a static scene, e.g. the pages
	// of a readable item.
	Template func(id string) (*Scene, bool)
}

func (s *Synthesizer) capacity() int {
	if s.Capacity <= 0 {
		return DefaultCapacity
	}
	return s.Capacity
}

func (s *Synthesizer) p() *message.Printer {
	if s.Printer == nil {
		s.Printer = i18n.Printer(language.English)
	}
	return s.Printer
}

// needsSlot reports whether taking acq requires a free physical slot
// that st does not have.
func (s *Synthesizer) needsSlot(st *PlayerState, acq *Acquisition) bool {
	if acq.Currency || acq.RefillOnly || st.HasItem(acq.ItemID) {
		return false
	}
	return st.SlotsUsed() >= s.capacity()
}

// ItemGet offers an acquisition, either fresh (p.Acquire) or resumed
// after the player freed a slot (p.Pending).
func (s *Synthesizer) ItemGet(st *PlayerState, current string, p *Params) *Scene {
	if p == nil {
		return nil
	}
	pending := p.Pending
	var acq Acquisition
	switch {
	case pending != nil:
		acq = pending.Acquisition
	case p.Acquire != nil:
		acq = *p.Acquire
	default:
		return nil
	}
	ret := firstNonEmpty(acq.ReturnScene, p.ReturnScene, current)
	acq.ReturnScene = ret

	sc := &Scene{
		ID:        SceneItemGet,
		Title:     s.p().Sprintf(i18n.GetTitle),
		Image:     acq.Image,
		Dialogues: append([]string(nil), acq.Dialogues...),
		Item:      &ItemContext{ItemID: acq.ItemID, PrevScene: ret, Pending: pending},
	}
	if len(sc.Dialogues) == 0 && acq.Description != "" {
		sc.Dialogues = []string{acq.Description}
	}

	if !s.needsSlot(st, &acq) {
		sc.Choices = []Choice{s.accept(acq, pending)}
		return sc
	}

	if pending == nil {
		pending = &Pending{Acquisition: acq}
	}
	pending.ReturnScene = ret
	sc.Choices = []Choice{
		{
			Text: s.p().Sprintf(i18n.GetFull),
			OnSelect: func(c *Controller) Outcome {
				_ = c.ChangeScene(SceneAbandon, &Params{Pending: pending})
				return Handled()
			},
		},
		{Text: s.p().Sprintf(i18n.GetDecline), Next: ret},
	}
	return sc
}

func (s *Synthesizer) accept(acq Acquisition, pending *Pending) Choice {
	msg := acq.SuccessMessage
	if msg == "" {
		if acq.Currency {
			msg = s.p().Sprintf(i18n.GetCoins, acq.Amount)
		} else {
			msg = s.p().Sprintf(i18n.GetDone, firstNonEmpty(acq.Name, acq.ItemID))
		}
	}
	return Choice{
		Text: s.p().Sprintf(i18n.GetTake),
		Next: acq.ReturnScene,
		OnSelect: func(c *Controller) Outcome {
			st := c.Player()
			if pending != nil && !pending.settled {
				pending.settled = true
				if pending.Cost > 0 {
					st.AddMoney(-pending.Cost)
				}
			}
			if acq.Currency {
				st.AddMoney(acq.Amount)
			} else if acq.OnGet != nil {
				acq.OnGet(c)
			}
			if !acq.Quiet {
				c.ShowMessage(msg)
			}
			return Proceed()
		},
	}
}

// Abandon asks the player to drop an item so the pending acquisition
// fits. The drop itself goes through Controller.Discard.
func (s *Synthesizer) Abandon(st *PlayerState, current string, p *Params) *Scene {
	if p == nil {
		return nil
	}
	pending := p.Pending
	ret := p.ReturnScene
	if pending != nil {
		ret = firstNonEmpty(pending.ReturnScene, ret)
	}
	if ret == "" {
		return nil
	}
	sc := &Scene{
		ID:        SceneAbandon,
		Title:     s.p().Sprintf(i18n.AbandonTitle),
		Dialogues: []string{s.p().Sprintf(i18n.AbandonPrompt)},
		Item:      &ItemContext{PrevScene: ret, Pending: pending},
	}
	if pending != nil {
		sc.Item.ItemID = pending.ItemID
		sc.Image = pending.Image
	}
	sc.Choices = []Choice{{
		Text: s.p().Sprintf(i18n.AbandonCancel),
		OnSelect: func(c *Controller) Outcome {
			if pending != nil {
				_ = c.ChangeScene(SceneItemGet, &Params{Pending: pending})
				return Handled()
			}
			return ProceedTo(ret)
		},
	}}
	return sc
}

// ItemUse shows an owned item with its actions.
func (s *Synthesizer) ItemUse(st *PlayerState, current string, p *Params) *Scene {
	if p == nil {
		return nil
	}
	it, ok := st.Item(p.ItemID)
	if !ok {
		return nil
	}
	id := it.ID
	ret := firstNonEmpty(p.ReturnScene, current)
	sc := &Scene{
		ID:        SceneItemUse,
		Title:     firstNonEmpty(it.DisplayName(), s.p().Sprintf(i18n.UseTitle)),
		Image:     it.DisplayImage(),
		Dialogues: []string{it.DisplayDescription()},
		Item:      &ItemContext{ItemID: id, PrevScene: ret},
	}

	if it.Read != "" {
		if page, ok := s.readable(it.Read, id, ret); ok {
			sc.Choices = append(sc.Choices, Choice{
				Text: s.p().Sprintf(i18n.UseOpen),
				OnSelect: func(c *Controller) Outcome {
					c.enter(page.ID, page.Clone())
					return Handled()
				},
			})
		}
	}

	if eff, ok := s.Uses[id]; ok && it.CanUse() {
		sc.Choices = append(sc.Choices, s.consume(id, eff, ret))
	} else if it.Type == ItemRecovery && it.CanUse() {
		sc.Choices = append(sc.Choices, s.consume(id, UseEffect{}, ret))
	}

	if it.Condition == Depleted {
		hint := s.p().Sprintf(i18n.UseBrokenHint)
		sc.Choices = append(sc.Choices, Choice{
			Text: s.p().Sprintf(i18n.UseBroken),
			OnSelect: func(c *Controller) Outcome {
				c.ShowMessage(hint)
				return Handled()
			},
		})
	}

	sc.Choices = append(sc.Choices, Choice{Text: s.p().Sprintf(i18n.Back), Next: ret})
	return sc
}

func (s *Synthesizer) consume(id string, eff UseEffect, ret string) Choice {
	none := s.p().Sprintf(i18n.UseNone)
	return Choice{
		Text: firstNonEmpty(eff.Label, s.p().Sprintf(i18n.UseUse)),
		Next: ret,
		OnSelect: func(c *Controller) Outcome {
			st := c.Player()
			if !st.UseItem(id) {
				c.ShowMessage(none)
				return Handled()
			}
			st.Apply(Cost{Type: Health, Amount: eff.Health})
			st.Apply(Cost{Type: Spirit, Amount: eff.Spirit})
			if eff.Message != "" {
				c.ShowMessage(eff.Message)
			}
			return Proceed()
		},
	}
}

// readable builds the page scene of a readable item with every exit
// rebound to the item scene.
func (s *Synthesizer) readable(pageID, itemID, ret string) (*Scene, bool) {
	if s.Template == nil {
		return nil, false
	}
	tpl, ok := s.Template(pageID)
	if !ok {
		return nil, false
	}
	page := tpl.Clone()
	label := s.p().Sprintf(i18n.UseClose)
	if len(page.Choices) > 0 && page.Choices[0].Text != "" {
		label = page.Choices[0].Text
	}
	page.Choices = []Choice{{
		Text: label,
		OnSelect: func(c *Controller) Outcome {
			_ = c.ChangeScene(SceneItemUse, &Params{ItemID: itemID, ReturnScene: ret})
			return Handled()
		},
	}}
	return page, true
}

// ItemBuy offers a purchase. Money is taken when the purchase is
// confirmed, or when a parked purchase is finally accepted.
func (s *Synthesizer) ItemBuy(st *PlayerState, current string, p *Params) *Scene {
	if p == nil || p.Acquire == nil {
		return nil
	}
	acq := *p.Acquire
	ret := firstNonEmpty(acq.ReturnScene, p.ReturnScene, current)
	acq.ReturnScene = ret
	price := max(p.Price, 0)
	name := firstNonEmpty(acq.Name, acq.ItemID)

	sc := &Scene{
		ID:        SceneItemBuy,
		Title:     s.p().Sprintf(i18n.BuyTitle, name),
		Image:     acq.Image,
		Dialogues: []string{acq.Description},
		Item:      &ItemContext{ItemID: acq.ItemID, PrevScene: ret},
	}
	back := Choice{Text: s.p().Sprintf(i18n.Back), Next: ret}

	switch {
	case st.Money < price:
		sc.Dialogues = []string{s.p().Sprintf(i18n.BuyPoor)}
		sc.Choices = []Choice{back}
	case s.needsSlot(st, &acq):
		sc.Dialogues = []string{s.p().Sprintf(i18n.BuyFull)}
		sc.Choices = []Choice{
			{
				Text: s.p().Sprintf(i18n.BuyDrop),
				OnSelect: func(c *Controller) Outcome {
					pend := &Pending{Acquisition: acq, Cost: price}
					_ = c.ChangeScene(SceneAbandon, &Params{Pending: pend})
					return Handled()
				},
			},
			back,
		}
	default:
		got := acq
		got.Dialogues = []string{s.p().Sprintf(i18n.BuyDone, name)}
		if got.SuccessMessage == "" {
			got.SuccessMessage = s.p().Sprintf(i18n.BuyDone, name)
		}
		sc.Choices = []Choice{
			{
				Text: s.p().Sprintf(i18n.BuyConfirm, price),
				OnSelect: func(c *Controller) Outcome {
					c.Player().AddMoney(-price)
					_ = c.ChangeScene(SceneItemGet, &Params{Acquire: &got})
					return Handled()
				},
			},
			back,
		}
	}
	return sc
}

func firstNonEmpty(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}
	return ""
}
