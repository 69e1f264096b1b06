package story

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"novel/internal/game"
)

// chainDelay separates a pickup from the one chained after it.
const chainDelay = time.Millisecond

// ErrContent marks a problem in story content.
var ErrContent = errors.New("invalid story")

// Book is a compiled story, shared read-only by every session.
type Book struct {
	Title     string
	Start     string
	Respawn   string
	Exhausted string
	Collapsed string
	Initial   game.InitialState
	Uses      game.UseTable
	Catalog   map[string]game.ItemSpec
	Registry  *game.Registry
}

// Options returns controller options describing the story.
func (b *Book) Options() game.Options {
	return game.Options{
		Start:     b.Start,
		Respawn:   b.Respawn,
		Exhausted: b.Exhausted,
		Collapsed: b.Collapsed,
		Initial:   b.Initial,
		Uses:      b.Uses,
	}
}

// NewController starts a session. Story fields in opts are overwritten;
// host fields (scheduler, logger, printer, capacity, message TTL) are
// kept.
func (b *Book) NewController(opts game.Options) (*game.Controller, error) {
	base := b.Options()
	opts.Start, opts.Respawn = base.Start, base.Respawn
	opts.Exhausted, opts.Collapsed = base.Exhausted, base.Collapsed
	opts.Initial, opts.Uses = base.Initial, base.Uses
	return game.NewController(b.Registry.Fork(), opts)
}

type compiler struct {
	file    *File
	catalog map[string]game.ItemSpec
	scripts Scripts
	errs    []error
}

func (cp *compiler) fail(format string, args ...any) {
	cp.errs = append(cp.errs, fmt.Errorf("%w: "+format, append([]any{ErrContent}, args...)...))
}

// Compile turns a story file into scene templates and reports every
// dangling reference at once.
func Compile(f *File, scripts Scripts) (*Book, error) {
	if scripts == nil {
		scripts = DefaultScripts()
	}
	cp := &compiler{file: f, catalog: map[string]game.ItemSpec{}, scripts: scripts}
	for id, spec := range f.Items {
		if spec.ID == "" {
			spec.ID = id
		}
		cp.catalog[id] = spec
	}

	initial := game.DefaultInitialState()
	if f.Initial != nil {
		initial = *f.Initial
		initial.Items = append([]game.ItemStock(nil), f.Initial.Items...)
	}
	for i, stock := range initial.Items {
		spec, ok := cp.catalog[stock.ID]
		if !ok {
			if stock.Name == "" {
				cp.fail("initial item %q not in catalog", stock.ID)
			}
			continue
		}
		if stock.Name == "" {
			initial.Items[i].ItemSpec = spec
		}
	}

	ids := make([]string, 0, len(f.Scenes))
	for id := range f.Scenes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	scenes := make(map[string]*game.Scene, len(f.Scenes))
	for _, id := range ids {
		scenes[id] = cp.scene(id, f.Scenes[id])
	}
	reg := game.NewRegistry(scenes)

	if f.Start == "" {
		cp.fail("no start scene")
	}
	for _, ref := range []struct{ name, id string }{
		{"start", f.Start}, {"respawn", f.Respawn}, {"exhausted", f.Exhausted}, {"collapsed", f.Collapsed},
	} {
		if ref.id != "" && !reg.Has(ref.id) {
			cp.fail("%s scene %q does not exist", ref.name, ref.id)
		}
	}
	for id, spec := range cp.catalog {
		if spec.Read != "" && !reg.Has(spec.Read) {
			cp.fail("item %s: read scene %q does not exist", id, spec.Read)
		}
	}
	if err := reg.Validate(); err != nil {
		cp.errs = append(cp.errs, err)
	}
	if len(cp.errs) > 0 {
		return nil, errors.Join(cp.errs...)
	}

	return &Book{
		Title:     f.Title,
		Start:     f.Start,
		Respawn:   f.Respawn,
		Exhausted: f.Exhausted,
		Collapsed: f.Collapsed,
		Initial:   initial,
		Uses:      f.Uses,
		Catalog:   cp.catalog,
		Registry:  reg,
	}, nil
}

func (cp *compiler) scene(id string, d *SceneDef) *game.Scene {
	if d == nil {
		d = &SceneDef{}
	}
	sc := &game.Scene{
		ID:         id,
		Title:      d.Title,
		Image:      d.Image,
		Dialogues:  d.Dialogues,
		AutoChange: d.AutoChange,
		Checkpoint: d.Checkpoint,
		Fatal:      d.Fatal,
		Transition: d.Transition,
	}
	if r := d.Revisit; r != nil {
		if !cp.has(r.Visited) {
			cp.fail("scene %s: revisit refers to unknown scene %q", id, r.Visited)
		}
		lines := r.Dialogues
		sc.OnEnter = func(st *game.PlayerState) []string {
			if st.Visited(r.Visited) {
				return lines
			}
			return nil
		}
	}
	for _, cd := range d.Choices {
		sc.Choices = append(sc.Choices, cp.choice(id, cd))
	}
	return sc
}

func (cp *compiler) has(id string) bool {
	_, ok := cp.file.Scenes[id]
	return ok || game.IsDynamic(id)
}

func (cp *compiler) choice(sceneID string, d ChoiceDef) game.Choice {
	ch := game.Choice{
		Key:        d.Key,
		Text:       d.Text,
		Next:       d.Next,
		Cost:       d.Cost,
		Transition: d.Transition,
		Condition:  d.When.condition(),
	}

	var action func(c *game.Controller) game.Outcome
	switch {
	case d.Restart:
		action = func(c *game.Controller) game.Outcome {
			_ = c.Restart()
			return game.Handled()
		}
	case d.Get != nil:
		action = cp.get(sceneID, d.Get)
	case d.Buy != nil:
		action = cp.buy(sceneID, d.Buy)
	case d.Script != "":
		fn, ok := cp.scripts[d.Script]
		if !ok {
			cp.fail("scene %s: unknown script %q", sceneID, d.Script)
			break
		}
		args := d.Args
		action = func(c *game.Controller) game.Outcome { return fn(c, args) }
	}

	say := d.Say
	if say == "" && action == nil {
		return ch
	}
	ch.OnSelect = func(c *game.Controller) game.Outcome {
		if say != "" {
			c.ShowMessage(say)
		}
		if action == nil {
			return game.Proceed()
		}
		return action(c)
	}
	return ch
}

func (g *Gate) condition() func(st *game.PlayerState) bool {
	if g == nil {
		return nil
	}
	gate := *g
	return func(st *game.PlayerState) bool {
		switch {
		case gate.Visited != "" && !st.Visited(gate.Visited):
			return false
		case gate.Unvisited != "" && st.Visited(gate.Unvisited):
			return false
		case gate.Has != "" && !st.HasItem(gate.Has):
			return false
		case gate.Lacks != "" && st.HasItem(gate.Lacks):
			return false
		case st.Money < gate.MinMoney:
			return false
		}
		return true
	}
}

func (cp *compiler) get(sceneID string, g *GetDef) func(c *game.Controller) game.Outcome {
	acq := cp.acquisition(sceneID, g)
	once, repeat := g.Once, g.Repeat
	return func(c *game.Controller) game.Outcome {
		st := c.Player()
		if once != "" {
			if st.Visited(once) {
				if repeat != "" {
					c.ShowMessage(repeat)
				}
				return game.Handled()
			}
			st.Visit(once)
		}
		_ = c.ChangeScene(game.SceneItemGet, &game.Params{Acquire: acq})
		return game.Handled()
	}
}

func (cp *compiler) acquisition(sceneID string, g *GetDef) *game.Acquisition {
	amount := g.Amount
	if amount <= 0 {
		amount = 1
	}
	spec, known := cp.catalog[g.Item]
	if !known && !g.Currency {
		cp.fail("scene %s: unknown item %q", sceneID, g.Item)
	}
	if g.Refill != "" {
		if _, ok := cp.catalog[g.Refill]; !ok {
			cp.fail("scene %s: refill target %q not in catalog", sceneID, g.Refill)
		}
	}
	ret := g.Return
	if ret == "" {
		ret = sceneID
	} else if !cp.has(ret) {
		cp.fail("scene %s: return scene %q does not exist", sceneID, ret)
	}

	acq := &game.Acquisition{
		ItemID:         g.Item,
		Name:           spec.Name,
		Description:    spec.Description,
		Dialogues:      g.Dialogues,
		Image:          g.Image,
		Amount:         amount,
		Currency:       g.Currency,
		RefillOnly:     g.Refill != "",
		ReturnScene:    ret,
		SuccessMessage: g.Message,
		Quiet:          g.Quiet,
	}
	if acq.Image == "" {
		acq.Image = spec.Image
	}

	var next *game.Acquisition
	delay := chainDelay
	if g.Then != nil {
		then := *g.Then
		if then.Return == "" {
			then.Return = ret
		}
		next = cp.acquisition(sceneID, &then)
		if g.Then.Delay > 0 {
			delay = g.Then.Delay
		}
	}

	refill := g.Refill
	acq.OnGet = func(c *game.Controller) {
		st := c.Player()
		switch {
		case refill != "":
			st.RefillItem(refill, amount)
		default:
			st.AddNewItem(spec)
			st.RefillItem(spec.ID, amount)
		}
		if next != nil {
			c.ScheduleScene(delay, game.SceneItemGet, &game.Params{Acquire: next})
		}
	}
	if g.Currency && next != nil {
		cp.fail("scene %s: chained pickups cannot follow coins", sceneID)
	}
	return acq
}

func (cp *compiler) buy(sceneID string, b *BuyDef) func(c *game.Controller) game.Outcome {
	spec, ok := cp.catalog[b.Item]
	if !ok {
		cp.fail("scene %s: unknown item %q for sale", sceneID, b.Item)
	}
	if b.Return != "" && !cp.has(b.Return) {
		cp.fail("scene %s: return scene %q does not exist", sceneID, b.Return)
	}
	amount := max(b.Amount, 1)
	acq := &game.Acquisition{
		ItemID:      spec.ID,
		Name:        spec.Name,
		Description: firstNonEmpty(b.Description, spec.Description),
		Image:       firstNonEmpty(b.Image, spec.Image),
		Amount:      amount,
		ReturnScene: firstNonEmpty(b.Return, sceneID),
		OnGet: func(c *game.Controller) {
			c.Player().AddNewItem(spec)
			c.Player().RefillItem(spec.ID, amount)
		},
	}
	price := b.Price
	return func(c *game.Controller) game.Outcome {
		_ = c.ChangeScene(game.SceneItemBuy, &game.Params{Acquire: acq, Price: price})
		return game.Handled()
	}
}

func firstNonEmpty(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}
	return ""
}
