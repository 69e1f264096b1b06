package game

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"time"

	"golang.org/x/text/message"

	"novel/internal/i18n"
)

// Options configures a Controller.
type Options struct {
	Start     string
	Respawn   string // day start used on restart when no checkpoint was reached
	Exhausted string // entered when health runs out
	Collapsed string // entered when spirit runs out
	Capacity  int
	Initial   InitialState
	Uses      UseTable

	Scheduler  Scheduler
	MessageTTL time.Duration
	Printer    *message.Printer
	Logger     *log.Logger
}

// Controller drives one play session. It is not safe for concurrent
// use; hosts serialize calls and timer callbacks (see LockedScheduler).
type Controller struct {
	reg      *Registry
	synth    *Synthesizer
	player   *PlayerState
	initial  InitialState
	messages *Messages
	sched    Scheduler
	logger   *log.Logger
	printer  *message.Printer

	start, respawn       string
	exhausted, collapsed string

	current    string
	previous   string
	dialogue   int
	locked     bool
	checkpoint string
	trail      []string

	generation uint64
	auto       Timer
	queued     Timer
	queuedGen  uint64

	observers map[int]func(*Scene)
	nextObs   int
}

// NewController builds a fresh player and enters opts.Start.
func NewController(reg *Registry, opts Options) (*Controller, error) {
	if opts.Scheduler == nil {
		opts.Scheduler = RealScheduler()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	if opts.Printer == nil {
		opts.Printer = i18n.Printer(i18n.Supported[0])
	}
	if opts.Initial.MaxHealth == 0 && opts.Initial.MaxSpirit == 0 {
		opts.Initial = DefaultInitialState()
	}
	c := &Controller{
		reg:       reg,
		player:    NewPlayerState(opts.Initial),
		initial:   opts.Initial,
		sched:     opts.Scheduler,
		logger:    opts.Logger,
		printer:   opts.Printer,
		start:     opts.Start,
		respawn:   opts.Respawn,
		exhausted: opts.Exhausted,
		collapsed: opts.Collapsed,
		observers: map[int]func(*Scene){},
	}
	c.synth = &Synthesizer{
		Capacity: opts.Capacity,
		Uses:     opts.Uses,
		Printer:  opts.Printer,
		Template: reg.Template,
	}
	c.messages = NewMessages(opts.Scheduler, opts.MessageTTL)
	if err := c.ChangeScene(opts.Start, nil); err != nil {
		return nil, fmt.Errorf("start scene: %w", err)
	}
	return c, nil
}

func (c *Controller) Player() *PlayerState { return c.player }

func (c *Controller) Messages() *Messages { return c.messages }

func (c *Controller) Printer() *message.Printer { return c.printer }

func (c *Controller) CurrentID() string { return c.current }

func (c *Controller) PreviousID() string { return c.previous }

// CurrentScene returns the live scene. Callers must not modify it.
func (c *Controller) CurrentScene() *Scene {
	sc, _ := c.reg.Lookup(c.current)
	return sc
}

// Choices returns the current scene's choices whose conditions hold.
func (c *Controller) Choices() []Choice {
	sc := c.CurrentScene()
	if sc == nil {
		return nil
	}
	var out []Choice
	for _, ch := range sc.Choices {
		if ch.Available(c.player) {
			out = append(out, ch)
		}
	}
	return out
}

func (c *Controller) DialogueIndex() int { return c.dialogue }

// NextDialogue advances the dialogue cursor. It reports false on the
// last line.
func (c *Controller) NextDialogue() bool {
	sc := c.CurrentScene()
	if sc == nil || c.dialogue+1 >= len(sc.Dialogues) {
		return false
	}
	c.dialogue++
	c.publish(sc)
	return true
}

// ItemsLocked is true while the current scene moves on by itself.
func (c *Controller) ItemsLocked() bool { return c.locked }

func (c *Controller) Checkpoint() string { return c.checkpoint }

// Trail lists the scenes entered since the last restart.
func (c *Controller) Trail() []string { return append([]string(nil), c.trail...) }

// Subscribe registers fn to be called with every committed scene and
// dialogue step. The returned func removes it.
func (c *Controller) Subscribe(fn func(*Scene)) (cancel func()) {
	id := c.nextObs
	c.nextObs++
	c.observers[id] = fn
	return func() { delete(c.observers, id) }
}

func (c *Controller) publish(sc *Scene) {
	for _, fn := range c.observers {
		fn(sc)
	}
}

// ShowMessage puts a notice on the bottom line.
func (c *Controller) ShowMessage(text string) { c.messages.Show(Bottom, text) }

// ShowTopMessage puts a notice on the top line.
func (c *Controller) ShowTopMessage(text string) { c.messages.Show(Top, text) }

// ChangeScene resolves target (synthesizing item scenes from p) and
// enters it. An unresolvable target is logged and leaves the session
// untouched.
func (c *Controller) ChangeScene(target string, p *Params) error {
	sc, err := c.resolve(target, p)
	if err != nil {
		c.logger.Printf("scene change aborted: %v", err)
		return err
	}
	c.enter(target, sc)
	return nil
}

func (c *Controller) resolve(target string, p *Params) (*Scene, error) {
	var sc *Scene
	switch target {
	case SceneItemGet:
		sc = c.synth.ItemGet(c.player, c.current, p)
	case SceneAbandon:
		sc = c.synth.Abandon(c.player, c.current, p)
	case SceneItemUse:
		sc = c.synth.ItemUse(c.player, c.current, p)
	case SceneItemBuy:
		sc = c.synth.ItemBuy(c.player, c.current, p)
	default:
		if tpl, ok := c.reg.Template(target); ok {
			sc = tpl.Clone()
		}
	}
	if sc == nil {
		return nil, &SceneError{ID: target, From: c.current}
	}
	return sc, nil
}

// enter commits sc as the current scene.
func (c *Controller) enter(id string, sc *Scene) {
	sc.ID = id
	for i := range sc.Choices {
		if sc.Choices[i].Key == "" {
			sc.Choices[i].Key = strconv.Itoa(i + 1)
		}
	}
	c.reg.store(id, sc)
	if sc.OnEnter != nil {
		if lines := sc.OnEnter(c.player); lines != nil {
			sc.Dialogues = lines
		}
	}
	if !IsDynamic(id) {
		c.player.Visit(id)
	}

	c.locked = sc.AutoChange != nil
	c.previous, c.current = c.current, id
	c.dialogue = 0
	c.trail = append(c.trail, id)
	if sc.Checkpoint {
		c.checkpoint = id
	}

	c.generation++
	if c.auto != nil {
		c.auto.Stop()
		c.auto = nil
	}
	if sc.AutoChange != nil {
		gen, next := c.generation, sc.AutoChange.Next
		c.auto = c.sched.AfterFunc(sc.AutoChange.Delay, func() {
			if c.generation != gen {
				return
			}
			c.auto = nil
			_ = c.ChangeScene(next, nil)
		})
	}
	c.publish(sc)
}

// Choose runs the choice with key in the current scene.
func (c *Controller) Choose(key string) error {
	var ch *Choice
	for _, cand := range c.Choices() {
		if cand.Key == key {
			ch = &cand
			break
		}
	}
	if ch == nil {
		return fmt.Errorf("%w: %q in %s", ErrUnknownChoice, key, c.current)
	}

	if ch.Cost != nil {
		c.player.Apply(*ch.Cost)
	}
	out := Proceed()
	if ch.OnSelect != nil {
		out = ch.OnSelect(c)
	}

	var err error
	switch out.Kind {
	case OutcomeRedirect:
		err = c.ChangeScene(out.Target, nil)
	case OutcomeProceed:
		if ch.Next != "" {
			err = c.ChangeScene(ch.Next, nil)
		}
	}
	c.checkVitals()
	return err
}

// checkVitals routes a starving player to the matching death scene.
func (c *Controller) checkVitals() {
	if sc := c.CurrentScene(); sc != nil && sc.Fatal {
		return
	}
	res, ok := c.player.Starving()
	if !ok {
		return
	}
	target := c.collapsed
	if res == Health {
		target = c.exhausted
	}
	if target == "" {
		return
	}
	_ = c.ChangeScene(target, nil)
}

// OpenItem shows an owned item, or drops it while the player is
// choosing what to abandon.
func (c *Controller) OpenItem(id string) error {
	if c.locked {
		c.ShowMessage(c.printer.Sprintf(i18n.Locked))
		return ErrItemsLocked
	}
	if c.current == SceneAbandon {
		return c.Discard(id)
	}
	if !c.player.HasItem(id) {
		return fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	ret := c.current
	if sc := c.CurrentScene(); sc != nil && sc.Item != nil && c.current == SceneItemUse {
		ret = sc.Item.PrevScene
	}
	return c.ChangeScene(SceneItemUse, &Params{ItemID: id, ReturnScene: ret})
}

// Discard drops id during the abandon flow and resumes the parked
// acquisition.
func (c *Controller) Discard(id string) error {
	sc := c.CurrentScene()
	if c.current != SceneAbandon || sc == nil || sc.Item == nil {
		return ErrNotAbandoning
	}
	it, ok := c.player.Item(id)
	if !ok || it.Type == ItemCoin {
		return fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	name := it.DisplayName()
	c.player.RemoveItem(id)
	c.ShowMessage(c.printer.Sprintf(i18n.AbandonDropped, name))
	if p := sc.Item.Pending; p != nil {
		return c.ChangeScene(SceneItemGet, &Params{Pending: p})
	}
	return c.ChangeScene(sc.Item.PrevScene, nil)
}

// ScheduleScene changes to target after d. A newer call replaces an
// older one that has not fired yet. Unlike auto changes it survives
// navigation, so a pickup can queue the next pickup before the current
// choice returns. When it fires, the return target is taken from the
// scene the player is in by then; it is dropped if that scene must not
// be interrupted.
func (c *Controller) ScheduleScene(d time.Duration, target string, p *Params) {
	if c.queued != nil {
		c.queued.Stop()
	}
	c.queuedGen++
	gen := c.queuedGen
	c.queued = c.sched.AfterFunc(d, func() {
		if c.queuedGen != gen {
			return
		}
		c.queued = nil
		ret, ok := c.resumeTarget()
		if !ok {
			c.logger.Printf("queued change to %s dropped in %s", target, c.current)
			return
		}
		_ = c.ChangeScene(target, p.returningTo(ret))
	})
}

// resumeTarget is the scene a queued change hands control back to. It
// reports false on death scenes, timed scenes and item flows other than
// viewing an item.
func (c *Controller) resumeTarget() (string, bool) {
	sc := c.CurrentScene()
	switch {
	case sc == nil, sc.Fatal, sc.AutoChange != nil:
		return "", false
	case c.current == SceneItemUse && sc.Item != nil:
		return sc.Item.PrevScene, true
	case IsDynamic(c.current):
		return "", false
	}
	return c.current, true
}

// Stop cancels pending scene changes. The session stays readable.
func (c *Controller) Stop() { c.stopTimers() }

func (c *Controller) stopTimers() {
	c.generation++
	c.queuedGen++
	for _, t := range []Timer{c.auto, c.queued} {
		if t != nil {
			t.Stop()
		}
	}
	c.auto, c.queued = nil, nil
}

// Restart builds a fresh player and returns to the last checkpoint, or
// the respawn scene, or the start.
func (c *Controller) Restart() error {
	target := firstNonEmpty(c.checkpoint, c.respawn, c.start)
	if _, ok := c.reg.Template(target); !ok {
		err := &SceneError{ID: target, From: c.current}
		c.logger.Printf("restart aborted: %v", err)
		return err
	}
	c.stopTimers()
	c.messages.Clear()
	c.reg.Reset()
	c.player = NewPlayerState(c.initial)
	c.trail = nil
	return c.ChangeScene(target, nil)
}
