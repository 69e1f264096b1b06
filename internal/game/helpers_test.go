package game

import (
	"testing"
	"time"
)

type fakeTimer struct {
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// manualScheduler fires timers only when Advance is called.
type manualScheduler struct {
	now    time.Duration
	timers []*fakeTimer
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{at: s.now + d, f: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *manualScheduler) Advance(d time.Duration) {
	s.now += d
	for {
		var next *fakeTimer
		for _, t := range s.timers {
			if t.stopped || t.fired || t.at > s.now {
				continue
			}
			if next == nil || t.at < next.at {
				next = t
			}
		}
		if next == nil {
			return
		}
		next.fired = true
		next.f()
	}
}

// fireStopped runs a timer even if it was stopped, the way a real timer
// whose callback was already queued behind a lock would.
func (s *manualScheduler) fireStopped(i int) {
	s.timers[i].f()
}

func (s *manualScheduler) pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func cutterSpec() ItemSpec {
	return ItemSpec{
		ID:          "cutter",
		Name:        "Box cutter",
		Type:        ItemWeapon,
		Description: "A sharp box cutter.",
		Usable:      true,
		Broken: &Variant{
			ID:          "snapped-cutter",
			Name:        "Snapped cutter",
			Description: "The blade snapped off.",
		},
	}
}

func physical(id string) ItemStock {
	return ItemStock{ItemSpec: ItemSpec{ID: id, Name: id, Type: ItemNormal}, Quantity: 1}
}

func testScenes() map[string]*Scene {
	return map[string]*Scene{
		"room": {
			Title:     "Room",
			Dialogues: []string{"A small room.", "The window is open."},
			Choices: []Choice{
				{Text: "Go outside", Next: "street"},
				{Text: "Rest", Next: "room", Cost: &Cost{Type: Spirit, Amount: 10}},
			},
		},
		"street": {
			Title: "Street",
			Choices: []Choice{
				{Text: "Back", Next: "room"},
				{Text: "Run", Next: "street", Cost: &Cost{Type: Health, Amount: -60}},
				{Text: "Brood", Next: "street", Cost: &Cost{Type: Spirit, Amount: -60}},
			},
		},
		"day1":       {Title: "Day 1", Checkpoint: true, AutoChange: &AutoChange{Next: "room", Delay: 5 * time.Second}},
		"exhaustion": {Title: "Exhausted", Fatal: true},
		"collapse":   {Title: "Collapsed", Fatal: true},
	}
}

type fixture struct {
	c     *Controller
	sched *manualScheduler
}

func newFixture(t *testing.T, opts Options) fixture {
	t.Helper()
	sched := &manualScheduler{}
	opts.Scheduler = sched
	if opts.Start == "" {
		opts.Start = "room"
	}
	if opts.Exhausted == "" {
		opts.Exhausted = "exhaustion"
	}
	if opts.Collapsed == "" {
		opts.Collapsed = "collapse"
	}
	c, err := NewController(NewRegistry(testScenes()), opts)
	if err != nil {
		t.Fatalf("Unexpected error creating controller: %v", err)
	}
	return fixture{c: c, sched: sched}
}

func (f fixture) choose(t *testing.T, text string) {
	t.Helper()
	for _, ch := range f.c.Choices() {
		if ch.Text == text {
			if err := f.c.Choose(ch.Key); err != nil {
				t.Fatalf("Choose(%q): unexpected error: %v", text, err)
			}
			return
		}
	}
	t.Fatalf("Choice %q not offered in %s (have %v)", text, f.c.CurrentID(), choiceTexts(f.c.Choices()))
}

func choiceTexts(chs []Choice) []string {
	out := make([]string, len(chs))
	for i, ch := range chs {
		out[i] = ch.Text
	}
	return out
}
