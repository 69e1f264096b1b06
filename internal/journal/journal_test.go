package journal

import (
	"bytes"
	"fmt"
	"testing"

	"golang.org/x/text/language"

	"novel/internal/game"
	"novel/internal/i18n"
)

func TestRender_Empty(t *testing.T) {
	b, err := Render(Page{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF")) {
		t.Error("output is not a PDF (missing %PDF header)")
	}
}

func TestRender_LongTrailPaginates(t *testing.T) {
	var p Page
	for i := 0; i < 80; i++ {
		p.Entries = append(p.Entries, Entry{ID: fmt.Sprintf("scene-%d", i)})
	}
	p.Entries[79].Current = true
	p.Items = []Carried{{Name: "Box cutter", Quantity: 0, Broken: true}}

	short, err := Render(Page{Entries: p.Entries[:3]})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	long, err := Render(p)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(long) <= len(short) {
		t.Errorf("Expected long journal to be larger, got %d vs %d bytes", len(long), len(short))
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		e    Entry
		want string
	}{
		{Entry{ID: "bed-1"}, "1. bed 1"},
		{Entry{ID: "bed-1", Title: "Bed"}, "1. Bed"},
		{Entry{ID: "x", Title: "Here", Current: true}, "1. Here  <- now"},
	}
	for _, tt := range tests {
		if got := label(Page{}.printer(), 1, tt.e); got != tt.want {
			t.Errorf("label(%+v): expected %q, got %q", tt.e, tt.want, got)
		}
	}
}

func TestFromController(t *testing.T) {
	reg := game.NewRegistry(map[string]*game.Scene{
		"room":  {Title: "Room", Choices: []game.Choice{{Text: "Out", Next: "death"}}},
		"death": {Title: "The end", Fatal: true},
	})
	start := game.DefaultInitialState()
	start.Items = []game.ItemStock{{ItemSpec: game.ItemSpec{ID: "key", Name: "Key"}, Quantity: 1}}
	c, err := game.NewController(reg, game.Options{Start: "room", Initial: start})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Choose("1"); err != nil {
		t.Fatal(err)
	}

	p := FromController("Night", c, reg)
	if len(p.Entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(p.Entries))
	}
	if p.Entries[0].Title != "Room" || !p.Entries[1].Fatal || !p.Entries[1].Current {
		t.Errorf("Unexpected entries: %+v", p.Entries)
	}
	if len(p.Items) != 1 || p.Items[0].Name != "Key" {
		t.Errorf("Unexpected items: %+v", p.Items)
	}
	if p.Health != [2]int{100, 100} {
		t.Errorf("Expected health 100/100, got %v", p.Health)
	}
	if got := summary(p.printer(), p); got != "Health 100/100   Spirit 100/100   Coins 0   Scenes 2" {
		t.Errorf("Expected English summary, got %q", got)
	}
}

func TestLocalizedLabels(t *testing.T) {
	pr := i18n.Printer(language.TraditionalChinese)
	p := Page{Printer: pr, Health: [2]int{40, 100}, Spirit: [2]int{70, 100}, Money: 3}

	if got := summary(p.printer(), p); got != "體力 40/100   精神 70/100   硬幣 3   場景 0" {
		t.Errorf("Expected zh-Hant summary, got %q", got)
	}
	if got := titleOr(pr, ""); got != "日記" {
		t.Errorf("Expected zh-Hant default title, got %q", got)
	}
	if got := label(pr, 2, Entry{ID: "x", Title: "房間", Current: true}); got != "2. 房間  <- 現在" {
		t.Errorf("Expected zh-Hant current marker, got %q", got)
	}
	if _, err := Render(p); err != nil {
		t.Errorf("Render: %v", err)
	}
}
