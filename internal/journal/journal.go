// Package journal renders a play session as a printable diary page: the
// scenes the player passed through, in order, followed by what they
// carried and how they held up.
package journal

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf/v2"
	"golang.org/x/text/message"

	"novel/internal/game"
	"novel/internal/i18n"
)

const (
	pageW      = 595
	pageH      = 842
	margin     = 48
	lineGap    = 22.0
	dotRadius  = 4.0
	textSize   = 10
	titleSize  = 18
	headerSize = 11
	maxLabel   = 60
)

// Entry is one scene on the trail.
type Entry struct {
	ID      string
	Title   string
	Item    bool // synthesized item scene
	Fatal   bool
	Current bool
}

// Carried is an inventory line.
type Carried struct {
	Name     string
	Quantity int
	Broken   bool
}

// Page is everything printed on the journal.
type Page struct {
	Title   string
	Entries []Entry
	Items   []Carried
	Health  [2]int // current, max
	Spirit  [2]int
	Money   int

	// Printer localizes the page's own labels. Nil prints English.
	Printer *message.Printer
}

func (p Page) printer() *message.Printer {
	if p.Printer == nil {
		return i18n.Printer(i18n.Supported[0])
	}
	return p.Printer
}

// Render returns PDF bytes for p. Entries past the first page are
// continued on further pages.
func Render(p Page) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pr := p.printer()

	newPage := func() float64 {
		pdf.AddPage()
		drawRuledPaper(pdf)
		return margin + 70
	}

	y := newPage()
	pdf.SetTextColor(40, 40, 70)
	pdf.SetFont("Times", "B", titleSize)
	pdf.SetXY(margin, margin)
	pdf.CellFormat(pageW-2*margin, 24, tr(titleOr(pr, p.Title)), "", 0, "L", false, 0, "")

	pdf.SetFont("Times", "I", headerSize)
	pdf.SetXY(margin, margin+28)
	pdf.CellFormat(pageW-2*margin, 14, tr(summary(pr, p)), "", 0, "L", false, 0, "")

	x := float64(margin) + 16
	for i, e := range p.Entries {
		if y > pageH-margin-lineGap*3 {
			y = newPage()
		}
		if i > 0 {
			pdf.SetDrawColor(150, 150, 180)
			pdf.SetLineWidth(1)
			pdf.Line(x, y-lineGap+dotRadius, x, y-dotRadius)
		}
		drawMarker(pdf, x, y, e)
		pdf.SetFont("Times", style(e), textSize)
		pdf.SetTextColor(40, 40, 70)
		pdf.SetXY(x+14, y-7)
		pdf.CellFormat(pageW-2*margin-30, 14, tr(label(pr, i+1, e)), "", 0, "L", false, 0, "")
		y += lineGap
	}

	if len(p.Items) > 0 {
		if y > pageH-margin-lineGap*float64(len(p.Items)+2) {
			y = newPage()
		}
		y += lineGap / 2
		pdf.SetFont("Times", "B", headerSize)
		pdf.SetXY(margin, y-7)
		pdf.CellFormat(pageW-2*margin, 14, tr(pr.Sprintf(i18n.JournalCarried)), "", 0, "L", false, 0, "")
		y += lineGap
		pdf.SetFont("Times", "", textSize)
		for _, it := range p.Items {
			line := fmt.Sprintf("%s x%d", it.Name, it.Quantity)
			if it.Broken {
				line += " " + pr.Sprintf(i18n.JournalBroken)
			}
			pdf.SetXY(margin+16, y-7)
			pdf.CellFormat(pageW-2*margin-16, 14, tr(line), "", 0, "L", false, 0, "")
			y += lineGap
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func titleOr(pr *message.Printer, t string) string {
	if t == "" {
		return pr.Sprintf(i18n.JournalTitle)
	}
	return t
}

func summary(pr *message.Printer, p Page) string {
	return pr.Sprintf(i18n.JournalSummary,
		p.Health[0], p.Health[1], p.Spirit[0], p.Spirit[1], p.Money, len(p.Entries))
}

func label(pr *message.Printer, n int, e Entry) string {
	name := e.Title
	if name == "" {
		name = strings.ReplaceAll(e.ID, "-", " ")
	}
	if len([]rune(name)) > maxLabel {
		name = string([]rune(name)[:maxLabel-3]) + "..."
	}
	s := fmt.Sprintf("%d. %s", n, name)
	if e.Current {
		s += "  " + pr.Sprintf(i18n.JournalNow)
	}
	return s
}

func style(e Entry) string {
	switch {
	case e.Current:
		return "B"
	case e.Item:
		return "I"
	}
	return ""
}

// drawRuledPaper draws notebook lines and a margin rule.
func drawRuledPaper(pdf *gofpdf.Fpdf) {
	pdf.SetFillColor(252, 250, 242)
	pdf.Rect(0, 0, pageW, pageH, "F")
	pdf.SetDrawColor(200, 215, 235)
	pdf.SetLineWidth(0.5)
	for y := float64(margin) + 60; y < pageH-margin; y += lineGap {
		pdf.Line(margin/2, y+8, pageW-margin/2, y+8)
	}
	pdf.SetDrawColor(230, 160, 160)
	pdf.Line(margin-8, 0, margin-8, pageH)
}

// drawMarker draws the trail dot: hollow for item scenes, a cross for
// death scenes, filled otherwise.
func drawMarker(pdf *gofpdf.Fpdf, x, y float64, e Entry) {
	switch {
	case e.Fatal:
		pdf.SetDrawColor(170, 30, 30)
		pdf.SetLineWidth(1.5)
		pdf.Line(x-dotRadius, y-dotRadius, x+dotRadius, y+dotRadius)
		pdf.Line(x-dotRadius, y+dotRadius, x+dotRadius, y-dotRadius)
	case e.Item:
		pdf.SetDrawColor(60, 110, 60)
		pdf.SetLineWidth(1)
		pdf.Circle(x, y, dotRadius, "D")
	default:
		pdf.SetFillColor(40, 40, 70)
		if e.Current {
			pdf.SetFillColor(200, 120, 20)
		}
		pdf.Circle(x, y, dotRadius, "F")
	}
}

// FromController collects the page for a live session.
func FromController(title string, c *game.Controller, reg *game.Registry) Page {
	st := c.Player()
	p := Page{
		Title:  title,
		Health: [2]int{st.Health, st.MaxHealth},
		Spirit: [2]int{st.Spirit, st.MaxSpirit},
		Money:  st.Money,

		Printer: c.Printer(),
	}
	trail := c.Trail()
	for i, id := range trail {
		e := Entry{ID: id, Item: game.IsDynamic(id), Current: i == len(trail)-1}
		if sc, ok := reg.Template(id); ok {
			e.Title = sc.Title
			e.Fatal = sc.Fatal
		}
		p.Entries = append(p.Entries, e)
	}
	for _, it := range st.Items {
		p.Items = append(p.Items, Carried{
			Name:     it.DisplayName(),
			Quantity: it.Quantity,
			Broken:   it.Condition == game.Depleted,
		})
	}
	return p
}
