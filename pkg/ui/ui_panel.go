package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Widget is implemented by everything the panel can lay out
type Widget interface {
	Update()
	Draw(screen *ebiten.Image)
}

type row struct {
	label  string // printed above the widget, empty for buttons
	header bool   // section title row, widget is nil
	widget Widget
	height float64
}

// Panel stacks widgets vertically inside a translucent box.
// It can be hidden, in which case it neither draws nor consumes input.
type Panel struct {
	X, Y          float64
	Width, Height float64
	Title         string
	Visible       bool

	rows []row

	BGColor     color.RGBA
	BorderColor color.RGBA
}

// NewPanel creates an empty, visible panel
func NewPanel(x, y, width float64, title string) *Panel {
	return &Panel{
		X:           x,
		Y:           y,
		Width:       width,
		Height:      30,
		Title:       title,
		Visible:     true,
		BGColor:     color.RGBA{R: 30, G: 30, B: 35, A: 210},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
}

func (p *Panel) nextY() float64 {
	return p.Y + p.Height
}

func (p *Panel) add(r row) {
	p.rows = append(p.rows, r)
	p.Height += r.height
}

// AddSection adds a section header
func (p *Panel) AddSection(title string) {
	p.add(row{label: title, header: true, height: 22})
}

// AddSlider adds a slider under its label and returns it
func (p *Panel) AddSlider(label string, min, max, value float64) *Slider {
	s := NewSlider(p.X+10, p.nextY()+16, p.Width-20, label, min, max, value)
	p.add(row{label: label, widget: s, height: s.H + 24})
	return s
}

// AddCheckbox adds a checkbox with its label on the right
func (p *Panel) AddCheckbox(label string, value bool) *Checkbox {
	c := NewCheckbox(p.X+10, p.nextY()+4, label, value)
	p.add(row{label: label, widget: c, height: c.Size + 10})
	return c
}

// AddButton adds a full-width button
func (p *Panel) AddButton(label string, onClick func()) *Button {
	b := NewButton(p.X+10, p.nextY()+4, p.Width-20, 22, label, onClick)
	p.add(row{widget: b, height: b.Height + 10})
	return b
}

// Update handles input for all widgets
func (p *Panel) Update() {
	if !p.Visible {
		return
	}
	for _, r := range p.rows {
		if r.widget != nil {
			r.widget.Update()
		}
	}
}

// Draw renders the panel and all widgets
func (p *Panel) Draw(screen *ebiten.Image) {
	if !p.Visible {
		return
	}
	vector.FillRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height+5),
		p.BGColor, true)
	vector.StrokeRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height+5),
		1, p.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+10), int(p.Y+6))

	y := p.Y + 30
	for _, r := range p.rows {
		switch w := r.widget.(type) {
		case nil:
			if r.header {
				vector.FillRect(screen,
					float32(p.X+5), float32(y),
					float32(p.Width-10), 18,
					color.RGBA{R: 60, G: 60, B: 70, A: 255}, true)
				ebitenutil.DebugPrintAt(screen, r.label, int(p.X+10), int(y+1))
			}
		case *Checkbox:
			ebitenutil.DebugPrintAt(screen, r.label, int(w.X+w.Size+8), int(w.Y-1))
		default:
			if r.label != "" {
				ebitenutil.DebugPrintAt(screen, r.label, int(p.X+10), int(y))
			}
		}
		if r.widget != nil {
			r.widget.Draw(screen)
		}
		y += r.height
	}
}
