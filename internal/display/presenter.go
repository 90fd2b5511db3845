package display

import (
	"fmt"

	"github.com/fanduty/fanduty/internal/duty"
	"github.com/fanduty/fanduty/internal/format"
)

const (
	MinWidth  int16 = 50
	MinHeight int16 = 36
)

// Layout places the static label and the dynamic value region on screen.
type Layout struct {
	Label       string `json:"label"`
	LabelOrigin Point  `json:"labelOrigin"`
	Region      Rect   `json:"region"`
}

var DefaultLayout = Layout{
	Label:       "Fan Speed:",
	LabelOrigin: Point{X: 0, Y: 0},
	Region: Rect{
		Origin: Point{X: 0, Y: 16},
		Width:  50,
		Height: 20,
	},
}

// LabelBounds returns the rectangle covered by the static label.
func (l Layout) LabelBounds() Rect {
	return TextBounds(l.LabelOrigin, len(l.Label))
}

// Validate checks the layout against a screen of the given size.
func (l Layout) Validate(width int16, height int16) error {
	if width < MinWidth || height < MinHeight {
		return fmt.Errorf("screen %dx%d is smaller than %dx%d: %w", width, height, MinWidth, MinHeight, ErrOutOfBounds)
	}
	if !l.Region.Within(width, height) {
		return fmt.Errorf("value region %+v: %w", l.Region, ErrOutOfBounds)
	}
	if !l.LabelBounds().Within(width, height) {
		return fmt.Errorf("label %q: %w", l.Label, ErrOutOfBounds)
	}
	if l.Region.Width < format.DutyWidth*GlyphWidth || l.Region.Height < GlyphHeight {
		return fmt.Errorf("%w: %dx%d", ErrRegionTooSmall, l.Region.Width, l.Region.Height)
	}
	if l.Region.Overlaps(l.LabelBounds()) {
		return ErrRegionOverlap
	}
	return nil
}

// Presenter owns the display and the screen layout. It is the only
// component drawing on the display.
type Presenter struct {
	display Display
	layout  Layout
}

func NewPresenter(display Display, layout Layout) (*Presenter, error) {
	width, height := display.Size()
	if err := layout.Validate(width, height); err != nil {
		return nil, err
	}
	return &Presenter{
		display: display,
		layout:  layout,
	}, nil
}

func (p *Presenter) Layout() Layout {
	return p.layout
}

// DrawLabel draws the static label and commits the frame.
func (p *Presenter) DrawLabel() error {
	if err := p.display.ClearRegion(p.layout.LabelBounds()); err != nil {
		return wrap("clear label", err)
	}
	if err := p.display.DrawText(p.layout.Label, p.layout.LabelOrigin); err != nil {
		return wrap("draw label", err)
	}
	return wrap("flush", p.display.Flush())
}

// Render replaces the value region with the given duty cycle and commits
// the frame. The label is never touched.
func (p *Presenter) Render(percent duty.Percent) error {
	if err := p.display.ClearRegion(p.layout.Region); err != nil {
		return wrap("clear", err)
	}
	text := format.Duty(uint8(percent))
	if err := p.display.DrawText(text.String(), p.layout.Region.Origin); err != nil {
		return wrap("draw", err)
	}
	return wrap("flush", p.display.Flush())
}
