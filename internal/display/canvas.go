// Package display renders the duty readout onto a small monochrome screen.
package display

import (
	"fmt"
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinydraw"
	"tinygo.org/x/tinyfont"
)

var (
	colorOff = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	colorOn  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Display is the set of drawing operations the presenter needs.
type Display interface {
	Size() (width int16, height int16)
	ClearRegion(r Rect) error
	DrawText(text string, origin Point) error
	Flush() error
}

// Canvas implements Display on top of any pixel addressable driver, e.g. an
// SSD1306 or a Framebuffer.
type Canvas struct {
	device drivers.Displayer
}

func NewCanvas(device drivers.Displayer) *Canvas {
	return &Canvas{device: device}
}

func (c *Canvas) Size() (int16, int16) {
	return c.device.Size()
}

// ClearRegion switches every pixel of r off.
func (c *Canvas) ClearRegion(r Rect) error {
	width, height := c.device.Size()
	if !r.Within(width, height) {
		return fmt.Errorf("clear %+v: %w", r, ErrOutOfBounds)
	}
	if r.Empty() {
		return nil
	}
	return tinydraw.FilledRectangle(c.device, r.Origin.X, r.Origin.Y, r.Width, r.Height, colorOff)
}

// DrawText draws text in Font with origin as the top-left corner of the
// first character cell. The cells are cleared first, so drawing over old
// text needs no prior clear.
func (c *Canvas) DrawText(text string, origin Point) error {
	width, height := c.device.Size()
	bounds := TextBounds(origin, len(text))
	if !bounds.Within(width, height) {
		return fmt.Errorf("text %q at %+v: %w", text, origin, ErrOutOfBounds)
	}
	if err := c.ClearRegion(bounds); err != nil {
		return err
	}
	tinyfont.WriteLine(c.device, Font, origin.X, origin.Y+glyphAscent, text, colorOn)
	return nil
}

// Flush commits the frame to the physical screen.
func (c *Canvas) Flush() error {
	return c.device.Display()
}
