package display

import (
	"errors"
	"image/color"
	"strings"
)

var ErrInvalidSize = errors.New("screen size must be positive")

// Sink receives a committed frame.
type Sink interface {
	Show(fb *Framebuffer) error
}

// Framebuffer is an in-memory 1bpp screen implementing drivers.Displayer.
// Display hands the frame to the configured Sink.
type Framebuffer struct {
	width  int16
	height int16
	pixels []bool
	sink   Sink

	Commits int
}

func NewFramebuffer(width int16, height int16, sink Sink) (*Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	return &Framebuffer{
		width:  width,
		height: height,
		pixels: make([]bool, int(width)*int(height)),
		sink:   sink,
	}, nil
}

func (f *Framebuffer) Size() (int16, int16) {
	return f.width, f.height
}

// SetPixel ignores coordinates outside the screen, like hardware drivers do.
func (f *Framebuffer) SetPixel(x int16, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return
	}
	f.pixels[int(y)*int(f.width)+int(x)] = c.R != 0 || c.G != 0 || c.B != 0
}

func (f *Framebuffer) Pixel(x int16, y int16) bool {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return false
	}
	return f.pixels[int(y)*int(f.width)+int(x)]
}

func (f *Framebuffer) Display() error {
	f.Commits++
	if f.sink == nil {
		return nil
	}
	return f.sink.Show(f)
}

// Lit counts the lit pixels inside r.
func (f *Framebuffer) Lit(r Rect) int {
	count := 0
	for y := r.Origin.Y; y < r.Origin.Y+r.Height; y++ {
		for x := r.Origin.X; x < r.Origin.X+r.Width; x++ {
			if f.Pixel(x, y) {
				count++
			}
		}
	}
	return count
}

// String renders the frame with '#' for lit and '.' for dark pixels.
func (f *Framebuffer) String() string {
	var sb strings.Builder
	for y := int16(0); y < f.height; y++ {
		for x := int16(0); x < f.width; x++ {
			if f.Pixel(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
