// Package terminal shows display frames in a terminal.
package terminal

import (
	"strings"

	"github.com/fanduty/fanduty/internal/display"
	"github.com/pterm/pterm"
)

// Sink shows committed frames in a live terminal area, two pixel
// rows per text line.
type Sink struct {
	area *pterm.AreaPrinter
}

func NewSink() (*Sink, error) {
	area, err := pterm.DefaultArea.WithRemoveWhenDone(false).Start()
	if err != nil {
		return nil, err
	}
	return &Sink{area: area}, nil
}

func (s *Sink) Show(fb *display.Framebuffer) error {
	s.area.Update(RenderHalfBlocks(fb))
	return nil
}

func (s *Sink) Stop() error {
	return s.area.Stop()
}

// RenderHalfBlocks draws the frame with unicode half block characters inside a border.
func RenderHalfBlocks(fb *display.Framebuffer) string {
	width, height := fb.Size()

	var sb strings.Builder
	sb.WriteString("┌" + strings.Repeat("─", int(width)) + "┐\n")
	for y := int16(0); y < height; y += 2 {
		sb.WriteString("│")
		for x := int16(0); x < width; x++ {
			upper := fb.Pixel(x, y)
			lower := fb.Pixel(x, y+1)
			switch {
			case upper && lower:
				sb.WriteString("█")
			case upper:
				sb.WriteString("▀")
			case lower:
				sb.WriteString("▄")
			default:
				sb.WriteString(" ")
			}
		}
		sb.WriteString("│\n")
	}
	sb.WriteString("└" + strings.Repeat("─", int(width)) + "┘")
	return sb.String()
}
