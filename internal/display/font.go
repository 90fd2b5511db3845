package display

import (
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Font is the monospace face every text on the screen is drawn in.
var Font tinyfont.Fonter = &proggy.TinySZ8pt7b

// GlyphWidth and GlyphHeight describe the character cell of Font.
// glyphAscent is the distance from the top of the cell to the baseline.
var GlyphWidth, GlyphHeight, glyphAscent = cellOf(Font)

// cellOf measures the printable ASCII range of a monospace font.
func cellOf(font tinyfont.Fonter) (width int16, height int16, ascent int16) {
	var descent int16
	for r := rune(' '); r <= '~'; r++ {
		info := font.GetGlyph(r).Info()
		if advance := int16(info.XAdvance); advance > width {
			width = advance
		}
		if top := -int16(info.YOffset); top > ascent {
			ascent = top
		}
		if bottom := int16(info.YOffset) + int16(info.Height); bottom > descent {
			descent = bottom
		}
	}
	return width, ascent + descent, ascent
}
