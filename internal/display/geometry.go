package display

// Point is a pixel coordinate, origin top-left.
type Point struct {
	X int16 `json:"x"`
	Y int16 `json:"y"`
}

// Rect is an axis aligned rectangle of pixels.
type Rect struct {
	Origin Point `json:"origin"`
	Width  int16 `json:"width"`
	Height int16 `json:"height"`
}

func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Overlaps reports whether r and o share at least one pixel.
func (r Rect) Overlaps(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.Origin.X < o.Origin.X+o.Width &&
		o.Origin.X < r.Origin.X+r.Width &&
		r.Origin.Y < o.Origin.Y+o.Height &&
		o.Origin.Y < r.Origin.Y+r.Height
}

// Within reports whether r lies completely inside a screen of the given size.
func (r Rect) Within(width int16, height int16) bool {
	return r.Origin.X >= 0 && r.Origin.Y >= 0 &&
		int32(r.Origin.X)+int32(r.Width) <= int32(width) &&
		int32(r.Origin.Y)+int32(r.Height) <= int32(height)
}

// TextBounds returns the rectangle covered by text of n characters drawn at origin.
func TextBounds(origin Point, n int) Rect {
	return Rect{
		Origin: origin,
		Width:  int16(n) * GlyphWidth,
		Height: GlyphHeight,
	}
}
