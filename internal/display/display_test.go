package display

import (
	"errors"
	"strings"
	"testing"

	"github.com/fanduty/fanduty/internal/duty"
	"github.com/fanduty/fanduty/internal/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	frames []string
	err    error
}

func (s *recordingSink) Show(fb *Framebuffer) error {
	s.frames = append(s.frames, fb.String())
	return s.err
}

func createPresenter(t *testing.T, sink Sink) (*Presenter, *Framebuffer) {
	fb, err := NewFramebuffer(128, 64, sink)
	require.NoError(t, err)
	presenter, err := NewPresenter(NewCanvas(fb), DefaultLayout)
	require.NoError(t, err)
	return presenter, fb
}

// renderText draws text onto a fresh framebuffer and returns the lit pixels of its cells.
func renderText(t *testing.T, text string) string {
	fb, err := NewFramebuffer(int16(len(text))*GlyphWidth, GlyphHeight, nil)
	require.NoError(t, err)
	require.NoError(t, NewCanvas(fb).DrawText(text, Point{}))
	return fb.String()
}

func TestRect_Overlaps(t *testing.T) {
	a := Rect{Origin: Point{X: 0, Y: 0}, Width: 60, Height: 10}

	assert.False(t, a.Overlaps(Rect{Origin: Point{X: 0, Y: 10}, Width: 50, Height: 20}))
	assert.True(t, a.Overlaps(Rect{Origin: Point{X: 59, Y: 9}, Width: 5, Height: 5}))
	assert.False(t, a.Overlaps(Rect{Origin: Point{X: 60, Y: 0}, Width: 5, Height: 5}))
	assert.False(t, a.Overlaps(Rect{}))
}

func TestRect_Within(t *testing.T) {
	assert.True(t, Rect{Origin: Point{X: 0, Y: 16}, Width: 50, Height: 20}.Within(128, 64))
	assert.True(t, Rect{Origin: Point{X: 78, Y: 44}, Width: 50, Height: 20}.Within(128, 64))
	assert.False(t, Rect{Origin: Point{X: 0, Y: 16}, Width: 50, Height: 20}.Within(128, 32))
	assert.False(t, Rect{Origin: Point{X: -1, Y: 0}, Width: 5, Height: 5}.Within(128, 64))
}

func TestCanvas_DrawTextReplacesOldText(t *testing.T) {
	// GIVEN
	fb, err := NewFramebuffer(3*GlyphWidth, GlyphHeight, nil)
	require.NoError(t, err)
	canvas := NewCanvas(fb)
	require.NoError(t, canvas.DrawText("888", Point{}))

	// WHEN
	err = canvas.DrawText("1  ", Point{})

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, renderText(t, "1  "), fb.String())
}

func TestCanvas_DrawTextStaysInsideCells(t *testing.T) {
	// GIVEN
	fb, err := NewFramebuffer(128, 64, nil)
	require.NoError(t, err)
	canvas := NewCanvas(fb)
	origin := Point{X: 10, Y: 20}
	bounds := TextBounds(origin, 3)

	// WHEN
	err = canvas.DrawText("100", origin)

	// THEN
	assert.NoError(t, err)
	assert.Greater(t, fb.Lit(bounds), 0)
	assert.Equal(t, fb.Lit(Rect{Width: 128, Height: 64}), fb.Lit(bounds))
}

func TestCanvas_DrawTextUsesEveryCell(t *testing.T) {
	// GIVEN
	fb, err := NewFramebuffer(128, 64, nil)
	require.NoError(t, err)
	canvas := NewCanvas(fb)

	// WHEN
	err = canvas.DrawText("88", Point{})

	// THEN
	assert.NoError(t, err)
	first := Rect{Width: GlyphWidth, Height: GlyphHeight}
	second := Rect{Origin: Point{X: GlyphWidth}, Width: GlyphWidth, Height: GlyphHeight}
	assert.Greater(t, fb.Lit(first), 0)
	assert.Equal(t, fb.Lit(first), fb.Lit(second))
}

func TestCanvas_DrawTextBlankIsDark(t *testing.T) {
	assert.NotContains(t, renderText(t, "   "), "#")
	assert.Contains(t, renderText(t, "0"), "#")
}

func TestCanvas_DrawTextOutOfBounds(t *testing.T) {
	// GIVEN
	fb, err := NewFramebuffer(50, 36, nil)
	require.NoError(t, err)
	canvas := NewCanvas(fb)

	// WHEN
	err = canvas.DrawText(strings.Repeat("8", int(50/GlyphWidth)+1), Point{X: 0, Y: 0})

	// THEN
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.Equal(t, 0, fb.Lit(Rect{Width: 50, Height: 36}))
}

func TestCanvas_ClearRegion(t *testing.T) {
	// GIVEN
	fb, err := NewFramebuffer(4*GlyphWidth, GlyphHeight, nil)
	require.NoError(t, err)
	canvas := NewCanvas(fb)
	require.NoError(t, canvas.DrawText("8888", Point{X: 0, Y: 0}))
	region := Rect{Origin: Point{X: 0, Y: 0}, Width: 2 * GlyphWidth, Height: GlyphHeight}

	// WHEN
	err = canvas.ClearRegion(region)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 0, fb.Lit(region))
	assert.Greater(t, fb.Lit(Rect{Origin: Point{X: 2 * GlyphWidth}, Width: 2 * GlyphWidth, Height: GlyphHeight}), 0)
}

func TestCanvas_ClearEmptyRegion(t *testing.T) {
	// GIVEN
	fb, err := NewFramebuffer(50, 36, nil)
	require.NoError(t, err)

	// WHEN
	err = NewCanvas(fb).ClearRegion(Rect{Origin: Point{X: 3, Y: 3}})

	// THEN
	assert.NoError(t, err)
}

func TestLayout_Validate(t *testing.T) {
	// WHEN / THEN
	assert.NoError(t, DefaultLayout.Validate(128, 64))
	assert.NoError(t, DefaultLayout.Validate(max(MinWidth, DefaultLayout.LabelBounds().Width), MinHeight))
	assert.ErrorIs(t, DefaultLayout.Validate(128, 32), ErrOutOfBounds)

	overlapping := DefaultLayout
	overlapping.Region.Origin = Point{X: 10, Y: 5}
	assert.ErrorIs(t, overlapping.Validate(128, 64), ErrRegionOverlap)

	tooSmall := DefaultLayout
	tooSmall.Region.Width = format.DutyWidth*GlyphWidth - 1
	assert.ErrorIs(t, tooSmall.Validate(128, 64), ErrRegionTooSmall)

	longLabel := DefaultLayout
	longLabel.Label = strings.Repeat("X", int(128/GlyphWidth)+1)
	assert.ErrorIs(t, longLabel.Validate(128, 64), ErrOutOfBounds)
}

func TestPresenter_RenderShowsDutyInRegion(t *testing.T) {
	// GIVEN
	sink := &recordingSink{}
	presenter, fb := createPresenter(t, sink)

	// WHEN
	err := presenter.Render(100)

	// THEN
	assert.NoError(t, err)
	assert.Len(t, sink.frames, 1)
	expected := renderText(t, "100")
	region := DefaultLayout.Region
	actual, err := NewFramebuffer(3*GlyphWidth, GlyphHeight, nil)
	require.NoError(t, err)
	for y := int16(0); y < GlyphHeight; y++ {
		for x := int16(0); x < 3*GlyphWidth; x++ {
			if fb.Pixel(region.Origin.X+x, region.Origin.Y+y) {
				actual.SetPixel(x, y, colorOn)
			}
		}
	}
	assert.Equal(t, expected, actual.String())
}

func TestPresenter_RenderNeverTouchesLabel(t *testing.T) {
	// GIVEN
	presenter, fb := createPresenter(t, nil)
	require.NoError(t, presenter.DrawLabel())
	labelBefore := fb.Lit(DefaultLayout.LabelBounds())
	require.Greater(t, labelBefore, 0)

	for _, value := range []uint8{0, 7, 83, 100, 0} {
		// WHEN
		err := presenter.Render(dutyPercent(value))

		// THEN
		assert.NoError(t, err)
		assert.Equal(t, labelBefore, fb.Lit(DefaultLayout.LabelBounds()))
	}
}

func TestPresenter_SmallerValueLeavesNoStaleDigits(t *testing.T) {
	// GIVEN
	presenter, fb := createPresenter(t, nil)
	require.NoError(t, presenter.Render(100))

	// WHEN
	err := presenter.Render(0)

	// THEN
	assert.NoError(t, err)
	region := DefaultLayout.Region
	// only the first cell may contain lit pixels
	rest := Rect{
		Origin: Point{X: region.Origin.X + GlyphWidth, Y: region.Origin.Y},
		Width:  region.Width - GlyphWidth,
		Height: region.Height,
	}
	assert.Equal(t, 0, fb.Lit(rest))
	assert.Greater(t, fb.Lit(region), 0)
}

func TestPresenter_FlushErrorIsDisplayError(t *testing.T) {
	// GIVEN
	sinkErr := errors.New("i2c nack")
	presenter, _ := createPresenter(t, &recordingSink{err: sinkErr})

	// WHEN
	err := presenter.Render(50)

	// THEN
	var displayErr *Error
	assert.ErrorAs(t, err, &displayErr)
	assert.Equal(t, "flush", displayErr.Op)
	assert.ErrorIs(t, err, sinkErr)
	assert.Equal(t, "display flush: i2c nack", err.Error())
}

func TestNewPresenter_InvalidLayout(t *testing.T) {
	// GIVEN
	fb, err := NewFramebuffer(128, 32, nil)
	require.NoError(t, err)

	// WHEN
	_, err = NewPresenter(NewCanvas(fb), DefaultLayout)

	// THEN
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestNewFramebuffer_InvalidSize(t *testing.T) {
	// WHEN
	_, err := NewFramebuffer(0, 64, nil)

	// THEN
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func dutyPercent(value uint8) duty.Percent {
	return duty.Percent(value)
}
