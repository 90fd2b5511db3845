package terminal

import (
	"image/color"
	"strings"
	"testing"

	"github.com/fanduty/fanduty/internal/display"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHalfBlocks(t *testing.T) {
	// GIVEN
	fb, err := display.NewFramebuffer(3, 2, nil)
	require.NoError(t, err)
	on := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	fb.SetPixel(0, 0, on)
	fb.SetPixel(1, 1, on)
	fb.SetPixel(2, 0, on)
	fb.SetPixel(2, 1, on)

	// WHEN
	result := RenderHalfBlocks(fb)

	// THEN
	lines := strings.Split(result, "\n")
	assert.Equal(t, []string{
		"┌───┐",
		"│▀▄█│",
		"└───┘",
	}, lines)
}

func TestRenderHalfBlocks_OddHeight(t *testing.T) {
	// GIVEN
	fb, err := display.NewFramebuffer(1, 3, nil)
	require.NoError(t, err)
	fb.SetPixel(0, 2, color.RGBA{R: 1})

	// WHEN
	result := RenderHalfBlocks(fb)

	// THEN
	assert.Equal(t, "┌─┐\n│ │\n│▀│\n└─┘", result)
}
