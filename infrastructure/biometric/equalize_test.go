package biometric

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqualizeLumaStretchesNarrowHistogram(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 1))
	for x, v := range []uint8{100, 110, 120, 130} {
		img.SetGray(x, 0, color.Gray{Y: v})
	}

	out := EqualizeLuma(img)

	require.Equal(t, img.Bounds(), out.Bounds())
	assert.Equal(t, uint8(0), out.NRGBAAt(0, 0).R)
	assert.Equal(t, uint8(255), out.NRGBAAt(3, 0).R)
	assert.Less(t, out.NRGBAAt(1, 0).R, out.NRGBAAt(2, 0).R)
}

func TestEqualizeLumaLeavesFlatImagesAlone(t *testing.T) {
	img := uniformImage(8, 8, color.NRGBA{R: 60, G: 120, B: 180, A: 255})

	out := EqualizeLuma(img)

	assert.Equal(t, img.Pix, out.Pix)
	assert.NotSame(t, img, out)
}

func TestEqualizeLumaDoesNotMutateSource(t *testing.T) {
	img := gradientImage(16, 16)
	before := append([]uint8(nil), img.Pix...)

	EqualizeLuma(img)

	assert.Equal(t, before, img.Pix)
}

func TestEqualizationTable(t *testing.T) {
	var histogram [256]int
	histogram[10] = 2
	histogram[20] = 1
	histogram[30] = 1

	lut, ok := equalizationTable(histogram, 4)

	require.True(t, ok)
	assert.Equal(t, uint8(0), lut[10])
	assert.Equal(t, uint8(128), lut[20])
	assert.Equal(t, uint8(255), lut[30])

	_, ok = equalizationTable([256]int{5: 9}, 9)
	assert.False(t, ok)
}
