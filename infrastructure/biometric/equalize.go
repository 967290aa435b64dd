package biometric

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// EqualizeLuma spreads the luma histogram over the full 0..255 range while
// keeping chroma, which recovers faces in washed out or underexposed photos.
func EqualizeLuma(img image.Image) *image.NRGBA {
	dst := imaging.Clone(img)
	pixels := len(dst.Pix) / 4
	if pixels == 0 {
		return dst
	}

	luma := make([]uint8, pixels)
	cb := make([]uint8, pixels)
	cr := make([]uint8, pixels)
	var histogram [256]int
	for i := 0; i < pixels; i++ {
		p := dst.Pix[i*4 : i*4+3]
		luma[i], cb[i], cr[i] = color.RGBToYCbCr(p[0], p[1], p[2])
		histogram[luma[i]]++
	}

	lut, ok := equalizationTable(histogram, pixels)
	if !ok {
		return dst
	}

	for i := 0; i < pixels; i++ {
		p := dst.Pix[i*4 : i*4+3]
		p[0], p[1], p[2] = color.YCbCrToRGB(lut[luma[i]], cb[i], cr[i])
	}
	return dst
}

// equalizationTable builds the cumulative-histogram lookup used by OpenCV's
// equalizeHist. It reports false for single-valued histograms, which have
// nothing to spread.
func equalizationTable(histogram [256]int, total int) ([256]uint8, bool) {
	var lut [256]uint8
	first := 0
	for first < 256 && histogram[first] == 0 {
		first++
	}
	if first == 256 || histogram[first] == total {
		return lut, false
	}

	scale := 255.0 / float64(total-histogram[first])
	sum := 0
	for i := first + 1; i < 256; i++ {
		sum += histogram[i]
		lut[i] = uint8(math.Min(255, math.Round(float64(sum)*scale)))
	}
	return lut, true
}
