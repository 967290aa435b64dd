package biometric

import (
	"fmt"
	"image"

	"github.com/Sahithi-Kallem/invisiface/infrastructure/logger"
	"github.com/disintegration/imaging"
)

// ChannelOrder describes how the caller's pixel buffer stores colour channels.
// Decoded uploads are always RGB; BGR only arrives from raw capture buffers.
type ChannelOrder int

const (
	OrderRGB ChannelOrder = iota
	OrderBGR
)

const DefaultMaxSide = 1024

type ImagePreprocessor struct {
	MaxSide int
	Order   ChannelOrder
}

func NewImagePreprocessor() ImagePreprocessor {
	return ImagePreprocessor{MaxSide: DefaultMaxSide, Order: OrderRGB}
}

// Preprocess normalizes channel order and downsamples images whose longer side
// exceeds MaxSide. It never fails: on error the input is returned unchanged.
func (p ImagePreprocessor) Preprocess(img image.Image) image.Image {
	out, _ := p.prepare(img)
	return out
}

// prepare also returns the factor that maps output coordinates back onto the input.
func (p ImagePreprocessor) prepare(img image.Image) (out image.Image, inverseScale float64) {
	out, inverseScale = img, 1
	defer func() {
		if r := recover(); r != nil {
			logger.Error("error preprocessing image", logger.LoggerOptions{
				Key:  "error",
				Data: fmt.Sprint(r),
			})
			out, inverseScale = img, 1
		}
	}()

	result := img
	if p.Order == OrderBGR && !isGray(result) {
		result = swapRedBlue(result)
	}
	if !result.Bounds().Min.Eq(image.Point{}) {
		result = imaging.Clone(result)
	}

	maxSide := p.MaxSide
	if maxSide <= 0 {
		maxSide = DefaultMaxSide
	}
	width, height := result.Bounds().Dx(), result.Bounds().Dy()
	if width > maxSide || height > maxSide {
		scale := float64(maxSide) / float64(width)
		if s := float64(maxSide) / float64(height); s < scale {
			scale = s
		}
		newWidth, newHeight := int(float64(width)*scale), int(float64(height)*scale)
		if width >= height {
			newWidth = maxSide
		} else {
			newHeight = maxSide
		}
		if newWidth < 1 {
			newWidth = 1
		}
		if newHeight < 1 {
			newHeight = 1
		}
		// Box filtering over a shrinking support averages every source pixel
		// that falls into the destination pixel.
		result = imaging.Resize(result, newWidth, newHeight, imaging.Box)
		inverseScale = float64(max(width, height)) / float64(maxSide)
		logger.Info(fmt.Sprintf("Resized image from %dx%d to %dx%d", width, height, newWidth, newHeight))
	}
	return result, inverseScale
}

func isGray(img image.Image) bool {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return true
	}
	return false
}

func swapRedBlue(img image.Image) *image.NRGBA {
	dst := imaging.Clone(img)
	for i := 0; i+3 < len(dst.Pix); i += 4 {
		dst.Pix[i], dst.Pix[i+2] = dst.Pix[i+2], dst.Pix[i]
	}
	return dst
}
