package biometric

import (
	"fmt"
	"image"
	"math"
	"math/rand"

	"github.com/Sahithi-Kallem/invisiface/entities"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/biometric/types"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/logger"
	"github.com/disintegration/imaging"
)

type Cloaker struct {
	Detector types.FaceFinder
	Noise    NoiseSynthesizer
	// FallbackStrength is the std-dev of the global noise used when no face is found.
	FallbackStrength float64
}

func NewCloaker(detector types.FaceFinder, noise NoiseSynthesizer) *Cloaker {
	return &Cloaker{
		Detector:         detector,
		Noise:            noise,
		FallbackStrength: FallbackPerturbationStrength,
	}
}

func (c *Cloaker) Cloak(img image.Image) image.Image {
	out, _ := c.CloakWithFaces(img)
	return out
}

// CloakWithFaces perturbs every detected face region of a copy of img. With no
// faces it perturbs the whole copy with much weaker noise instead. It returns
// the faces that drove the perturbation, empty when the fallback was used.
func (c *Cloaker) CloakWithFaces(img image.Image) (out image.Image, faces []entities.FaceDetection) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("error in cloak image", logger.LoggerOptions{
				Key:  "error",
				Data: fmt.Sprint(r),
			})
			out, faces = img, []entities.FaceDetection{}
		}
	}()

	logger.Info("Starting face cloaking process")
	faces = c.Detector.Detect(img)
	working := imaging.Clone(img)
	channels := 3
	if isGray(img) {
		channels = 1
	}

	if len(faces) == 0 {
		logger.Warning("No faces detected in image - applying general noise as fallback")
		c.applyGlobalNoise(working, channels)
		return working, faces
	}

	width, height := working.Bounds().Dx(), working.Bounds().Dy()
	for _, face := range faces {
		location := face.Location.Clamp(width, height)
		if location.Degenerate() {
			logger.Warning("Face region is empty, skipping", logger.LoggerOptions{
				Key:  "location",
				Data: face.Location,
			})
			continue
		}
		noise := c.Noise.Synthesize(location.Width(), location.Height(), channels, face.Encoding)
		applyNoise(working, location, noise)
		logger.Info(fmt.Sprintf("Applied cloaking to face at location (%d, %d, %d, %d)",
			location.Top, location.Right, location.Bottom, location.Left))
	}

	logger.Info("Face cloaking completed successfully")
	return working, faces
}

// applyNoise adds noise*255 to the RGB samples inside location. A single
// channel field is applied to all three colour channels. Alpha is untouched.
func applyNoise(dst *image.NRGBA, location entities.FaceLocation, noise NoiseField) {
	for y := 0; y < noise.Height; y++ {
		row := dst.PixOffset(location.Left, location.Top+y)
		for x := 0; x < noise.Width; x++ {
			px := dst.Pix[row+x*4 : row+x*4+3]
			for c := 0; c < 3; c++ {
				nc := c
				if noise.Channels == 1 {
					nc = 0
				}
				px[c] = clipSample(float64(px[c]) + noise.At(x, y, nc)*255)
			}
		}
	}
}

func (c *Cloaker) applyGlobalNoise(dst *image.NRGBA, channels int) {
	for i := 0; i+3 < len(dst.Pix); i += 4 {
		var shared float64
		if channels == 1 {
			shared = rand.NormFloat64() * c.FallbackStrength
		}
		for ch := 0; ch < 3; ch++ {
			n := shared
			if channels != 1 {
				n = rand.NormFloat64() * c.FallbackStrength
			}
			dst.Pix[i+ch] = clipSample(float64(dst.Pix[i+ch]) + n*255)
		}
	}
}

func clipSample(v float64) uint8 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
