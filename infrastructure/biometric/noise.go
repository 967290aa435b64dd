package biometric

import (
	"math"
	"math/rand"

	"github.com/Sahithi-Kallem/invisiface/application/utils"
)

const (
	DefaultPerturbationStrength  = 0.05
	FallbackPerturbationStrength = 0.01
	NoiseBound                   = 0.1
	noiseBlurSigma               = 0.5
)

// NoiseField is a channel-interleaved perturbation in image units, where 1.0
// corresponds to a full 255 step.
type NoiseField struct {
	Width    int
	Height   int
	Channels int
	Data     []float64
}

func (n NoiseField) At(x, y, c int) float64 {
	return n.Data[(y*n.Width+x)*n.Channels+c]
}

// NoiseSynthesizer produces an untargeted Gaussian field. It is not an
// optimizer: nothing steers the noise towards a recognition model's gradient.
type NoiseSynthesizer struct {
	Strength float64
}

func NewNoiseSynthesizer(strength float64) NoiseSynthesizer {
	if strength <= 0 {
		strength = DefaultPerturbationStrength
	}
	return NoiseSynthesizer{Strength: strength}
}

// Synthesize returns a blurred field of the given shape with every value in
// [-NoiseBound, NoiseBound]. target is reserved for a future targeted
// optimizer and is ignored.
func (s NoiseSynthesizer) Synthesize(width, height, channels int, target []float64) NoiseField {
	_ = target
	field := NoiseField{Width: max(width, 0), Height: max(height, 0), Channels: max(channels, 0)}
	field.Data = make([]float64, field.Width*field.Height*field.Channels)
	if len(field.Data) == 0 {
		return field
	}

	for i := range field.Data {
		field.Data[i] = rand.NormFloat64() * s.Strength
	}

	kernel := gaussianKernel3(noiseBlurSigma)
	for c := 0; c < field.Channels; c++ {
		blurChannel(field, c, kernel)
	}

	for i, v := range field.Data {
		field.Data[i] = utils.Clamp(v, -NoiseBound, NoiseBound)
	}
	return field
}

func gaussianKernel3(sigma float64) [3]float64 {
	side := math.Exp(-1 / (2 * sigma * sigma))
	sum := 1 + 2*side
	return [3]float64{side / sum, 1 / sum, side / sum}
}

// blurChannel applies a separable 3x3 Gaussian to one channel in place,
// mirroring borders without repeating the edge sample.
func blurChannel(field NoiseField, c int, kernel [3]float64) {
	w, h, ch := field.Width, field.Height, field.Channels
	tmp := make([]float64, w*h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc float64
			for k := -1; k <= 1; k++ {
				acc += kernel[k+1] * field.Data[(y*w+reflect101(x+k, w))*ch+c]
			}
			tmp[y*w+x] = acc
		}
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc float64
			for k := -1; k <= 1; k++ {
				acc += kernel[k+1] * tmp[reflect101(y+k, h)*w+x]
			}
			field.Data[(y*w+x)*ch+c] = acc
		}
	}
}

func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	if i < 0 {
		return -i
	}
	if i >= n {
		return 2*n - i - 2
	}
	return i
}
