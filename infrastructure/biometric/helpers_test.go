package biometric

import (
	"errors"
	"image"
	"image/color"

	"github.com/Sahithi-Kallem/invisiface/entities"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/biometric/types"
)

type fakeStrategy struct {
	name  string
	faces []entities.FaceDetection
	err   error
	calls int
	seen  []image.Image
}

func (s *fakeStrategy) Name() string {
	return s.name
}

func (s *fakeStrategy) Attempt(img image.Image) ([]entities.FaceDetection, error) {
	s.calls++
	s.seen = append(s.seen, img)
	if s.err != nil {
		return nil, s.err
	}
	out := make([]entities.FaceDetection, len(s.faces))
	copy(out, s.faces)
	return out, nil
}

type panickingStrategy struct{}

func (panickingStrategy) Name() string {
	return "panicking"
}

func (panickingStrategy) Attempt(image.Image) ([]entities.FaceDetection, error) {
	panic("backend exploded")
}

type fakeRecognizer struct {
	byModel map[types.RecognizerModel][]types.RecognizedFace
	errs    map[types.RecognizerModel]error
	calls   []types.RecognizerModel
}

func (r *fakeRecognizer) Name() string {
	return "fake"
}

func (r *fakeRecognizer) Recognize(_ image.Image, model types.RecognizerModel) ([]types.RecognizedFace, error) {
	r.calls = append(r.calls, model)
	if err := r.errs[model]; err != nil {
		return nil, err
	}
	return r.byModel[model], nil
}

func (r *fakeRecognizer) Close() error {
	return nil
}

type fakeCascade struct {
	boxes []image.Rectangle
	err   error
}

func (c *fakeCascade) Name() string {
	return "fake_cascade"
}

func (c *fakeCascade) Detect(image.Image) ([]image.Rectangle, error) {
	return c.boxes, c.err
}

func (c *fakeCascade) Close() error {
	return nil
}

// staticFinder returns the same faces for every image.
type staticFinder struct {
	faces []entities.FaceDetection
}

func (f staticFinder) Detect(image.Image) []entities.FaceDetection {
	out := make([]entities.FaceDetection, len(f.faces))
	copy(out, f.faces)
	return out
}

type panickingFinder struct{}

func (panickingFinder) Detect(image.Image) []entities.FaceDetection {
	panic("detector exploded")
}

var errBackend = errors.New("backend failed")

func uniformImage(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func gradientImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x % 256), G: uint8(y % 256), B: uint8((x + y) % 256), A: 255})
		}
	}
	return img
}

func primaryFace(loc entities.FaceLocation, encoding []float64) entities.FaceDetection {
	return entities.FaceDetection{
		Location:   loc,
		Encoding:   encoding,
		Confidence: PrimaryConfidence,
		Method:     "fake_fast",
		Backend:    entities.PrimaryBackend,
	}
}

func cascadeFace(loc entities.FaceLocation) entities.FaceDetection {
	return entities.FaceDetection{
		Location:   loc,
		Encoding:   PlaceholderEncoding(),
		Confidence: CascadeConfidence,
		Method:     "fake_cascade",
		Backend:    entities.CascadeBackend,
	}
}

// encodingWithNorm returns a vector whose L2 norm is exactly norm.
func encodingWithNorm(norm float64) []float64 {
	encoding := make([]float64, entities.EncodingSize)
	encoding[0] = norm
	return encoding
}
