package biometric

import (
	"fmt"
	"image"
	"math/rand"

	"github.com/Sahithi-Kallem/invisiface/entities"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/biometric/types"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/logger"
)

const (
	PrimaryConfidence = 0.9
	CascadeConfidence = 0.8
)

// PrimaryStrategy runs a recognizer with each of its models in turn, stopping
// at the first model that finds a face.
type PrimaryStrategy struct {
	Recognizer types.Recognizer
	Models     []types.RecognizerModel
}

func NewPrimaryStrategy(recognizer types.Recognizer) *PrimaryStrategy {
	return &PrimaryStrategy{
		Recognizer: recognizer,
		Models:     []types.RecognizerModel{types.ModelFast, types.ModelAccurate},
	}
}

func (s *PrimaryStrategy) Name() string {
	return s.Recognizer.Name()
}

func (s *PrimaryStrategy) Attempt(img image.Image) ([]entities.FaceDetection, error) {
	var lastErr error
	for _, model := range s.Models {
		found, err := s.Recognizer.Recognize(img, model)
		if err != nil {
			logger.Warning(fmt.Sprintf("%s %s model failed", s.Recognizer.Name(), model), logger.LoggerOptions{
				Key:  "error",
				Data: err,
			})
			lastErr = err
			continue
		}
		if len(found) == 0 {
			continue
		}

		faces := make([]entities.FaceDetection, 0, len(found))
		for i, f := range found {
			faces = append(faces, entities.FaceDetection{
				ID:         i,
				Location:   entities.LocationFromRect(f.Box),
				Encoding:   f.Encoding,
				Confidence: PrimaryConfidence,
				Method:     f.Method,
				Backend:    entities.PrimaryBackend,
			})
		}
		logger.Info(fmt.Sprintf("%s (%s) detected %d face(s)", s.Recognizer.Name(), model, len(faces)))
		return faces, nil
	}
	return nil, lastErr
}

// CascadeStrategy runs a geometric detector that cannot embed faces, so each
// detection gets a random placeholder encoding.
type CascadeStrategy struct {
	Detector types.CascadeDetector
}

func (s *CascadeStrategy) Name() string {
	return s.Detector.Name()
}

func (s *CascadeStrategy) Attempt(img image.Image) ([]entities.FaceDetection, error) {
	boxes, err := s.Detector.Detect(img)
	if err != nil {
		return nil, err
	}

	faces := make([]entities.FaceDetection, 0, len(boxes))
	for i, box := range boxes {
		faces = append(faces, entities.FaceDetection{
			ID:         i,
			Location:   entities.LocationFromRect(box),
			Encoding:   PlaceholderEncoding(),
			Confidence: CascadeConfidence,
			Method:     s.Detector.Name(),
			Backend:    entities.CascadeBackend,
		})
	}
	logger.Info(fmt.Sprintf("%s detected %d face(s)", s.Detector.Name(), len(faces)))
	return faces, nil
}

// PlaceholderEncoding is a uniform random vector in [0, 1).
func PlaceholderEncoding() []float64 {
	encoding := make([]float64, entities.EncodingSize)
	for i := range encoding {
		encoding[i] = rand.Float64()
	}
	return encoding
}

// EqualizedStrategy retries another strategy on a luma-equalized copy of the image.
type EqualizedStrategy struct {
	Inner types.DetectionStrategy
}

func (s *EqualizedStrategy) Name() string {
	return "equalized_" + s.Inner.Name()
}

func (s *EqualizedStrategy) Attempt(img image.Image) ([]entities.FaceDetection, error) {
	logger.Info("Trying enhanced preprocessing for face detection")
	return s.Inner.Attempt(EqualizeLuma(img))
}
