package types

import (
	"errors"
	"image"

	"github.com/Sahithi-Kallem/invisiface/entities"
)

// ErrBackendUnavailable is returned by backends compiled without their build tag
// or whose model files could not be loaded.
var ErrBackendUnavailable = errors.New("detector backend unavailable")

// RecognizerModel selects between a recognizer's detection models.
type RecognizerModel string

const (
	ModelFast     RecognizerModel = "fast"
	ModelAccurate RecognizerModel = "accurate"
)

// RecognizedFace is one face found by a Recognizer, with a real encoding.
type RecognizedFace struct {
	Box      image.Rectangle
	Encoding []float64
	Method   string
}

// Recognizer locates faces and computes their feature-vector encodings.
type Recognizer interface {
	Name() string
	Recognize(img image.Image, model RecognizerModel) ([]RecognizedFace, error)
	Close() error
}

// CascadeDetector locates faces without computing encodings.
type CascadeDetector interface {
	Name() string
	Detect(img image.Image) ([]image.Rectangle, error)
	Close() error
}

// DetectionStrategy is one entry in the detector's fallback list.
type DetectionStrategy interface {
	Name() string
	Attempt(img image.Image) ([]entities.FaceDetection, error)
}

// FaceFinder is what the cloaker, scorer and comparator need from a detector.
type FaceFinder interface {
	Detect(img image.Image) []entities.FaceDetection
}

type CloakResult struct {
	Image           image.Image
	FacesDetected   int
	FallbackApplied bool
}

// ProtectionServiceType is the surface shared by the HTTP controllers, the CLI
// and the chat front-end.
type ProtectionServiceType interface {
	CloakImage(img image.Image) CloakResult
	CheckProtection(img image.Image) entities.ProtectionReport
	CompareImages(original image.Image, cloaked image.Image) entities.ComparisonReport
	Strategies() []string
	Close() error
}
