//go:build !dlib
// +build !dlib

package dlib

import (
	"fmt"
	"image"

	"github.com/Sahithi-Kallem/invisiface/infrastructure/biometric/types"
)

var errNotEnabled = fmt.Errorf("%w: dlib build tag is not enabled", types.ErrBackendUnavailable)

// Recognizer is a placeholder for builds without dlib.
type Recognizer struct{}

// NewRecognizer always fails when built without the dlib tag.
func NewRecognizer(modelsDir string) (*Recognizer, error) {
	_ = modelsDir
	return nil, errNotEnabled
}

func (r *Recognizer) Name() string {
	return "dlib"
}

func (r *Recognizer) Recognize(img image.Image, model types.RecognizerModel) ([]types.RecognizedFace, error) {
	_ = img
	_ = model
	return nil, errNotEnabled
}

func (r *Recognizer) Close() error {
	return nil
}
