//go:build dlib
// +build dlib

package dlib

import (
	"bytes"
	"fmt"
	"image"
	"sync"

	"github.com/Kagami/go-face"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/biometric/types"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/logger"
	"github.com/disintegration/imaging"
)

// Recognizer wraps dlib's HOG and CNN face detectors and its ResNet
// descriptor model, which yields 128-d encodings.
type Recognizer struct {
	rec   *face.Recognizer
	mutex sync.Mutex
}

// NewRecognizer loads shape_predictor_5_face_landmarks.dat,
// dlib_face_recognition_resnet_model_v1.dat and mmod_human_face_detector.dat
// from modelsDir.
func NewRecognizer(modelsDir string) (*Recognizer, error) {
	rec, err := face.NewRecognizer(modelsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load dlib models from %s: %w", modelsDir, err)
	}
	logger.Info("dlib face recognizer initialized successfully", logger.LoggerOptions{
		Key:  "models_dir",
		Data: modelsDir,
	})
	return &Recognizer{rec: rec}, nil
}

func (r *Recognizer) Name() string {
	return "dlib"
}

func (r *Recognizer) Recognize(img image.Image, model types.RecognizerModel) ([]types.RecognizedFace, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(95)); err != nil {
		return nil, fmt.Errorf("failed to encode image for dlib: %w", err)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	var (
		faces  []face.Face
		err    error
		method string
	)
	switch model {
	case types.ModelFast:
		faces, err = r.rec.Recognize(buf.Bytes())
		method = "dlib_hog"
	case types.ModelAccurate:
		faces, err = r.rec.RecognizeCNN(buf.Bytes())
		method = "dlib_cnn"
	default:
		return nil, fmt.Errorf("unsupported dlib model %q", model)
	}
	if err != nil {
		return nil, fmt.Errorf("dlib %s recognition failed: %w", method, err)
	}

	recognized := make([]types.RecognizedFace, 0, len(faces))
	for _, f := range faces {
		encoding := make([]float64, len(f.Descriptor))
		for i, v := range f.Descriptor {
			encoding[i] = float64(v)
		}
		recognized = append(recognized, types.RecognizedFace{
			Box:      f.Rectangle,
			Encoding: encoding,
			Method:   method,
		})
	}
	return recognized, nil
}

func (r *Recognizer) Close() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.rec != nil {
		r.rec.Close()
		r.rec = nil
	}
	return nil
}
