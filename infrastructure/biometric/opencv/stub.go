//go:build !gocv
// +build !gocv

package opencv

import (
	"fmt"
	"image"

	"github.com/Sahithi-Kallem/invisiface/infrastructure/biometric/types"
)

var errNotEnabled = fmt.Errorf("%w: gocv build tag is not enabled", types.ErrBackendUnavailable)

// DNNRecognizer is a placeholder for builds without OpenCV.
type DNNRecognizer struct{}

func NewDNNRecognizer(config DNNConfig) (*DNNRecognizer, error) {
	_ = config
	return nil, errNotEnabled
}

func (r *DNNRecognizer) Name() string {
	return "opencv_dnn"
}

func (r *DNNRecognizer) Recognize(img image.Image, model types.RecognizerModel) ([]types.RecognizedFace, error) {
	_ = img
	_ = model
	return nil, errNotEnabled
}

func (r *DNNRecognizer) Close() error {
	return nil
}

// HaarDetector is a placeholder for builds without OpenCV.
type HaarDetector struct{}

func NewHaarDetector(cascadePath string) (*HaarDetector, error) {
	_ = cascadePath
	return nil, errNotEnabled
}

func (d *HaarDetector) Name() string {
	return "opencv_haar"
}

func (d *HaarDetector) Detect(img image.Image) ([]image.Rectangle, error) {
	_ = img
	return nil, errNotEnabled
}

func (d *HaarDetector) Close() error {
	return nil
}
