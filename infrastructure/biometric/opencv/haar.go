//go:build gocv
// +build gocv

package opencv

import (
	"fmt"
	"image"
	"sync"

	"github.com/Sahithi-Kallem/invisiface/infrastructure/logger"
	"gocv.io/x/gocv"
)

// HaarDetector runs OpenCV's frontal face Haar cascade.
type HaarDetector struct {
	classifier gocv.CascadeClassifier
	mutex      sync.Mutex
}

func NewHaarDetector(cascadePath string) (*HaarDetector, error) {
	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(cascadePath) {
		classifier.Close()
		return nil, fmt.Errorf("failed to load Haar cascade from %s", cascadePath)
	}
	logger.Info("OpenCV face cascade loaded successfully", logger.LoggerOptions{
		Key:  "path",
		Data: cascadePath,
	})
	return &HaarDetector{classifier: classifier}, nil
}

func (d *HaarDetector) Name() string {
	return "opencv_haar"
}

func (d *HaarDetector) Detect(img image.Image) ([]image.Rectangle, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image to mat: %w", err)
	}
	defer mat.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.classifier.DetectMultiScaleWithParams(gray, 1.1, 5, 0, image.Pt(30, 30), image.Pt(0, 0)), nil
}

func (d *HaarDetector) Close() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.classifier.Close()
}
