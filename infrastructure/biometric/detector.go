package biometric

import (
	"fmt"
	"image"

	"github.com/Sahithi-Kallem/invisiface/entities"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/biometric/types"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/logger"
)

// FaceDetector tries its strategies in order until one of them finds a face.
type FaceDetector struct {
	Preprocessor ImagePreprocessor
	Strategies   []types.DetectionStrategy
}

func NewFaceDetector(strategies ...types.DetectionStrategy) *FaceDetector {
	return &FaceDetector{
		Preprocessor: NewImagePreprocessor(),
		Strategies:   strategies,
	}
}

// Detect returns deduplicated detections in the input image's coordinates.
// Strategy failures are logged and skipped; Detect itself never fails.
func (fd *FaceDetector) Detect(img image.Image) (faces []entities.FaceDetection) {
	faces = []entities.FaceDetection{}
	defer func() {
		if r := recover(); r != nil {
			logger.Error("error detecting faces", logger.LoggerOptions{
				Key:  "error",
				Data: fmt.Sprint(r),
			})
			faces = []entities.FaceDetection{}
		}
	}()

	prepared, inverseScale := fd.Preprocessor.prepare(img)

	for _, strategy := range fd.Strategies {
		found, err := attempt(strategy, prepared)
		if err != nil {
			logger.Warning(fmt.Sprintf("%s detection failed", strategy.Name()), logger.LoggerOptions{
				Key:  "error",
				Data: err,
			})
			continue
		}
		if len(found) > 0 {
			faces = found
			break
		}
	}

	faces = Deduplicate(faces)

	bounds := img.Bounds()
	for i := range faces {
		location := faces[i].Location
		if inverseScale != 1 {
			location = location.Scale(inverseScale)
		}
		faces[i].Location = location.Clamp(bounds.Dx(), bounds.Dy())
		faces[i].ID = i
	}

	logger.Info(fmt.Sprintf("Total unique faces detected: %d", len(faces)))
	return faces
}

// attempt runs a single strategy, turning a panic inside a backend into an
// error so the remaining strategies still get their turn.
func attempt(strategy types.DetectionStrategy, img image.Image) (faces []entities.FaceDetection, err error) {
	defer func() {
		if r := recover(); r != nil {
			faces, err = nil, fmt.Errorf("%s panicked: %v", strategy.Name(), r)
		}
	}()
	return strategy.Attempt(img)
}

// StrategyNames lists the configured strategies in priority order.
func (fd *FaceDetector) StrategyNames() []string {
	names := make([]string, 0, len(fd.Strategies))
	for _, strategy := range fd.Strategies {
		names = append(names, strategy.Name())
	}
	return names
}
