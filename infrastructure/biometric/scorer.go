package biometric

import (
	"fmt"
	"image"
	"math"

	"github.com/Sahithi-Kallem/invisiface/application/constants"
	"github.com/Sahithi-Kallem/invisiface/application/utils"
	"github.com/Sahithi-Kallem/invisiface/entities"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/biometric/types"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/logger"
)

const (
	encodingNormScale   = 15.0
	placeholderScore    = 0.6
	highProtectionBelow = 0.3
	lowProtectionFrom   = 0.6
)

type ProtectionScorer struct {
	Detector types.FaceFinder
}

func NewProtectionScorer(detector types.FaceFinder) *ProtectionScorer {
	return &ProtectionScorer{Detector: detector}
}

// Score estimates how recognisable the faces in img still are.
func (s *ProtectionScorer) Score(img image.Image) (report entities.ProtectionReport) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("error checking face recognition", logger.LoggerOptions{
				Key:  "error",
				Data: fmt.Sprint(r),
			})
			report = entities.ProtectionReport{
				IsProtected:      false,
				FacesDetected:    0,
				ConfidenceScores: []float64{},
				ProtectionLevel:  entities.ProtectionError,
				Message:          fmt.Sprintf(constants.MessageProtectionError, fmt.Sprint(r)),
			}
		}
	}()

	logger.Info("Checking face recognition protection")
	faces := s.Detector.Detect(img)
	return ScoreFaces(faces)
}

// ScoreFaces classifies already detected faces.
func ScoreFaces(faces []entities.FaceDetection) entities.ProtectionReport {
	if len(faces) == 0 {
		return entities.ProtectionReport{
			IsProtected:      false,
			FacesDetected:    0,
			ConfidenceScores: []float64{},
			ProtectionLevel:  entities.ProtectionUnknown,
			Message:          constants.MessageNoFacesDetected,
		}
	}

	scores := make([]float64, 0, len(faces))
	for _, face := range faces {
		scores = append(scores, FaceConfidence(face))
	}

	level, protected, message := ClassifyConfidence(utils.Mean(scores), len(faces))
	return entities.ProtectionReport{
		IsProtected:      protected,
		FacesDetected:    len(faces),
		ConfidenceScores: scores,
		ProtectionLevel:  level,
		Message:          message,
	}
}

// FaceConfidence uses the encoding magnitude as a recognisability proxy for
// real encodings and a fixed lower trust for placeholder ones.
func FaceConfidence(face entities.FaceDetection) float64 {
	if !face.HasRealEncoding() {
		return placeholderScore
	}
	return math.Min(utils.L2Norm(face.Encoding)/encodingNormScale, 1.0)
}

func ClassifyConfidence(average float64, faces int) (entities.ProtectionLevel, bool, string) {
	switch {
	case average < highProtectionBelow:
		return entities.ProtectionHigh, true, fmt.Sprintf(constants.MessageProtectionHigh, faces)
	case average < lowProtectionFrom:
		return entities.ProtectionMedium, true, fmt.Sprintf(constants.MessageProtectionMedium, faces)
	default:
		return entities.ProtectionLow, false, fmt.Sprintf(constants.MessageProtectionLow, faces)
	}
}
