package biometric

import (
	"errors"
	"image"

	"github.com/Sahithi-Kallem/invisiface/entities"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/biometric/types"
)

// Service wires one detector into the cloaker, scorer and comparator.
type Service struct {
	Detector   *FaceDetector
	Cloaker    *Cloaker
	Scorer     *ProtectionScorer
	Comparator *Comparator

	closers []func() error
}

func NewServiceWithStrategies(strength float64, strategies ...types.DetectionStrategy) *Service {
	detector := NewFaceDetector(strategies...)
	return &Service{
		Detector:   detector,
		Cloaker:    NewCloaker(detector, NewNoiseSynthesizer(strength)),
		Scorer:     NewProtectionScorer(detector),
		Comparator: NewComparator(detector),
	}
}

func (s *Service) CloakImage(img image.Image) types.CloakResult {
	out, faces := s.Cloaker.CloakWithFaces(img)
	return types.CloakResult{
		Image:           out,
		FacesDetected:   len(faces),
		FallbackApplied: len(faces) == 0,
	}
}

func (s *Service) CheckProtection(img image.Image) entities.ProtectionReport {
	return s.Scorer.Score(img)
}

func (s *Service) CompareImages(original image.Image, cloaked image.Image) entities.ComparisonReport {
	return s.Comparator.Compare(original, cloaked)
}

func (s *Service) Strategies() []string {
	return s.Detector.StrategyNames()
}

// Close releases native detector handles.
func (s *Service) Close() error {
	var errs []error
	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
