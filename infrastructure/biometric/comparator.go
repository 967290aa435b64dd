package biometric

import (
	"fmt"
	"image"

	"github.com/Sahithi-Kallem/invisiface/application/utils"
	"github.com/Sahithi-Kallem/invisiface/entities"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/biometric/types"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/logger"
)

const (
	// PlaceholderSimilarity is assumed, not measured, for pairs without real encodings.
	PlaceholderSimilarity  = 0.3
	effectiveSimilarityMax = 0.5
)

type Comparator struct {
	Detector types.FaceFinder
}

func NewComparator(detector types.FaceFinder) *Comparator {
	return &Comparator{Detector: detector}
}

// Compare detects faces in both images and measures how similar the i-th
// face of one is to the i-th face of the other. Pairing is positional and is
// only attempted when both images have the same number of faces; detection
// order is not guaranteed to line up across images.
func (c *Comparator) Compare(original, cloaked image.Image) (report entities.ComparisonReport) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("error comparing faces", logger.LoggerOptions{
				Key:  "error",
				Data: fmt.Sprint(r),
			})
			report = entities.EmptyComparisonReport()
		}
	}()

	originalFaces := c.Detector.Detect(original)
	cloakedFaces := c.Detector.Detect(cloaked)
	return CompareFaces(originalFaces, cloakedFaces)
}

func CompareFaces(originalFaces, cloakedFaces []entities.FaceDetection) entities.ComparisonReport {
	similarities := []float64{}
	if len(originalFaces) == len(cloakedFaces) {
		for i := range originalFaces {
			similarities = append(similarities, PairSimilarity(originalFaces[i], cloakedFaces[i]))
		}
	}

	average := utils.Mean(similarities)
	return entities.ComparisonReport{
		OriginalFaces:       len(originalFaces),
		CloakedFaces:        len(cloakedFaces),
		FaceSimilarities:    similarities,
		AverageSimilarity:   average,
		ProtectionEffective: average < effectiveSimilarityMax,
	}
}

// PairSimilarity is one minus the Euclidean distance between real encodings,
// kept within [0, 1].
func PairSimilarity(a, b entities.FaceDetection) float64 {
	if !a.HasRealEncoding() || !b.HasRealEncoding() {
		return PlaceholderSimilarity
	}
	return utils.Clamp(1-utils.EuclideanDistance(a.Encoding, b.Encoding), 0, 1)
}
