package biometric

import (
	"testing"

	"github.com/Sahithi-Kallem/invisiface/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareIdenticalEncodings(t *testing.T) {
	finder := staticFinder{faces: []entities.FaceDetection{primaryFace(faceBox, encodingWithNorm(2))}}

	report := NewComparator(finder).Compare(gradientImage(40, 40), gradientImage(40, 40))

	assert.Equal(t, 1, report.OriginalFaces)
	assert.Equal(t, 1, report.CloakedFaces)
	require.Len(t, report.FaceSimilarities, 1)
	assert.Equal(t, 1.0, report.FaceSimilarities[0])
	assert.Equal(t, 1.0, report.AverageSimilarity)
	assert.False(t, report.ProtectionEffective)
}

func TestComparePlaceholderPairs(t *testing.T) {
	report := CompareFaces(
		[]entities.FaceDetection{cascadeFace(faceBox), primaryFace(faceBox, encodingWithNorm(1))},
		[]entities.FaceDetection{cascadeFace(faceBox), cascadeFace(faceBox)},
	)

	assert.Equal(t, []float64{PlaceholderSimilarity, PlaceholderSimilarity}, report.FaceSimilarities)
	assert.InDelta(t, PlaceholderSimilarity, report.AverageSimilarity, 1e-12)
	assert.True(t, report.ProtectionEffective)
}

func TestCompareFaceCountMismatch(t *testing.T) {
	report := CompareFaces(
		[]entities.FaceDetection{cascadeFace(faceBox), cascadeFace(faceBox)},
		[]entities.FaceDetection{cascadeFace(faceBox)},
	)

	assert.Equal(t, 2, report.OriginalFaces)
	assert.Equal(t, 1, report.CloakedFaces)
	assert.NotNil(t, report.FaceSimilarities)
	assert.Empty(t, report.FaceSimilarities)
	assert.Zero(t, report.AverageSimilarity)
	assert.True(t, report.ProtectionEffective)
}

func TestPairSimilarityIsClamped(t *testing.T) {
	far := primaryFace(faceBox, encodingWithNorm(3))
	near := primaryFace(faceBox, encodingWithNorm(2.75))

	assert.Zero(t, PairSimilarity(primaryFace(faceBox, encodingWithNorm(0)), far))
	assert.InDelta(t, 0.75, PairSimilarity(near, far), 1e-12)
}

func TestCompareRecoversFromPanic(t *testing.T) {
	report := NewComparator(panickingFinder{}).Compare(gradientImage(10, 10), gradientImage(10, 10))

	assert.Equal(t, entities.EmptyComparisonReport(), report)
	assert.False(t, report.ProtectionEffective)
}
