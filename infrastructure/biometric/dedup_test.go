package biometric

import (
	"testing"

	"github.com/Sahithi-Kallem/invisiface/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeduplicateCollapsesHeavilyOverlappingBoxes(t *testing.T) {
	first := cascadeFace(entities.FaceLocation{Top: 0, Right: 100, Bottom: 100, Left: 0})
	// 80x100 of the 100x100 box is shared.
	second := cascadeFace(entities.FaceLocation{Top: 0, Right: 120, Bottom: 100, Left: 20})

	unique := Deduplicate([]entities.FaceDetection{first, second})

	require.Len(t, unique, 1)
	assert.Equal(t, first.Location, unique[0].Location)
}

func TestDeduplicateKeepsLightlyOverlappingBoxes(t *testing.T) {
	first := cascadeFace(entities.FaceLocation{Top: 0, Right: 100, Bottom: 100, Left: 0})
	// 30x100 shared, 30% of either box.
	second := cascadeFace(entities.FaceLocation{Top: 0, Right: 170, Bottom: 100, Left: 70})

	unique := Deduplicate([]entities.FaceDetection{first, second})

	assert.Len(t, unique, 2)
}

func TestDeduplicateMeasuresAgainstTheSmallerBox(t *testing.T) {
	large := cascadeFace(entities.FaceLocation{Top: 0, Right: 400, Bottom: 400, Left: 0})
	// Fully inside the large box: tiny share of the large one, all of the small one.
	small := cascadeFace(entities.FaceLocation{Top: 50, Right: 90, Bottom: 90, Left: 50})

	unique := Deduplicate([]entities.FaceDetection{large, small})

	require.Len(t, unique, 1)
	assert.Equal(t, large.Location, unique[0].Location)
}

func TestDeduplicateFirstSeenWins(t *testing.T) {
	primary := primaryFace(entities.FaceLocation{Top: 10, Right: 110, Bottom: 110, Left: 10}, encodingWithNorm(1))
	duplicate := cascadeFace(entities.FaceLocation{Top: 12, Right: 108, Bottom: 112, Left: 8})
	separate := cascadeFace(entities.FaceLocation{Top: 300, Right: 400, Bottom: 400, Left: 300})

	unique := Deduplicate([]entities.FaceDetection{primary, duplicate, separate})

	require.Len(t, unique, 2)
	assert.Equal(t, entities.PrimaryBackend, unique[0].Backend)
	assert.Equal(t, separate.Location, unique[1].Location)
}

func TestDeduplicateDisjointBoxes(t *testing.T) {
	a := cascadeFace(entities.FaceLocation{Top: 0, Right: 50, Bottom: 50, Left: 0})
	b := cascadeFace(entities.FaceLocation{Top: 0, Right: 150, Bottom: 50, Left: 100})

	assert.Len(t, Deduplicate([]entities.FaceDetection{a, b}), 2)
	assert.Empty(t, Deduplicate(nil))
}
