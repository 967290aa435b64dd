package biometric

import (
	"image"
	"testing"

	"github.com/Sahithi-Kallem/invisiface/entities"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/biometric/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimaryStrategyFallsBackToAccurateModel(t *testing.T) {
	recognizer := &fakeRecognizer{byModel: map[types.RecognizerModel][]types.RecognizedFace{
		types.ModelAccurate: {{Box: image.Rect(10, 20, 60, 80), Encoding: encodingWithNorm(3), Method: "fake_cnn"}},
	}}

	faces, err := NewPrimaryStrategy(recognizer).Attempt(gradientImage(100, 100))

	require.NoError(t, err)
	require.Len(t, faces, 1)
	assert.Equal(t, []types.RecognizerModel{types.ModelFast, types.ModelAccurate}, recognizer.calls)
	assert.Equal(t, entities.FaceLocation{Top: 20, Right: 60, Bottom: 80, Left: 10}, faces[0].Location)
	assert.Equal(t, PrimaryConfidence, faces[0].Confidence)
	assert.Equal(t, "fake_cnn", faces[0].Method)
	assert.Equal(t, entities.PrimaryBackend, faces[0].Backend)
	assert.True(t, faces[0].HasRealEncoding())
}

func TestPrimaryStrategyStopsAtFastModel(t *testing.T) {
	recognizer := &fakeRecognizer{byModel: map[types.RecognizerModel][]types.RecognizedFace{
		types.ModelFast:     {{Box: image.Rect(0, 0, 30, 30), Encoding: encodingWithNorm(1), Method: "fake_hog"}},
		types.ModelAccurate: {{Box: image.Rect(40, 40, 90, 90), Encoding: encodingWithNorm(1), Method: "fake_cnn"}},
	}}

	faces, err := NewPrimaryStrategy(recognizer).Attempt(gradientImage(100, 100))

	require.NoError(t, err)
	require.Len(t, faces, 1)
	assert.Equal(t, "fake_hog", faces[0].Method)
	assert.Equal(t, []types.RecognizerModel{types.ModelFast}, recognizer.calls)
}

func TestPrimaryStrategyReportsModelErrors(t *testing.T) {
	recognizer := &fakeRecognizer{errs: map[types.RecognizerModel]error{
		types.ModelFast:     errBackend,
		types.ModelAccurate: errBackend,
	}}

	faces, err := NewPrimaryStrategy(recognizer).Attempt(gradientImage(10, 10))

	assert.ErrorIs(t, err, errBackend)
	assert.Empty(t, faces)
	assert.Len(t, recognizer.calls, 2)
}

func TestPrimaryStrategyNoFacesIsNotAnError(t *testing.T) {
	faces, err := NewPrimaryStrategy(&fakeRecognizer{}).Attempt(gradientImage(10, 10))

	assert.NoError(t, err)
	assert.Empty(t, faces)
}

func TestCascadeStrategyUsesPlaceholderEncodings(t *testing.T) {
	cascade := &fakeCascade{boxes: []image.Rectangle{image.Rect(5, 5, 25, 25), image.Rect(40, 10, 70, 40)}}

	faces, err := (&CascadeStrategy{Detector: cascade}).Attempt(gradientImage(100, 100))

	require.NoError(t, err)
	require.Len(t, faces, 2)
	for _, face := range faces {
		assert.Len(t, face.Encoding, entities.EncodingSize)
		assert.Equal(t, CascadeConfidence, face.Confidence)
		assert.Equal(t, entities.CascadeBackend, face.Backend)
		assert.Equal(t, "fake_cascade", face.Method)
		assert.False(t, face.HasRealEncoding())
	}
}

func TestCascadeStrategyPropagatesErrors(t *testing.T) {
	_, err := (&CascadeStrategy{Detector: &fakeCascade{err: errBackend}}).Attempt(gradientImage(10, 10))
	assert.ErrorIs(t, err, errBackend)
}

func TestPlaceholderEncodingRange(t *testing.T) {
	encoding := PlaceholderEncoding()

	require.Len(t, encoding, entities.EncodingSize)
	for _, v := range encoding {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestEqualizedStrategyWrapsInner(t *testing.T) {
	inner := &fakeStrategy{name: "inner", faces: []entities.FaceDetection{
		cascadeFace(entities.FaceLocation{Top: 1, Right: 9, Bottom: 9, Left: 1}),
	}}
	strategy := &EqualizedStrategy{Inner: inner}
	source := gradientImage(32, 32)

	faces, err := strategy.Attempt(source)

	require.NoError(t, err)
	assert.Len(t, faces, 1)
	assert.Equal(t, "equalized_inner", strategy.Name())
	require.Len(t, inner.seen, 1)
	assert.NotSame(t, source, inner.seen[0])
	assert.Equal(t, source.Bounds(), inner.seen[0].Bounds())
}
