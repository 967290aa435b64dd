package cmd

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/Sahithi-Kallem/invisiface/application/utils"
	"github.com/Sahithi-Kallem/invisiface/infrastructure"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/biometric"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestImage(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 24, 16))
	for i := range img.Pix {
		img.Pix[i] = 128
	}
	require.NoError(t, writePNG(path, img))
}

func TestCloakedPath(t *testing.T) {
	assert.Equal(t, filepath.Join("photos", "me_cloaked.png"), cloakedPath(filepath.Join("photos", "me.jpg"), ""))
	assert.Equal(t, filepath.Join("out", "me_cloaked.png"), cloakedPath(filepath.Join("photos", "me.jpg"), "out"))
}

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.JPG", "notes.txt", "c_cloaked.png"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.png"), 0o755))

	paths, err := listImages(dir)

	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.JPG"), filepath.Join(dir, "b.png")}, paths)

	_, err = listImages(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestRunBatch(t *testing.T) {
	dir, out := t.TempDir(), t.TempDir()
	good := filepath.Join(dir, "good.png")
	writeTestImage(t, good)
	broken := filepath.Join(dir, "broken.png")
	require.NoError(t, os.WriteFile(broken, []byte("not an image"), 0o644))

	service := biometric.NewServiceWithStrategies(0)
	var progressed atomic.Int32
	results := runBatch(context.Background(), service, []string{good, broken}, out, 2, func() { progressed.Add(1) })

	require.Len(t, results, 2)
	assert.Equal(t, int32(2), progressed.Load())
	assert.NoError(t, results[0].Err)
	assert.True(t, results[0].Fallback)
	assert.FileExists(t, filepath.Join(out, "good_cloaked.png"))
	assert.ErrorIs(t, results[1].Err, utils.ErrNotAnImage)

	var summary bytes.Buffer
	failed := printSummary(&summary, results)
	assert.Equal(t, 1, failed)
	assert.Contains(t, summary.String(), "global")
	assert.Contains(t, summary.String(), "error")
}

func TestReadImageRequiresImageExtension(t *testing.T) {
	dir := t.TempDir()
	notes := filepath.Join(dir, "notes.txt")
	writeTestImage(t, notes)

	_, err := readImage(notes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path must have an image file extension")

	_, err = readImage("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path is required")

	photo := filepath.Join(dir, "photo.PNG")
	writeTestImage(t, photo)
	img, err := readImage(photo)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 24, 16), img.Bounds())
}

func TestRunBatchStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := runBatch(ctx, biometric.NewServiceWithStrategies(0), []string{"a.png", "b.png"}, "", 1, nil)

	require.Len(t, results, 2)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}

func TestSyntheticFace(t *testing.T) {
	img := syntheticFace(100, 100)

	assert.Equal(t, image.Pt(100, 100), img.Bounds().Size())
	assert.Equal(t, color.NRGBA{R: 235, G: 235, B: 240, A: 255}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 224, G: 172, B: 105, A: 255}, img.NRGBAAt(50, 50))
}

func TestRunSelfTestAgainstRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	previous := biometric.BiometricService
	biometric.BiometricService = biometric.NewService(biometric.Config{PrimaryBackend: "none", CascadeBackend: "none"})
	t.Cleanup(func() { biometric.BiometricService = previous })

	server := httptest.NewServer(infrastructure.NewRouter())
	defer server.Close()

	var out bytes.Buffer
	err := runSelfTest(context.Background(), server.Client(), server.URL+"/", &out)

	require.NoError(t, err, out.String())
	assert.Equal(t, 3, strings.Count(out.String(), "PASS"))
}

func TestRunSelfTestReportsFailures(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	var out bytes.Buffer
	err := runSelfTest(context.Background(), server.Client(), server.URL, &out)

	assert.Error(t, err)
	assert.Equal(t, 3, strings.Count(out.String(), "FAIL"))
}
