package cascade

import (
	"embed"
	"fmt"
	"image"
	"os"

	pigo "github.com/esimov/pigo/core"
)

//go:generate sh -c "cp -f $(go list -m -f '{{.Dir}}' github.com/esimov/pigo)/cascade/facefinder data/facefinder && chmod 0644 data/facefinder"

//go:embed data
var cascadeData embed.FS

const embeddedCascadeFile = "data/facefinder"

// minCascadeSize covers the 8 byte preamble plus tree depth and count.
const minCascadeSize = 16

const (
	defaultMinSize      = 30
	defaultShiftFactor  = 0.1
	defaultScaleFactor  = 1.1
	defaultIoUThreshold = 0.2
	defaultMinQuality   = 5.0
)

// PigoDetector finds frontal faces with a pixel-intensity-comparison cascade.
// It runs in pure Go and is read-only once unpacked, so one instance can serve
// concurrent requests.
type PigoDetector struct {
	classifier *pigo.Pigo

	MinSize      int
	ShiftFactor  float64
	ScaleFactor  float64
	IoUThreshold float64
	MinQuality   float32
}

func NewPigoDetector(cascadeFile []byte) (detector *PigoDetector, err error) {
	if len(cascadeFile) < minCascadeSize {
		return nil, fmt.Errorf("cascade file is too short: %d bytes", len(cascadeFile))
	}
	defer func() {
		if r := recover(); r != nil {
			detector, err = nil, fmt.Errorf("error unpacking the cascade file: %v", r)
		}
	}()

	classifier, err := pigo.NewPigo().Unpack(cascadeFile)
	if err != nil {
		return nil, fmt.Errorf("error unpacking the cascade file: %w", err)
	}
	return &PigoDetector{
		classifier:   classifier,
		MinSize:      defaultMinSize,
		ShiftFactor:  defaultShiftFactor,
		ScaleFactor:  defaultScaleFactor,
		IoUThreshold: defaultIoUThreshold,
		MinQuality:   defaultMinQuality,
	}, nil
}

func LoadPigoDetector(path string) (*PigoDetector, error) {
	cascadeFile, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read cascade file: %w", err)
	}
	return NewPigoDetector(cascadeFile)
}

// LoadEmbeddedPigoDetector uses the facefinder cascade compiled into the binary.
func LoadEmbeddedPigoDetector() (*PigoDetector, error) {
	cascadeFile, err := cascadeData.ReadFile(embeddedCascadeFile)
	if err != nil {
		return nil, fmt.Errorf("facefinder cascade is not embedded, run go generate ./...: %w", err)
	}
	return NewPigoDetector(cascadeFile)
}

func (d *PigoDetector) Name() string {
	return "pigo_cascade"
}

// Detect expects an image whose bounds start at the origin.
func (d *PigoDetector) Detect(img image.Image) ([]image.Rectangle, error) {
	cols, rows := img.Bounds().Dx(), img.Bounds().Dy()
	if cols < d.MinSize || rows < d.MinSize {
		return nil, nil
	}

	params := pigo.CascadeParams{
		MinSize:     d.MinSize,
		MaxSize:     max(cols, rows),
		ShiftFactor: d.ShiftFactor,
		ScaleFactor: d.ScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: pigo.RgbToGrayscale(img),
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	detections := d.classifier.RunCascade(params, 0.0)
	detections = d.classifier.ClusterDetections(detections, d.IoUThreshold)

	return BoxesFromDetections(detections, d.MinQuality), nil
}

// BoxesFromDetections converts centre/scale detections to rectangles, keeping
// only those at or above minQuality.
func BoxesFromDetections(detections []pigo.Detection, minQuality float32) []image.Rectangle {
	boxes := []image.Rectangle{}
	for _, det := range detections {
		if det.Q < minQuality {
			continue
		}
		half := det.Scale / 2
		boxes = append(boxes, image.Rect(det.Col-half, det.Row-half, det.Col+half, det.Row+half))
	}
	return boxes
}

func (d *PigoDetector) Close() error {
	return nil
}
