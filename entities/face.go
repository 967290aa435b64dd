package entities

import "image"

type DetectorBackend string

const (
	// PrimaryBackend detections carry real feature-vector encodings.
	PrimaryBackend DetectorBackend = "primary"
	// CascadeBackend detections carry placeholder encodings.
	CascadeBackend DetectorBackend = "cascade"
)

// EncodingSize is the length of every face encoding, real or placeholder.
const EncodingSize = 128

// FaceLocation is a detection box in pixels with a top-left origin.
type FaceLocation struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

func LocationFromRect(rect image.Rectangle) FaceLocation {
	return FaceLocation{
		Top:    rect.Min.Y,
		Right:  rect.Max.X,
		Bottom: rect.Max.Y,
		Left:   rect.Min.X,
	}
}

func (l FaceLocation) Rect() image.Rectangle {
	return image.Rect(l.Left, l.Top, l.Right, l.Bottom)
}

// Clamp limits all four edges to [0, width] and [0, height].
func (l FaceLocation) Clamp(width, height int) FaceLocation {
	return FaceLocation{
		Top:    clampEdge(l.Top, height),
		Right:  clampEdge(l.Right, width),
		Bottom: clampEdge(l.Bottom, height),
		Left:   clampEdge(l.Left, width),
	}
}

// Degenerate reports whether the box has no area.
func (l FaceLocation) Degenerate() bool {
	return l.Right <= l.Left || l.Bottom <= l.Top
}

func (l FaceLocation) Width() int {
	return l.Right - l.Left
}

func (l FaceLocation) Height() int {
	return l.Bottom - l.Top
}

func (l FaceLocation) Area() int {
	if l.Degenerate() {
		return 0
	}
	return l.Width() * l.Height()
}

// Scale multiplies every edge by factor, rounding outwards so the scaled box
// never shrinks below the original face.
func (l FaceLocation) Scale(factor float64) FaceLocation {
	return FaceLocation{
		Top:    int(float64(l.Top) * factor),
		Right:  int(float64(l.Right)*factor + 0.999),
		Bottom: int(float64(l.Bottom)*factor + 0.999),
		Left:   int(float64(l.Left) * factor),
	}
}

func clampEdge(value, limit int) int {
	if value < 0 {
		return 0
	}
	if value > limit {
		return limit
	}
	return value
}

type FaceDetection struct {
	ID         int             `json:"id"`
	Location   FaceLocation    `json:"location"`
	Encoding   []float64       `json:"-"`
	Confidence float64         `json:"confidence"`
	Method     string          `json:"method"`
	Backend    DetectorBackend `json:"backend"`
}

// HasRealEncoding reports whether the encoding came from a recognition model
// rather than a random placeholder.
func (f FaceDetection) HasRealEncoding() bool {
	return f.Backend == PrimaryBackend
}
