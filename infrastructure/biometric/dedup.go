package biometric

import "github.com/Sahithi-Kallem/invisiface/entities"

// DuplicateOverlapRatio is the share of the smaller box that another box must
// cover before the later of the two is treated as the same face.
const DuplicateOverlapRatio = 0.5

// Deduplicate drops every detection that overlaps an earlier kept detection by
// more than DuplicateOverlapRatio of the smaller box. Earlier entries win.
func Deduplicate(faces []entities.FaceDetection) []entities.FaceDetection {
	if len(faces) <= 1 {
		return faces
	}

	unique := make([]entities.FaceDetection, 0, len(faces))
	for _, face := range faces {
		duplicate := false
		for _, kept := range unique {
			if isDuplicate(face.Location, kept.Location) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			unique = append(unique, face)
		}
	}
	return unique
}

func isDuplicate(a, b entities.FaceLocation) bool {
	smaller := a.Area()
	if area := b.Area(); area < smaller {
		smaller = area
	}
	return float64(overlapArea(a, b)) > DuplicateOverlapRatio*float64(smaller)
}

func overlapArea(a, b entities.FaceLocation) int {
	width := min(a.Right, b.Right) - max(a.Left, b.Left)
	height := min(a.Bottom, b.Bottom) - max(a.Top, b.Top)
	if width <= 0 || height <= 0 {
		return 0
	}
	return width * height
}
