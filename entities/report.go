package entities

type ProtectionLevel string

const (
	ProtectionHigh    ProtectionLevel = "high"
	ProtectionMedium  ProtectionLevel = "medium"
	ProtectionLow     ProtectionLevel = "low"
	ProtectionUnknown ProtectionLevel = "unknown"
	ProtectionError   ProtectionLevel = "error"
)

type ProtectionReport struct {
	IsProtected      bool            `json:"is_protected"`
	FacesDetected    int             `json:"faces_detected"`
	ConfidenceScores []float64       `json:"confidence_scores"`
	ProtectionLevel  ProtectionLevel `json:"protection_level"`
	Message          string          `json:"message"`
}

// ComparisonReport pairs faces by detection order. FaceSimilarities is only
// populated when both images yield the same number of faces, and the pairing
// is positional: nothing guarantees the i-th face of one image is the same
// person as the i-th face of the other.
type ComparisonReport struct {
	OriginalFaces       int       `json:"original_faces"`
	CloakedFaces        int       `json:"cloaked_faces"`
	FaceSimilarities    []float64 `json:"face_similarities"`
	AverageSimilarity   float64   `json:"average_similarity"`
	ProtectionEffective bool      `json:"protection_effective"`
}

func EmptyComparisonReport() ComparisonReport {
	return ComparisonReport{FaceSimilarities: []float64{}}
}
