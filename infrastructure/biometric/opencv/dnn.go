//go:build gocv
// +build gocv

package opencv

import (
	"fmt"
	"image"
	"math"
	"os"
	"sync"

	"github.com/Sahithi-Kallem/invisiface/infrastructure/biometric/types"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/logger"
	"gocv.io/x/gocv"
)

var (
	ssdInputSize   = image.Pt(300, 300)
	sfaceInputSize = image.Pt(112, 112)
)

const (
	embeddingSize   = 128
	ssdNMSThreshold = 0.4
)

// DNNRecognizer detects with YuNet (fast) or the res10 SSD (accurate) and
// embeds each face with SFace.
type DNNRecognizer struct {
	yunet          gocv.FaceDetectorYN
	ssd            gocv.Net
	sface          gocv.Net
	scoreThreshold float32
	mutex          sync.Mutex
}

func NewDNNRecognizer(config DNNConfig) (*DNNRecognizer, error) {
	for _, path := range []string{config.YuNetModelPath, config.SSDModelPath, config.SSDConfigPath, config.SFaceModelPath} {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("model file not found: %s", path)
		}
	}

	ssd := gocv.ReadNet(config.SSDModelPath, config.SSDConfigPath)
	if ssd.Empty() {
		return nil, fmt.Errorf("failed to load SSD model from %s", config.SSDModelPath)
	}
	sface := gocv.ReadNet(config.SFaceModelPath, "")
	if sface.Empty() {
		ssd.Close()
		return nil, fmt.Errorf("failed to load SFace model from %s", config.SFaceModelPath)
	}

	threshold := config.ScoreThreshold
	if threshold <= 0 {
		threshold = 0.7
	}
	yunet := gocv.NewFaceDetectorYN(config.YuNetModelPath, "", image.Pt(320, 320))
	yunet.SetScoreThreshold(threshold)
	yunet.SetNMSThreshold(0.3)
	yunet.SetTopK(5000)

	logger.Info("OpenCV DNN face recognizer initialized successfully", logger.LoggerOptions{
		Key: "model_info",
		Data: map[string]interface{}{
			"yunet":           config.YuNetModelPath,
			"ssd":             config.SSDModelPath,
			"sface":           config.SFaceModelPath,
			"score_threshold": threshold,
		},
	})

	return &DNNRecognizer{
		yunet:          yunet,
		ssd:            ssd,
		sface:          sface,
		scoreThreshold: threshold,
	}, nil
}

func (r *DNNRecognizer) Name() string {
	return "opencv_dnn"
}

func (r *DNNRecognizer) Recognize(img image.Image, model types.RecognizerModel) ([]types.RecognizedFace, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image to mat: %w", err)
	}
	defer mat.Close()

	r.mutex.Lock()
	defer r.mutex.Unlock()

	var (
		boxes  []image.Rectangle
		method string
	)
	switch model {
	case types.ModelFast:
		boxes, method = r.detectYuNet(mat), "opencv_yunet"
	case types.ModelAccurate:
		boxes, method = r.detectSSD(mat), "opencv_ssd"
	default:
		return nil, fmt.Errorf("unsupported dnn model %q", model)
	}

	faces := make([]types.RecognizedFace, 0, len(boxes))
	for _, box := range boxes {
		encoding, err := r.embed(mat, box)
		if err != nil {
			return nil, err
		}
		faces = append(faces, types.RecognizedFace{Box: box, Encoding: encoding, Method: method})
	}
	return faces, nil
}

// detectYuNet reads rows of [x, y, w, h, 10 landmark values, score].
func (r *DNNRecognizer) detectYuNet(img gocv.Mat) []image.Rectangle {
	r.yunet.SetInputSize(image.Pt(img.Cols(), img.Rows()))
	facesMat := gocv.NewMat()
	defer facesMat.Close()
	r.yunet.Detect(img, &facesMat)

	bounds := image.Rect(0, 0, img.Cols(), img.Rows())
	boxes := []image.Rectangle{}
	for i := 0; i < facesMat.Rows(); i++ {
		x := int(facesMat.GetFloatAt(i, 0))
		y := int(facesMat.GetFloatAt(i, 1))
		w := int(facesMat.GetFloatAt(i, 2))
		h := int(facesMat.GetFloatAt(i, 3))
		if box := image.Rect(x, y, x+w, y+h).Intersect(bounds); !box.Empty() {
			boxes = append(boxes, box)
		}
	}
	return boxes
}

// detectSSD reads rows of [image_id, label, confidence, x1, y1, x2, y2] with
// relative coordinates.
func (r *DNNRecognizer) detectSSD(img gocv.Mat) []image.Rectangle {
	blob := gocv.BlobFromImage(img, 1.0, ssdInputSize, gocv.NewScalar(104, 117, 123, 0), false, false)
	defer blob.Close()

	r.ssd.SetInput(blob, "")
	detections := r.ssd.Forward("")
	defer detections.Close()

	// The output blob is [1, 1, N, 7]; view it as N rows of 7.
	rows := detections.Reshape(1, detections.Total()/7)
	defer rows.Close()

	bounds := image.Rect(0, 0, img.Cols(), img.Rows())
	var (
		boxes       []image.Rectangle
		confidences []float32
	)
	for i := 0; i < rows.Rows(); i++ {
		confidence := rows.GetFloatAt(i, 2)
		if confidence < r.scoreThreshold {
			continue
		}
		x1 := int(rows.GetFloatAt(i, 3) * float32(img.Cols()))
		y1 := int(rows.GetFloatAt(i, 4) * float32(img.Rows()))
		x2 := int(rows.GetFloatAt(i, 5) * float32(img.Cols()))
		y2 := int(rows.GetFloatAt(i, 6) * float32(img.Rows()))
		if box := image.Rect(x1, y1, x2, y2).Intersect(bounds); !box.Empty() {
			boxes = append(boxes, box)
			confidences = append(confidences, confidence)
		}
	}
	if len(boxes) == 0 {
		return boxes
	}

	kept := []image.Rectangle{}
	for _, idx := range gocv.NMSBoxes(boxes, confidences, r.scoreThreshold, ssdNMSThreshold) {
		kept = append(kept, boxes[idx])
	}
	return kept
}

// embed returns the L2-normalized SFace embedding of one face region.
func (r *DNNRecognizer) embed(img gocv.Mat, box image.Rectangle) ([]float64, error) {
	region := img.Region(box)
	defer region.Close()
	if region.Empty() {
		return nil, fmt.Errorf("empty face region %v", box)
	}

	blob := gocv.BlobFromImage(region, 1.0/127.5, sfaceInputSize, gocv.NewScalar(127.5, 127.5, 127.5, 0), true, false)
	defer blob.Close()

	r.sface.SetInput(blob, "")
	output := r.sface.Forward("")
	defer output.Close()

	embedding := make([]float64, embeddingSize)
	var norm float64
	for i := range embedding {
		embedding[i] = float64(output.GetFloatAt(0, i))
		norm += embedding[i] * embedding[i]
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range embedding {
			embedding[i] /= norm
		}
	}
	return embedding, nil
}

func (r *DNNRecognizer) Close() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.yunet.Close()
	if err := r.ssd.Close(); err != nil {
		return fmt.Errorf("failed to close SSD network: %w", err)
	}
	if err := r.sface.Close(); err != nil {
		return fmt.Errorf("failed to close SFace network: %w", err)
	}
	return nil
}
