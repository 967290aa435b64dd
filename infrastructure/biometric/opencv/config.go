package opencv

// DNNConfig points at the ONNX/Caffe models used by DNNRecognizer.
type DNNConfig struct {
	YuNetModelPath string
	SSDModelPath   string
	SSDConfigPath  string
	SFaceModelPath string
	ScoreThreshold float32
}
