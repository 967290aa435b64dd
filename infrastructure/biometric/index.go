package biometric

import (
	"fmt"
	"strings"

	"github.com/Sahithi-Kallem/invisiface/infrastructure/biometric/cascade"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/biometric/dlib"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/biometric/opencv"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/biometric/types"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/env"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/logger"
)

var BiometricService types.ProtectionServiceType

type Config struct {
	// PrimaryBackend is dlib, dnn or none.
	PrimaryBackend string
	DlibModelsDir  string
	DNN            opencv.DNNConfig

	// CascadeBackend is pigo, haar or none.
	CascadeBackend string
	// PigoCascadePath overrides the embedded facefinder cascade when set.
	PigoCascadePath string
	HaarCascadePath string

	PerturbationStrength float64
}

func ConfigFromEnv() Config {
	return Config{
		PrimaryBackend: strings.ToLower(env.GetString("PRIMARY_BACKEND", "dlib")),
		DlibModelsDir:  env.GetString("DLIB_MODELS_DIR", "models/dlib"),
		DNN: opencv.DNNConfig{
			YuNetModelPath: env.GetString("YUNET_MODEL_PATH", "models/face_detection_yunet_2023mar.onnx"),
			SSDModelPath:   env.GetString("SSD_MODEL_PATH", "models/res10_300x300_ssd_iter_140000.caffemodel"),
			SSDConfigPath:  env.GetString("SSD_CONFIG_PATH", "models/deploy.prototxt"),
			SFaceModelPath: env.GetString("SFACE_MODEL_PATH", "models/face_recognition_sface_2021dec.onnx"),
			ScoreThreshold: float32(env.GetFloat("DNN_SCORE_THRESHOLD", 0.7)),
		},
		CascadeBackend:       strings.ToLower(env.GetString("CASCADE_BACKEND", "pigo")),
		PigoCascadePath:      env.GetString("PIGO_CASCADE_PATH", ""),
		HaarCascadePath:      env.GetString("HAAR_CASCADE_PATH", "models/haarcascade_frontalface_default.xml"),
		PerturbationStrength: env.GetFloat("PERTURBATION_STRENGTH", DefaultPerturbationStrength),
	}
}

// NewService loads the configured backends. A backend that cannot be loaded is
// logged and left out of the strategy list; the service itself always builds.
func NewService(cfg Config) *Service {
	var (
		strategies []types.DetectionStrategy
		closers    []func() error
	)

	primary, err := loadRecognizer(cfg)
	if err != nil {
		logger.Warning("primary face recognizer unavailable", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		primary = nil
	} else if primary != nil {
		strategies = append(strategies, NewPrimaryStrategy(primary))
		closers = append(closers, primary.Close)
	}

	fallback, err := loadCascade(cfg)
	if err != nil {
		logger.Warning("cascade face detector unavailable", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	} else if fallback != nil {
		strategies = append(strategies, &CascadeStrategy{Detector: fallback})
		closers = append(closers, fallback.Close)
	}

	if primary != nil {
		strategies = append(strategies, &EqualizedStrategy{Inner: NewPrimaryStrategy(primary)})
	}

	if len(strategies) == 0 {
		logger.Error("no face detection backend loaded, every image will get global noise", logger.LoggerOptions{
			Key:  "config",
			Data: cfg,
		})
	}

	service := NewServiceWithStrategies(cfg.PerturbationStrength, strategies...)
	service.closers = closers
	logger.Info("biometric service initialised", logger.LoggerOptions{
		Key:  "strategies",
		Data: service.Strategies(),
	})
	return service
}

func loadRecognizer(cfg Config) (types.Recognizer, error) {
	switch cfg.PrimaryBackend {
	case "dlib":
		recognizer, err := dlib.NewRecognizer(cfg.DlibModelsDir)
		if err != nil {
			return nil, err
		}
		return recognizer, nil
	case "dnn":
		recognizer, err := opencv.NewDNNRecognizer(cfg.DNN)
		if err != nil {
			return nil, err
		}
		return recognizer, nil
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown primary backend %q", cfg.PrimaryBackend)
	}
}

func loadCascade(cfg Config) (types.CascadeDetector, error) {
	switch cfg.CascadeBackend {
	case "pigo":
		if cfg.PigoCascadePath == "" {
			detector, err := cascade.LoadEmbeddedPigoDetector()
			if err != nil {
				return nil, err
			}
			return detector, nil
		}
		detector, err := cascade.LoadPigoDetector(cfg.PigoCascadePath)
		if err != nil {
			return nil, err
		}
		return detector, nil
	case "haar":
		detector, err := opencv.NewHaarDetector(cfg.HaarCascadePath)
		if err != nil {
			return nil, err
		}
		return detector, nil
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown cascade backend %q", cfg.CascadeBackend)
	}
}

func InitialiseBiometricService() {
	BiometricService = NewService(ConfigFromEnv())
}
