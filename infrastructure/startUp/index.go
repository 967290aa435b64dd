package startup

import (
	"github.com/Sahithi-Kallem/invisiface/infrastructure/biometric"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/logger"
)

// Used to start services such as loggers and detector backends.
func StartServices() {
	logger.InitializeLogger()
	biometric.InitialiseBiometricService()
}

// Used to clean up after services that have been shutdown.
func CleanUpServices() {
	if biometric.BiometricService != nil {
		if err := biometric.BiometricService.Close(); err != nil {
			logger.Error("error releasing detector backends", logger.LoggerOptions{
				Key:  "error",
				Data: err,
			})
		}
	}
	logger.Sync()
}
