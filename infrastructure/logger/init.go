package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
)

// Logger is a no-op until InitializeLogger runs so packages can log from tests.
var Logger = zap.NewNop()

var initOnce sync.Once

func InitializeLogger() {
	initOnce.Do(func() {
		var (
			l   *zap.Logger
			err error
		)
		if os.Getenv("GIN_MODE") == "debug" {
			l, err = zap.NewDevelopment()
		} else {
			l, err = zap.NewProduction()
		}
		if err != nil {
			panic(err)
		}
		Logger = l
	})
}

// Sync flushes buffered log entries.
func Sync() {
	_ = Logger.Sync()
}
