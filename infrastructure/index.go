package infrastructure

import (
	"context"
	"sync"

	"github.com/Sahithi-Kallem/invisiface/infrastructure/biometric"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/env"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/logger"
	startup "github.com/Sahithi-Kallem/invisiface/infrastructure/startUp"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/telegram"
)

type serverInterface interface {
	Start(ctx context.Context) error
}

// StartServer runs the HTTP server and, when TELEGRAM_TOKEN is set, the
// Telegram bot. It returns once both have stopped.
func StartServer(ctx context.Context) error {
	startup.StartServices()
	defer startup.CleanUpServices()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var server serverInterface = &ginServer{}
	var wg sync.WaitGroup
	var serverErr error

	if token := env.GetString("TELEGRAM_TOKEN", ""); token != "" {
		bot, err := telegram.NewBot(token, biometric.BiometricService)
		if err != nil {
			logger.Error("telegram bot disabled", logger.LoggerOptions{
				Key:  "error",
				Data: err,
			})
		} else {
			wg.Add(1)
			go func() {
				defer wg.Done()
				bot.Run(ctx)
			}()
		}
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		// a server that fails to bind takes the bot down with it
		defer cancel()
		serverErr = server.Start(ctx)
	}()

	wg.Wait()
	return serverErr
}
