package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/Sahithi-Kallem/invisiface/application/appErrors"
	"github.com/Sahithi-Kallem/invisiface/application/controller"
	"github.com/Sahithi-Kallem/invisiface/application/interfaces"
	appmiddlewares "github.com/Sahithi-Kallem/invisiface/application/middlewares"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/env"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/logger"
	middlewares "github.com/Sahithi-Kallem/invisiface/infrastructure/middleware"
	ratelimit "github.com/Sahithi-Kallem/invisiface/infrastructure/ratelimit"
	webRoutev1 "github.com/Sahithi-Kallem/invisiface/infrastructure/routes/ginRouter/web/v1"
	server_response "github.com/Sahithi-Kallem/invisiface/infrastructure/serverResponse"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const defaultOrigins = "http://localhost:3000,http://127.0.0.1:3000"

type ginServer struct{}

// NewRouter builds the HTTP surface without starting it.
func NewRouter() *gin.Engine {
	server := gin.New()
	server.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     env.GetList("ALLOWED_ORIGINS", strings.Split(defaultOrigins, ",")),
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "User-Agent", "X-Request-Id"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	server.Use(cors.New(corsConfig))
	server.Use(ratelimit.TokenBucketPerIP())
	server.MaxMultipartMemory = int64(env.GetInt("MAX_UPLOAD_MB", 15)) << 20
	server.Use(middlewares.RequestContextMiddleware())
	server.Use(appmiddlewares.ActivityLogMiddleware())

	server.GET("/", func(ctx *gin.Context) {
		controller.Root(appContext(ctx))
	})

	server.GET("/health", func(ctx *gin.Context) {
		controller.Health(appContext(ctx))
	})

	server.GET("/ping", func(ctx *gin.Context) {
		server_response.Responder.Respond(ctx, http.StatusOK, "pong!", nil, nil, nil, nil)
	})

	api := server.Group("/api")
	{
		webRoutev1.ProtectionRouter(api)
	}

	server.NoRoute(func(ctx *gin.Context) {
		apperrors.NotFoundError(ctx, fmt.Sprintf("%s %s does not exist", ctx.Request.Method, ctx.Request.URL), &appContext(ctx).RequestID)
	})
	return server
}

func appContext(ctx *gin.Context) *interfaces.ApplicationContext[any] {
	return ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (s *ginServer) Start(ctx context.Context) error {
	gin_mode := env.GetString("GIN_MODE", gin.ReleaseMode)
	if gin_mode != gin.DebugMode && gin_mode != gin.ReleaseMode && gin_mode != gin.TestMode {
		return fmt.Errorf("invalid gin mode used - %s", gin_mode)
	}
	gin.SetMode(gin_mode)

	port := env.GetString("PORT", "8000")
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server starting on PORT %s", port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return err
	}
	return nil
}
