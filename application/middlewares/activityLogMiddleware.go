package middlewares

import (
	"net"
	"strings"
	"time"

	"github.com/Sahithi-Kallem/invisiface/application/interfaces"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/logger"
	"github.com/gin-gonic/gin"
)

type RequestActivity struct {
	RequestID  string
	IPAddress  string
	Method     string
	URL        string
	StatusCode int
	UserAgent  string
	DeviceName string
	BodyBytes  int64
	Duration   time.Duration
}

// ActivityLogMiddleware logs one line per request. Upload bodies are images, so
// only their size is recorded.
func ActivityLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		activity := RequestActivity{
			IPAddress:  getClientIP(c),
			Method:     c.Request.Method,
			URL:        c.Request.URL.Path,
			StatusCode: c.Writer.Status(),
			BodyBytes:  c.Request.ContentLength,
			Duration:   time.Since(startTime),
		}
		if value, exists := c.Get("AppContext"); exists {
			if appContext, ok := value.(*interfaces.ApplicationContext[any]); ok {
				activity.RequestID = appContext.RequestID
				activity.UserAgent = appContext.UserAgent
				activity.DeviceName = appContext.DeviceName
			}
		}
		logActivity(activity)
	}
}

func logActivity(activity RequestActivity) {
	options := []logger.LoggerOptions{
		{Key: "requestID", Data: activity.RequestID},
		{Key: "ip", Data: activity.IPAddress},
		{Key: "method", Data: activity.Method},
		{Key: "url", Data: activity.URL},
		{Key: "status", Data: activity.StatusCode},
		{Key: "bytes", Data: activity.BodyBytes},
		{Key: "durationMs", Data: activity.Duration.Milliseconds()},
		{Key: "device", Data: activity.DeviceName},
	}
	if activity.StatusCode >= 500 {
		logger.Error("request", options...)
		return
	}
	logger.Info("request", options...)
}

// getClientIP extracts the real client IP address from various headers
func getClientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		// X-Forwarded-For can contain multiple IPs, take the first one
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			ip := strings.TrimSpace(ips[0])
			if ip != "" && ip != "unknown" {
				return ip
			}
		}
	}

	if xri := c.GetHeader("X-Real-IP"); xri != "" && xri != "unknown" {
		return xri
	}

	// Cloudflare
	if cfip := c.GetHeader("CF-Connecting-IP"); cfip != "" && cfip != "unknown" {
		return cfip
	}

	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return ip
}
