package ratelimit

import (
	"encoding/json"
	"time"

	"github.com/Sahithi-Kallem/invisiface/infrastructure/env"
	"github.com/didip/tollbooth"
	"github.com/didip/tollbooth/limiter"
	"github.com/didip/tollbooth_gin"
	"github.com/gin-gonic/gin"
)

// TokenBucketPerIP allows RATE_LIMIT_PER_SECOND requests per second per client IP.
func TokenBucketPerIP() gin.HandlerFunc {
	return TokenBucketPerIPWithRate(env.GetFloat("RATE_LIMIT_PER_SECOND", 25))
}

func TokenBucketPerIPWithRate(perSecond float64) gin.HandlerFunc {
	message := map[string]any{
		"message": "You are going too fast! You have been ratelimited.",
	}
	jsonMessage, _ := json.Marshal(message)

	tlbthLimiter := tollbooth.NewLimiter(perSecond, &limiter.ExpirableOptions{
		DefaultExpirationTTL: time.Minute * 1,
	})
	tlbthLimiter.SetMessageContentType("application/json")
	tlbthLimiter.SetMessage(string(jsonMessage))

	return tollbooth_gin.LimitHandler(tlbthLimiter)
}
