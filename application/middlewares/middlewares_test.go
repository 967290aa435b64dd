package middlewares

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Sahithi-Kallem/invisiface/application/interfaces"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRequestContextMiddlewareGeneratesID(t *testing.T) {
	header := http.Header{}
	header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	ctx, next := RequestContextMiddleware(&interfaces.ApplicationContext[any]{Header: header})

	assert.True(t, next)
	assert.Len(t, ctx.RequestID, 26)
	assert.Equal(t, "Chrome", ctx.DeviceName)
	assert.Contains(t, ctx.UserAgent, "Mozilla")
}

func TestRequestContextMiddlewareKeepsClientID(t *testing.T) {
	header := http.Header{}
	header.Set("X-Request-Id", "abc-123")

	ctx, _ := RequestContextMiddleware(&interfaces.ApplicationContext[any]{Header: header})
	assert.Equal(t, "abc-123", ctx.RequestID)

	header.Set("X-Request-Id", strings.Repeat("x", 65))
	ctx, _ = RequestContextMiddleware(&interfaces.ApplicationContext[any]{Header: header})
	assert.Len(t, ctx.RequestID, 26)
}

func TestGetClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"forwarded chain", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "203.0.113.7"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.4"}, "198.51.100.4"},
		{"unknown forwarded", map[string]string{"X-Forwarded-For": "unknown", "CF-Connecting-IP": "192.0.2.55"}, "192.0.2.55"},
		{"remote addr", nil, "192.0.2.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				c.Request.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, getClientIP(c))
		})
	}
}
