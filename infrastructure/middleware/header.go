package middlewares

import (
	"github.com/Sahithi-Kallem/invisiface/application/interfaces"
	"github.com/Sahithi-Kallem/invisiface/application/middlewares"
	"github.com/gin-gonic/gin"
)

func RequestContextMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		appContext, next := middlewares.RequestContextMiddleware(&interfaces.ApplicationContext[any]{
			Ctx:    ctx,
			Keys:   ctx.Keys,
			Header: ctx.Request.Header,
		})
		if next {
			ctx.Set("AppContext", appContext)
			ctx.Header("X-Request-Id", appContext.RequestID)
			ctx.Next()
		}
	}
}
