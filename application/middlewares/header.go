package middlewares

import (
	"github.com/Sahithi-Kallem/invisiface/application/interfaces"
	"github.com/Sahithi-Kallem/invisiface/application/utils"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/useragent"
)

// RequestContextMiddleware assigns the request ID and records who is calling.
// Clients may supply their own X-Request-Id for tracing; otherwise a ULID is used.
func RequestContextMiddleware(ctx *interfaces.ApplicationContext[any]) (*interfaces.ApplicationContext[any], bool) {
	if requestID := ctx.GetHeader("X-Request-Id"); requestID != nil && len(*requestID) <= 64 {
		ctx.RequestID = *requestID
	} else {
		ctx.RequestID = utils.GenerateULIDString()
	}

	if agent := ctx.GetHeader("User-Agent"); agent != nil {
		agentDetails := useragent.ParseUserAgent(*agent)
		ctx.UserAgent = *agent
		ctx.DeviceName = agentDetails.Name
	}
	return ctx, true
}
