package server_response

import (
	"fmt"

	"github.com/Sahithi-Kallem/invisiface/infrastructure/logger"
	"github.com/gin-gonic/gin"
)

type ginResponder struct{}

// Respond writes the standard JSON envelope and aborts the handler chain.
func (gr ginResponder) Respond(ctx interface{}, code int, message string, payload interface{}, errs []error, response_code *uint, request_id *string) {
	ginCtx, ok := (ctx).(*gin.Context)
	if !ok {
		logger.Error("could not transform *interface{} to gin.Context in serverResponse package", logger.LoggerOptions{
			Key:  "payload",
			Data: ctx,
		})
		return
	}
	ginCtx.Abort()
	response := map[string]any{
		"message": message,
		"body":    payload,
	}
	if response_code != nil {
		response["response_code"] = *response_code
	}
	if request_id != nil && *request_id != "" {
		response["request_id"] = *request_id
	}
	if errs != nil {
		errMsgs := []string{}
		for _, err := range errs {
			errMsgs = append(errMsgs, err.Error())
		}
		response["errors"] = errMsgs
	}
	if code >= 400 {
		logger.Info("response", logger.LoggerOptions{
			Key:  "message",
			Data: message,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: errs,
		})
	}
	ginCtx.JSON(code, response)
}

// Attachment sends data as a downloadable file.
func (gr ginResponder) Attachment(ctx interface{}, code int, contentType string, fileName string, data []byte) {
	ginCtx, ok := (ctx).(*gin.Context)
	if !ok {
		logger.Error("could not transform *interface{} to gin.Context in serverResponse package", logger.LoggerOptions{
			Key:  "payload",
			Data: ctx,
		})
		return
	}
	ginCtx.Abort()
	ginCtx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
	ginCtx.Data(code, contentType, data)
}
