package apperrors

import (
	"net/http"

	"github.com/Sahithi-Kallem/invisiface/infrastructure/logger"
	server_response "github.com/Sahithi-Kallem/invisiface/infrastructure/serverResponse"
)

const fatalMessage = "Our service is temporarily unavailable. Please try again later."

func NotFoundError(ctx interface{}, message string, requestID *string) {
	server_response.Responder.Respond(ctx, http.StatusNotFound, message, nil, nil, nil, requestID)
}

func ValidationFailedError(ctx interface{}, errMessages *[]error, requestID string) {
	server_response.Responder.Respond(ctx, http.StatusUnprocessableEntity, "Payload validation failed", nil, *errMessages, nil, &requestID)
}

func ErrorProcessingPayload(ctx interface{}, requestID *string) {
	server_response.Responder.Respond(ctx, http.StatusBadRequest, "Abnormal payload passed", nil, nil, nil, requestID)
}

func PayloadTooLarge(ctx interface{}, limitMB int, requestID string) {
	server_response.Responder.Respond(ctx, http.StatusRequestEntityTooLarge, "Uploaded image is too large", map[string]any{
		"max_upload_mb": limitMB,
	}, nil, nil, &requestID)
}

func FatalServerError(ctx interface{}, err error, requestID string) {
	logger.Error("fatal server error", logger.LoggerOptions{
		Key:  "error",
		Data: err,
	}, logger.LoggerOptions{
		Key:  "requestID",
		Data: requestID,
	})
	server_response.Responder.Respond(ctx, http.StatusInternalServerError, fatalMessage, nil, nil, nil, &requestID)
}

func CustomError(ctx interface{}, msg string, responseCode *uint, requestID string) {
	server_response.Responder.Respond(ctx, http.StatusBadRequest, msg, nil, nil, responseCode, &requestID)
}

func ClientError(ctx interface{}, msg string, errs []error, responseCode *uint, requestID string) {
	server_response.Responder.Respond(ctx, http.StatusBadRequest, msg, nil, errs, responseCode, &requestID)
}
