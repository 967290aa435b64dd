package controller

import (
	"errors"
	"fmt"
	"image"
	"mime/multipart"
	"net/http"

	apperrors "github.com/Sahithi-Kallem/invisiface/application/appErrors"
	"github.com/Sahithi-Kallem/invisiface/application/constants"
	"github.com/Sahithi-Kallem/invisiface/application/controller/dto"
	"github.com/Sahithi-Kallem/invisiface/application/interfaces"
	"github.com/Sahithi-Kallem/invisiface/application/utils"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/biometric"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/logger"
	server_response "github.com/Sahithi-Kallem/invisiface/infrastructure/serverResponse"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/validator"
)

// CloakImage perturbs the faces in an uploaded image and returns it inline as a PNG data URL.
func CloakImage(ctx *interfaces.ApplicationContext[dto.ImageUploadDTO]) {
	img, ok := readUpload(ctx)
	if !ok {
		return
	}

	result := biometric.BiometricService.CloakImage(img)
	cloaked, err := utils.EncodePNGDataURL(result.Image)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err, ctx.RequestID)
		return
	}

	message := constants.MessageImageCloaked
	var responseCode *uint
	if result.FallbackApplied {
		message = constants.MessageGlobalNoiseApplied
		responseCode = &constants.NO_FACES_GLOBAL_NOISE_APPLIED
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, message, dto.CloakImageResponse{
		Success:         true,
		CloakedImage:    cloaked,
		FacesDetected:   result.FacesDetected,
		FallbackApplied: result.FallbackApplied,
	}, nil, responseCode, &ctx.RequestID)
}

// DownloadCloakedImage cloaks an uploaded image and streams it back as a PNG file.
func DownloadCloakedImage(ctx *interfaces.ApplicationContext[dto.ImageUploadDTO]) {
	img, ok := readUpload(ctx)
	if !ok {
		return
	}

	result := biometric.BiometricService.CloakImage(img)
	data, err := utils.EncodePNG(result.Image)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err, ctx.RequestID)
		return
	}
	server_response.Responder.Attachment(ctx.Ctx, http.StatusOK, "image/png", constants.CLOAKED_FILE_NAME, data)
}

func CheckProtection(ctx *interfaces.ApplicationContext[dto.ImageUploadDTO]) {
	img, ok := readUpload(ctx)
	if !ok {
		return
	}

	report := biometric.BiometricService.CheckProtection(img)
	var responseCode *uint
	if report.FacesDetected == 0 {
		responseCode = &constants.NO_FACES_DETECTED
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, report.Message, dto.CheckProtectionResponse{
		Success:          true,
		ProtectionReport: report,
	}, nil, responseCode, &ctx.RequestID)
}

func CompareImages(ctx *interfaces.ApplicationContext[dto.ImageComparisonDTO]) {
	if validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body); validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr, ctx.RequestID)
		return
	}

	original, err := decodeFileHeader(ctx.Body.Original)
	if err != nil {
		apperrors.ClientError(ctx.Ctx, "invalid original image", []error{err}, nil, ctx.RequestID)
		return
	}
	cloaked, err := decodeFileHeader(ctx.Body.Cloaked)
	if err != nil {
		apperrors.ClientError(ctx.Ctx, "invalid cloaked image", []error{err}, nil, ctx.RequestID)
		return
	}

	report := biometric.BiometricService.CompareImages(original, cloaked)
	message := constants.MessageComparisonComplete
	var responseCode *uint
	if report.OriginalFaces != report.CloakedFaces {
		message = constants.MessageFaceCountMismatch
		responseCode = &constants.FACE_COUNT_MISMATCH
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, message, report, nil, responseCode, &ctx.RequestID)
}

func Root(ctx *interfaces.ApplicationContext[any]) {
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, constants.SERVICE_DESCRIPTION, nil, nil, nil, &ctx.RequestID)
}

func Health(ctx *interfaces.ApplicationContext[any]) {
	backends := []string{}
	if biometric.BiometricService != nil {
		backends = biometric.BiometricService.Strategies()
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "healthy", dto.HealthResponse{
		Status:   "healthy",
		Service:  constants.SERVICE_NAME,
		Backends: backends,
	}, nil, nil, &ctx.RequestID)
}

func readUpload(ctx *interfaces.ApplicationContext[dto.ImageUploadDTO]) (image.Image, bool) {
	if err := dto.ValidateImageUpload(ctx.Body); err != nil {
		apperrors.ClientError(ctx.Ctx, err.Error(), nil, nil, ctx.RequestID)
		return nil, false
	}
	if validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body); validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr, ctx.RequestID)
		return nil, false
	}

	img, err := decodeFileHeader(ctx.Body.File)
	if err != nil {
		logger.Warning("rejected upload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "requestID",
			Data: ctx.RequestID,
		})
		message := "invalid image file"
		if errors.Is(err, utils.ErrImageTooLarge) {
			message = "image dimensions are too large"
		}
		apperrors.ClientError(ctx.Ctx, message, []error{err}, nil, ctx.RequestID)
		return nil, false
	}
	return img, true
}

func decodeFileHeader(header *multipart.FileHeader) (image.Image, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("could not read upload: %w", err)
	}
	defer file.Close()

	img, _, err := utils.DecodeImage(file)
	return img, err
}
