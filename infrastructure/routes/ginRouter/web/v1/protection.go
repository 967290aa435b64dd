package routev1

import (
	"errors"
	"net/http"

	apperrors "github.com/Sahithi-Kallem/invisiface/application/appErrors"
	"github.com/Sahithi-Kallem/invisiface/application/controller"
	"github.com/Sahithi-Kallem/invisiface/application/controller/dto"
	"github.com/Sahithi-Kallem/invisiface/application/interfaces"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/env"
	"github.com/gin-gonic/gin"
)

func ProtectionRouter(router *gin.RouterGroup) {
	router.POST("/cloak-image", func(ctx *gin.Context) {
		appContext, body, ok := bindUpload(ctx)
		if !ok {
			return
		}
		controller.CloakImage(&interfaces.ApplicationContext[dto.ImageUploadDTO]{
			Ctx:       ctx,
			Body:      body,
			RequestID: appContext.RequestID,
		})
	})

	router.POST("/check-protection", func(ctx *gin.Context) {
		appContext, body, ok := bindUpload(ctx)
		if !ok {
			return
		}
		controller.CheckProtection(&interfaces.ApplicationContext[dto.ImageUploadDTO]{
			Ctx:       ctx,
			Body:      body,
			RequestID: appContext.RequestID,
		})
	})

	router.POST("/download-cloaked", func(ctx *gin.Context) {
		appContext, body, ok := bindUpload(ctx)
		if !ok {
			return
		}
		controller.DownloadCloakedImage(&interfaces.ApplicationContext[dto.ImageUploadDTO]{
			Ctx:       ctx,
			Body:      body,
			RequestID: appContext.RequestID,
		})
	})

	router.POST("/compare", func(ctx *gin.Context) {
		appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
		if tooLarge(ctx, appContext.RequestID) {
			return
		}
		original, _ := ctx.FormFile("original")
		cloaked, _ := ctx.FormFile("cloaked")
		body := dto.NewImageComparisonDTO(original, cloaked)
		controller.CompareImages(&interfaces.ApplicationContext[dto.ImageComparisonDTO]{
			Ctx:       ctx,
			Body:      &body,
			RequestID: appContext.RequestID,
		})
	})
}

// bindUpload pulls the "file" part out of the multipart form. A missing part is
// left nil for the controller to report.
func bindUpload(ctx *gin.Context) (*interfaces.ApplicationContext[any], *dto.ImageUploadDTO, bool) {
	appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
	if tooLarge(ctx, appContext.RequestID) {
		return nil, nil, false
	}
	file, _ := ctx.FormFile("file")
	body := dto.NewImageUploadDTO(file)
	return appContext, &body, true
}

func tooLarge(ctx *gin.Context, requestID string) bool {
	limitMB := env.GetInt("MAX_UPLOAD_MB", 15)
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, int64(limitMB)<<20)
	if err := ctx.Request.ParseMultipartForm(int64(limitMB) << 20); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			apperrors.PayloadTooLarge(ctx, limitMB, requestID)
			return true
		}
	}
	return false
}
