package validator

import (
	"github.com/Sahithi-Kallem/invisiface/application/utils"
	"github.com/go-playground/validator/v10"
)

// validateImageMime accepts any image/* media type, parameters included.
func validateImageMime(fl validator.FieldLevel) bool {
	return utils.IsImageContentType(fl.Field().String())
}

func validateImageName(fl validator.FieldLevel) bool {
	return utils.HasImageExtension(fl.Field().String())
}
