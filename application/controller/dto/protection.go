package dto

import (
	"errors"
	"mime/multipart"

	"github.com/Sahithi-Kallem/invisiface/application/utils"
	"github.com/Sahithi-Kallem/invisiface/entities"
)

// ImageUploadDTO is a single multipart image upload. ContentType is copied
// from the part header so it can be validated alongside the file.
type ImageUploadDTO struct {
	File        *multipart.FileHeader `form:"file" validate:"required"`
	ContentType string                `validate:"required,image_mime"`
}

func NewImageUploadDTO(file *multipart.FileHeader) ImageUploadDTO {
	upload := ImageUploadDTO{File: file}
	if file != nil {
		upload.ContentType = file.Header.Get("Content-Type")
	}
	return upload
}

type ImageComparisonDTO struct {
	Original            *multipart.FileHeader `form:"original" validate:"required"`
	OriginalContentType string                `validate:"required,image_mime"`
	Cloaked             *multipart.FileHeader `form:"cloaked" validate:"required"`
	CloakedContentType  string                `validate:"required,image_mime"`
}

func NewImageComparisonDTO(original, cloaked *multipart.FileHeader) ImageComparisonDTO {
	comparison := ImageComparisonDTO{Original: original, Cloaked: cloaked}
	if original != nil {
		comparison.OriginalContentType = original.Header.Get("Content-Type")
	}
	if cloaked != nil {
		comparison.CloakedContentType = cloaked.Header.Get("Content-Type")
	}
	return comparison
}

// ImageFileDTO is a local image named on the command line.
type ImageFileDTO struct {
	Path string `validate:"required,image_name"`
}

// ValidateImageUpload is the precheck the controllers run before the struct
// rules, mirroring the messages clients already rely on.
func ValidateImageUpload(upload *ImageUploadDTO) error {
	if upload == nil || upload.File == nil {
		return errors.New("no file uploaded")
	}
	if upload.File.Size == 0 {
		return errors.New("uploaded file is empty")
	}
	if !utils.IsImageContentType(upload.ContentType) {
		return errors.New("file must be an image")
	}
	return nil
}

type CloakImageResponse struct {
	Success         bool   `json:"success"`
	CloakedImage    string `json:"cloaked_image"`
	FacesDetected   int    `json:"faces_detected"`
	FallbackApplied bool   `json:"fallback_applied"`
}

type CheckProtectionResponse struct {
	Success bool `json:"success"`
	entities.ProtectionReport
}

type HealthResponse struct {
	Status   string   `json:"status"`
	Service  string   `json:"service"`
	Backends []string `json:"backends"`
}
