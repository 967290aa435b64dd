package dto

import (
	"mime/multipart"
	"net/textproto"
	"testing"
)

func fileHeader(contentType string, size int64) *multipart.FileHeader {
	header := textproto.MIMEHeader{}
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	return &multipart.FileHeader{Filename: "upload", Header: header, Size: size}
}

func TestValidateImageUpload(t *testing.T) {
	tests := []struct {
		name    string
		upload  *ImageUploadDTO
		wantErr bool
		errMsg  string
	}{
		{
			name:    "nil upload",
			upload:  nil,
			wantErr: true,
			errMsg:  "no file uploaded",
		},
		{
			name:    "missing file",
			upload:  &ImageUploadDTO{},
			wantErr: true,
			errMsg:  "no file uploaded",
		},
		{
			name:    "empty file",
			upload:  ptr(NewImageUploadDTO(fileHeader("image/png", 0))),
			wantErr: true,
			errMsg:  "uploaded file is empty",
		},
		{
			name:    "not an image",
			upload:  ptr(NewImageUploadDTO(fileHeader("application/pdf", 120))),
			wantErr: true,
			errMsg:  "file must be an image",
		},
		{
			name:    "missing content type",
			upload:  ptr(NewImageUploadDTO(fileHeader("", 120))),
			wantErr: true,
			errMsg:  "file must be an image",
		},
		{
			name:    "jpeg upload",
			upload:  ptr(NewImageUploadDTO(fileHeader("image/jpeg", 2048))),
			wantErr: false,
		},
		{
			name:    "content type with parameters",
			upload:  ptr(NewImageUploadDTO(fileHeader("IMAGE/WEBP; q=0.9", 2048))),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImageUpload(tt.upload)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ValidateImageUpload() expected error but got none")
					return
				}
				if err.Error() != tt.errMsg {
					t.Errorf("ValidateImageUpload() error = %v, want %v", err.Error(), tt.errMsg)
				}
			} else if err != nil {
				t.Errorf("ValidateImageUpload() unexpected error = %v", err)
			}
		})
	}
}

func TestNewImageComparisonDTO(t *testing.T) {
	tests := []struct {
		name     string
		original *multipart.FileHeader
		cloaked  *multipart.FileHeader
		want     [2]string
	}{
		{"both present", fileHeader("image/png", 10), fileHeader("image/jpeg", 10), [2]string{"image/png", "image/jpeg"}},
		{"cloaked missing", fileHeader("image/png", 10), nil, [2]string{"image/png", ""}},
		{"both missing", nil, nil, [2]string{"", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewImageComparisonDTO(tt.original, tt.cloaked)
			if got.OriginalContentType != tt.want[0] || got.CloakedContentType != tt.want[1] {
				t.Errorf("NewImageComparisonDTO() content types = %q, %q, want %q, %q",
					got.OriginalContentType, got.CloakedContentType, tt.want[0], tt.want[1])
			}
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}
