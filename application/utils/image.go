package utils

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const pngDataURLPrefix = "data:image/png;base64,"

// MaxImagePixels bounds decoded images; a 24MP photo fits.
const MaxImagePixels = 24_000_000

var (
	ErrNotAnImage    = errors.New("file must be an image")
	ErrImageTooLarge = errors.New("image dimensions are too large")
)

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".tif", ".tiff"}

// DecodeImage decodes any of the registered formats and reports the format name.
// The header is checked first so a small file declaring a huge canvas is
// rejected before any pixels are allocated.
func DecodeImage(r io.Reader) (image.Image, string, error) {
	var header bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(r, &header))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, "", fmt.Errorf("%w: empty canvas %dx%d", ErrNotAnImage, cfg.Width, cfg.Height)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxImagePixels {
		return nil, "", fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrImageTooLarge, cfg.Width, cfg.Height, MaxImagePixels)
	}

	img, format, err := image.Decode(io.MultiReader(&header, r))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}
	return img, format, nil
}

func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func EncodePNGDataURL(img image.Image) (string, error) {
	data, err := EncodePNG(img)
	if err != nil {
		return "", err
	}
	return pngDataURLPrefix + base64.StdEncoding.EncodeToString(data), nil
}

// DecodeDataURL accepts either a bare base64 payload or a data URL.
func DecodeDataURL(payload string) (image.Image, error) {
	if idx := strings.Index(payload, ";base64,"); strings.HasPrefix(payload, "data:") && idx > 0 {
		payload = payload[idx+len(";base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 payload: %w", err)
	}
	img, _, err := DecodeImage(bytes.NewReader(data))
	return img, err
}

func IsImageContentType(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}

func HasImageExtension(path string) bool {
	return HasItemString(&imageExtensions, strings.ToLower(filepath.Ext(path)))
}
