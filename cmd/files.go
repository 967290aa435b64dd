package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Sahithi-Kallem/invisiface/application/controller/dto"
	"github.com/Sahithi-Kallem/invisiface/application/utils"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/validator"
)

func readImage(path string) (image.Image, error) {
	if errs := validator.ValidatorInstance.ValidateStruct(dto.ImageFileDTO{Path: path}); errs != nil {
		return nil, fmt.Errorf("%s: %w", path, errors.Join(*errs...))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := utils.DecodeImage(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

func writePNG(path string, img image.Image) error {
	data, err := utils.EncodePNG(img)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// cloakedPath derives photo_cloaked.png from photo.jpg, inside outDir when given.
func cloakedPath(input, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + "_cloaked.png"
	if outDir == "" {
		return filepath.Join(filepath.Dir(input), base)
	}
	return filepath.Join(outDir, base)
}

// listImages returns the image files directly inside dir, sorted by name.
func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	paths := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !utils.HasImageExtension(entry.Name()) {
			continue
		}
		if strings.HasSuffix(strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())), "_cloaked") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
