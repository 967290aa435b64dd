package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/Sahithi-Kallem/invisiface/application/utils"
	"github.com/spf13/cobra"
)

var selftestBaseURL string

var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Exercise a running server with a synthetic face image",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSelfTest(cmd.Context(), &http.Client{Timeout: 60 * time.Second}, selftestBaseURL, cmd.OutOrStdout())
	},
}

func init() {
	selftestCmd.Flags().StringVar(&selftestBaseURL, "base-url", "http://localhost:8000", "server to test")
	rootCmd.AddCommand(selftestCmd)
}

type selftestEnvelope struct {
	Message string          `json:"message"`
	Body    json.RawMessage `json:"body"`
}

// runSelfTest prints one PASS/FAIL line per endpoint and fails if any did.
func runSelfTest(ctx context.Context, client *http.Client, baseURL string, out io.Writer) error {
	baseURL = strings.TrimRight(baseURL, "/")
	png, err := utils.EncodePNG(syntheticFace(400, 400))
	if err != nil {
		return err
	}

	checks := []struct {
		name string
		run  func() error
	}{
		{"health", func() error {
			var body struct {
				Status string `json:"status"`
			}
			if err := getJSON(ctx, client, baseURL+"/health", &body); err != nil {
				return err
			}
			if body.Status != "healthy" {
				return fmt.Errorf("status is %q", body.Status)
			}
			return nil
		}},
		{"cloak-image", func() error {
			var body struct {
				Success      bool   `json:"success"`
				CloakedImage string `json:"cloaked_image"`
			}
			if err := postImage(ctx, client, baseURL+"/api/cloak-image", png, &body); err != nil {
				return err
			}
			if !body.Success {
				return errors.New("success is false")
			}
			if _, err := utils.DecodeDataURL(body.CloakedImage); err != nil {
				return fmt.Errorf("cloaked image does not decode: %w", err)
			}
			return nil
		}},
		{"check-protection", func() error {
			var body struct {
				ProtectionLevel string `json:"protection_level"`
			}
			if err := postImage(ctx, client, baseURL+"/api/check-protection", png, &body); err != nil {
				return err
			}
			if body.ProtectionLevel == "" || body.ProtectionLevel == "error" {
				return fmt.Errorf("protection level is %q", body.ProtectionLevel)
			}
			return nil
		}},
	}

	failed := 0
	for _, check := range checks {
		if err := check.run(); err != nil {
			failed++
			fmt.Fprintf(out, "FAIL  %s: %v\n", check.name, err)
			continue
		}
		fmt.Fprintf(out, "PASS  %s\n", check.name)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, len(checks))
	}
	return nil
}

func getJSON(ctx context.Context, client *http.Client, url string, body any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	return doJSON(client, req, body)
}

func postImage(ctx context.Context, client *http.Client, url string, png []byte, body any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="selftest.png"`)
	header.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err := part.Write(png); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return doJSON(client, req, body)
}

func doJSON(client *http.Client, req *http.Request, body any) error {
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var envelope selftestEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("unexpected response (%d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%d: %s", resp.StatusCode, envelope.Message)
	}
	return json.Unmarshal(envelope.Body, body)
}

// syntheticFace draws a skin-toned oval with darker eyes and mouth on a light
// background. It is crude but gives cascade detectors something face shaped.
func syntheticFace(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	background := color.NRGBA{R: 235, G: 235, B: 240, A: 255}
	skin := color.NRGBA{R: 224, G: 172, B: 105, A: 255}
	feature := color.NRGBA{R: 60, G: 40, B: 30, A: 255}

	cx, cy := float64(width)/2, float64(height)/2
	rx, ry := float64(width)*0.3, float64(height)*0.4
	inEllipse := func(x, y, ex, ey, erx, ery float64) bool {
		dx, dy := (x-ex)/erx, (y-ey)/ery
		return dx*dx+dy*dy <= 1
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			fx, fy := float64(x), float64(y)
			c := background
			if inEllipse(fx, fy, cx, cy, rx, ry) {
				c = skin
				switch {
				case inEllipse(fx, fy, cx-rx*0.4, cy-ry*0.25, rx*0.15, ry*0.08),
					inEllipse(fx, fy, cx+rx*0.4, cy-ry*0.25, rx*0.15, ry*0.08),
					inEllipse(fx, fy, cx, cy+ry*0.45, rx*0.35, ry*0.07):
					c = feature
				}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}
