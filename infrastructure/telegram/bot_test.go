package telegram

import (
	"testing"

	"github.com/Sahithi-Kallem/invisiface/entities"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/biometric/types"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
)

func TestFormatProtectionReport(t *testing.T) {
	text := FormatProtectionReport(entities.ProtectionReport{
		IsProtected:      true,
		FacesDetected:    2,
		ConfidenceScores: []float64{0.25, 0.4},
		ProtectionLevel:  entities.ProtectionMedium,
		Message:          "fine",
	})

	assert.Contains(t, text, "Protection level: medium")
	assert.Contains(t, text, "Faces detected: 2")
	assert.Contains(t, text, "Recognition confidence: 0.25, 0.40")
	assert.Contains(t, text, "fine")
}

func TestFormatProtectionReportWithoutFaces(t *testing.T) {
	text := FormatProtectionReport(entities.ProtectionReport{ProtectionLevel: entities.ProtectionUnknown, ConfidenceScores: []float64{}})

	assert.NotContains(t, text, "Recognition confidence")
	assert.Contains(t, text, "Faces detected: 0")
}

func TestFormatCloakSummary(t *testing.T) {
	assert.Contains(t, FormatCloakSummary(types.CloakResult{FacesDetected: 3}), "Faces protected: 3")
	assert.Contains(t, FormatCloakSummary(types.CloakResult{FallbackApplied: true}), "No faces detected")
}

func TestImageFileID(t *testing.T) {
	photo := &tgbotapi.Message{Photo: []tgbotapi.PhotoSize{{FileID: "small"}, {FileID: "large"}}}
	id, ok := imageFileID(photo)
	assert.True(t, ok)
	assert.Equal(t, "large", id)

	document := &tgbotapi.Message{Document: &tgbotapi.Document{FileID: "doc", MimeType: "image/png"}}
	id, ok = imageFileID(document)
	assert.True(t, ok)
	assert.Equal(t, "doc", id)

	_, ok = imageFileID(&tgbotapi.Message{Document: &tgbotapi.Document{FileID: "pdf", MimeType: "application/pdf"}})
	assert.False(t, ok)
	_, ok = imageFileID(&tgbotapi.Message{Text: "hello"})
	assert.False(t, ok)
}

func TestWantsCheck(t *testing.T) {
	assert.True(t, wantsCheck("/check"))
	assert.True(t, wantsCheck("  /CHECK please"))
	assert.False(t, wantsCheck("check"))
	assert.False(t, wantsCheck(""))
}
