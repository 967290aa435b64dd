package telegram

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Sahithi-Kallem/invisiface/application/constants"
	"github.com/Sahithi-Kallem/invisiface/application/utils"
	"github.com/Sahithi-Kallem/invisiface/entities"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/biometric/types"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	msgStart = `Hi! I hide faces in photos from facial recognition systems.

Send me a photo and I'll send back a cloaked copy.
Send a photo with the caption /check to see how well it is already protected.

/help shows this message again.`

	msgSendPhoto       = "Please send a photo."
	msgUnknownCommand  = "Unknown command. Use /help for usage."
	msgProcessing      = "Processing your image..."
	msgProcessingError = "Could not process the image. Please try another photo."

	maxDownloadBytes = 20 << 20
)

type Bot struct {
	api     *tgbotapi.BotAPI
	service types.ProtectionServiceType
	client  *http.Client
}

func NewBot(token string, service types.ProtectionServiceType) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram login: %w", err)
	}

	logger.Info(fmt.Sprintf("Authorized on account %s", api.Self.UserName))

	return &Bot{
		api:     api,
		service: service,
		client:  &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Run handles updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(update.Message)
		}
	}
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	if msg.IsCommand() {
		b.handleCommand(msg)
		return
	}

	fileID, ok := imageFileID(msg)
	if !ok {
		b.sendMessage(msg.Chat.ID, msgSendPhoto)
		return
	}
	b.handlePhoto(msg, fileID)
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start", "help":
		b.sendMessage(msg.Chat.ID, msgStart)
	case "check":
		b.sendMessage(msg.Chat.ID, "Attach a photo with the caption /check.")
	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
}

func (b *Bot) handlePhoto(msg *tgbotapi.Message, fileID string) {
	b.sendMessage(msg.Chat.ID, msgProcessing)

	data, err := b.downloadFile(fileID)
	if err != nil {
		logger.Error("error downloading photo", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	img, _, err := utils.DecodeImage(bytes.NewReader(data))
	if err != nil {
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	if wantsCheck(msg.Caption) {
		b.sendMessage(msg.Chat.ID, FormatProtectionReport(b.service.CheckProtection(img)))
		return
	}

	result := b.service.CloakImage(img)
	png, err := utils.EncodePNG(result.Image)
	if err != nil {
		logger.Error("error encoding cloaked photo", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	document := tgbotapi.NewDocument(msg.Chat.ID, tgbotapi.FileBytes{Name: constants.CLOAKED_FILE_NAME, Bytes: png})
	document.Caption = FormatCloakSummary(result)
	if _, err := b.api.Send(document); err != nil {
		logger.Error("error sending cloaked photo", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	}
}

// imageFileID prefers the largest photo size, then an image sent as a file.
func imageFileID(msg *tgbotapi.Message) (string, bool) {
	if len(msg.Photo) > 0 {
		return msg.Photo[len(msg.Photo)-1].FileID, true
	}
	if msg.Document != nil && utils.IsImageContentType(msg.Document.MimeType) {
		return msg.Document.FileID, true
	}
	return "", false
}

func wantsCheck(caption string) bool {
	fields := strings.Fields(caption)
	return len(fields) > 0 && strings.EqualFold(fields[0], "/check")
}

func FormatCloakSummary(result types.CloakResult) string {
	if result.FallbackApplied {
		return constants.MessageGlobalNoiseApplied
	}
	return fmt.Sprintf("%s. Faces protected: %d.", constants.MessageImageCloaked, result.FacesDetected)
}

func FormatProtectionReport(report entities.ProtectionReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Protection level: %s\n", report.ProtectionLevel)
	fmt.Fprintf(&sb, "Faces detected: %d\n", report.FacesDetected)
	if len(report.ConfidenceScores) > 0 {
		scores := make([]string, 0, len(report.ConfidenceScores))
		for _, score := range report.ConfidenceScores {
			scores = append(scores, fmt.Sprintf("%.2f", score))
		}
		fmt.Fprintf(&sb, "Recognition confidence: %s\n", strings.Join(scores, ", "))
	}
	sb.WriteString("\n")
	sb.WriteString(report.Message)
	return sb.String()
}

func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	resp, err := b.client.Get(file.Link(b.api.Token))
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		logger.Error("error sending message", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	}
}
