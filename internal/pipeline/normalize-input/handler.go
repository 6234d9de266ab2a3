// Package normalizeinput resolves a single canonical text utterance from a
// chat request carrying either raw text or base64 audio.
package normalizeinput

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"eum-chatbot/internal/models"
)

const StageName = "normalize-input"

// SttUnavailableText is returned as the utterance when speech recognition
// fails; the pipeline continues with it instead of aborting.
const SttUnavailableText = "음성 인식 서비스가 현재 사용할 수 없습니다. 텍스트로 입력해주세요."

var (
	ErrMissingInput = errors.New("MISSING_INPUT")
	ErrInvalidAudio = errors.New("INVALID_AUDIO")
)

// SpeechToText is the transcription collaborator.
type SpeechToText interface {
	Recognize(ctx context.Context, audioBase64 string) (string, error)
	Configured() bool
}

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

type Handler struct {
	stt    SpeechToText
	logger Logger
}

func NewHandler(stt SpeechToText, log Logger) *Handler {
	return &Handler{
		stt: stt,
		logger: log.With(map[string]interface{}{
			"stage": StageName,
		}),
	}
}

// Normalize produces the canonical utterance for the request. A missing
// session identifier is replaced with a fresh one before anything else runs.
func (h *Handler) Normalize(ctx context.Context, req *models.ChatRequest) (*models.NormalizedInput, error) {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	text := strings.TrimSpace(req.Message)

	if strings.TrimSpace(req.AudioData) != "" {
		transcript, err := h.transcribe(ctx, req.AudioData)
		if err != nil {
			if errors.Is(err, ErrInvalidAudio) {
				return nil, err
			}
			h.logger.Warn("speech recognition failed, degrading to guidance text", map[string]interface{}{
				"sessionId": sessionID,
				"error":     err.Error(),
			})
			transcript = SttUnavailableText
		}
		text = transcript
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrMissingInput
	}

	return &models.NormalizedInput{
		Text:      text,
		SessionID: sessionID,
	}, nil
}

// Transcribe serves the standalone speech-to-text operation. Unlike
// Normalize, a recognition failure here is surfaced to the caller.
func (h *Handler) Transcribe(ctx context.Context, audioBase64, sessionID string) (*models.SttResponse, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	if strings.TrimSpace(audioBase64) == "" {
		return nil, ErrInvalidAudio
	}
	if !validBase64(audioBase64) {
		return nil, ErrInvalidAudio
	}

	text, err := h.stt.Recognize(ctx, audioBase64)
	if err != nil {
		return nil, fmt.Errorf("recognize audio: %w", err)
	}

	return &models.SttResponse{
		Success:   true,
		Text:      text,
		SessionID: sessionID,
	}, nil
}

func (h *Handler) transcribe(ctx context.Context, audioBase64 string) (string, error) {
	if !validBase64(audioBase64) {
		return "", ErrInvalidAudio
	}

	text, err := h.stt.Recognize(ctx, audioBase64)
	if err != nil {
		return "", fmt.Errorf("recognize audio: %w", err)
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty transcript")
	}

	return text, nil
}

func validBase64(s string) bool {
	_, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	return err == nil
}
