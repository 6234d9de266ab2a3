// Package composeresponse strips presentation markup from the final message,
// synthesizes best-effort speech, and estimates its spoken duration. Audio is
// never a hard requirement; synthesis failure leaves the text intact.
package composeresponse

import (
	"context"
	"encoding/base64"

	"eum-chatbot/internal/clients/polly"
	"eum-chatbot/internal/common/metrics"
)

const StageName = "compose-response"

// Synthesizer is the text-to-speech collaborator.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, opts polly.Options) ([]byte, error)
	IsConfigured() bool
}

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

// Fragment carries the audio portion of a composed response.
type Fragment struct {
	AudioData     string
	AudioDuration int64
}

type Handler struct {
	tts                Synthesizer
	syllablesPerSecond int
	logger             Logger
}

func NewHandler(tts Synthesizer, syllablesPerSecond int, log Logger) *Handler {
	if syllablesPerSecond <= 0 {
		syllablesPerSecond = 3
	}
	return &Handler{
		tts:                tts,
		syllablesPerSecond: syllablesPerSecond,
		logger: log.With(map[string]interface{}{
			"stage": StageName,
		}),
	}
}

// Compose synthesizes speech for the message when requested. The returned
// fragment is empty when audio was not requested or synthesis failed.
func (h *Handler) Compose(ctx context.Context, message string, wantsAudio bool, opts polly.Options) *Fragment {
	if !wantsAudio || message == "" {
		return &Fragment{}
	}

	spoken := StripMarkup(message)

	if h.tts == nil || !h.tts.IsConfigured() {
		return &Fragment{}
	}

	audio, err := h.tts.Synthesize(ctx, spoken, opts)
	if err != nil {
		metrics.CollaboratorFailures.WithLabelValues("tts").Inc()
		h.logger.Warn("speech synthesis failed, returning text only", map[string]interface{}{
			"error": err.Error(),
		})
		return &Fragment{}
	}

	return &Fragment{
		AudioData:     base64.StdEncoding.EncodeToString(audio),
		AudioDuration: h.EstimateDuration(spoken),
	}
}

// EstimateDuration approximates the spoken length in seconds from the
// character count. Display-only; never measured from the decoded audio.
func (h *Handler) EstimateDuration(text string) int64 {
	seconds := int64(len([]rune(text))) / int64(h.syllablesPerSecond)
	if seconds < 1 {
		seconds = 1
	}
	return seconds
}
