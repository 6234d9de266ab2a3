// Package classifyintent labels an utterance with one of four closed intents
// by prompting the reasoner and normalizing its reply. The reply is untrusted
// input; anything outside the closed set is coerced to UNKNOWN.
package classifyintent

import (
	"context"
	"fmt"

	"eum-chatbot/internal/models"
)

const StageName = "classify-intent"

const (
	ConfidenceHigh = "high"
	ConfidenceLow  = "low"
)

const classifyPromptTemplate = `다음 사용자 입력의 의도를 분류해주세요.
아래 네 가지 중 정확히 하나만 답하세요. 다른 설명은 하지 마세요.

- PLACE_SEARCH: 식당, 카페 등 특정 장소를 찾거나 추천받으려는 경우
  예시: "강남역 중식집 추천해줘", "홍대 근처 카페 알려줘"
- INFORMATION_REQUEST: 특정 정보나 사실을 물어보는 경우
  예시: "김치찌개 만드는 법 알려줘", "영업시간이 언제야?"
- GENERAL_CHAT: 인사나 일상적인 대화인 경우
  예시: "안녕하세요", "오늘 기분이 좋아"
- UNKNOWN: 위 어느 것에도 해당하지 않는 경우

사용자 입력: %s

답변:`

// Reasoner is the language-reasoning collaborator.
type Reasoner interface {
	Complete(ctx context.Context, prompt string) (string, error)
	IsConfigured() bool
}

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

type Handler struct {
	reasoner Reasoner
	logger   Logger
}

func NewHandler(reasoner Reasoner, log Logger) *Handler {
	return &Handler{
		reasoner: reasoner,
		logger: log.With(map[string]interface{}{
			"stage": StageName,
		}),
	}
}

// Classify is total: it always returns one of the four intents plus a
// confidence marker, never an error. A reasoner failure or an off-vocabulary
// reply yields UNKNOWN with low confidence.
func (h *Handler) Classify(ctx context.Context, text string) (models.Intent, string) {
	if h.reasoner == nil || !h.reasoner.IsConfigured() {
		return models.IntentUnknown, ConfidenceLow
	}

	reply, err := h.reasoner.Complete(ctx, fmt.Sprintf(classifyPromptTemplate, text))
	if err != nil {
		h.logger.Warn("intent classification failed", map[string]interface{}{
			"error": err.Error(),
		})
		return models.IntentUnknown, ConfidenceLow
	}

	intent := models.ParseIntent(reply)
	if intent == models.IntentUnknown {
		h.logger.Info("classifier reply coerced to UNKNOWN", map[string]interface{}{
			"reply": reply,
		})
		return models.IntentUnknown, ConfidenceLow
	}

	return intent, ConfidenceHigh
}
