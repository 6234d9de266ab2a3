// Package routeintent dispatches a classified request to one of four
// terminal handlers. Exactly one handler runs per request; every handler
// degrades to a fixed Korean message on failure instead of propagating.
package routeintent

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"eum-chatbot/internal/common/metrics"
	"eum-chatbot/internal/models"
)

const StageName = "route-intent"

const (
	infoPromptTemplate = `다음 질문에 친절하고 정확하게 한국어로 답변해주세요.

질문: %s`

	chatPromptTemplate = `사용자와 자연스럽고 친근하게 한국어로 대화해주세요.

사용자: %s`

	unknownPromptTemplate = `사용자의 의도가 명확하지 않습니다. 무엇을 도와드릴 수 있는지 정중하게 안내해주세요.
장소 검색이나 정보 질문을 할 수 있다고 알려주세요.

사용자 입력: %s`
)

const (
	infoFallbackMessage    = "죄송합니다. 정보를 가져오는 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요."
	chatFallbackMessage    = "죄송합니다. 응답을 생성하는 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요."
	unknownGuidanceMessage = "요청을 정확히 이해하지 못했습니다. 장소 검색이나 궁금한 점을 말씀해주시면 도와드리겠습니다."
)

// Reasoner is the language-reasoning collaborator.
type Reasoner interface {
	Complete(ctx context.Context, prompt string) (string, error)
	IsConfigured() bool
}

// PlaceSearcher is the place-search collaborator.
type PlaceSearcher interface {
	SearchText(ctx context.Context, query string) ([]models.PlaceSummary, error)
	Details(ctx context.Context, placeID string) (*models.PlaceDetails, error)
	Configured() bool
}

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

// Result is the terminal handler output. Place is non-nil only for the
// place-search branch.
type Result struct {
	Message string
	Place   *models.PlaceDetails
}

type handlerFunc func(ctx context.Context, entities *models.ExtractedInfo) *Result

type Handler struct {
	reasoner Reasoner
	places   PlaceSearcher
	logger   Logger
	rngMu    sync.Mutex
	rng      *rand.Rand
	handlers map[models.Intent]handlerFunc
}

func NewHandler(reasoner Reasoner, places PlaceSearcher, log Logger) *Handler {
	h := &Handler{
		reasoner: reasoner,
		places:   places,
		logger: log.With(map[string]interface{}{
			"stage": StageName,
		}),
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	h.handlers = map[models.Intent]handlerFunc{
		models.IntentPlaceSearch:        h.handlePlaceSearch,
		models.IntentInformationRequest: h.handleInformationRequest,
		models.IntentGeneralChat:        h.handleGeneralChat,
		models.IntentUnknown:            h.handleUnknown,
	}
	return h
}

// randIntn and randPerm serialize access to the shared rng; the handler is
// shared across request goroutines and *rand.Rand is not safe for concurrent
// use.
func (h *Handler) randIntn(n int) int {
	h.rngMu.Lock()
	defer h.rngMu.Unlock()
	return h.rng.Intn(n)
}

func (h *Handler) randPerm(n int) []int {
	h.rngMu.Lock()
	defer h.rngMu.Unlock()
	return h.rng.Perm(n)
}

// Route runs the single handler registered for the intent. It never fails;
// an unregistered intent falls through to the unknown handler.
func (h *Handler) Route(ctx context.Context, intent models.Intent, entities *models.ExtractedInfo) *Result {
	fn, ok := h.handlers[intent]
	if !ok {
		fn = h.handleUnknown
	}
	return fn(ctx, entities)
}

func (h *Handler) handleInformationRequest(ctx context.Context, entities *models.ExtractedInfo) *Result {
	return h.completeOrFallback(ctx, infoPromptTemplate, entities.ProcessedQuery, infoFallbackMessage)
}

func (h *Handler) handleGeneralChat(ctx context.Context, entities *models.ExtractedInfo) *Result {
	return h.completeOrFallback(ctx, chatPromptTemplate, entities.ProcessedQuery, chatFallbackMessage)
}

func (h *Handler) handleUnknown(ctx context.Context, entities *models.ExtractedInfo) *Result {
	return h.completeOrFallback(ctx, unknownPromptTemplate, entities.OriginalQuery, unknownGuidanceMessage)
}

func (h *Handler) completeOrFallback(ctx context.Context, template, query, fallback string) *Result {
	if h.reasoner == nil || !h.reasoner.IsConfigured() {
		return &Result{Message: fallback}
	}

	reply, err := h.reasoner.Complete(ctx, fmt.Sprintf(template, query))
	if err != nil || strings.TrimSpace(reply) == "" {
		if err != nil {
			metrics.CollaboratorFailures.WithLabelValues("reasoner").Inc()
			h.logger.Warn("reasoner call failed, using fallback message", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return &Result{Message: fallback}
	}

	return &Result{Message: strings.TrimSpace(reply)}
}
