// Package chatbot composes the pipeline stages into the per-request
// orchestration: normalize, extract, classify, route, compose. Each request
// is an independent pass with no shared mutable state.
package chatbot

import (
	"context"
	"errors"
	"time"

	"eum-chatbot/internal/clients/polly"
	apperrors "eum-chatbot/internal/common/errors"
	"eum-chatbot/internal/common/metrics"
	"eum-chatbot/internal/common/observability"
	"eum-chatbot/internal/models"
	composeresponse "eum-chatbot/internal/pipeline/compose-response"
	normalizeinput "eum-chatbot/internal/pipeline/normalize-input"
	routeintent "eum-chatbot/internal/pipeline/route-intent"
)

// Normalizer resolves the canonical utterance for a request.
type Normalizer interface {
	Normalize(ctx context.Context, req *models.ChatRequest) (*models.NormalizedInput, error)
	Transcribe(ctx context.Context, audioBase64, sessionID string) (*models.SttResponse, error)
}

// Extractor derives entities from the utterance.
type Extractor interface {
	Extract(ctx context.Context, text string) *models.ExtractedInfo
}

// Classifier labels the utterance with a closed-set intent.
type Classifier interface {
	Classify(ctx context.Context, text string) (models.Intent, string)
}

// Router dispatches the intent to its terminal handler.
type Router interface {
	Route(ctx context.Context, intent models.Intent, entities *models.ExtractedInfo) *routeintent.Result
}

// Composer attaches best-effort audio to the final message.
type Composer interface {
	Compose(ctx context.Context, message string, wantsAudio bool, opts polly.Options) *composeresponse.Fragment
}

// StatusReporter aggregates collaborator health.
type StatusReporter interface {
	Status(ctx context.Context) *models.ServiceStatus
}

// Reasoner is probed up front so a misconfigured deployment fails fast
// instead of burning calls on extraction.
type Reasoner interface {
	IsConfigured() bool
}

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

type Service struct {
	normalizer Normalizer
	extractor  Extractor
	classifier Classifier
	router     Router
	composer   Composer
	status     StatusReporter
	reasoner   Reasoner
	obs        *observability.Observability
	logger     Logger
}

func NewService(
	normalizer Normalizer,
	extractor Extractor,
	classifier Classifier,
	router Router,
	composer Composer,
	status StatusReporter,
	reasoner Reasoner,
	obs *observability.Observability,
	log Logger,
) *Service {
	return &Service{
		normalizer: normalizer,
		extractor:  extractor,
		classifier: classifier,
		router:     router,
		composer:   composer,
		status:     status,
		reasoner:   reasoner,
		obs:        obs,
		logger: log.With(map[string]interface{}{
			"component": "chatbot-service",
		}),
	}
}

// Process runs one chat turn through the full pipeline. Input errors come
// back as a StandardError for the transport to map; every other failure is
// absorbed into a degraded-but-shaped response.
func (s *Service) Process(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, *apperrors.StandardError) {
	start := time.Now()

	normalized, err := s.normalizer.Normalize(ctx, req)
	if err != nil {
		stdErr := s.inputError(err)
		metrics.ChatRequestsTotal.WithLabelValues(string(models.IntentUnknown), "input_error").Inc()
		return &models.ChatResponse{
			Success:      false,
			SessionID:    s.sessionIDFor(req),
			ErrorMessage: stdErr.Message,
		}, stdErr
	}

	if s.reasoner == nil || !s.reasoner.IsConfigured() {
		stdErr := apperrors.NewServiceUnavailableError("reasoner")
		metrics.ChatRequestsTotal.WithLabelValues(string(models.IntentUnknown), "unavailable").Inc()
		return &models.ChatResponse{
			Success:      false,
			SessionID:    normalized.SessionID,
			ErrorMessage: stdErr.Message,
		}, stdErr
	}

	entities := s.extractor.Extract(ctx, normalized.Text)
	intent, confidence := s.classifier.Classify(ctx, normalized.Text)

	result := s.router.Route(ctx, intent, entities)
	fragment := s.composer.Compose(ctx, result.Message, true, polly.Options{})

	elapsed := time.Since(start)
	metrics.ChatRequestsTotal.WithLabelValues(string(intent), "success").Inc()
	metrics.ChatRequestDuration.WithLabelValues(string(intent)).Observe(elapsed.Seconds())
	if s.obs != nil {
		s.obs.RecordRequest(ctx, string(intent), "success")
		s.obs.RecordDuration(ctx, elapsed, string(intent))
	}

	s.logger.Info("chat request processed", map[string]interface{}{
		"sessionId":  normalized.SessionID,
		"intent":     string(intent),
		"confidence": confidence,
		"durationMs": elapsed.Milliseconds(),
	})

	return &models.ChatResponse{
		Success:        true,
		Message:        result.Message,
		ProcessedQuery: entities.ProcessedQuery,
		Intent:         intent,
		Confidence:     confidence,
		SessionID:      normalized.SessionID,
		ExtractedInfo:  entities,
		AudioData:      fragment.AudioData,
		AudioDuration:  fragment.AudioDuration,
		PlaceDetails:   result.Place,
	}, nil
}

// Transcribe serves the standalone speech-to-text operation.
func (s *Service) Transcribe(ctx context.Context, audioBase64, sessionID string) (*models.SttResponse, *apperrors.StandardError) {
	resp, err := s.normalizer.Transcribe(ctx, audioBase64, sessionID)
	if err != nil {
		metrics.SttRequestsTotal.WithLabelValues("error").Inc()
		if errors.Is(err, normalizeinput.ErrInvalidAudio) {
			return nil, apperrors.NewInvalidAudioError(err.Error())
		}
		return nil, apperrors.NewInternalError(normalizeinput.StageName, err)
	}

	metrics.SttRequestsTotal.WithLabelValues("success").Inc()
	return resp, nil
}

// Status reports per-collaborator health.
func (s *Service) Status(ctx context.Context) *models.ServiceStatus {
	return s.status.Status(ctx)
}

func (s *Service) inputError(err error) *apperrors.StandardError {
	switch {
	case errors.Is(err, normalizeinput.ErrInvalidAudio):
		return apperrors.NewInvalidAudioError(err.Error())
	case errors.Is(err, normalizeinput.ErrMissingInput):
		return apperrors.NewMissingInputError()
	default:
		return apperrors.NewInternalError(normalizeinput.StageName, err)
	}
}

func (s *Service) sessionIDFor(req *models.ChatRequest) string {
	if req.SessionID != "" {
		return req.SessionID
	}
	return newSessionID()
}
