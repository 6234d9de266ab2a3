// Package httpapi exposes the chatbot pipeline over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "eum-chatbot/internal/common/errors"
	"eum-chatbot/internal/models"
)

// testMessage drives the POST /api/chatbot/test endpoint through the full
// pipeline without a client-supplied body.
const testMessage = "강남역 맛집 추천해줘"

// Service is the orchestration layer consumed by the transport.
type Service interface {
	Process(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, *apperrors.StandardError)
	Transcribe(ctx context.Context, audioBase64, sessionID string) (*models.SttResponse, *apperrors.StandardError)
	Status(ctx context.Context) *models.ServiceStatus
}

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

// Handler handles HTTP requests.
type Handler struct {
	service Service
	logger  Logger
}

// NewHandler creates a new handler.
func NewHandler(service Service, log Logger) *Handler {
	return &Handler{
		service: service,
		logger: log.With(map[string]interface{}{
			"component": "httpapi",
		}),
	}
}

// RegisterRoutes registers the chatbot routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/chatbot/chat", h.Chat)
	e.POST("/api/chatbot/stt", h.SpeechToText)
	e.GET("/api/chatbot/status", h.Status)
	e.POST("/api/chatbot/test", h.Test)

	e.GET("/health", h.Health)
}

// Chat runs one turn through the pipeline.
func (h *Handler) Chat(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, &models.ChatResponse{
			Success:      false,
			ErrorMessage: "요청 본문을 읽을 수 없습니다.",
		})
	}

	if err := validateBody(chatSchema, body); err != nil {
		return c.JSON(http.StatusBadRequest, &models.ChatResponse{
			Success:      false,
			ErrorMessage: "요청 형식이 올바르지 않습니다.",
		})
	}

	var req models.ChatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return c.JSON(http.StatusBadRequest, &models.ChatResponse{
			Success:      false,
			ErrorMessage: "요청 형식이 올바르지 않습니다.",
		})
	}

	resp, stdErr := h.service.Process(c.Request().Context(), &req)
	if stdErr != nil {
		return c.JSON(apperrors.HTTPStatus(stdErr.Code), resp)
	}

	return c.JSON(http.StatusOK, resp)
}

// SpeechToText transcribes a standalone audio payload.
func (h *Handler) SpeechToText(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, &models.SttResponse{
			Success:      false,
			ErrorMessage: "요청 본문을 읽을 수 없습니다.",
		})
	}

	if err := validateBody(sttSchema, body); err != nil {
		return c.JSON(http.StatusBadRequest, &models.SttResponse{
			Success:      false,
			ErrorMessage: "오디오 데이터가 필요합니다.",
		})
	}

	var req struct {
		AudioData string `json:"audioData"`
		SessionID string `json:"sessionId"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return c.JSON(http.StatusBadRequest, &models.SttResponse{
			Success:      false,
			ErrorMessage: "요청 형식이 올바르지 않습니다.",
		})
	}

	resp, stdErr := h.service.Transcribe(c.Request().Context(), req.AudioData, req.SessionID)
	if stdErr != nil {
		return c.JSON(apperrors.HTTPStatus(stdErr.Code), &models.SttResponse{
			Success:      false,
			SessionID:    req.SessionID,
			ErrorMessage: stdErr.Message,
		})
	}

	return c.JSON(http.StatusOK, resp)
}

// Status reports per-collaborator health.
func (h *Handler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.Status(c.Request().Context()))
}

// Test runs a fixed utterance through the pipeline for smoke checking a
// deployment.
func (h *Handler) Test(c echo.Context) error {
	resp, stdErr := h.service.Process(c.Request().Context(), &models.ChatRequest{
		Message: testMessage,
	})
	if stdErr != nil {
		return c.JSON(apperrors.HTTPStatus(stdErr.Code), resp)
	}
	return c.JSON(http.StatusOK, resp)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
