// Package servicestatus aggregates collaborator liveness for the status
// endpoint. Every probe runs in isolation; one probe blowing up never blanks
// out the others.
package servicestatus

import (
	"context"

	"eum-chatbot/internal/models"
)

const StageName = "service-status"

const (
	allHealthyMessage = "모든 서비스가 정상 작동 중입니다."
	degradedMessage   = "일부 서비스를 사용할 수 없습니다."
)

// Probe is a lightweight "is configured/reachable" check for one
// collaborator. Probes must be cheap; no full requests.
type Probe func(ctx context.Context) bool

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

type Handler struct {
	probes map[string]Probe
	logger Logger
}

func NewHandler(probes map[string]Probe, log Logger) *Handler {
	return &Handler{
		probes: probes,
		logger: log.With(map[string]interface{}{
			"stage": StageName,
		}),
	}
}

// Status runs every registered probe and reports per-collaborator health.
// Overall is true only when every probe passed.
func (h *Handler) Status(ctx context.Context) *models.ServiceStatus {
	services := make(map[string]bool, len(h.probes))
	overall := true

	for name, probe := range h.probes {
		healthy := h.runProbe(ctx, name, probe)
		services[name] = healthy
		if !healthy {
			overall = false
		}
	}

	message := allHealthyMessage
	if !overall {
		message = degradedMessage
	}

	return &models.ServiceStatus{
		Services: services,
		Overall:  overall,
		Message:  message,
	}
}

func (h *Handler) runProbe(ctx context.Context, name string, probe Probe) (healthy bool) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("status probe panicked", map[string]interface{}{
				"service": name,
				"panic":   r,
			})
			healthy = false
		}
	}()
	return probe(ctx)
}
