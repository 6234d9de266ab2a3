package servicestatus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type TestLogger struct {
	t *testing.T
}

func NewTestLogger(t *testing.T) *TestLogger {
	return &TestLogger{t: t}
}

func (l *TestLogger) Info(msg string, fields map[string]interface{}) {
	l.t.Logf("INFO: %s %v", msg, fields)
}

func (l *TestLogger) Warn(msg string, fields map[string]interface{}) {
	l.t.Logf("WARN: %s %v", msg, fields)
}

func (l *TestLogger) Error(msg string, fields map[string]interface{}) {
	l.t.Logf("ERROR: %s %v", msg, fields)
}

func (l *TestLogger) With(fields map[string]interface{}) Logger {
	return l
}

func TestStatus_AllHealthy(t *testing.T) {
	h := NewHandler(map[string]Probe{
		"reasoner": func(ctx context.Context) bool { return true },
		"stt":      func(ctx context.Context) bool { return true },
		"places":   func(ctx context.Context) bool { return true },
		"tts":      func(ctx context.Context) bool { return true },
	}, NewTestLogger(t))

	status := h.Status(context.Background())

	assert.True(t, status.Overall)
	assert.Len(t, status.Services, 4)
	assert.Equal(t, allHealthyMessage, status.Message)
}

func TestStatus_OneUnhealthy(t *testing.T) {
	h := NewHandler(map[string]Probe{
		"reasoner": func(ctx context.Context) bool { return true },
		"places":   func(ctx context.Context) bool { return false },
	}, NewTestLogger(t))

	status := h.Status(context.Background())

	assert.False(t, status.Overall)
	assert.True(t, status.Services["reasoner"])
	assert.False(t, status.Services["places"])
	assert.Equal(t, degradedMessage, status.Message)
}

func TestStatus_PanickingProbeIsolated(t *testing.T) {
	h := NewHandler(map[string]Probe{
		"reasoner": func(ctx context.Context) bool { return true },
		"broken":   func(ctx context.Context) bool { panic("probe exploded") },
	}, NewTestLogger(t))

	status := h.Status(context.Background())

	assert.False(t, status.Overall)
	assert.True(t, status.Services["reasoner"])
	assert.False(t, status.Services["broken"])
}

func TestStatus_NoProbes(t *testing.T) {
	h := NewHandler(map[string]Probe{}, NewTestLogger(t))

	status := h.Status(context.Background())

	assert.True(t, status.Overall)
	assert.Empty(t, status.Services)
}
