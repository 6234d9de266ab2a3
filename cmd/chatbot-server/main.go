// cmd/chatbot-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"eum-chatbot/internal/chatbot"
	"eum-chatbot/internal/clients/bedrock"
	"eum-chatbot/internal/clients/googleplaces"
	"eum-chatbot/internal/clients/googlespeech"
	"eum-chatbot/internal/clients/polly"
	"eum-chatbot/internal/common/config"
	"eum-chatbot/internal/common/logger"
	"eum-chatbot/internal/common/observability"
	"eum-chatbot/internal/transport/httpapi"

	ci "eum-chatbot/internal/pipeline/classify-intent"
	cr "eum-chatbot/internal/pipeline/compose-response"
	ee "eum-chatbot/internal/pipeline/extract-entities"
	ni "eum-chatbot/internal/pipeline/normalize-input"
	ri "eum-chatbot/internal/pipeline/route-intent"
	ss "eum-chatbot/internal/pipeline/service-status"
)

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	zapLog.Info("Starting chatbot server...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.NewZapAdapter(zapLog)

	obs := observability.New("chatbot-server")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Collaborator Clients ---
	reasonerClient := bedrock.New(ctx, cfg, log)
	ttsClient := polly.New(ctx, cfg, log)
	speechClient := googlespeech.New(cfg, log)
	placesClient := googleplaces.New(cfg, log)

	zapLog.Info("Collaborator clients initialized",
		zap.Bool("reasonerConfigured", reasonerClient.IsConfigured()),
		zap.Bool("ttsConfigured", ttsClient.IsConfigured()),
		zap.Bool("speechConfigured", speechClient.Configured()),
		zap.Bool("placesConfigured", placesClient.Configured()),
	)

	// --- Build Pipeline Stages ---
	normalizer := ni.NewHandler(speechClient, &normalizeLoggerAdapter{log})
	extractor := ee.NewHandler(ee.LoadConfig(cfg), reasonerClient, &extractLoggerAdapter{log})
	classifier := ci.NewHandler(reasonerClient, &classifyLoggerAdapter{log})
	router := ri.NewHandler(reasonerClient, placesClient, &routeLoggerAdapter{log})
	composer := cr.NewHandler(ttsClient, cfg.TTS.SyllablesPerSecond, &composeLoggerAdapter{log})

	statusHandler := ss.NewHandler(map[string]ss.Probe{
		"reasoner":      func(ctx context.Context) bool { return reasonerClient.IsConfigured() },
		"stt":           func(ctx context.Context) bool { return speechClient.Configured() },
		"places":        func(ctx context.Context) bool { return placesClient.Configured() },
		"tts":           func(ctx context.Context) bool { return ttsClient.Available(ctx) },
		"preprocessing": func(ctx context.Context) bool { return true },
	}, &statusLoggerAdapter{log})

	service := chatbot.NewService(
		normalizer,
		extractor,
		classifier,
		router,
		composer,
		statusHandler,
		reasonerClient,
		obs,
		&serviceLoggerAdapter{log},
	)

	// --- HTTP Server ---
	handler := httpapi.NewHandler(service, &httpLoggerAdapter{log})
	e := httpapi.NewServer(handler)
	e.Server.ReadTimeout = config.GetDuration(cfg.Server.ReadTimeout)
	e.Server.WriteTimeout = config.GetDuration(cfg.Server.WriteTimeout)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		zapLog.Info("HTTP server listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// pprof on the debug port
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.DebugPort)
		zapLog.Info("Debug server listening", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, nil); err != nil {
			zapLog.Error("Debug server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}

	zapLog.Info("Chatbot server stopped gracefully")
}

// Logger adapters for pipeline packages that declare their own Logger
// interfaces.
type normalizeLoggerAdapter struct {
	logger.Logger
}

func (a *normalizeLoggerAdapter) With(fields map[string]interface{}) ni.Logger {
	return &normalizeLoggerAdapter{a.Logger.With(fields)}
}

type extractLoggerAdapter struct {
	logger.Logger
}

func (a *extractLoggerAdapter) With(fields map[string]interface{}) ee.Logger {
	return &extractLoggerAdapter{a.Logger.With(fields)}
}

type classifyLoggerAdapter struct {
	logger.Logger
}

func (a *classifyLoggerAdapter) With(fields map[string]interface{}) ci.Logger {
	return &classifyLoggerAdapter{a.Logger.With(fields)}
}

type routeLoggerAdapter struct {
	logger.Logger
}

func (a *routeLoggerAdapter) With(fields map[string]interface{}) ri.Logger {
	return &routeLoggerAdapter{a.Logger.With(fields)}
}

type composeLoggerAdapter struct {
	logger.Logger
}

func (a *composeLoggerAdapter) With(fields map[string]interface{}) cr.Logger {
	return &composeLoggerAdapter{a.Logger.With(fields)}
}

type statusLoggerAdapter struct {
	logger.Logger
}

func (a *statusLoggerAdapter) With(fields map[string]interface{}) ss.Logger {
	return &statusLoggerAdapter{a.Logger.With(fields)}
}

type serviceLoggerAdapter struct {
	logger.Logger
}

func (a *serviceLoggerAdapter) With(fields map[string]interface{}) chatbot.Logger {
	return &serviceLoggerAdapter{a.Logger.With(fields)}
}

type httpLoggerAdapter struct {
	logger.Logger
}

func (a *httpLoggerAdapter) With(fields map[string]interface{}) httpapi.Logger {
	return &httpLoggerAdapter{a.Logger.With(fields)}
}
