// Package polly wraps AWS Polly speech synthesis.
package polly

import (
	"context"
	"fmt"
	"io"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"

	"eum-chatbot/internal/common/config"
	"eum-chatbot/internal/common/logger"
)

// Options controls a single synthesis call. Blank fields fall back to the
// configured defaults.
type Options struct {
	VoiceID      string
	OutputFormat string
	Engine       string
	LanguageCode string
}

// Client synthesizes Korean speech through Polly.
type Client struct {
	polly      *polly.Client
	defaults   config.TTSConfig
	configured bool
	logger     logger.Logger
}

// New builds a Client from the default AWS credential chain. Missing
// credentials produce an unconfigured client; synthesis then fails fast and
// the caller degrades to text-only responses.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) *Client {
	c := &Client{
		defaults: cfg.TTS,
		logger:   log,
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		log.Warn("failed to load AWS config, speech synthesis disabled", map[string]interface{}{
			"error": err.Error(),
		})
		return c
	}

	if _, err := awsCfg.Credentials.Retrieve(ctx); err != nil {
		log.Warn("AWS credentials unavailable, speech synthesis disabled", map[string]interface{}{
			"error": err.Error(),
		})
		return c
	}

	c.polly = polly.NewFromConfig(awsCfg)
	c.configured = true
	return c
}

// IsConfigured reports whether credentials resolved at startup.
func (c *Client) IsConfigured() bool {
	return c.configured
}

// Synthesize converts text to audio bytes using the given options.
func (c *Client) Synthesize(ctx context.Context, text string, opts Options) ([]byte, error) {
	if !c.configured {
		return nil, fmt.Errorf("polly client not configured")
	}

	voiceID := opts.VoiceID
	if voiceID == "" {
		voiceID = c.defaults.VoiceID
	}
	format := opts.OutputFormat
	if format == "" {
		format = c.defaults.OutputFormat
	}
	engine := opts.Engine
	if engine == "" {
		engine = c.defaults.Engine
	}
	language := opts.LanguageCode
	if language == "" {
		language = c.defaults.LanguageCode
	}

	out, err := c.polly.SynthesizeSpeech(ctx, &polly.SynthesizeSpeechInput{
		Text:         &text,
		VoiceId:      types.VoiceId(voiceID),
		OutputFormat: types.OutputFormat(format),
		Engine:       types.Engine(engine),
		LanguageCode: types.LanguageCode(language),
	})
	if err != nil {
		return nil, fmt.Errorf("synthesize speech: %w", err)
	}
	defer out.AudioStream.Close()

	audio, err := io.ReadAll(out.AudioStream)
	if err != nil {
		return nil, fmt.Errorf("read audio stream: %w", err)
	}

	return audio, nil
}

// Available probes the service by listing Korean voices. Used by the health
// aggregator; a probe failure never affects request handling.
func (c *Client) Available(ctx context.Context) bool {
	if !c.configured {
		return false
	}

	lang := types.LanguageCodeKoKr
	_, err := c.polly.DescribeVoices(ctx, &polly.DescribeVoicesInput{
		LanguageCode: lang,
	})
	if err != nil {
		c.logger.Warn("polly availability probe failed", map[string]interface{}{
			"error": err.Error(),
		})
		return false
	}
	return true
}
