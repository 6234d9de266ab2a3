// Package bedrock wraps the AWS Bedrock runtime for text generation. All
// prompts flow through Complete; callers decide what to do when it fails.
package bedrock

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"eum-chatbot/internal/common/config"
	"eum-chatbot/internal/common/logger"
)

// Client calls a Titan text model through the Bedrock runtime.
type Client struct {
	runtime    *bedrockruntime.Client
	modelID    string
	maxTokens  int
	temp       float64
	topP       float64
	configured bool
	logger     logger.Logger
}

type titanRequest struct {
	InputText            string      `json:"inputText"`
	TextGenerationConfig titanConfig `json:"textGenerationConfig"`
}

type titanConfig struct {
	MaxTokenCount int     `json:"maxTokenCount"`
	Temperature   float64 `json:"temperature"`
	TopP          float64 `json:"topP"`
}

type titanResponse struct {
	Results []struct {
		OutputText string `json:"outputText"`
	} `json:"results"`
}

// New builds a Client from the default AWS credential chain. A missing or
// broken credential setup yields an unconfigured client rather than an error;
// callers probe IsConfigured before depending on it.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) *Client {
	c := &Client{
		modelID:   cfg.AWS.Bedrock.ModelID,
		maxTokens: cfg.AWS.Bedrock.MaxTokens,
		temp:      cfg.AWS.Bedrock.Temperature,
		topP:      cfg.AWS.Bedrock.TopP,
		logger:    log,
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		log.Warn("failed to load AWS config, reasoner disabled", map[string]interface{}{
			"error": err.Error(),
		})
		return c
	}

	if _, err := awsCfg.Credentials.Retrieve(ctx); err != nil {
		log.Warn("AWS credentials unavailable, reasoner disabled", map[string]interface{}{
			"error": err.Error(),
		})
		return c
	}

	c.runtime = bedrockruntime.NewFromConfig(awsCfg)
	c.configured = true
	return c
}

// IsConfigured reports whether credentials resolved at startup.
func (c *Client) IsConfigured() bool {
	return c.configured
}

// Complete sends the prompt to the model and returns the trimmed first result.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if !c.configured {
		return "", fmt.Errorf("bedrock client not configured")
	}

	payload := titanRequest{
		InputText: prompt,
		TextGenerationConfig: titanConfig{
			MaxTokenCount: c.maxTokens,
			Temperature:   c.temp,
			TopP:          c.topP,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	contentType := "application/json"
	out, err := c.runtime.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     &c.modelID,
		ContentType: &contentType,
		Accept:      &contentType,
		Body:        body,
	})
	if err != nil {
		return "", fmt.Errorf("invoke model %s: %w", c.modelID, err)
	}

	var resp titanResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse model response: %w", err)
	}

	if len(resp.Results) == 0 {
		return "", fmt.Errorf("model returned no results")
	}

	return strings.TrimSpace(resp.Results[0].OutputText), nil
}
