// Package googlespeech calls the Google Cloud Speech-to-Text REST API.
package googlespeech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"eum-chatbot/internal/common/config"
	"eum-chatbot/internal/common/logger"
)

// Client recognizes Korean speech from base64-encoded audio.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	language   string
	encoding   string
	sampleRate int
	logger     logger.Logger
}

type recognizeRequest struct {
	Config recognizeConfig `json:"config"`
	Audio  recognizeAudio  `json:"audio"`
}

type recognizeConfig struct {
	LanguageCode    string `json:"languageCode"`
	Encoding        string `json:"encoding"`
	SampleRateHertz int    `json:"sampleRateHertz"`
}

type recognizeAudio struct {
	Content string `json:"content"`
}

type recognizeResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string  `json:"transcript"`
			Confidence float64 `json:"confidence"`
		} `json:"alternatives"`
	} `json:"results"`
}

func New(cfg *config.Config, log logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: config.GetDuration(cfg.Google.Speech.Timeout),
		},
		baseURL:    cfg.Google.Speech.BaseURL,
		apiKey:     cfg.Google.Speech.APIKey,
		language:   cfg.Google.Speech.LanguageCode,
		encoding:   cfg.Google.Speech.Encoding,
		sampleRate: cfg.Google.Speech.SampleRateHertz,
		logger:     log,
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Recognize transcribes base64-encoded audio. Multiple result segments are
// concatenated into a single transcript.
func (c *Client) Recognize(ctx context.Context, audioBase64 string) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("speech client not configured")
	}

	reqBody := recognizeRequest{
		Config: recognizeConfig{
			LanguageCode:    c.language,
			Encoding:        c.encoding,
			SampleRateHertz: c.sampleRate,
		},
		Audio: recognizeAudio{Content: audioBase64},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/speech:recognize?key=%s", c.baseURL, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("speech recognize request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("speech recognize returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result recognizeResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	var sb strings.Builder
	for _, r := range result.Results {
		if len(r.Alternatives) > 0 {
			sb.WriteString(r.Alternatives[0].Transcript)
		}
	}

	transcript := strings.TrimSpace(sb.String())
	if transcript == "" {
		return "", fmt.Errorf("no transcript in response")
	}

	return transcript, nil
}
