// Package googleplaces calls the Google Places REST API for text search and
// place details. All requests go out with language=ko; opening hours come
// back with English weekday prefixes and are localized here.
package googleplaces

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"eum-chatbot/internal/common/config"
	"eum-chatbot/internal/common/logger"
	"eum-chatbot/internal/models"
)

// Client searches for places and fetches their details.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	radius     int
	logger     logger.Logger
}

type textSearchResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID          string  `json:"place_id"`
		Name             string  `json:"name"`
		Rating           float64 `json:"rating"`
		FormattedAddress string  `json:"formatted_address"`
	} `json:"results"`
}

type detailsResponse struct {
	Status string `json:"status"`
	Result struct {
		PlaceID          string  `json:"place_id"`
		Name             string  `json:"name"`
		FormattedAddress string  `json:"formatted_address"`
		Rating           float64 `json:"rating"`
		PriceLevel       int     `json:"price_level"`
		OpeningHours     *struct {
			OpenNow     *bool    `json:"open_now"`
			WeekdayText []string `json:"weekday_text"`
		} `json:"opening_hours"`
		Reviews []struct {
			AuthorName string `json:"author_name"`
			Text       string `json:"text"`
			Rating     int    `json:"rating"`
		} `json:"reviews"`
	} `json:"result"`
}

var weekdayNames = map[string]string{
	"Monday":    "월요일",
	"Tuesday":   "화요일",
	"Wednesday": "수요일",
	"Thursday":  "목요일",
	"Friday":    "금요일",
	"Saturday":  "토요일",
	"Sunday":    "일요일",
}

func New(cfg *config.Config, log logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: config.GetDuration(cfg.Google.Places.Timeout),
		},
		baseURL: cfg.Google.Places.BaseURL,
		apiKey:  cfg.Google.Places.APIKey,
		radius:  cfg.Google.Places.RadiusMeters,
		logger:  log,
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// SearchText runs a place text search and returns the hits in API order.
func (c *Client) SearchText(ctx context.Context, query string) ([]models.PlaceSummary, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("places client not configured")
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("language", "ko")
	params.Set("radius", fmt.Sprintf("%d", c.radius))
	params.Set("key", c.apiKey)

	var result textSearchResponse
	if err := c.getJSON(ctx, "/textsearch/json", params, &result); err != nil {
		return nil, err
	}

	if result.Status != "OK" && result.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("text search returned status %s", result.Status)
	}

	summaries := make([]models.PlaceSummary, 0, len(result.Results))
	for _, r := range result.Results {
		summaries = append(summaries, models.PlaceSummary{
			PlaceID:          r.PlaceID,
			Name:             r.Name,
			Rating:           r.Rating,
			FormattedAddress: r.FormattedAddress,
		})
	}

	return summaries, nil
}

// Details fetches the full record for a place. Weekday prefixes in the
// opening hours are translated to Korean.
func (c *Client) Details(ctx context.Context, placeID string) (*models.PlaceDetails, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("places client not configured")
	}

	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("language", "ko")
	params.Set("fields", "place_id,name,formatted_address,rating,price_level,opening_hours,reviews")
	params.Set("key", c.apiKey)

	var result detailsResponse
	if err := c.getJSON(ctx, "/details/json", params, &result); err != nil {
		return nil, err
	}

	if result.Status != "OK" {
		return nil, fmt.Errorf("place details returned status %s", result.Status)
	}

	details := &models.PlaceDetails{
		PlaceID:          result.Result.PlaceID,
		Name:             result.Result.Name,
		FormattedAddress: result.Result.FormattedAddress,
		Rating:           result.Result.Rating,
		PriceLevel:       result.Result.PriceLevel,
		Source:           models.PlaceSourceLive,
	}

	if oh := result.Result.OpeningHours; oh != nil {
		details.OpenNow = oh.OpenNow
		for _, line := range oh.WeekdayText {
			details.OpeningHours = append(details.OpeningHours, localizeWeekday(line))
		}
	}

	for _, r := range result.Result.Reviews {
		details.Reviews = append(details.Reviews, models.PlaceReview{
			AuthorName: r.AuthorName,
			Text:       r.Text,
			Rating:     r.Rating,
		})
	}

	return details, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("places request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("places API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}

// localizeWeekday replaces a leading English weekday name with its Korean
// equivalent, leaving the rest of the line intact.
func localizeWeekday(line string) string {
	for en, ko := range weekdayNames {
		if strings.HasPrefix(line, en+":") {
			return ko + ":" + strings.TrimPrefix(line, en+":")
		}
	}
	return line
}
