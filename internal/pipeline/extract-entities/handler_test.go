package extractentities

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"eum-chatbot/internal/models"
)

// ==========================
// Test Logger Implementation
// ==========================

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

// ==========================
// Fake Reasoner
// ==========================

type fakeReasoner struct {
	reply      string
	err        error
	configured bool
	lastPrompt string
}

func (f *fakeReasoner) Complete(ctx context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.reply, f.err
}

func (f *fakeReasoner) IsConfigured() bool {
	return f.configured
}

func testConfig() *Config {
	return LoadConfig(nil)
}

// ==========================
// Location Extraction Tests
// ==========================

func TestExtract_LandmarkLocation(t *testing.T) {
	h := NewHandler(testConfig(), &fakeReasoner{}, NewTestLogger(t))

	info := h.Extract(context.Background(), "강남역 중식집 추천해줘")

	assert.Equal(t, "강남역", info.Location)
}

func TestExtract_WindowedSuffixLocation(t *testing.T) {
	h := NewHandler(testConfig(), &fakeReasoner{}, NewTestLogger(t))

	info := h.Extract(context.Background(), "서울숲역 맛집 알려줘")

	assert.Equal(t, "서울숲역", info.Location)
}

func TestExtract_NoLocation(t *testing.T) {
	h := NewHandler(testConfig(), &fakeReasoner{}, NewTestLogger(t))

	info := h.Extract(context.Background(), "맛집 추천해줘")

	assert.Empty(t, info.Location)
}

// ==========================
// Keyword Extraction Tests
// ==========================

func TestExtract_KeywordsSortedAndDeduplicated(t *testing.T) {
	h := NewHandler(testConfig(), &fakeReasoner{}, NewTestLogger(t))

	info := h.Extract(context.Background(), "강남역 중식집 추천해줘")

	assert.Equal(t, []string{"중식", "추천"}, info.Keywords)
}

func TestExtract_KeywordsIdempotent(t *testing.T) {
	h := NewHandler(testConfig(), &fakeReasoner{}, NewTestLogger(t))

	first := h.Extract(context.Background(), "홍대 근처 분위기 좋은 카페 추천")
	second := h.Extract(context.Background(), "홍대 근처 분위기 좋은 카페 추천")

	assert.Equal(t, first.Keywords, second.Keywords)
	assert.NotEmpty(t, first.Keywords)
}

func TestExtract_NoKeywords(t *testing.T) {
	h := NewHandler(testConfig(), &fakeReasoner{}, NewTestLogger(t))

	info := h.Extract(context.Background(), "안녕하세요")

	assert.Empty(t, info.Keywords)
}

// ==========================
// Processed Query Tests
// ==========================

func TestExtract_ProcessedQueryFromReasoner(t *testing.T) {
	reasoner := &fakeReasoner{reply: "강남역 중식당", configured: true}
	h := NewHandler(testConfig(), reasoner, NewTestLogger(t))

	info := h.Extract(context.Background(), "강남역에 있는 중식집 좀 추천해줄래?")

	assert.Equal(t, "강남역 중식당", info.ProcessedQuery)
	assert.Contains(t, reasoner.lastPrompt, "강남역에 있는 중식집 좀 추천해줄래?")
}

func TestExtract_ProcessedQueryFallsBackOnError(t *testing.T) {
	reasoner := &fakeReasoner{err: errors.New("throttled"), configured: true}
	h := NewHandler(testConfig(), reasoner, NewTestLogger(t))

	info := h.Extract(context.Background(), "강남역 중식집 추천해줘")

	assert.Equal(t, "강남역 중식집 추천해줘", info.ProcessedQuery)
}

func TestExtract_ProcessedQueryFallsBackWhenUnconfigured(t *testing.T) {
	h := NewHandler(testConfig(), &fakeReasoner{reply: "unused", configured: false}, NewTestLogger(t))

	info := h.Extract(context.Background(), "명동 맛집")

	assert.Equal(t, "명동 맛집", info.ProcessedQuery)
}

// ==========================
// Search Query Tests
// ==========================

func TestSearchQuery(t *testing.T) {
	tests := []struct {
		name string
		info *models.ExtractedInfo
		want string
	}{
		{"location and keywords", &models.ExtractedInfo{Location: "강남역", Keywords: []string{"중식", "추천"}}, "강남역 중식 추천"},
		{"keywords only", &models.ExtractedInfo{Keywords: []string{"카페"}}, "카페"},
		{"location only", &models.ExtractedInfo{Location: "홍대"}, "홍대"},
		{"empty falls back to default", &models.ExtractedInfo{}, DefaultSearchQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SearchQuery(tt.info))
		})
	}
}

func TestExtract_ConfigOverridesTables(t *testing.T) {
	cfg := &Config{
		Landmarks:         []string{"테스트타워"},
		LocationSuffixes:  []string{"역"},
		FoodKeywords:      []string{"국수"},
		QualifierKeywords: []string{"추천"},
	}
	h := NewHandler(cfg, &fakeReasoner{}, NewTestLogger(t))

	info := h.Extract(context.Background(), "테스트타워 국수 추천")

	assert.Equal(t, "테스트타워", info.Location)
	assert.Equal(t, []string{"국수", "추천"}, info.Keywords)
}
