package composeresponse

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"eum-chatbot/internal/clients/polly"
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

type fakeTTS struct {
	audio      []byte
	err        error
	configured bool
	lastText   string
}

func (f *fakeTTS) Synthesize(ctx context.Context, text string, opts polly.Options) ([]byte, error) {
	f.lastText = text
	return f.audio, f.err
}

func (f *fakeTTS) IsConfigured() bool {
	return f.configured
}

// ==========================
// Markup Stripping Tests
// ==========================

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bold", "**맛집** 추천", "맛집 추천"},
		{"italic", "*좋은* 곳", "좋은 곳"},
		{"inline code", "명령어 `ls` 입력", "명령어 ls 입력"},
		{"heading", "## 추천 장소\n내용", "추천 장소\n내용"},
		{"link keeps text", "[금룡](https://maps.example.com/p1) 방문", "금룡 방문"},
		{"list markers", "- 첫째\n- 둘째\n1. 셋째", "첫째\n둘째\n셋째"},
		{"blank line collapse", "위\n\n\n\n아래", "위\n\n아래"},
		{"plain text untouched", "강남역 중식집 추천해줘", "강남역 중식집 추천해줘"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripMarkup(tt.input))
		})
	}
}

func TestStripMarkup_Idempotent(t *testing.T) {
	inputs := []string{
		"**금룡**\n\n📍 주소: 서울 강남구\n⭐ 평점: 4.5\n- 항목",
		"## 제목\n*강조* 와 `코드` 와 [링크](http://example.com)",
		"일반 텍스트",
	}

	for _, input := range inputs {
		once := StripMarkup(input)
		twice := StripMarkup(once)
		assert.Equal(t, once, twice)
	}
}

// ==========================
// Compose Tests
// ==========================

func TestCompose_AudioSynthesized(t *testing.T) {
	tts := &fakeTTS{audio: []byte("mp3-bytes"), configured: true}
	h := NewHandler(tts, 3, NewTestLogger(t))

	frag := h.Compose(context.Background(), "**금룡** 평점 4.5", true, polly.Options{})

	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("mp3-bytes")), frag.AudioData)
	assert.Equal(t, "금룡 평점 4.5", tts.lastText)
	assert.GreaterOrEqual(t, frag.AudioDuration, int64(1))
}

func TestCompose_NoAudioRequested(t *testing.T) {
	tts := &fakeTTS{audio: []byte("mp3-bytes"), configured: true}
	h := NewHandler(tts, 3, NewTestLogger(t))

	frag := h.Compose(context.Background(), "메시지", false, polly.Options{})

	assert.Empty(t, frag.AudioData)
	assert.Empty(t, tts.lastText)
}

func TestCompose_SynthesisFailureLeavesTextOnly(t *testing.T) {
	tts := &fakeTTS{err: errors.New("polly down"), configured: true}
	h := NewHandler(tts, 3, NewTestLogger(t))

	frag := h.Compose(context.Background(), "메시지", true, polly.Options{})

	assert.Empty(t, frag.AudioData)
	assert.Zero(t, frag.AudioDuration)
}

func TestCompose_UnconfiguredTTSSkipsSynthesis(t *testing.T) {
	tts := &fakeTTS{audio: []byte("unused"), configured: false}
	h := NewHandler(tts, 3, NewTestLogger(t))

	frag := h.Compose(context.Background(), "메시지", true, polly.Options{})

	assert.Empty(t, frag.AudioData)
	assert.Empty(t, tts.lastText)
}

func TestEstimateDuration(t *testing.T) {
	h := NewHandler(&fakeTTS{}, 3, NewTestLogger(t))

	assert.Equal(t, int64(1), h.EstimateDuration("가"))
	assert.Equal(t, int64(1), h.EstimateDuration("가나다"))
	assert.Equal(t, int64(4), h.EstimateDuration("가나다라마바사아자차카타"))
}
