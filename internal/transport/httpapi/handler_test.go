package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	apperrors "eum-chatbot/internal/common/errors"
	"eum-chatbot/internal/models"
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

type fakeService struct {
	chatResp   *models.ChatResponse
	chatErr    *apperrors.StandardError
	sttResp    *models.SttResponse
	sttErr     *apperrors.StandardError
	status     *models.ServiceStatus
	gotRequest *models.ChatRequest
}

func (f *fakeService) Process(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, *apperrors.StandardError) {
	f.gotRequest = req
	return f.chatResp, f.chatErr
}

func (f *fakeService) Transcribe(ctx context.Context, audioBase64, sessionID string) (*models.SttResponse, *apperrors.StandardError) {
	return f.sttResp, f.sttErr
}

func (f *fakeService) Status(ctx context.Context) *models.ServiceStatus {
	return f.status
}

func doRequest(t *testing.T, svc *fakeService, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := NewServer(NewHandler(svc, NewTestLogger(t)))

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// ==========================
// Chat Endpoint Tests
// ==========================

func TestChat_Success(t *testing.T) {
	svc := &fakeService{
		chatResp: &models.ChatResponse{
			Success:   true,
			Message:   "금룡을 추천합니다.",
			Intent:    models.IntentPlaceSearch,
			SessionID: "session-1",
		},
	}

	rec := doRequest(t, svc, http.MethodPost, "/api/chatbot/chat",
		`{"message":"강남역 중식집 추천해줘","sessionId":"session-1"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.ChatResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "session-1", resp.SessionID)
	assert.Equal(t, "강남역 중식집 추천해줘", svc.gotRequest.Message)
}

func TestChat_MissingInputReturns400(t *testing.T) {
	svc := &fakeService{
		chatResp: &models.ChatResponse{
			Success:      false,
			SessionID:    "session-2",
			ErrorMessage: "텍스트 메시지가 필요합니다.",
		},
		chatErr: apperrors.NewMissingInputError(),
	}

	rec := doRequest(t, svc, http.MethodPost, "/api/chatbot/chat", `{"sessionId":"session-2"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ChatResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.ErrorMessage)
	assert.Equal(t, "session-2", resp.SessionID)
}

func TestChat_ServiceUnavailableReturns503(t *testing.T) {
	svc := &fakeService{
		chatResp: &models.ChatResponse{Success: false, SessionID: "s", ErrorMessage: "AI 서비스 설정이 완료되지 않았습니다."},
		chatErr:  apperrors.NewServiceUnavailableError("reasoner"),
	}

	rec := doRequest(t, svc, http.MethodPost, "/api/chatbot/chat", `{"message":"안녕"}`)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestChat_WrongFieldTypeReturns400(t *testing.T) {
	svc := &fakeService{}

	rec := doRequest(t, svc, http.MethodPost, "/api/chatbot/chat", `{"message":123}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.gotRequest)
}

// ==========================
// STT Endpoint Tests
// ==========================

func TestStt_Success(t *testing.T) {
	svc := &fakeService{
		sttResp: &models.SttResponse{Success: true, Text: "홍대 카페", SessionID: "session-3"},
	}

	rec := doRequest(t, svc, http.MethodPost, "/api/chatbot/stt",
		`{"audioData":"YXVkaW8=","sessionId":"session-3"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.SttResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "홍대 카페", resp.Text)
}

func TestStt_MissingAudioReturns400(t *testing.T) {
	svc := &fakeService{}

	rec := doRequest(t, svc, http.MethodPost, "/api/chatbot/stt", `{"sessionId":"session-4"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.SttResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.ErrorMessage)
}

func TestStt_InvalidAudioReturns400(t *testing.T) {
	svc := &fakeService{
		sttErr: apperrors.NewInvalidAudioError("illegal base64 data"),
	}

	rec := doRequest(t, svc, http.MethodPost, "/api/chatbot/stt",
		`{"audioData":"!!!","sessionId":"session-5"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ==========================
// Status / Test / Health Tests
// ==========================

func TestStatus(t *testing.T) {
	svc := &fakeService{
		status: &models.ServiceStatus{
			Services: map[string]bool{"reasoner": true, "places": false},
			Overall:  false,
			Message:  "일부 서비스를 사용할 수 없습니다.",
		},
	}

	rec := doRequest(t, svc, http.MethodGet, "/api/chatbot/status", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var status models.ServiceStatus
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.False(t, status.Overall)
	assert.True(t, status.Services["reasoner"])
}

func TestTestEndpoint_RunsFixedMessage(t *testing.T) {
	svc := &fakeService{
		chatResp: &models.ChatResponse{Success: true, Message: "추천 결과", SessionID: "generated"},
	}

	rec := doRequest(t, svc, http.MethodPost, "/api/chatbot/test", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testMessage, svc.gotRequest.Message)
}

func TestHealth(t *testing.T) {
	rec := doRequest(t, &fakeService{}, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}
