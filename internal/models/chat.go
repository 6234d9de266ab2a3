package models

// ChatRequest is the body of POST /api/chatbot/chat. Either Message or
// AudioData (base64) must carry the user's turn; SessionID is minted by the
// normalizer when the client omits it.
type ChatRequest struct {
	Message   string `json:"message,omitempty"`
	AudioData string `json:"audioData,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
	UserID    string `json:"userId,omitempty"`
}

// NormalizedInput is the single canonical utterance after STT resolution.
type NormalizedInput struct {
	Text      string `json:"text"`
	SessionID string `json:"sessionId"`
}

// ExtractedInfo holds the deterministic entity-extraction result for one
// utterance. Keywords are deduplicated and sorted; ProcessedQuery equals
// OriginalQuery whenever the reasoner could not rewrite it.
type ExtractedInfo struct {
	Location       string   `json:"location,omitempty"`
	Keywords       []string `json:"keywords"`
	OriginalQuery  string   `json:"originalQuery"`
	ProcessedQuery string   `json:"processedQuery"`
}

// ChatResponse is the composite answer for one chat turn.
type ChatResponse struct {
	Success        bool           `json:"success"`
	Message        string         `json:"message,omitempty"`
	ProcessedQuery string         `json:"processedQuery,omitempty"`
	Intent         Intent         `json:"intent,omitempty"`
	Confidence     string         `json:"confidence,omitempty"`
	SessionID      string         `json:"sessionId"`
	ExtractedInfo  *ExtractedInfo `json:"extractedInfo,omitempty"`
	AudioData      string         `json:"audioData,omitempty"`
	AudioDuration  int64          `json:"audioDuration,omitempty"`
	PlaceDetails   *PlaceDetails  `json:"placeDetails,omitempty"`
	ErrorMessage   string         `json:"errorMessage,omitempty"`
}

// SttResponse is the body returned by POST /api/chatbot/stt.
type SttResponse struct {
	Success      bool   `json:"success"`
	Text         string `json:"text,omitempty"`
	SessionID    string `json:"sessionId"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// ServiceStatus reports per-collaborator liveness for the status endpoint.
type ServiceStatus struct {
	Services map[string]bool `json:"services"`
	Overall  bool            `json:"overall"`
	Message  string          `json:"message"`
}
