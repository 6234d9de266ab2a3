// internal/transport/httpapi/schema.go
package httpapi

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// chatRequestSchema checks field types only; the presence rules (text or
// audio) belong to the normalizer so the session identifier can still be
// echoed on failure.
const chatRequestSchema = `{
	"type": "object",
	"properties": {
		"message":   {"type": "string"},
		"audioData": {"type": "string"},
		"sessionId": {"type": "string"},
		"userId":    {"type": "string"}
	}
}`

const sttRequestSchema = `{
	"type": "object",
	"properties": {
		"audioData": {"type": "string"},
		"sessionId": {"type": "string"}
	},
	"required": ["audioData"]
}`

var (
	chatSchema = gojsonschema.NewStringLoader(chatRequestSchema)
	sttSchema  = gojsonschema.NewStringLoader(sttRequestSchema)
)

func validateBody(schema gojsonschema.JSONLoader, body []byte) error {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if !result.Valid() {
		return fmt.Errorf("invalid request: %s", result.Errors()[0].String())
	}
	return nil
}
