package chatbot

import "github.com/google/uuid"

// newSessionID mints the correlation token echoed back on error responses
// when the client omitted one.
func newSessionID() string {
	return uuid.NewString()
}
