package event

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Event is an in-process domain event. Collection-changed events carry the
// affected document ID; write-failure events carry the full diagnostic
// context of the attempted write.
type Event struct {
	ID        string                 `json:"id"`
	Type      Type                   `json:"type"`
	Payload   map[string]interface{} `json:"payload"`
	Timestamp time.Time              `json:"timestamp"`
}

// New creates a domain event with a generated ID and current timestamp.
func New(eventType Type, payload map[string]interface{}) *Event {
	return &Event{
		ID:        generateID(),
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// NewWriteFailure builds the diagnostic event broadcast when a detached
// write fails: the storage path, the operation kind, the attempted document
// payload, and the underlying error text.
func NewWriteFailure(path, operation string, payload interface{}, cause error) *Event {
	body := map[string]interface{}{
		"path":      path,
		"operation": operation,
	}
	if payload != nil {
		body["payload"] = payload
	}
	if cause != nil {
		body["error"] = cause.Error()
	}
	return New(TypeWriteFailed, body)
}

// DocumentChanged builds a collection-changed event for one document.
func DocumentChanged(eventType Type, docID string) *Event {
	return New(eventType, map[string]interface{}{"doc_id": docID})
}

// GetPayloadString retrieves a string value from the payload.
func (e *Event) GetPayloadString(key string) string {
	if val, ok := e.Payload[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

// generateID creates a unique ID using timestamp and random bytes.
func generateID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return fmt.Sprintf("%d-%s", time.Now().UnixNano(), hex.EncodeToString(b))
}
