package events

import "time"

// Ingestion progress event types pushed to websocket clients.
const (
	IngestStarted   = "ingest.started"
	IngestCompleted = "ingest.completed"
	IngestFailed    = "ingest.failed"

	SummaryCreated = "summary.created"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the dotted event code, e.g. "ingest.started".
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewDocumentEvent builds an event about one document. extra may be nil.
func NewDocumentEvent(eventType, documentID string, extra map[string]interface{}) BaseEvent {
	data := map[string]interface{}{"document_id": documentID}
	for k, v := range extra {
		data[k] = v
	}
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}

// Broadcaster delivers events to every connected listener.
type Broadcaster interface {
	Broadcast(event Event)
}
