package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "DOCUMENT_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

const (
	TypeUserAuthenticated = "USER_AUTHENTICATED"
	TypeDocumentCreated   = "DOCUMENT_CREATED"
	TypeQuotaReached      = "QUOTA_REACHED"
	TypeProUpgraded       = "PRO_UPGRADED"
)

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

// SessionEvent builds an event about one session and its signed-in user.
// extra keys are merged into the payload.
func SessionEvent(eventType, sessionID, userID string, extra map[string]interface{}) BaseEvent {
	now := time.Now()
	data := map[string]interface{}{
		"session_id":  sessionID,
		"user_id":     userID,
		"occurred_at": now,
	}
	for k, v := range extra {
		data[k] = v
	}
	return BaseEvent{Type: eventType, Data: data, OccurredAt: now}
}
