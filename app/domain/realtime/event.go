package realtime

// EventType tags a row-level change notification.
type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

// ChangeEvent is one row-level change. New carries the row after the
// change (INSERT, UPDATE), Old the row before it (DELETE). Consumers
// must tolerate unknown event types and missing rows.
type ChangeEvent[T any] struct {
	EventType EventType `json:"eventType"`
	New       *T        `json:"new"`
	Old       *T        `json:"old"`
}
