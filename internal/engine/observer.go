package engine

import "time"

// EventType represents different lifecycle phases of a render pass
type EventType string

const (
	EventGroupStart  EventType = "group_start"
	EventGroupEnd    EventType = "group_end"
	EventRenderStart EventType = "render_start"
	EventRenderEnd   EventType = "render_end"
)

// Event represents a lifecycle event in a render pass
type Event struct {
	Type      EventType   // Type of event
	PassID    string      // Pass ID for tracing
	PassSeq   uint64      // Process-local pass number, increasing per Run
	Timestamp time.Time   // When the event occurred
	Data      interface{} // Phase-specific data (row count, entry count, format, output size)
}

// Observer interface for event subscribers
// Observers receive events at major phases of a pass
type Observer interface {
	OnEvent(event Event)
}
