package engine

import "time"

// EventType represents the lifecycle phases of command execution
type EventType string

const (
	EventQueryStart  EventType = "query_start"
	EventQueryEnd    EventType = "query_end"
	EventInsertStart EventType = "insert_start"
	EventInsertEnd   EventType = "insert_end"
	EventRollback    EventType = "rollback"
)

// Event represents a lifecycle event in command execution
type Event struct {
	Type      EventType   // Type of event
	TxID      string      // Transaction ID for tracing
	Table     string      // Table the command targets (empty for multi-table queries)
	Timestamp time.Time   // When the event occurred
	Data      interface{} // Phase-specific data (e.g., row count, error)
}

// Observer interface for event subscribers
// Observers receive events at major execution phases
type Observer interface {
	OnEvent(event Event)
}
