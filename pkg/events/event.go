package events

import "time"

// Event type codes published on the internal bus.
const (
	TypePlanGenerated = "PLAN_GENERATED"
	TypeToolDataSaved = "TOOL_DATA_SAVED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "PLAN_GENERATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
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

// NewPlanGenerated builds the event emitted after a successful generation.
func NewPlanGenerated(userId, planId, tierUsed, modelUsed string) Event {
	return BaseEvent{
		Type: TypePlanGenerated,
		Data: map[string]interface{}{
			"user_id":    userId,
			"plan_id":    planId,
			"tier_used":  tierUsed,
			"model_used": modelUsed,
		},
		OccurredAt: time.Now(),
	}
}

// NewToolDataSaved builds the event emitted when a tool record is written.
func NewToolDataSaved(userId, toolId, recordId string) Event {
	return BaseEvent{
		Type: TypeToolDataSaved,
		Data: map[string]interface{}{
			"user_id":   userId,
			"tool_id":   toolId,
			"record_id": recordId,
		},
		OccurredAt: time.Now(),
	}
}
