// Package queue defines message payloads exchanged over the message broker.
package queue

// ActivityChangedEvent is published whenever an activity is created,
// updated or deleted. It carries enough for the background consumer to
// recompute the owner's statistics without consulting the publisher.
type ActivityChangedEvent struct {
	UserID     uint64 `json:"user_id"`
	ActivityID uint64 `json:"activity_id"`
	Action     string `json:"action"` // created | updated | deleted
	OccurredAt string `json:"occurred_at"`
}

// ActivityQueueName is the durable queue both sides declare.
const ActivityQueueName = "activity.changed"
