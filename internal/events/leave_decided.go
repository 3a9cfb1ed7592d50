package events

import "time"

const LeaveDecisionTopic = "leave.request.decision.v1"

type LeaveDecidedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	LeaveID     string    `json:"leave_id"`
	EmployeeID  string    `json:"employee_id"`
	DecidedBy   string    `json:"decided_by"`
	DeciderRole string    `json:"decider_role"`
	Status      string    `json:"status"`
	Comments    string    `json:"comments,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
