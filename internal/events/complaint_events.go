package events

import "time"

const ComplaintLifecycleTopic = "support.complaint.lifecycle.v1"

const (
	ComplaintRegistered = "complaint_registered"
	ComplaintAssigned   = "complaint_assigned"
	ComplaintClosed     = "complaint_closed"
)

// ComplaintLifecycleEvent is published on every status transition so
// downstream consumers (notifications, reporting) can follow the ticket.
type ComplaintLifecycleEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	ComplaintID string    `json:"complaint_id"`
	TicketCode  string    `json:"ticket_code"`
	Status      string    `json:"status"`
	AttendedBy  string    `json:"attended_by,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
