package entity

import "time"

type SlotStatus string

const (
	SlotAvailable      SlotStatus = "available"
	SlotScheduled      SlotStatus = "scheduled"
	SlotMeetingCreated SlotStatus = "meeting_created"
)


type Slot struct {
	ID         string     `json:"id"`
	Date       string     `json:"date"` // YYYY-MM-DD
	StartTime  time.Time  `json:"start_time"`
	EndTime    time.Time  `json:"end_time"`
	HostEmail  string     `json:"host_email"`
	TeamEmails []string   `json:"team_emails,omitempty"`
	Status     SlotStatus `json:"status"`

	// Preenchido quando o slot é reivindicado por um contato.
	ContactID string `json:"contact_id,omitempty"`
}


func (s *Slot) DurationMinutes() int {
	return int(s.EndTime.Sub(s.StartTime).Minutes())
}
