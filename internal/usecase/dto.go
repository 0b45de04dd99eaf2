package usecase

import "github.com/xavierca1/ligue-outreach/internal/entity"

type ContactInput struct {
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Company   string   `json:"company,omitempty"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone,omitempty"`
	City      string   `json:"city,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

type ItemError struct {
	ContactID string `json:"contact_id,omitempty"`
	Email     string `json:"email,omitempty"`
	Error     string `json:"error"`
}

type ImportOutput struct {
	Imported int         `json:"imported"`
	Skipped  int         `json:"skipped"`
	Errors   []ItemError `json:"errors,omitempty"`
}

type ScheduleOutput struct {
	SlotsCreated int `json:"slots_created"`
	Assigned     int `json:"assigned"`
}

// BatchOutput é o resultado acumulado de um drain loop: quantos itens
// passaram, quantos falharam e se o provedor mandou segurar.
type BatchOutput struct {
	Processed   int         `json:"processed"`
	Failed      int         `json:"failed"`
	RateLimited bool        `json:"rate_limited,omitempty"`
	Errors      []ItemError `json:"errors,omitempty"`
}

type ParticipantInput struct {
	Email           string `json:"email"`
	Name            string `json:"name,omitempty"`
	DurationMinutes int    `json:"duration_minutes"`
}

type AttendanceInput struct {
	MeetingID    string             `json:"meeting_id"`
	Participants []ParticipantInput `json:"participants"`
}

type AttendanceOutput struct {
	ContactID          string                  `json:"contact_id"`
	Email              string                  `json:"email"`
	AttendanceStatus   entity.AttendanceStatus `json:"attendance_status"`
	AttendanceDuration int                     `json:"attendance_duration"`
}

type SweepOutput struct {
	Sent    int         `json:"sent"`
	Skipped int         `json:"skipped"`
	Failed  int         `json:"failed"`
	Errors  []ItemError `json:"errors,omitempty"`
}

type EnrichOutput struct {
	Enriched int `json:"enriched"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

type ResolveClickOutput struct {
	ContactID string `json:"contact_id"`
	Action    string `json:"action"`
}

type SyncRepliesOutput struct {
	Matched    int `json:"matched"`
	NewReplies int `json:"new_replies"`
}
