package entity

import (
	"strings"
	"time"
)

type ContactStatus string

const (
	StatusPending        ContactStatus = "pending"
	StatusScheduled      ContactStatus = "scheduled"
	StatusMeetingCreated ContactStatus = "meeting_created"
	StatusInvitationSent ContactStatus = "invitation_sent"
	StatusFollowupSent   ContactStatus = "followup_sent"
)

type AttendanceStatus string

const (
	AttendanceUnset    AttendanceStatus = ""
	AttendanceAttended AttendanceStatus = "attended"
	AttendancePartial  AttendanceStatus = "partial"
	AttendanceNoShow   AttendanceStatus = "no_show"
)


type ReplyNote struct {
	Subject    string    `json:"subject"`
	Preview    string    `json:"preview"`
	ReceivedAt time.Time `json:"received_at"`
}


type Contact struct {
	ID        string   `json:"id"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Company   string   `json:"company,omitempty"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone,omitempty"`
	City      string   `json:"city,omitempty"`
	Tags      []string `json:"tags,omitempty"`

	Status ContactStatus `json:"status"`

	// Só preenchido depois do agendamento. Um contato tem no máximo um slot ativo.
	SlotID string `json:"slot_id,omitempty"`

	ZoomMeetingID string `json:"zoom_meeting_id,omitempty"`
	ZoomJoinURL   string `json:"zoom_join_url,omitempty"`
	ZoomStartURL  string `json:"zoom_start_url,omitempty"`

	InvitationSentAt  *time.Time `json:"invitation_sent_at,omitempty"`
	ReminderSentAt    *time.Time `json:"reminder_sent_at,omitempty"`
	FollowupSentAt    *time.Time `json:"followup_sent_at,omitempty"`
	NoShowEmailSentAt *time.Time `json:"no_show_email_sent_at,omitempty"`

	// Eixo paralelo ao Status: presença na reunião agendada.
	AttendanceStatus   AttendanceStatus `json:"attendance_status,omitempty"`
	AttendanceDuration int              `json:"attendance_duration,omitempty"` // minutos

	Replied        bool        `json:"replied,omitempty"`
	ReplySentiment string      `json:"reply_sentiment,omitempty"` // positive, neutral, negative
	ReplyCategory  string      `json:"reply_category,omitempty"`
	ReplyHistory   []ReplyNote `json:"reply_history,omitempty"`

	Enriched bool `json:"enriched,omitempty"`
	Clicks   int  `json:"clicks,omitempty"`

	// Campos derivados, recalculados pelo enriquecimento (podem ficar defasados
	// entre uma chamada e outra).
	Segment       string `json:"segment,omitempty"`
	Priority      string `json:"priority,omitempty"`
	PriorityScore int    `json:"priority_score"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}


func (c *Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
