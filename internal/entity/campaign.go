package entity

import "time"


// NoShowTask é a entrada da fila de follow-up para quem faltou na reunião.
// Criada quando a presença resolve para no_show; consumida pelo sweep
// quando SendAt <= agora.
type NoShowTask struct {
	ID          string     `json:"id"`
	ContactID   string     `json:"contact_id"`
	ScheduledAt time.Time  `json:"scheduled_at"` // início do slot que foi perdido
	SendAt      time.Time  `json:"send_at"`
	Sent        bool       `json:"sent"`
	Skipped     bool       `json:"skipped,omitempty"`
	SentAt      *time.Time `json:"sent_at,omitempty"`
}


type Stats struct {
	Contacts        int `json:"contacts"`
	Scheduled       int `json:"scheduled"`
	MeetingsCreated int `json:"meetings_created"`
	InvitationsSent int `json:"invitations_sent"`
	RemindersSent   int `json:"reminders_sent"`
	FollowupsSent   int `json:"followups_sent"`
	Attended        int `json:"attended"`
	Partial         int `json:"partial"`
	NoShows         int `json:"no_shows"`
	Replied         int `json:"replied"`
	PendingNoShow   int `json:"pending_no_show_tasks"`
}


// Campaign é o agregado persistido: lista de contatos, agenda de slots e a
// fila de no-show. É reescrito inteiro no disco a cada mutação.
type Campaign struct {
	Contacts []*Contact    `json:"contacts"`
	Slots    []*Slot       `json:"slots"`
	Pending  []*NoShowTask `json:"pending_no_show_tasks"`

	UpdatedAt time.Time `json:"updated_at"`
}


func (c *Campaign) FindContactByID(id string) *Contact {
	for _, ct := range c.Contacts {
		if ct.ID == id {
			return ct
		}
	}
	return nil
}

func (c *Campaign) FindContactByEmail(email string) *Contact {
	for _, ct := range c.Contacts {
		if ct.Email == email {
			return ct
		}
	}
	return nil
}

func (c *Campaign) FindContactByMeetingID(meetingID string) *Contact {
	for _, ct := range c.Contacts {
		if ct.ZoomMeetingID != "" && ct.ZoomMeetingID == meetingID {
			return ct
		}
	}
	return nil
}

func (c *Campaign) FindSlotByID(id string) *Slot {
	for _, s := range c.Slots {
		if s.ID == id {
			return s
		}
	}
	return nil
}


// ComputeStats deriva todos os contadores do estado atual dos contatos.
// Fonte única de verdade: nada de contador paralelo para conciliar depois.
func (c *Campaign) ComputeStats() Stats {
	st := Stats{Contacts: len(c.Contacts)}

	for _, ct := range c.Contacts {
		if ct.SlotID != "" {
			st.Scheduled++
		}
		if ct.ZoomMeetingID != "" {
			st.MeetingsCreated++
		}
		if ct.InvitationSentAt != nil {
			st.InvitationsSent++
		}
		if ct.ReminderSentAt != nil {
			st.RemindersSent++
		}
		if ct.FollowupSentAt != nil || ct.NoShowEmailSentAt != nil {
			st.FollowupsSent++
		}
		if ct.Replied {
			st.Replied++
		}

		switch ct.AttendanceStatus {
		case AttendanceAttended:
			st.Attended++
		case AttendancePartial:
			st.Partial++
		case AttendanceNoShow:
			st.NoShows++
		}
	}

	for _, t := range c.Pending {
		if !t.Sent {
			st.PendingNoShow++
		}
	}

	return st
}
