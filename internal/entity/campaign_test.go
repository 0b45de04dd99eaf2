package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeStatsDerivesFromContacts(t *testing.T) {
	now := time.Now()

	campaign := &Campaign{
		Contacts: []*Contact{
			{ID: "c1", Status: StatusPending},
			{
				ID: "c2", Status: StatusInvitationSent,
				SlotID: "s1", ZoomMeetingID: "111",
				InvitationSentAt: &now, ReminderSentAt: &now,
				AttendanceStatus: AttendanceAttended,
				Replied:          true,
			},
			{
				ID: "c3", Status: StatusFollowupSent,
				SlotID: "s2", ZoomMeetingID: "222",
				InvitationSentAt: &now, NoShowEmailSentAt: &now,
				AttendanceStatus: AttendanceNoShow,
			},
		},
		Pending: []*NoShowTask{
			{ID: "t1", ContactID: "c3", Sent: false},
			{ID: "t2", ContactID: "c3", Sent: true},
		},
	}

	st := campaign.ComputeStats()

	assert.Equal(t, 3, st.Contacts)
	assert.Equal(t, 2, st.Scheduled)
	assert.Equal(t, 2, st.MeetingsCreated)
	assert.Equal(t, 2, st.InvitationsSent)
	assert.Equal(t, 1, st.RemindersSent)
	assert.Equal(t, 1, st.FollowupsSent) // email de no-show conta como follow-up
	assert.Equal(t, 1, st.Attended)
	assert.Equal(t, 1, st.NoShows)
	assert.Equal(t, 1, st.Replied)
	assert.Equal(t, 1, st.PendingNoShow)
}

func TestCampaignFinders(t *testing.T) {
	campaign := &Campaign{
		Contacts: []*Contact{
			{ID: "c1", Email: "ana@example.com", ZoomMeetingID: "111"},
		},
		Slots: []*Slot{{ID: "s1"}},
	}

	assert.NotNil(t, campaign.FindContactByID("c1"))
	assert.Nil(t, campaign.FindContactByID("c2"))
	assert.NotNil(t, campaign.FindContactByEmail("ana@example.com"))
	assert.NotNil(t, campaign.FindContactByMeetingID("111"))
	assert.Nil(t, campaign.FindContactByMeetingID(""))
	assert.NotNil(t, campaign.FindSlotByID("s1"))
	assert.Nil(t, campaign.FindSlotByID("s2"))
}
