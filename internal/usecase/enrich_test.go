package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/scoring"
)

func TestEnrichContactsScoresAndSegments(t *testing.T) {
	campaignStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	// Reunião na primeira semana: segmento early.
	engaged, slot := contactWithSlot("c1", entity.StatusInvitationSent, campaignStart.AddDate(0, 0, 5))
	engaged.Phone = "11999999999"
	engaged.City = "São Paulo"
	engaged.Replied = true
	engaged.ReplySentiment = "positive"
	engaged.AttendanceStatus = entity.AttendanceAttended
	engaged.Clicks = 2

	cold := &entity.Contact{ID: "c2", FirstName: "Frio", Email: "frio@example.com", Status: entity.StatusPending}

	storeFake := newFakeStore(&entity.Campaign{
		Contacts: []*entity.Contact{engaged, cold},
		Slots:    []*entity.Slot{slot},
	})

	uc := NewEnrichContactsUseCase(storeFake, scoring.BoundariesFrom(campaignStart))
	out, err := uc.Execute(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, out.Enriched)
	assert.Equal(t, 1, out.High)
	assert.Equal(t, 1, out.Medium)

	assert.True(t, engaged.Enriched)
	assert.Equal(t, scoring.SegmentEarly, engaged.Segment)
	assert.Equal(t, scoring.PriorityHigh, engaged.Priority)
	assert.Equal(t, 100, engaged.PriorityScore) // soma estourou o teto

	assert.Equal(t, scoring.SegmentNoMeeting, cold.Segment)
	// base 30, sem slot -5, com o bônus de enriquecido +5 = 30
	assert.Equal(t, 30, cold.PriorityScore)
	assert.Equal(t, scoring.PriorityMedium, cold.Priority)
}

// Rodar de novo com o mesmo estado dá o mesmo resultado.
func TestEnrichContactsIsStable(t *testing.T) {
	campaignStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	ct, slot := contactWithSlot("c1", entity.StatusScheduled, campaignStart.AddDate(0, 1, 10))

	storeFake := newFakeStore(&entity.Campaign{
		Contacts: []*entity.Contact{ct},
		Slots:    []*entity.Slot{slot},
	})
	uc := NewEnrichContactsUseCase(storeFake, scoring.BoundariesFrom(campaignStart))

	_, err := uc.Execute(context.Background())
	assert.NoError(t, err)
	firstScore := ct.PriorityScore
	firstSegment := ct.Segment

	_, err = uc.Execute(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, firstScore, ct.PriorityScore)
	assert.Equal(t, firstSegment, ct.Segment)
	assert.Equal(t, scoring.SegmentSoon, ct.Segment)
}
