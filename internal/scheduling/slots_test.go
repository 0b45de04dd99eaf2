package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/ligue-outreach/internal/entity"
)

func TestGenerateConsecutiveSlots(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) // segunda-feira
	slots := Generate(start, 3, DefaultConfig())

	assert.Len(t, slots, 3)
	assert.Equal(t, "slot-20260302-0900", slots[0].ID)
	assert.Equal(t, "slot-20260302-0930", slots[1].ID)
	assert.Equal(t, "slot-20260302-1000", slots[2].ID)

	for i, s := range slots {
		assert.Equal(t, entity.SlotAvailable, s.Status)
		assert.Equal(t, 30, s.DurationMinutes())
		if i > 0 {
			assert.Equal(t, slots[i-1].EndTime, s.StartTime)
		}
	}
}

// Mesma entrada, mesma saída — inclusive os IDs.
func TestGenerateIsDeterministic(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	cfg := DefaultConfig()

	a := Generate(start, 40, cfg)
	b := Generate(start, 40, cfg)

	assert.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].ID, b[i].ID)
		assert.Equal(t, a[i].StartTime, b[i].StartTime)
		assert.Equal(t, a[i].EndTime, b[i].EndTime)
	}
}

func TestGenerateSkipsWeekends(t *testing.T) {
	saturday := time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC)
	slots := Generate(saturday, 1, DefaultConfig())

	assert.Len(t, slots, 1)
	assert.Equal(t, time.Monday, slots[0].StartTime.Weekday())
	assert.Equal(t, "2026-03-09", slots[0].Date)
}

// Um dia de 9h às 17h tem 15 janelas de 30 minutos terminando antes das
// 17h; a 16ª rola para o dia seguinte.
func TestGenerateRollsOverAtEndOfDay(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	slots := Generate(start, 16, DefaultConfig())

	assert.Len(t, slots, 16)
	last := slots[15]
	assert.Equal(t, "2026-03-03", last.Date)
	assert.Equal(t, 9, last.StartTime.Hour())

	// Nenhum slot termina às 17h ou depois.
	for _, s := range slots {
		endOfDay := time.Date(s.StartTime.Year(), s.StartTime.Month(), s.StartTime.Day(), 17, 0, 0, 0, time.UTC)
		assert.True(t, s.EndTime.Before(endOfDay))
	}
}

// Continuação no meio do dia não volta para as 9h nem sobrepõe a agenda.
func TestGenerateContinuesMidDay(t *testing.T) {
	midDay := time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)
	slots := Generate(midDay, 2, DefaultConfig())

	assert.Equal(t, "slot-20260302-1430", slots[0].ID)
	assert.Equal(t, "slot-20260302-1500", slots[1].ID)
}

// Sexta no fim do dia: o próximo slot é segunda de manhã.
func TestGenerateFridayEveningJumpsToMonday(t *testing.T) {
	fridayLate := time.Date(2026, 3, 6, 16, 45, 0, 0, time.UTC)
	slots := Generate(fridayLate, 1, DefaultConfig())

	assert.Equal(t, "slot-20260309-0900", slots[0].ID)
}

func TestGenerateInvalidConfig(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	assert.Nil(t, Generate(start, 0, DefaultConfig()))
	assert.Nil(t, Generate(start, 3, Config{StartHour: 17, EndHour: 9, SlotMinutes: 30}))
}
