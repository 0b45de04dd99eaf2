package scheduling

import (
	"fmt"
	"time"

	"github.com/xavierca1/ligue-outreach/internal/entity"
)

// Config fixa a janela de trabalho usada na geração de slots.
type Config struct {
	StartHour   int // primeira reunião do dia (ex: 9 = 09:00)
	EndHour     int // todo slot termina antes dessa hora
	SlotMinutes int
	HostEmail   string
	TeamEmails  []string
	Location    *time.Location
}

func DefaultConfig() Config {
	return Config{
		StartHour:   9,
		EndHour:     17,
		SlotMinutes: 30,
		Location:    time.UTC,
	}
}


// Generate produz `count` slots encadeados a partir de `start`, pulando fins
// de semana e respeitando a janela [StartHour, EndHour). É um gerador puro:
// mesma entrada, mesma saída, byte a byte — inclusive os IDs, que são
// derivados do horário de início e não de um uuid.
func Generate(start time.Time, count int, cfg Config) []*entity.Slot {
	if count <= 0 || cfg.SlotMinutes <= 0 || cfg.EndHour <= cfg.StartHour {
		return nil
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}

	cursor := time.Date(start.Year(), start.Month(), start.Day(), cfg.StartHour, 0, 0, 0, loc)
	if start.After(cursor) {
		// Continuação no meio do dia: não volta para trás da entrada.
		cursor = start.In(loc)
	}
	slotLen := time.Duration(cfg.SlotMinutes) * time.Minute

	slots := make([]*entity.Slot, 0, count)
	for len(slots) < count {
		if !isWorkDay(cursor) {
			cursor = nextWorkMorning(cursor, cfg, loc)
			continue
		}

		end := cursor.Add(slotLen)
		dayEnd := time.Date(cursor.Year(), cursor.Month(), cursor.Day(), cfg.EndHour, 0, 0, 0, loc)
		if !end.Before(dayEnd) {
			// Não cabe mais hoje: rola para o próximo dia útil.
			cursor = nextWorkMorning(cursor, cfg, loc)
			continue
		}

		slots = append(slots, &entity.Slot{
			ID:         fmt.Sprintf("slot-%s", cursor.Format("20060102-1504")),
			Date:       cursor.Format("2006-01-02"),
			StartTime:  cursor,
			EndTime:    end,
			HostEmail:  cfg.HostEmail,
			TeamEmails: cfg.TeamEmails,
			Status:     entity.SlotAvailable,
		})

		cursor = end
	}

	return slots
}

func isWorkDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

func nextWorkMorning(t time.Time, cfg Config, loc *time.Location) time.Time {
	next := time.Date(t.Year(), t.Month(), t.Day(), cfg.StartHour, 0, 0, 0, loc).AddDate(0, 0, 1)
	for !isWorkDay(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
