package scoring

import (
	"time"

	"github.com/xavierca1/ligue-outreach/internal/entity"
)

const (
	SegmentNoMeeting = "no_meeting"
	SegmentEarly     = "early"
	SegmentSoon      = "soon"
	SegmentLate      = "late"
	SegmentVeryLate  = "very_late"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)


// Boundaries são os três cortes de data que dividem a campanha em faixas.
type Boundaries struct {
	Month1 time.Time
	Month2 time.Time
	Month3 time.Time
}

// BoundariesFrom deriva os cortes a partir da data de início da campanha:
// fim do mês 1, fim do mês 2 e fim do mês 3.
func BoundariesFrom(campaignStart time.Time) Boundaries {
	return Boundaries{
		Month1: campaignStart.AddDate(0, 1, 0),
		Month2: campaignStart.AddDate(0, 2, 0),
		Month3: campaignStart.AddDate(0, 3, 0),
	}
}


// Segment classifica o contato pela distância do slot agendado.
func Segment(scheduled *time.Time, b Boundaries) string {
	if scheduled == nil {
		return SegmentNoMeeting
	}
	switch {
	case scheduled.Before(b.Month1):
		return SegmentEarly
	case scheduled.Before(b.Month2):
		return SegmentSoon
	case scheduled.Before(b.Month3):
		return SegmentLate
	default:
		return SegmentVeryLate
	}
}


// Score calcula a pontuação de prioridade em [0,100]. Aditivo e determinístico:
// engajamento soma, sinal negativo subtrai, slot próximo vale mais.
func Score(c *entity.Contact, scheduled *time.Time, b Boundaries) int {
	score := 30 // base

	if c.Replied {
		score += 20
	}
	switch c.ReplySentiment {
	case "positive":
		score += 15
	case "negative":
		score -= 20
	}

	if c.Phone != "" {
		score += 5
	}
	if c.City != "" {
		score += 5
	}
	if c.Enriched {
		score += 5
	}
	if c.Clicks > 0 {
		score += 10
	}

	switch c.AttendanceStatus {
	case entity.AttendanceAttended:
		score += 25
	case entity.AttendancePartial:
		score += 10
	case entity.AttendanceNoShow:
		score -= 15
	}

	switch Segment(scheduled, b) {
	case SegmentEarly:
		score += 20
	case SegmentSoon:
		score += 10
	case SegmentVeryLate:
		score -= 10
	case SegmentNoMeeting:
		score -= 5
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}


func Priority(score int) string {
	switch {
	case score >= 60:
		return PriorityHigh
	case score >= 30:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
