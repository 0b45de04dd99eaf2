package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/ligue-outreach/internal/scoring"
)

type EnrichContactsUseCase struct {
	Store      CampaignStore
	Boundaries scoring.Boundaries
}

func NewEnrichContactsUseCase(store CampaignStore, boundaries scoring.Boundaries) *EnrichContactsUseCase {
	return &EnrichContactsUseCase{Store: store, Boundaries: boundaries}
}


// Execute recalcula segmento, score e prioridade de todos os contatos numa
// passada só. Chamado sob demanda: entre chamadas os derivados podem ficar
// defasados, e tudo bem.
func (uc *EnrichContactsUseCase) Execute(ctx context.Context) (*EnrichOutput, error) {
	campaign := uc.Store.Get()
	out := &EnrichOutput{}
	now := time.Now()

	for _, ct := range campaign.Contacts {
		var scheduled *time.Time
		if slot := campaign.FindSlotByID(ct.SlotID); slot != nil {
			scheduled = &slot.StartTime
		}

		ct.Enriched = true
		ct.Segment = scoring.Segment(scheduled, uc.Boundaries)
		ct.PriorityScore = scoring.Score(ct, scheduled, uc.Boundaries)
		ct.Priority = scoring.Priority(ct.PriorityScore)
		ct.UpdatedAt = now

		out.Enriched++
		switch ct.Priority {
		case scoring.PriorityHigh:
			out.High++
		case scoring.PriorityMedium:
			out.Medium++
		default:
			out.Low++
		}
	}

	if out.Enriched > 0 {
		if err := uc.Store.Save(); err != nil {
			return nil, storageError(err)
		}
	}

	return out, nil
}
