package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/scheduling"
)

type ScheduleContactsUseCase struct {
	Store   CampaignStore
	SlotCfg scheduling.Config
}

func NewScheduleContactsUseCase(store CampaignStore, cfg scheduling.Config) *ScheduleContactsUseCase {
	return &ScheduleContactsUseCase{Store: store, SlotCfg: cfg}
}


// Execute atribui um slot a cada contato pendente, em ordem de lista: o
// primeiro pendente leva o primeiro slot. Gera slots novos se a agenda
// atual não tiver disponíveis suficientes.
func (uc *ScheduleContactsUseCase) Execute(ctx context.Context, start time.Time) (*ScheduleOutput, error) {
	campaign := uc.Store.Get()
	out := &ScheduleOutput{}

	var pending []*entity.Contact
	for _, ct := range campaign.Contacts {
		if ct.Status == entity.StatusPending && ct.SlotID == "" {
			pending = append(pending, ct)
		}
	}
	if len(pending) == 0 {
		return out, nil
	}

	var available []*entity.Slot
	for _, s := range campaign.Slots {
		if s.Status == entity.SlotAvailable {
			available = append(available, s)
		}
	}

	if missing := len(pending) - len(available); missing > 0 {
		genStart := start
		if n := len(campaign.Slots); n > 0 {
			// Continua a agenda de onde ela parou.
			last := campaign.Slots[n-1].EndTime
			if last.After(genStart) {
				genStart = last
			}
		}

		created := scheduling.Generate(genStart, missing, uc.SlotCfg)
		campaign.Slots = append(campaign.Slots, created...)
		available = append(available, created...)
		out.SlotsCreated = len(created)
	}

	now := time.Now()
	for i, ct := range pending {
		slot := available[i]
		slot.Status = entity.SlotScheduled
		slot.ContactID = ct.ID

		ct.SlotID = slot.ID
		ct.Status = entity.StatusScheduled
		ct.UpdatedAt = now
		out.Assigned++
	}

	if err := uc.Store.Save(); err != nil {
		return nil, storageError(err)
	}

	return out, nil
}
