package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/infra/mail"
)

type SendRemindersUseCase struct {
	Store CampaignStore
	Email EmailService

	drain drainConfig
}

func NewSendRemindersUseCase(store CampaignStore, email EmailService, pause time.Duration) *SendRemindersUseCase {
	return &SendRemindersUseCase{
		Store: store,
		Email: email,
		drain: drainConfig{Pause: pause},
	}
}


// Execute manda o lembrete de véspera: convite já enviado, reunião nas
// próximas 24h, lembrete ainda não mandado. Não avança o status — lembrete
// é só carimbo de data.
func (uc *SendRemindersUseCase) Execute(ctx context.Context) (*BatchOutput, error) {
	var fatal error

	out := runDrain(uc.drain, func(limit int) BatchOutput {
		var res BatchOutput
		if fatal != nil {
			return res
		}
		campaign := uc.Store.Get()
		mutated := false
		now := time.Now()

		for _, ct := range campaign.Contacts {
			if res.Processed >= limit {
				break
			}
			if ct.Status != entity.StatusInvitationSent || ct.ReminderSentAt != nil {
				continue
			}

			slot := campaign.FindSlotByID(ct.SlotID)
			if slot == nil || slot.StartTime.Before(now) || slot.StartTime.After(now.Add(24*time.Hour)) {
				continue
			}

			data := mail.ReminderEmailData{
				Name:    ct.FirstName,
				Date:    slot.StartTime.Format("02/01/2006"),
				Time:    slot.StartTime.Format("15:04"),
				JoinURL: ct.ZoomJoinURL,
			}

			err := uc.Email.SendTemplate(ct.Email, "Lembrete: sua reunião com a Ligue é amanhã", "reminder", data)
			if err != nil {
				res.Errors = append(res.Errors, ItemError{ContactID: ct.ID, Email: ct.Email, Error: err.Error()})
				if errors.Is(err, entity.ErrRateLimited) {
					log.Printf("⚠️ Envio segurado pelo provedor, parando o lote (%d lembretes)", res.Processed)
					res.RateLimited = true
					break
				}
				res.Failed++
				continue
			}

			sent := time.Now()
			ct.ReminderSentAt = &sent
			ct.UpdatedAt = sent

			mutated = true
			res.Processed++
		}

		if mutated {
			if err := uc.Store.Save(); err != nil {
				fatal = storageError(err)
			}
		}
		return res
	})

	if fatal != nil {
		return &out, fatal
	}
	return &out, nil
}
