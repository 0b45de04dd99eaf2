package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/infra/mail"
)

type SendFollowupsUseCase struct {
	Store           CampaignStore
	Tokens          TokenStore
	Email           EmailService
	TrackingBaseURL string

	drain drainConfig
}

func NewSendFollowupsUseCase(store CampaignStore, tokens TokenStore, email EmailService, trackingBaseURL string, pause time.Duration) *SendFollowupsUseCase {
	return &SendFollowupsUseCase{
		Store:           store,
		Tokens:          tokens,
		Email:           email,
		TrackingBaseURL: trackingBaseURL,
		drain:           drainConfig{Pause: pause},
	}
}


// Execute fecha o caminho feliz: follow-up de agradecimento para quem
// compareceu (inteiro ou parcial). Quem faltou é tratado pela fila de
// no-show, não por aqui.
func (uc *SendFollowupsUseCase) Execute(ctx context.Context) (*BatchOutput, error) {
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
			if ct.Status != entity.StatusInvitationSent || ct.FollowupSentAt != nil {
				continue
			}
			if ct.AttendanceStatus != entity.AttendanceAttended && ct.AttendanceStatus != entity.AttendancePartial {
				continue
			}

			slot := campaign.FindSlotByID(ct.SlotID)
			if slot == nil || slot.EndTime.After(now) {
				continue
			}

			token, err := uc.Tokens.Issue(ct.ID, entity.ActionContactRequest)
			if err != nil {
				res.Failed++
				res.Errors = append(res.Errors, ItemError{
					ContactID: ct.ID, Email: ct.Email,
					Error: fmt.Sprintf("erro ao emitir token de clique: %v", err),
				})
				continue
			}

			data := mail.FollowupEmailData{
				Name:       ct.FirstName,
				ContactURL: trackURL(uc.TrackingBaseURL, token.Token),
			}

			err = uc.Email.SendTemplate(ct.Email, "Obrigado pela conversa! Próximos passos", "followup", data)
			if err != nil {
				res.Errors = append(res.Errors, ItemError{ContactID: ct.ID, Email: ct.Email, Error: err.Error()})
				if errors.Is(err, entity.ErrRateLimited) {
					log.Printf("⚠️ Envio segurado pelo provedor, parando o lote (%d follow-ups)", res.Processed)
					res.RateLimited = true
					break
				}
				res.Failed++
				continue
			}

			sent := time.Now()
			ct.FollowupSentAt = &sent
			ct.Status = entity.StatusFollowupSent
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
