package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/ics"
	"github.com/xavierca1/ligue-outreach/internal/infra/mail"
)

type SendInvitationsUseCase struct {
	Store           CampaignStore
	Tokens          TokenStore
	Email           EmailService
	TrackingBaseURL string

	drain drainConfig
}

func NewSendInvitationsUseCase(store CampaignStore, tokens TokenStore, email EmailService, trackingBaseURL string, pause time.Duration) *SendInvitationsUseCase {
	return &SendInvitationsUseCase{
		Store:           store,
		Tokens:          tokens,
		Email:           email,
		TrackingBaseURL: trackingBaseURL,
		drain:           drainConfig{Pause: pause},
	}
}


// Execute envia o convite inicial (com .ics anexado e links rastreáveis)
// para todo contato com reunião criada e convite ainda não enviado.
func (uc *SendInvitationsUseCase) Execute(ctx context.Context) (*BatchOutput, error) {
	var fatal error

	out := runDrain(uc.drain, func(limit int) BatchOutput {
		var res BatchOutput
		if fatal != nil {
			return res
		}
		campaign := uc.Store.Get()
		mutated := false

		for _, ct := range campaign.Contacts {
			if res.Processed >= limit {
				break
			}
			if ct.Status != entity.StatusMeetingCreated || ct.ZoomMeetingID == "" || ct.InvitationSentAt != nil {
				continue
			}

			slot := campaign.FindSlotByID(ct.SlotID)
			if slot == nil {
				res.Failed++
				res.Errors = append(res.Errors, ItemError{
					ContactID: ct.ID, Email: ct.Email,
					Error: "slot " + ct.SlotID + " não existe na agenda",
				})
				continue
			}

			confirmURL, err1 := uc.issueURL(ct.ID, entity.ActionConfirm)
			rescheduleURL, err2 := uc.issueURL(ct.ID, entity.ActionReschedule)
			contactURL, err3 := uc.issueURL(ct.ID, entity.ActionContactRequest)
			if err := firstErr(err1, err2, err3); err != nil {
				res.Failed++
				res.Errors = append(res.Errors, ItemError{ContactID: ct.ID, Email: ct.Email, Error: err.Error()})
				continue
			}

			invite := ics.Render(ct, slot)
			data := mail.InvitationEmailData{
				Name:          ct.FirstName,
				Company:       ct.Company,
				Date:          slot.StartTime.Format("02/01/2006"),
				Time:          slot.StartTime.Format("15:04"),
				JoinURL:       ct.ZoomJoinURL,
				ConfirmURL:    confirmURL,
				RescheduleURL: rescheduleURL,
				ContactURL:    contactURL,
			}

			subject := fmt.Sprintf("Convite: reunião Ligue Medicina em %s", data.Date)
			err := uc.Email.SendTemplate(ct.Email, subject, "invitation", data, mail.Attachment{
				Filename: "convite.ics",
				MIMEType: ics.MIMEType,
				Content:  []byte(invite),
			})
			if err != nil {
				res.Errors = append(res.Errors, ItemError{ContactID: ct.ID, Email: ct.Email, Error: err.Error()})
				if errors.Is(err, entity.ErrRateLimited) {
					log.Printf("⚠️ Envio segurado pelo provedor, parando o lote (%d convites)", res.Processed)
					res.RateLimited = true
					break
				}
				res.Failed++
				continue
			}

			now := time.Now()
			ct.InvitationSentAt = &now
			ct.Status = entity.StatusInvitationSent
			ct.UpdatedAt = now

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

func (uc *SendInvitationsUseCase) issueURL(contactID, action string) (string, error) {
	t, err := uc.Tokens.Issue(contactID, action)
	if err != nil {
		return "", fmt.Errorf("erro ao emitir token de clique: %w", err)
	}
	return trackURL(uc.TrackingBaseURL, t.Token), nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
