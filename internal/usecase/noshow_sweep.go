package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/infra/mail"
)

type NoShowSweepUseCase struct {
	Store           CampaignStore
	Tokens          TokenStore
	Email           EmailService
	TrackingBaseURL string
}

func NewNoShowSweepUseCase(store CampaignStore, tokens TokenStore, email EmailService, trackingBaseURL string) *NoShowSweepUseCase {
	return &NoShowSweepUseCase{
		Store:           store,
		Tokens:          tokens,
		Email:           email,
		TrackingBaseURL: trackingBaseURL,
	}
}


// Execute varre a fila de no-show e envia o email de re-engajamento de toda
// task vencida. Falha de envio não marca a task: ela fica para o próximo
// sweep (at-least-once). Task cujo contato já não é mais no_show é marcada
// como skipped — correção manual vence a fila.
func (uc *NoShowSweepUseCase) Execute(ctx context.Context) (*SweepOutput, error) {
	campaign := uc.Store.Get()
	out := &SweepOutput{}
	now := time.Now()
	mutated := false

	for _, task := range campaign.Pending {
		if task.Sent || task.SendAt.After(now) {
			continue
		}

		ct := campaign.FindContactByID(task.ContactID)
		if ct == nil || ct.AttendanceStatus != entity.AttendanceNoShow {
			task.Sent = true
			task.Skipped = true
			out.Skipped++
			mutated = true
			continue
		}

		rescheduleTok, err1 := uc.Tokens.Issue(ct.ID, entity.ActionReschedule)
		contactTok, err2 := uc.Tokens.Issue(ct.ID, entity.ActionContactRequest)
		if err := firstErr(err1, err2); err != nil {
			out.Failed++
			out.Errors = append(out.Errors, ItemError{
				ContactID: ct.ID, Email: ct.Email,
				Error: fmt.Sprintf("erro ao emitir token de clique: %v", err),
			})
			continue
		}

		data := mail.NoShowEmailData{
			Name:          ct.FirstName,
			RescheduleURL: trackURL(uc.TrackingBaseURL, rescheduleTok.Token),
			ContactURL:    trackURL(uc.TrackingBaseURL, contactTok.Token),
		}

		err := uc.Email.SendTemplate(ct.Email, "Sentimos sua falta! Vamos remarcar?", "no_show", data)
		if err != nil {
			out.Failed++
			out.Errors = append(out.Errors, ItemError{ContactID: ct.ID, Email: ct.Email, Error: err.Error()})
			continue // fica para o próximo sweep
		}

		sentAt := time.Now()
		task.Sent = true
		task.SentAt = &sentAt

		ct.NoShowEmailSentAt = &sentAt
		if ct.Status == entity.StatusInvitationSent {
			ct.Status = entity.StatusFollowupSent
		}
		ct.UpdatedAt = sentAt

		out.Sent++
		mutated = true
	}

	if mutated {
		if err := uc.Store.Save(); err != nil {
			return out, storageError(err)
		}
	}

	return out, nil
}
