package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/infra/integration/zoom"
)

type CreateMeetingsUseCase struct {
	Store    CampaignStore
	Meetings MeetingProvider
	Timezone string

	drain drainConfig
}

func NewCreateMeetingsUseCase(store CampaignStore, meetings MeetingProvider, timezone string, pause time.Duration) *CreateMeetingsUseCase {
	return &CreateMeetingsUseCase{
		Store:    store,
		Meetings: meetings,
		Timezone: timezone,
		drain:    drainConfig{Pause: pause},
	}
}


// Execute provisiona reuniões no Zoom para todo contato agendado que ainda
// não tem uma. Idempotente: quem já tem zoom_meeting_id é pulado, então
// rodar duas vezes seguidas processa zero na segunda.
func (uc *CreateMeetingsUseCase) Execute(ctx context.Context) (*BatchOutput, error) {
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
			if ct.Status != entity.StatusScheduled || ct.SlotID == "" || ct.ZoomMeetingID != "" {
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

			meeting, err := uc.Meetings.CreateMeeting(zoom.CreateMeetingInput{
				HostEmail:       slot.HostEmail,
				Topic:           fmt.Sprintf("Ligue Medicina x %s", topicName(ct)),
				StartTime:       slot.StartTime,
				DurationMinutes: slot.DurationMinutes(),
				Timezone:        uc.Timezone,
			})
			if err != nil {
				res.Errors = append(res.Errors, ItemError{ContactID: ct.ID, Email: ct.Email, Error: err.Error()})
				if errors.Is(err, entity.ErrRateLimited) {
					log.Printf("⚠️ Zoom pediu para segurar, parando o lote (%d criadas)", res.Processed)
					res.RateLimited = true
					break
				}
				res.Failed++
				continue
			}

			ct.ZoomMeetingID = meeting.ID
			ct.ZoomJoinURL = meeting.JoinURL
			ct.ZoomStartURL = meeting.StartURL
			ct.Status = entity.StatusMeetingCreated
			ct.UpdatedAt = now

			slot.Status = entity.SlotMeetingCreated

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

func topicName(ct *entity.Contact) string {
	if ct.Company != "" {
		return ct.Company
	}
	return ct.FullName()
}
