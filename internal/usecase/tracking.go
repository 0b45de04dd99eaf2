package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/infra/queue"
	"github.com/xavierca1/ligue-outreach/internal/infra/store"
	"github.com/xavierca1/ligue-outreach/internal/scoring"
)

type ResolveClickUseCase struct {
	Store  CampaignStore
	Tokens TokenStore

	// Opcional: sem producer, o pedido urgente só não vira chamado no CRM.
	Producer UrgentProducer
}

func NewResolveClickUseCase(campaignStore CampaignStore, tokens TokenStore, producer UrgentProducer) *ResolveClickUseCase {
	return &ResolveClickUseCase{
		Store:    campaignStore,
		Tokens:   tokens,
		Producer: producer,
	}
}


// Execute consome o token (take atômico: resolve e apaga numa operação só)
// e aplica o efeito da ação no contato. Segundo clique no mesmo link cai
// em TOKEN_NOT_FOUND.
func (uc *ResolveClickUseCase) Execute(ctx context.Context, token string) (*ResolveClickOutput, error) {
	t, err := uc.Tokens.Take(token)
	if err != nil {
		if errors.Is(err, store.ErrTokenNotFound) {
			return nil, NewNotFound("TOKEN_NOT_FOUND", "token expirado ou já utilizado")
		}
		return nil, &TechnicalError{Code: "TOKEN_STORE_ERROR", Message: err.Error()}
	}

	campaign := uc.Store.Get()
	ct := campaign.FindContactByID(t.ContactID)
	if ct == nil {
		return nil, NewNotFound("CONTACT_NOT_FOUND",
			fmt.Sprintf("token aponta para contato inexistente (%s)", t.ContactID))
	}

	ct.Clicks++
	ct.UpdatedAt = time.Now()

	switch t.Action {
	case entity.ActionContactRequest:
		// Pedido de contato imediato fura a fila: prioridade máxima já,
		// sem esperar o próximo enriquecimento.
		ct.PriorityScore = 100
		ct.Priority = scoring.PriorityHigh
		uc.publishUrgent(ctx, campaign, ct)

	case entity.ActionConfirm:
		ct.ReplyCategory = "confirmed"

	case entity.ActionUnsubscribe:
		if !hasTag(ct.Tags, "unsubscribed") {
			ct.Tags = append(ct.Tags, "unsubscribed")
		}
	}

	if err := uc.Store.Save(); err != nil {
		return nil, storageError(err)
	}

	return &ResolveClickOutput{ContactID: t.ContactID, Action: t.Action}, nil
}

func (uc *ResolveClickUseCase) publishUrgent(ctx context.Context, campaign *entity.Campaign, ct *entity.Contact) {
	if uc.Producer == nil {
		return
	}

	payload := queue.UrgentContactPayload{
		ContactID: ct.ID,
		Name:      ct.FullName(),
		Email:     ct.Email,
		Phone:     ct.Phone,
		Company:   ct.Company,
		Action:    entity.ActionContactRequest,
		MeetingID: ct.ZoomMeetingID,
		ClickedAt: time.Now(),
	}
	if slot := campaign.FindSlotByID(ct.SlotID); slot != nil {
		payload.MeetingStart = &slot.StartTime
	}

	// Best-effort: o clique já foi registrado, o chamado não pode derrubar a resposta.
	if err := uc.Producer.PublishUrgentContact(ctx, payload); err != nil {
		log.Printf("⚠️ Falha ao publicar contato urgente de %s: %v", ct.Email, err)
	}
}


func trackURL(base, token string) string {
	return fmt.Sprintf("%s/t/%s", strings.TrimRight(base, "/"), token)
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
