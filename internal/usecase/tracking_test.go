package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/infra/queue"
	"github.com/xavierca1/ligue-outreach/internal/scoring"
)

func TestResolveClickTokenIsSingleUse(t *testing.T) {
	ct := &entity.Contact{ID: "c1", FirstName: "Ana", Email: "ana@example.com", Status: entity.StatusInvitationSent}
	storeFake := newFakeStore(&entity.Campaign{Contacts: []*entity.Contact{ct}})
	tokens := newFakeTokens()
	issued, _ := tokens.Issue(ct.ID, entity.ActionConfirm)

	uc := NewResolveClickUseCase(storeFake, tokens, nil)

	out, err := uc.Execute(context.Background(), issued.Token)
	assert.NoError(t, err)
	assert.Equal(t, ct.ID, out.ContactID)
	assert.Equal(t, entity.ActionConfirm, out.Action)
	assert.Equal(t, 1, ct.Clicks)
	assert.Equal(t, "confirmed", ct.ReplyCategory)

	// Segundo clique no mesmo link: o token já foi consumido.
	out, err = uc.Execute(context.Background(), issued.Token)
	assert.Nil(t, out)
	assert.True(t, IsDomainError(err))
	assert.Equal(t, "TOKEN_NOT_FOUND", err.(*DomainError).Code)
	assert.Equal(t, 1, ct.Clicks)
}

// Pedido de contato imediato: prioridade máxima e evento na fila.
func TestResolveClickContactRequestEscalates(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	ct, slot := contactWithSlot("c1", entity.StatusInvitationSent, start)
	ct.ZoomMeetingID = "987"
	storeFake := newFakeStore(&entity.Campaign{
		Contacts: []*entity.Contact{ct},
		Slots:    []*entity.Slot{slot},
	})
	tokens := newFakeTokens()
	issued, _ := tokens.Issue(ct.ID, entity.ActionContactRequest)

	mockProducer := new(MockUrgentProducer)
	mockProducer.On("PublishUrgentContact", mock.Anything, mock.MatchedBy(func(p queue.UrgentContactPayload) bool {
		return p.ContactID == ct.ID && p.MeetingID == "987" && p.MeetingStart != nil
	})).Return(nil)

	uc := NewResolveClickUseCase(storeFake, tokens, mockProducer)
	out, err := uc.Execute(context.Background(), issued.Token)

	assert.NoError(t, err)
	assert.Equal(t, entity.ActionContactRequest, out.Action)
	assert.Equal(t, 100, ct.PriorityScore)
	assert.Equal(t, scoring.PriorityHigh, ct.Priority)
	mockProducer.AssertExpectations(t)
}

// A fila fora do ar não pode derrubar a resposta do clique.
func TestResolveClickPublishFailureIsBestEffort(t *testing.T) {
	ct := &entity.Contact{ID: "c1", FirstName: "Ana", Email: "ana@example.com"}
	storeFake := newFakeStore(&entity.Campaign{Contacts: []*entity.Contact{ct}})
	tokens := newFakeTokens()
	issued, _ := tokens.Issue(ct.ID, entity.ActionContactRequest)

	mockProducer := new(MockUrgentProducer)
	mockProducer.On("PublishUrgentContact", mock.Anything, mock.Anything).
		Return(assert.AnError)

	uc := NewResolveClickUseCase(storeFake, tokens, mockProducer)
	out, err := uc.Execute(context.Background(), issued.Token)

	assert.NoError(t, err)
	assert.Equal(t, 100, ct.PriorityScore)
	assert.NotNil(t, out)
}

func TestResolveClickUnsubscribeTagsOnce(t *testing.T) {
	ct := &entity.Contact{ID: "c1", FirstName: "Ana", Email: "ana@example.com"}
	storeFake := newFakeStore(&entity.Campaign{Contacts: []*entity.Contact{ct}})
	tokens := newFakeTokens()

	uc := NewResolveClickUseCase(storeFake, tokens, nil)

	first, _ := tokens.Issue(ct.ID, entity.ActionUnsubscribe)
	_, err := uc.Execute(context.Background(), first.Token)
	assert.NoError(t, err)

	second, _ := tokens.Issue(ct.ID, entity.ActionUnsubscribe)
	_, err = uc.Execute(context.Background(), second.Token)
	assert.NoError(t, err)

	assert.Equal(t, []string{"unsubscribed"}, ct.Tags)
	assert.Equal(t, 2, ct.Clicks)
}
