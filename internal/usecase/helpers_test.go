package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/infra/integration/mailbox"
	"github.com/xavierca1/ligue-outreach/internal/infra/integration/zoom"
	"github.com/xavierca1/ligue-outreach/internal/infra/mail"
	"github.com/xavierca1/ligue-outreach/internal/infra/queue"
	"github.com/xavierca1/ligue-outreach/internal/infra/store"
)

// fakeCampaignStore mantém o agregado em memória, sem disco.
type fakeCampaignStore struct {
	campaign *entity.Campaign
	saves    int
	saveErr  error
}

func newFakeStore(c *entity.Campaign) *fakeCampaignStore {
	if c == nil {
		c = &entity.Campaign{}
	}
	return &fakeCampaignStore{campaign: c}
}

func (s *fakeCampaignStore) Load() error          { return nil }
func (s *fakeCampaignStore) Get() *entity.Campaign { return s.campaign }
func (s *fakeCampaignStore) Save() error {
	s.saves++
	return s.saveErr
}

// fakeTokenStore emite tokens sequenciais previsíveis e honra o take único.
type fakeTokenStore struct {
	seq      int
	tokens   map[string]entity.ClickToken
	issueErr error
}

func newFakeTokens() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]entity.ClickToken)}
}

func (s *fakeTokenStore) Issue(contactID, action string) (entity.ClickToken, error) {
	if s.issueErr != nil {
		return entity.ClickToken{}, s.issueErr
	}
	s.seq++
	t := entity.ClickToken{
		Token:     fmt.Sprintf("tok-%d", s.seq),
		ContactID: contactID,
		Action:    action,
		CreatedAt: time.Now(),
	}
	s.tokens[t.Token] = t
	return t, nil
}

func (s *fakeTokenStore) Take(token string) (entity.ClickToken, error) {
	t, ok := s.tokens[token]
	if !ok {
		return entity.ClickToken{}, store.ErrTokenNotFound
	}
	delete(s.tokens, token)
	return t, nil
}

// MockMeetingProvider
type MockMeetingProvider struct {
	mock.Mock
}

func (m *MockMeetingProvider) CreateMeeting(input zoom.CreateMeetingInput) (zoom.MeetingOutput, error) {
	args := m.Called(input)
	return args.Get(0).(zoom.MeetingOutput), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Send(to, subject, htmlBody string, attachments ...mail.Attachment) error {
	args := m.Called(to, subject, htmlBody, attachments)
	return args.Error(0)
}

func (m *MockEmailService) SendTemplate(to, subject, name string, data interface{}, attachments ...mail.Attachment) error {
	args := m.Called(to, subject, name, data, attachments)
	return args.Error(0)
}

// MockUrgentProducer
type MockUrgentProducer struct {
	mock.Mock
}

func (m *MockUrgentProducer) PublishUrgentContact(ctx context.Context, payload queue.UrgentContactPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// MockMailboxService
type MockMailboxService struct {
	mock.Mock
}

func (m *MockMailboxService) GetReplies(senders []string, since *time.Time) ([]mailbox.Reply, error) {
	args := m.Called(senders, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]mailbox.Reply), args.Error(1)
}

// ============ BUILDERS ============

func contactWithSlot(id string, status entity.ContactStatus, slotStart time.Time) (*entity.Contact, *entity.Slot) {
	slot := &entity.Slot{
		ID:        "slot-" + id,
		Date:      slotStart.Format("2006-01-02"),
		StartTime: slotStart,
		EndTime:   slotStart.Add(30 * time.Minute),
		HostEmail: "comercial@liguemedicina.com",
		Status:    entity.SlotScheduled,
		ContactID: id,
	}
	ct := &entity.Contact{
		ID:        id,
		FirstName: "Contato",
		LastName:  id,
		Email:     id + "@example.com",
		Status:    status,
		SlotID:    slot.ID,
	}
	return ct, slot
}

func noSleep(time.Duration) {}
