package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/infra/integration/mailbox"
	"github.com/xavierca1/ligue-outreach/internal/infra/integration/zoom"
	"github.com/xavierca1/ligue-outreach/internal/infra/mail"
	"github.com/xavierca1/ligue-outreach/internal/infra/queue"
)

// CampaignStore é o documento único da campanha, injetado para os testes
// poderem trocar por um fake em memória.
type CampaignStore interface {
	Load() error
	Get() *entity.Campaign
	Save() error
}

type TokenStore interface {
	Issue(contactID, action string) (entity.ClickToken, error)
	Take(token string) (entity.ClickToken, error)
}

type MeetingProvider interface {
	CreateMeeting(input zoom.CreateMeetingInput) (zoom.MeetingOutput, error)
}

type EmailService interface {
	Send(to, subject, htmlBody string, attachments ...mail.Attachment) error
	SendTemplate(to, subject, name string, data interface{}, attachments ...mail.Attachment) error
}

type MailboxService interface {
	GetReplies(senders []string, since *time.Time) ([]mailbox.Reply, error)
}

type UrgentProducer interface {
	PublishUrgentContact(ctx context.Context, payload queue.UrgentContactPayload) error
}
