package usecase

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/xavierca1/ligue-outreach/internal/entity"
)

type SyncRepliesUseCase struct {
	Store   CampaignStore
	Mailbox MailboxService
}

func NewSyncRepliesUseCase(store CampaignStore, mailboxSvc MailboxService) *SyncRepliesUseCase {
	return &SyncRepliesUseCase{Store: store, Mailbox: mailboxSvc}
}


// Execute puxa as respostas da caixa de entrada e casa cada uma com o
// contato remetente: marca replied, guarda a mensagem no histórico e
// classifica o sentimento por palavras-chave.
func (uc *SyncRepliesUseCase) Execute(ctx context.Context, since *time.Time) (*SyncRepliesOutput, error) {
	campaign := uc.Store.Get()
	out := &SyncRepliesOutput{}

	if len(campaign.Contacts) == 0 {
		return out, nil
	}

	emails := make([]string, 0, len(campaign.Contacts))
	for _, ct := range campaign.Contacts {
		emails = append(emails, ct.Email)
	}

	replies, err := uc.Mailbox.GetReplies(emails, since)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "MAILBOX_ERROR",
			Message: "falha ao buscar respostas: " + err.Error(),
		}
	}

	mutated := false
	for _, reply := range replies {
		ct := campaign.FindContactByEmail(senderAddress(reply.From))
		if ct == nil {
			continue
		}
		out.Matched++

		if alreadyRecorded(ct, reply.Subject, reply.ReceivedAt) {
			continue
		}

		ct.Replied = true
		ct.ReplyHistory = append(ct.ReplyHistory, entity.ReplyNote{
			Subject:    reply.Subject,
			Preview:    reply.Preview,
			ReceivedAt: reply.ReceivedAt,
		})
		ct.ReplySentiment = classifySentiment(reply.Subject + " " + reply.Preview)
		if ct.ReplySentiment == "negative" {
			ct.ReplyCategory = "not_interested"
		} else if ct.ReplyCategory == "" {
			ct.ReplyCategory = "replied"
		}
		ct.UpdatedAt = time.Now()

		out.NewReplies++
		mutated = true
	}

	if mutated {
		if err := uc.Store.Save(); err != nil {
			return nil, storageError(err)
		}
	}

	return out, nil
}


func senderAddress(from string) string {
	if addr, err := mail.ParseAddress(from); err == nil {
		return strings.ToLower(addr.Address)
	}
	return strings.ToLower(strings.TrimSpace(from))
}

func alreadyRecorded(ct *entity.Contact, subject string, receivedAt time.Time) bool {
	for _, note := range ct.ReplyHistory {
		if note.Subject == subject && note.ReceivedAt.Equal(receivedAt) {
			return true
		}
	}
	return false
}


var positiveWords = []string{
	"sim", "claro", "interesse", "interessante", "obrigado", "obrigada",
	"perfeito", "ótimo", "vamos", "confirmo", "pode ser",
}

var negativeWords = []string{
	"não tenho interesse", "sem interesse", "remover", "descadastrar",
	"não quero", "parem", "spam", "cancelar",
}

func classifySentiment(text string) string {
	t := strings.ToLower(text)

	for _, w := range negativeWords {
		if strings.Contains(t, w) {
			return "negative"
		}
	}
	for _, w := range positiveWords {
		if strings.Contains(t, w) {
			return "positive"
		}
	}
	return "neutral"
}
