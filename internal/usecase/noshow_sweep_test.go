package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/infra/mail"
)

func sweepFixture(sendAt time.Time) (*fakeCampaignStore, *entity.Contact, *entity.NoShowTask) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	ct, slot := contactWithSlot("c1", entity.StatusInvitationSent, start)
	ct.AttendanceStatus = entity.AttendanceNoShow

	task := &entity.NoShowTask{
		ID:          "task-1",
		ContactID:   ct.ID,
		ScheduledAt: start,
		SendAt:      sendAt,
	}

	storeFake := newFakeStore(&entity.Campaign{
		Contacts: []*entity.Contact{ct},
		Slots:    []*entity.Slot{slot},
		Pending:  []*entity.NoShowTask{task},
	})
	return storeFake, ct, task
}

func TestNoShowSweepSendsOverdueTask(t *testing.T) {
	storeFake, ct, task := sweepFixture(time.Now().Add(-time.Minute))
	tokens := newFakeTokens()

	mockEmail := new(MockEmailService)
	mockEmail.On("SendTemplate",
		ct.Email, mock.Anything, "no_show",
		mock.MatchedBy(func(data interface{}) bool {
			d, ok := data.(mail.NoShowEmailData)
			return ok && d.RescheduleURL != "" && d.ContactURL != ""
		}),
		mock.Anything,
	).Return(nil)

	uc := NewNoShowSweepUseCase(storeFake, tokens, mockEmail, "https://go.liguemedicina.com")
	out, err := uc.Execute(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, out.Sent)
	assert.True(t, task.Sent)
	assert.NotNil(t, task.SentAt)
	assert.NotNil(t, ct.NoShowEmailSentAt)
	assert.Equal(t, entity.StatusFollowupSent, ct.Status)

	// Segundo sweep: a task já foi, nada a fazer.
	again, err := uc.Execute(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, again.Sent)
	mockEmail.AssertNumberOfCalls(t, "SendTemplate", 1)
}

func TestNoShowSweepWaitsForSendAt(t *testing.T) {
	storeFake, _, task := sweepFixture(time.Now().Add(30 * time.Minute))

	mockEmail := new(MockEmailService)
	uc := NewNoShowSweepUseCase(storeFake, newFakeTokens(), mockEmail, "https://go.liguemedicina.com")
	out, err := uc.Execute(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 0, out.Sent)
	assert.False(t, task.Sent)
	mockEmail.AssertNotCalled(t, "SendTemplate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// Presença corrigida depois da falta: a task vira skipped, sem email.
func TestNoShowSweepSkipsWhenAttendanceChanged(t *testing.T) {
	storeFake, ct, task := sweepFixture(time.Now().Add(-time.Minute))
	ct.AttendanceStatus = entity.AttendanceAttended

	uc := NewNoShowSweepUseCase(storeFake, newFakeTokens(), new(MockEmailService), "https://go.liguemedicina.com")
	out, err := uc.Execute(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, out.Skipped)
	assert.True(t, task.Sent)
	assert.True(t, task.Skipped)
	assert.Nil(t, ct.NoShowEmailSentAt)
}

// Falha de envio deixa a task na fila para o próximo sweep.
func TestNoShowSweepRetriesOnSendFailure(t *testing.T) {
	storeFake, _, task := sweepFixture(time.Now().Add(-time.Minute))
	tokens := newFakeTokens()

	mockEmail := new(MockEmailService)
	mockEmail.On("SendTemplate", mock.Anything, mock.Anything, "no_show", mock.Anything, mock.Anything).
		Return(errors.New("SMTP indisponível")).Once()

	uc := NewNoShowSweepUseCase(storeFake, tokens, mockEmail, "https://go.liguemedicina.com")
	out, err := uc.Execute(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, out.Failed)
	assert.False(t, task.Sent)

	mockEmail.On("SendTemplate", mock.Anything, mock.Anything, "no_show", mock.Anything, mock.Anything).
		Return(nil).Once()
	retry, err := uc.Execute(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, retry.Sent)
	assert.True(t, task.Sent)
}
