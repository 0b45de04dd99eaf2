package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/ligue-outreach/internal/entity"
)

// Quanto tempo depois da falta o email de no-show é enviado.
const noShowDelay = 1 * time.Hour

type ProcessAttendanceUseCase struct {
	Store CampaignStore
}

func NewProcessAttendanceUseCase(store CampaignStore) *ProcessAttendanceUseCase {
	return &ProcessAttendanceUseCase{Store: store}
}


// Execute resolve a presença de um contato a partir dos participantes da
// reunião encerrada. Reprocessar com dados novos sobrescreve a presença
// anterior — é a única forma de ela mudar depois de definida.
func (uc *ProcessAttendanceUseCase) Execute(ctx context.Context, input AttendanceInput) (*AttendanceOutput, error) {
	campaign := uc.Store.Get()

	ct := campaign.FindContactByMeetingID(input.MeetingID)
	if ct == nil {
		return nil, NewNotFound("CONTACT_NOT_FOUND",
			"nenhum contato com a reunião "+input.MeetingID)
	}

	slotMinutes := 30
	var scheduledAt time.Time
	if slot := campaign.FindSlotByID(ct.SlotID); slot != nil {
		slotMinutes = slot.DurationMinutes()
		scheduledAt = slot.StartTime
	}

	duration := matchedDuration(ct, input.Participants)

	switch {
	case duration*3 >= slotMinutes*2:
		// Ficou pelo menos 2/3 da reunião.
		ct.AttendanceStatus = entity.AttendanceAttended
	case duration > 0:
		ct.AttendanceStatus = entity.AttendancePartial
	default:
		ct.AttendanceStatus = entity.AttendanceNoShow
	}
	ct.AttendanceDuration = duration
	ct.UpdatedAt = time.Now()

	if ct.AttendanceStatus == entity.AttendanceNoShow {
		uc.enqueueNoShow(campaign, ct, scheduledAt)
	}
	// Se era no_show e o reprocessamento corrigiu, a task pendente vira
	// skipped no próximo sweep, que re-checa o status antes de enviar.

	if err := uc.Store.Save(); err != nil {
		return nil, storageError(err)
	}

	return &AttendanceOutput{
		ContactID:          ct.ID,
		Email:              ct.Email,
		AttendanceStatus:   ct.AttendanceStatus,
		AttendanceDuration: ct.AttendanceDuration,
	}, nil
}


// enqueueNoShow agenda o follow-up de falta para daqui a uma hora.
// Nunca enfileira duas vezes para a mesma reunião perdida.
func (uc *ProcessAttendanceUseCase) enqueueNoShow(campaign *entity.Campaign, ct *entity.Contact, scheduledAt time.Time) {
	for _, task := range campaign.Pending {
		if task.ContactID == ct.ID && task.ScheduledAt.Equal(scheduledAt) {
			return
		}
	}

	campaign.Pending = append(campaign.Pending, &entity.NoShowTask{
		ID:          uuid.New().String(),
		ContactID:   ct.ID,
		ScheduledAt: scheduledAt,
		SendAt:      time.Now().Add(noShowDelay),
	})
}


// matchedDuration devolve a maior permanência entre os participantes que
// batem com o contato (email, ou nome quando o email veio vazio).
func matchedDuration(ct *entity.Contact, participants []ParticipantInput) int {
	best := 0
	for _, p := range participants {
		matched := false
		if p.Email != "" {
			matched = strings.EqualFold(p.Email, ct.Email)
		} else if p.Name != "" {
			matched = strings.EqualFold(strings.TrimSpace(p.Name), ct.FullName())
		}
		if matched && p.DurationMinutes > best {
			best = p.DurationMinutes
		}
	}
	return best
}
