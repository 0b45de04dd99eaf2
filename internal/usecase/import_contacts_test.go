package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/scheduling"
)

func TestImportContactsValidAndInvalid(t *testing.T) {
	storeFake := newFakeStore(nil)
	uc := NewImportContactsUseCase(storeFake)

	out, err := uc.Execute(context.Background(), []ContactInput{
		{FirstName: "Ana", LastName: "Souza", Email: "ANA@Example.com", Phone: "(11) 99999-9999"},
		{FirstName: "", Email: "sem-nome@example.com"},
		{FirstName: "Bia", Email: "email-invalido"},
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, out.Imported)
	assert.Equal(t, 2, out.Skipped)
	assert.Len(t, out.Errors, 2)

	ct := storeFake.campaign.Contacts[0]
	assert.Equal(t, "ana@example.com", ct.Email) // email normalizado
	assert.Equal(t, entity.StatusPending, ct.Status)
	assert.NotEmpty(t, ct.ID)
}

func TestImportContactsSkipsDuplicates(t *testing.T) {
	storeFake := newFakeStore(nil)
	uc := NewImportContactsUseCase(storeFake)

	_, err := uc.Execute(context.Background(), []ContactInput{
		{FirstName: "Ana", Email: "ana@example.com"},
	})
	assert.NoError(t, err)

	out, err := uc.Execute(context.Background(), []ContactInput{
		{FirstName: "Ana de novo", Email: "Ana@example.com"},
	})
	assert.NoError(t, err)
	assert.Equal(t, 0, out.Imported)
	assert.Equal(t, 1, out.Skipped)
	assert.Len(t, storeFake.campaign.Contacts, 1)
}

func TestImportContactsFromCSV(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "contatos.csv")
	content := "first_name,last_name,company,email,phone,city,tags\n" +
		"Ana,Souza,Clínica Sul,ana@example.com,11999999999,São Paulo,vip|indicação\n" +
		"Bia,Lima,,bia@example.com,,,\n"
	assert.NoError(t, os.WriteFile(csvPath, []byte(content), 0o644))

	storeFake := newFakeStore(nil)
	uc := NewImportContactsUseCase(storeFake)

	out, err := uc.ExecuteFile(context.Background(), csvPath)

	assert.NoError(t, err)
	assert.Equal(t, 2, out.Imported)
	assert.Equal(t, []string{"vip", "indicação"}, storeFake.campaign.Contacts[0].Tags)
}

func TestImportContactsFileErrors(t *testing.T) {
	uc := NewImportContactsUseCase(newFakeStore(nil))

	_, err := uc.ExecuteFile(context.Background(), "")
	assert.True(t, IsDomainError(err))
	assert.Equal(t, "VALIDATION_ERROR", err.(*DomainError).Code)

	_, err = uc.ExecuteFile(context.Background(), "/tmp/nao-existe-mesmo.csv")
	assert.True(t, IsDomainError(err))
	assert.Equal(t, "FILE_NOT_FOUND", err.(*DomainError).Code)
}

// Fluxo de agendamento: cada pendente leva um slot, em ordem de lista.
func TestScheduleContactsAssignsSlotsInOrder(t *testing.T) {
	storeFake := newFakeStore(nil)
	importUC := NewImportContactsUseCase(storeFake)
	_, err := importUC.Execute(context.Background(), []ContactInput{
		{FirstName: "Ana", Email: "ana@example.com"},
		{FirstName: "Bia", Email: "bia@example.com"},
		{FirstName: "Caio", Email: "caio@example.com"},
	})
	assert.NoError(t, err)

	cfg := scheduling.DefaultConfig()
	uc := NewScheduleContactsUseCase(storeFake, cfg)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) // segunda-feira
	out, err := uc.Execute(context.Background(), start)

	assert.NoError(t, err)
	assert.Equal(t, 3, out.SlotsCreated)
	assert.Equal(t, 3, out.Assigned)

	campaign := storeFake.campaign
	for i, ct := range campaign.Contacts {
		assert.Equal(t, entity.StatusScheduled, ct.Status)
		assert.Equal(t, campaign.Slots[i].ID, ct.SlotID)
		assert.Equal(t, ct.ID, campaign.Slots[i].ContactID)
		assert.Equal(t, entity.SlotScheduled, campaign.Slots[i].Status)
	}

	// Slots consecutivos de 30 minutos a partir das 9h.
	assert.Equal(t, "slot-20260302-0900", campaign.Slots[0].ID)
	assert.Equal(t, "slot-20260302-0930", campaign.Slots[1].ID)
	assert.Equal(t, "slot-20260302-1000", campaign.Slots[2].ID)
}

// Re-agendar com um novo lote continua a agenda de onde ela parou.
func TestScheduleContactsContinuesExistingAgenda(t *testing.T) {
	storeFake := newFakeStore(nil)
	importUC := NewImportContactsUseCase(storeFake)
	scheduleUC := NewScheduleContactsUseCase(storeFake, scheduling.DefaultConfig())

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	_, _ = importUC.Execute(context.Background(), []ContactInput{{FirstName: "Ana", Email: "ana@example.com"}})
	_, err := scheduleUC.Execute(context.Background(), start)
	assert.NoError(t, err)

	_, _ = importUC.Execute(context.Background(), []ContactInput{{FirstName: "Bia", Email: "bia@example.com"}})
	out, err := scheduleUC.Execute(context.Background(), start)
	assert.NoError(t, err)
	assert.Equal(t, 1, out.Assigned)

	slots := storeFake.campaign.Slots
	assert.Len(t, slots, 2)
	assert.Equal(t, "slot-20260302-0930", slots[1].ID) // não sobrepõe o primeiro
}

func TestScheduleContactsNothingPending(t *testing.T) {
	storeFake := newFakeStore(nil)
	uc := NewScheduleContactsUseCase(storeFake, scheduling.DefaultConfig())

	out, err := uc.Execute(context.Background(), time.Now())

	assert.NoError(t, err)
	assert.Equal(t, 0, out.Assigned)
	assert.Equal(t, 0, storeFake.saves)
}
