package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/ligue-outreach/internal/entity"
)

type ImportContactsUseCase struct {
	Store CampaignStore
}

func NewImportContactsUseCase(store CampaignStore) *ImportContactsUseCase {
	return &ImportContactsUseCase{Store: store}
}


func (uc *ImportContactsUseCase) Execute(ctx context.Context, inputs []ContactInput) (*ImportOutput, error) {
	campaign := uc.Store.Get()
	out := &ImportOutput{}
	now := time.Now()

	for _, input := range inputs {
		if errs := ValidateContactInput(input); len(errs) > 0 {
			msgs := make([]string, 0, len(errs))
			for _, e := range errs {
				msgs = append(msgs, e.Error())
			}
			out.Skipped++
			out.Errors = append(out.Errors, ItemError{
				Email: input.Email,
				Error: strings.Join(msgs, "; "),
			})
			continue
		}

		email := strings.ToLower(strings.TrimSpace(input.Email))
		if existing := campaign.FindContactByEmail(email); existing != nil {
			out.Skipped++
			out.Errors = append(out.Errors, ItemError{
				ContactID: existing.ID,
				Email:     email,
				Error:     "contato já importado",
			})
			continue
		}

		campaign.Contacts = append(campaign.Contacts, &entity.Contact{
			ID:        uuid.New().String(),
			FirstName: strings.TrimSpace(input.FirstName),
			LastName:  strings.TrimSpace(input.LastName),
			Company:   strings.TrimSpace(input.Company),
			Email:     email,
			Phone:     strings.TrimSpace(input.Phone),
			City:      strings.TrimSpace(input.City),
			Tags:      input.Tags,
			Status:    entity.StatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		})
		out.Imported++
	}

	if out.Imported > 0 {
		if err := uc.Store.Save(); err != nil {
			return nil, storageError(err)
		}
	}

	return out, nil
}


// ExecuteFile importa contatos de um CSV com cabeçalho
// (first_name,last_name,company,email,phone,city,tags).
func (uc *ImportContactsUseCase) ExecuteFile(ctx context.Context, path string) (*ImportOutput, error) {
	if strings.TrimSpace(path) == "" {
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: "caminho do arquivo não informado",
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &DomainError{
			Code:    "FILE_NOT_FOUND",
			Message: fmt.Sprintf("não consegui abrir %s: %v", path, err),
		}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, &DomainError{
			Code:    "INVALID_FILE",
			Message: "CSV inválido: " + err.Error(),
		}
	}
	if len(records) < 2 {
		return nil, &DomainError{
			Code:    "INVALID_FILE",
			Message: "CSV sem linhas de dados",
		}
	}

	// Mapeia o cabeçalho para aceitar colunas em qualquer ordem.
	col := map[string]int{}
	for i, name := range records[0] {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	inputs := make([]ContactInput, 0, len(records)-1)
	for _, row := range records[1:] {
		input := ContactInput{
			FirstName: field(row, "first_name"),
			LastName:  field(row, "last_name"),
			Company:   field(row, "company"),
			Email:     field(row, "email"),
			Phone:     field(row, "phone"),
			City:      field(row, "city"),
		}
		if tags := field(row, "tags"); tags != "" {
			input.Tags = strings.Split(tags, "|")
		}
		inputs = append(inputs, input)
	}

	return uc.Execute(ctx, inputs)
}
