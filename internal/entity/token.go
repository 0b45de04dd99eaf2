package entity

import "time"

// Ações rastreáveis embutidas nos links dos emails.
const (
	ActionConfirm        = "confirm"
	ActionReschedule     = "reschedule"
	ActionContactRequest = "contact_request"
	ActionUnsubscribe    = "unsubscribe"
)


// ClickToken amarra um token opaco de uso único a (contato, ação).
// Persistido fora do agregado da campanha.
type ClickToken struct {
	Token     string    `json:"token"`
	ContactID string    `json:"contact_id"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}
