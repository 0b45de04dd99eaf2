package kommo

import "time"


type CreateTaskInput struct {
	ContactName  string
	Email        string
	Phone        string
	Company      string
	Action       string // ação do clique que disparou o chamado
	MeetingID    string
	MeetingStart *time.Time
}
