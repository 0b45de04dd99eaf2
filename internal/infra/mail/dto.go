package mail

type EmailSender struct {
	Host         string
	Port         int
	User         string
	Password     string
	From         string
	TemplatesDir string
}


type Attachment struct {
	Filename string
	MIMEType string
	Content  []byte
}


// Dados passados para os templates HTML em templates/.

type InvitationEmailData struct {
	Name       string
	Company    string
	Date       string
	Time       string
	JoinURL    string
	ConfirmURL string
	RescheduleURL string
	ContactURL string
}

type ReminderEmailData struct {
	Name    string
	Date    string
	Time    string
	JoinURL string
}

type FollowupEmailData struct {
	Name       string
	ContactURL string
}

type NoShowEmailData struct {
	Name          string
	RescheduleURL string
	ContactURL    string
}
