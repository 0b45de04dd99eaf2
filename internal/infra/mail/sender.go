package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"path/filepath"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/ligue-outreach/internal/entity"
)

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:         host,
		Port:         port,
		User:         user,
		Password:     password,
		From:         from,
		TemplatesDir: "templates",
	}
}

// SendTemplate renderiza templates/<name>.html e envia com os anexos.
func (s *EmailSender) SendTemplate(to, subject, name string, data interface{}, attachments ...Attachment) error {
	tmplPath := filepath.Join(s.TemplatesDir, name+".html")
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("erro ao ler template de email: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	return s.Send(to, subject, body.String(), attachments...)
}

func (s *EmailSender) Send(to, subject, htmlBody string, attachments ...Attachment) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	for _, a := range attachments {
		a := a
		m.Attach(a.Filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(a.Content)
				return err
			}),
			gomail.SetHeader(map[string][]string{"Content-Type": {a.MIMEType}}),
		)
	}

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		// SMTP devolvendo 421/"too many": classifica aqui na borda.
		if entity.LooksRateLimited(err.Error()) {
			return fmt.Errorf("SMTP segurou o envio: %w", entity.ErrRateLimited)
		}
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
