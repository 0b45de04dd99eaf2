package ics

import (
	"fmt"
	"strings"

	"github.com/xavierca1/ligue-outreach/internal/entity"
)

const MIMEType = "text/calendar; charset=utf-8; method=REQUEST"

// Render monta o convite de calendário de um contato com slot reivindicado.
// Sem nada aleatório: o mesmo contato e slot geram sempre o mesmo documento,
// porque o render vai anexado no email E servido para download — os dois têm
// que bater byte a byte.
func Render(contact *entity.Contact, slot *entity.Slot) string {
	const layout = "20060102T150405Z"
	start := slot.StartTime.UTC().Format(layout)
	end := slot.EndTime.UTC().Format(layout)

	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteString("\r\n")
	}

	line("BEGIN:VCALENDAR")
	line("VERSION:2.0")
	line("PRODID:-//Ligue Medicina//Outreach//PT")
	line("METHOD:REQUEST")
	line("BEGIN:VEVENT")
	line(fmt.Sprintf("UID:meeting-%s@liguemedicina.com", contact.ID))
	// DTSTAMP derivado do slot para manter o documento estável.
	line("DTSTAMP:" + start)
	line("DTSTART:" + start)
	line("DTEND:" + end)
	line(fmt.Sprintf("SUMMARY:Reunião Ligue Medicina - %s", escape(contact.FullName())))
	line(fmt.Sprintf("DESCRIPTION:Reunião de apresentação.\\nLink: %s", escape(contact.ZoomJoinURL)))
	if contact.ZoomJoinURL != "" {
		line("URL:" + contact.ZoomJoinURL)
	}
	line(fmt.Sprintf("ORGANIZER;CN=Ligue Medicina:mailto:%s", slot.HostEmail))
	for _, email := range slot.TeamEmails {
		line(fmt.Sprintf("ATTENDEE;ROLE=REQ-PARTICIPANT;CN=%s:mailto:%s", email, email))
	}
	line(fmt.Sprintf("ATTENDEE;ROLE=REQ-PARTICIPANT;CN=%s:mailto:%s", escape(contact.FullName()), contact.Email))
	line("BEGIN:VALARM")
	line("ACTION:DISPLAY")
	line("TRIGGER:-PT15M")
	line("DESCRIPTION:Reunião em 15 minutos")
	line("END:VALARM")
	line("END:VEVENT")
	line("END:VCALENDAR")

	return b.String()
}

func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, ";", `\;`)
	s = strings.ReplaceAll(s, ",", `\,`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}
