// Package email sends outbound notification mail. Service is the SMTP
// transport; Dispatcher feeds it through a bounded worker pool and records
// every attempt in the mail log.
package email

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"gopkg.in/gomail.v2"

	sharedconfig "helpdesk/internal/shared/config"
)

type Service struct {
	dialer      *gomail.Dialer
	fromAddress string
	fromName    string
}

func NewService(cfg *sharedconfig.EmailConfig) *Service {
	return &Service{
		dialer:      gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
	}
}

// Send delivers a single HTML email. Blocking; called from dispatcher
// workers only.
func (s *Service) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.fromAddress, s.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	return nil
}

var ticketMailTemplate = template.Must(template.New("ticket").Parse(`
<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #333;">
  <h2 style="color: #2c3e50;">{{.Heading}}</h2>
  <p><strong>Ticket #{{.TicketID}}</strong>: {{.Title}}</p>
  <div style="border-left: 3px solid #ddd; padding-left: 12px; margin: 12px 0;">
    {{.Body}}
  </div>
  <p style="color: #888; font-size: 12px;">This is an automated helpdesk notification. Replies to this address are ignored by the ticket importer.</p>
</body>
</html>`))

// TicketMail holds the fields rendered into the notification template.
type TicketMail struct {
	Heading  string
	TicketID uint
	Title    string
	Body     template.HTML
}

// RenderTicketMail produces the HTML body for a ticket notification. The
// body text is treated as markdown and rendered to HTML.
func RenderTicketMail(heading string, ticketID uint, title, markdownBody string) (string, error) {
	var rendered bytes.Buffer
	if err := goldmark.Convert([]byte(markdownBody), &rendered); err != nil {
		return "", fmt.Errorf("render markdown body: %w", err)
	}

	var out bytes.Buffer
	err := ticketMailTemplate.Execute(&out, TicketMail{
		Heading:  heading,
		TicketID: ticketID,
		Title:    title,
		Body:     template.HTML(rendered.String()),
	})
	if err != nil {
		return "", fmt.Errorf("render ticket mail: %w", err)
	}
	return out.String(), nil
}
