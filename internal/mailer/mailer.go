package mailer

import (
	"log"
	"strconv"

	"github.com/wneessen/go-mail"

	"github.com/dignitasjota/eCommerce-origen-sub000/internal/config"
)

// Sender is the outbound transport. Satisfied by *SMTPSender; tests swap in
// a recording or failing fake.
type Sender interface {
	Send(to, subject, html string) error
}

// SMTPSender delivers through go-mail. A new client per message keeps the
// sender safe for concurrent post-commit goroutines.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPSender() *SMTPSender {
	port, err := strconv.Atoi(config.Get("SMTP_PORT", "587"))
	if err != nil {
		port = 587
	}
	return &SMTPSender{
		host:     config.Get("SMTP_HOST", "localhost"),
		port:     port,
		username: config.Get("SMTP_USERNAME", ""),
		password: config.Get("SMTP_PASSWORD", ""),
		from:     config.Get("MAIL_FROM", "noreply@origen.example"),
	}
}

func (s *SMTPSender) Send(to, subject, html string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, html)

	client, err := mail.NewClient(s.host,
		mail.WithPort(s.port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(s.username),
		mail.WithPassword(s.password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Sending mail to", to)
	return client.DialAndSend(msg)
}
