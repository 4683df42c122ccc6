package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer delivers the confirmation code to a newly signed-up user. Delivery
// failure is a hard failure of the signup request.
type Mailer interface {
	SendConfirmationCode(to, username, code string) error
}

// SMTPMailer sends over plain SMTP.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *SMTPMailer) SendConfirmationCode(to, username, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your reviewhub confirmation code")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nYour confirmation code is:\n\n%s\n\nExchange it for an access token at /api/v1/auth/token.\n",
		username, code,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send confirmation code to %s: %w", to, err)
	}
	return nil
}
