package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer delivers transactional mail. The reset flow only needs one
// message type, so the interface stays this narrow.
type Mailer interface {
	SendResetCode(to, code string) error
}

// SMTPMailer sends through an external SMTP relay.
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

func (m *SMTPMailer) SendResetCode(to, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your password reset code")
	msg.SetBody("text/html", fmt.Sprintf(
		"<p>Your password reset code is:</p><h2>%s</h2><p>It expires in 10 minutes. If you did not request a reset, ignore this email.</p>",
		code,
	))

	return m.dialer.DialAndSend(msg)
}
