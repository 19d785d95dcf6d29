package notify

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer dispatches one outbound notification. Implementations may fail with
// a delivery error; callers on the sweep path must treat that as recoverable.
type Mailer interface {
	Send(subject, body, to string) error
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	Addr string // host:port
	From string
}

// NewSMTPMailer returns a mailer for the given relay address and sender.
func NewSMTPMailer(addr, from string) *SMTPMailer {
	return &SMTPMailer{Addr: addr, From: from}
}

// Send delivers one message. Subject and recipient are folded into a minimal
// RFC 5322 envelope; no MIME parts, notifications are plain text.
func (m *SMTPMailer) Send(subject, body, to string) error {
	msg := strings.Join([]string{
		"From: " + m.From,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")
	if err := smtp.SendMail(m.Addr, nil, m.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
