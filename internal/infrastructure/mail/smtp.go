// Package mail implements the Mailer port over SMTP.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
)

// SMTPMailer sends plain-text email through a single SMTP relay.
type SMTPMailer struct {
	host string
	port string
	user string
	pass string
}

func NewSMTPMailer(host, port, user, pass string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, user: user, pass: pass}
}

// Send delivers synchronously; callers treat any error as a transport
// failure and run their own compensation.
func (m *SMTPMailer) Send(_ context.Context, from, to, subject, body string) error {
	if m.host == "" || m.port == "" {
		return fmt.Errorf("smtp not configured")
	}
	msg := "From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n" +
		body + "\r\n"

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}
	if err := smtp.SendMail(m.host+":"+m.port, auth, from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
