/*
Package mail provides one-time password delivery over SMTP.

It wraps the standard net/smtp client with the application's sender settings.
When no SMTP host is configured (local development), the code is logged
instead of sent so the password-reset flow stays testable without a relay.
*/
package mail

import (
	"fmt"
	"net/smtp"

	"cyberlink/internal/pkg/logx"
)

// Mailer sends transactional email through a single SMTP relay.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewMailer constructs a Mailer from the application's SMTP settings.
// An empty host yields a development Mailer that only logs outgoing codes.
func NewMailer(host string, port int, username, password, from string) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// SendOTP delivers a password-reset one-time code to the recipient address.
func (m *Mailer) SendOTP(recipient string, code string) error {
	subject := "CyberLink password reset code"
	body := fmt.Sprintf("Your one time password is %s.\r\nIt can be used once to change your password.", code)

	if m.host == "" {
		logx.Info("SMTP not configured, logging OTP instead of sending", "recipient", recipient, "code", code)
		return nil
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n%s\r\n",
		m.from, recipient, subject, body,
	))

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	if err := smtp.SendMail(addr, auth, m.from, []string{recipient}, msg); err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}

	return nil
}
