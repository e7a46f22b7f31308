package notifications

import (
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// SMTPConfig describes the outgoing mail server.
type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

// SMTPMailer sends plain-text email through an SMTP relay.
type SMTPMailer struct {
	cfg  SMTPConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, send: smtp.SendMail}
}

// Send delivers one message. The context is only checked before dialing;
// net/smtp has no cancellation.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.cfg.Host == "" || m.cfg.From == "" {
		return ErrMailerNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}

	addr := net.JoinHostPort(m.cfg.Host, m.cfg.Port)
	if err := m.send(addr, auth, m.cfg.From, []string{to}, m.message(to, subject, body)); err != nil {
		return fmt.Errorf("smtp %s: %w", addr, err)
	}
	return nil
}

// headerBreaks strips line breaks from address headers; the subject is
// RFC 2047 encoded instead, which also escapes them.
var headerBreaks = strings.NewReplacer("\r", "", "\n", "")

func (m *SMTPMailer) message(to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + headerBreaks.Replace(m.cfg.From) + "\r\n")
	b.WriteString("To: " + headerBreaks.Replace(to) + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	b.WriteString("Date: " + time.Now().Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}
