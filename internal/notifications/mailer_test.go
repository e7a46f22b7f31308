package notifications

import (
	"context"
	"errors"
	"mime"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPMailer_Send(t *testing.T) {
	t.Run("writes a plain text message", func(t *testing.T) {
		var gotAddr, gotFrom string
		var gotTo []string
		var gotMsg []byte
		var gotAuth smtp.Auth

		m := NewSMTPMailer(SMTPConfig{Host: "smtp.repair.test", Port: "587", User: "bot", Password: "secret", From: "desk@repair.test"})
		m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotAuth, gotFrom, gotTo, gotMsg = addr, a, from, to, msg
			return nil
		}

		require.NoError(t, m.Send(context.Background(), "joana@acme.test", "Service order OS-042: Ready", "line one\nline two"))

		assert.Equal(t, "smtp.repair.test:587", gotAddr)
		assert.NotNil(t, gotAuth)
		assert.Equal(t, "desk@repair.test", gotFrom)
		assert.Equal(t, []string{"joana@acme.test"}, gotTo)
		assert.Contains(t, string(gotMsg), "Subject: Service order OS-042: Ready\r\n")
		assert.Contains(t, string(gotMsg), "\r\n\r\nline one\r\nline two")
	})

	t.Run("keeps line breaks in the subject out of the headers", func(t *testing.T) {
		var gotMsg []byte
		m := NewSMTPMailer(SMTPConfig{Host: "localhost", Port: "1025", From: "desk@repair.test"})
		m.send = func(_ string, _ smtp.Auth, _ string, _ []string, msg []byte) error {
			gotMsg = msg
			return nil
		}
		subject, body := compose(Recipient{OrderNumber: "OS-042"}, "Ready\r\nBcc: victim@example.com")

		require.NoError(t, m.Send(context.Background(), "joana@acme.test", subject, body))

		headers, _, found := strings.Cut(string(gotMsg), "\r\n\r\n")
		require.True(t, found)
		assert.NotContains(t, headers, "\r\nBcc:")
		assert.Equal(t, subject, decodedSubject(t, headers))
	})

	t.Run("encodes non-ASCII subjects", func(t *testing.T) {
		var gotMsg []byte
		m := NewSMTPMailer(SMTPConfig{Host: "localhost", Port: "1025", From: "desk@repair.test"})
		m.send = func(_ string, _ smtp.Auth, _ string, _ []string, msg []byte) error {
			gotMsg = msg
			return nil
		}

		require.NoError(t, m.Send(context.Background(), "joana@acme.test", "Service order OS-042: Concluído", "b"))

		headers, _, _ := strings.Cut(string(gotMsg), "\r\n\r\n")
		assert.Contains(t, headers, "Subject: =?utf-8?q?")
		assert.Equal(t, "Service order OS-042: Concluído", decodedSubject(t, headers))
	})

	t.Run("skips auth without a user", func(t *testing.T) {
		m := NewSMTPMailer(SMTPConfig{Host: "localhost", Port: "1025", From: "desk@repair.test"})
		m.send = func(_ string, a smtp.Auth, _ string, _ []string, _ []byte) error {
			assert.Nil(t, a)
			return nil
		}
		require.NoError(t, m.Send(context.Background(), "x@acme.test", "s", "b"))
	})

	t.Run("requires a host and sender", func(t *testing.T) {
		err := NewSMTPMailer(SMTPConfig{}).Send(context.Background(), "x@acme.test", "s", "b")
		require.ErrorIs(t, err, ErrMailerNotConfigured)
	})

	t.Run("wraps transport errors", func(t *testing.T) {
		m := NewSMTPMailer(SMTPConfig{Host: "localhost", Port: "25", From: "desk@repair.test"})
		m.send = func(string, smtp.Auth, string, []string, []byte) error {
			return errors.New("connection refused")
		}
		require.ErrorContains(t, m.Send(context.Background(), "x@acme.test", "s", "b"), "connection refused")
	})
}

func decodedSubject(t *testing.T, headers string) string {
	t.Helper()
	for _, line := range strings.Split(headers, "\r\n") {
		if raw, ok := strings.CutPrefix(line, "Subject: "); ok {
			decoded, err := new(mime.WordDecoder).DecodeHeader(raw)
			require.NoError(t, err)
			return decoded
		}
	}
	t.Fatal("no Subject header")
	return ""
}
