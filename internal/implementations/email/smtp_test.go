package email

import (
	"context"
	netmail "net/mail"
	"pwreset/internal/core/domain/mail"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewSMTPMailerValidatesConfig(t *testing.T) {
	_, err := NewSMTPMailer(SMTPConfig{Host: "smtp.test", Port: 465, From: "not an address"})
	require.NotNil(t, err)

	_, err = NewSMTPMailer(SMTPConfig{Port: 465, From: "no-reply@test.test"})
	require.NotNil(t, err)

	_, err = NewSMTPMailer(SMTPConfig{Host: "smtp.test", Port: 465, From: "Support <no-reply@test.test>"})
	require.Nil(t, err)
}

func TestSMTPMessage(t *testing.T) {
	mailer, err := NewSMTPMailer(SMTPConfig{Host: "smtp.test", Port: 465, From: "Support <no-reply@test.test>"})
	require.Nil(t, err)
	mailer.now = func() time.Time { return time.Date(2020, 1, 1, 15, 0, 0, 0, time.UTC) }
	to, err := netmail.ParseAddress("a@x.com")
	require.Nil(t, err)

	raw := string(mailer.buildMessage(to, mail.Message{
		To:      "a@x.com",
		Subject: "Password Reset Request",
		HTML:    "<p>hello</p>",
	}))

	head, body, found := strings.Cut(raw, "\r\n\r\n")
	require.True(t, found)
	require.Equal(t, "<p>hello</p>", body)
	require.Contains(t, head, "From: \"Support\" <no-reply@test.test>\r\n")
	require.Contains(t, head, "To: <a@x.com>\r\n")
	require.Contains(t, head, "Subject: Password Reset Request\r\n")
	require.Contains(t, head, "Date: Wed, 01 Jan 2020 15:00:00 +0000\r\n")
	require.Contains(t, head, "Content-Type: text/html; charset=UTF-8")
}

func TestSMTPSendRejectsInvalidRecipient(t *testing.T) {
	mailer, err := NewSMTPMailer(SMTPConfig{Host: "smtp.test", Port: 465, From: "no-reply@test.test"})
	require.Nil(t, err)

	err = mailer.Send(context.Background(), mail.Message{To: "not an address"})

	require.NotNil(t, err)
}
