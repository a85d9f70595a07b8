package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	netmail "net/mail"
	"net/smtp"
	"pwreset/internal/core/domain/mail"
	"strconv"
	"time"
)

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	// From may carry a display name, e.g. "Support <no-reply@example.com>".
	From string
}

// SMTPMailer talks to servers that require TLS from the very beginning
// (port 465, no STARTTLS).
type SMTPMailer struct {
	config SMTPConfig
	from   *netmail.Address
	now    func() time.Time
}

func NewSMTPMailer(config SMTPConfig) (*SMTPMailer, error) {
	from, err := netmail.ParseAddress(config.From)
	if err != nil {
		return nil, fmt.Errorf("invalid sender address %q: %w", config.From, err)
	}
	if config.Host == "" {
		return nil, fmt.Errorf("SMTP host is not defined")
	}
	return &SMTPMailer{config: config, from: from, now: time.Now}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg mail.Message) error {
	to, err := netmail.ParseAddress(msg.To)
	if err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}

	c, err := m.dial(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	if err = c.Mail(m.from.Address); err != nil {
		return err
	}
	if err = c.Rcpt(to.Address); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(m.buildMessage(to, msg)); err != nil {
		return err
	}
	if err = w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

// Verify connects and authenticates without sending anything.
func (m *SMTPMailer) Verify(ctx context.Context) error {
	c, err := m.dial(ctx)
	if err != nil {
		return err
	}
	defer c.Close()
	return c.Quit()
}

func (m *SMTPMailer) dial(ctx context.Context) (*smtp.Client, error) {
	address := net.JoinHostPort(m.config.Host, strconv.Itoa(m.config.Port))
	dialer := &tls.Dialer{Config: &tls.Config{ServerName: m.config.Host}}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, err
	}
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, m.config.Host)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if m.config.User != "" {
		auth := smtp.PlainAuth("", m.config.User, m.config.Password, m.config.Host)
		if err = c.Auth(auth); err != nil {
			c.Close()
			return nil, err
		}
	}
	return c, nil
}

func (m *SMTPMailer) buildMessage(to *netmail.Address, msg mail.Message) []byte {
	var buf bytes.Buffer
	headers := [][2]string{
		{"From", m.from.String()},
		{"To", to.String()},
		{"Subject", mime.QEncoding.Encode(charset, msg.Subject)},
		{"Date", m.now().Format(time.RFC1123Z)},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/html; charset=UTF-8"},
	}
	for _, h := range headers {
		fmt.Fprintf(&buf, "%s: %s\r\n", h[0], h[1])
	}
	buf.WriteString("\r\n")
	buf.WriteString(msg.HTML)
	return buf.Bytes()
}
