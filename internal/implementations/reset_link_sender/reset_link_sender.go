package resetlinksender

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
	"pwreset/internal/core/domain/mail"
	"pwreset/internal/core/domain/user"
	"strings"
	"time"
)

const Subject = "Password Reset Request"

var bodyTemplate = template.Must(template.New("password-reset").Parse(
	`<p>Click <a href="{{.Link}}">here</a> to reset your password.</p>
<p>This link expires in {{.ExpiresIn}} minutes.</p>`,
))

type bodyParams struct {
	Link      string
	ExpiresIn int
}

// Sender delivers password reset links by email.
type Sender struct {
	mailer      mail.Mailer
	frontendURL string
}

func New(mailer mail.Mailer, frontendURL string) *Sender {
	return &Sender{mailer: mailer, frontendURL: strings.TrimRight(frontendURL, "/")}
}

// Link returns <frontend>/reset-password?token=<token>&email=<email>.
func (s *Sender) Link(email string, token user.PasswordResetToken) string {
	return fmt.Sprintf(
		"%s/reset-password?token=%s&email=%s",
		s.frontendURL,
		url.QueryEscape(string(token)),
		url.QueryEscape(email),
	)
}

func (s *Sender) SendPasswordResetToken(ctx context.Context, u user.User, token user.PasswordResetToken) error {
	var body bytes.Buffer
	err := bodyTemplate.Execute(&body, bodyParams{
		Link:      s.Link(string(u.Email), token),
		ExpiresIn: int(user.PasswordResetTTL / time.Minute),
	})
	if err != nil {
		return err
	}
	return s.mailer.Send(ctx, mail.Message{
		To:      string(u.Email),
		Subject: Subject,
		HTML:    body.String(),
	})
}
