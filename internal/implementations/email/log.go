package email

import (
	"context"
	"pwreset/internal/core/domain/logging"
	"pwreset/internal/core/domain/mail"
)

// LogMailer writes messages to the log instead of delivering them. It is
// meant for local development only.
type LogMailer struct {
	log logging.Logger
}

func NewLogMailer(log logging.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(ctx context.Context, msg mail.Message) error {
	m.log.Info(
		ctx,
		"Email is not delivered, logging it instead.",
		logging.Entry("to", msg.To),
		logging.Entry("subject", msg.Subject),
		logging.Entry("html", msg.HTML),
	)
	return nil
}

func (m *LogMailer) Verify(ctx context.Context) error {
	return nil
}
