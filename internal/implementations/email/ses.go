package email

import (
	"context"
	"errors"
	"pwreset/internal/core/domain/mail"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const charset = "UTF-8"

type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
	GetSendQuota(ctx context.Context, params *ses.GetSendQuotaInput, optFns ...func(*ses.Options)) (*ses.GetSendQuotaOutput, error)
}

type SESMailer struct {
	ses sesAPI
	// This address must be verified with Amazon SES.
	sender string
}

func NewSESMailer(awsConfig aws.Config, sender string) *SESMailer {
	return &SESMailer{ses: ses.NewFromConfig(awsConfig), sender: sender}
}

func (m *SESMailer) Send(ctx context.Context, msg mail.Message) error {
	if msg.To == "" {
		return errors.New("recipient is not defined")
	}
	_, err := m.ses.SendEmail(
		ctx,
		&ses.SendEmailInput{
			Source: aws.String(m.sender),
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{msg.To},
			},
			Message: &types.Message{
				Subject: &types.Content{Charset: aws.String(charset), Data: aws.String(msg.Subject)},
				Body: &types.Body{
					Html: &types.Content{Charset: aws.String(charset), Data: aws.String(msg.HTML)},
				},
			},
		},
	)
	return err
}

// Verify checks that the credentials are accepted and that the account is
// still allowed to send.
func (m *SESMailer) Verify(ctx context.Context) error {
	quota, err := m.ses.GetSendQuota(ctx, &ses.GetSendQuotaInput{})
	if err != nil {
		return err
	}
	if quota.Max24HourSend > 0 && quota.SentLast24Hours >= quota.Max24HourSend {
		return errors.New("daily sending quota is exhausted")
	}
	return nil
}
