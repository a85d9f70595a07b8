package email

import (
	"context"
	"errors"
	"pwreset/internal/core/domain/mail"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	sent        []*ses.SendEmailInput
	quota       ses.GetSendQuotaOutput
	returnError bool
}

func (f *fakeSES) SendEmail(
	ctx context.Context,
	params *ses.SendEmailInput,
	optFns ...func(*ses.Options),
) (*ses.SendEmailOutput, error) {
	if f.returnError {
		return nil, errors.New("ses is unavailable")
	}
	f.sent = append(f.sent, params)
	return &ses.SendEmailOutput{MessageId: aws.String("message-1")}, nil
}

func (f *fakeSES) GetSendQuota(
	ctx context.Context,
	params *ses.GetSendQuotaInput,
	optFns ...func(*ses.Options),
) (*ses.GetSendQuotaOutput, error) {
	if f.returnError {
		return nil, errors.New("ses is unavailable")
	}
	return &f.quota, nil
}

func TestSESSend(t *testing.T) {
	api := &fakeSES{}
	mailer := &SESMailer{ses: api, sender: "Support <no-reply@test.test>"}

	err := mailer.Send(context.Background(), mail.Message{
		To:      "a@x.com",
		Subject: "Password Reset Request",
		HTML:    "<p>hello</p>",
	})

	require.Nil(t, err)
	require.Len(t, api.sent, 1)
	input := api.sent[0]
	require.Equal(t, "Support <no-reply@test.test>", *input.Source)
	require.Equal(t, []string{"a@x.com"}, input.Destination.ToAddresses)
	require.Equal(t, "Password Reset Request", *input.Message.Subject.Data)
	require.Equal(t, "<p>hello</p>", *input.Message.Body.Html.Data)
	require.Nil(t, input.Message.Body.Text)
}

func TestSESSendErrors(t *testing.T) {
	api := &fakeSES{}
	mailer := &SESMailer{ses: api, sender: "no-reply@test.test"}

	require.NotNil(t, mailer.Send(context.Background(), mail.Message{Subject: "s", HTML: "h"}))
	require.Empty(t, api.sent)

	api.returnError = true
	require.NotNil(t, mailer.Send(context.Background(), mail.Message{To: "a@x.com"}))
}

func TestSESVerify(t *testing.T) {
	api := &fakeSES{quota: ses.GetSendQuotaOutput{Max24HourSend: 200, SentLast24Hours: 10}}
	mailer := &SESMailer{ses: api, sender: "no-reply@test.test"}
	require.Nil(t, mailer.Verify(context.Background()))

	api.quota.SentLast24Hours = 200
	require.NotNil(t, mailer.Verify(context.Background()))

	api.returnError = true
	require.NotNil(t, mailer.Verify(context.Background()))
}
