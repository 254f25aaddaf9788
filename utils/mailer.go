package utils

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/sirupsen/logrus"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type SESMailer struct {
	client *ses.Client
	from   string
}

func NewSESMailer(cfg aws.Config, from string) *SESMailer {
	return &SESMailer{client: ses.NewFromConfig(cfg), from: from}
}

func (m *SESMailer) Send(ctx context.Context, to, subject, body string) error {
	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{ToAddresses: []string{to}},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body:    &types.Body{Text: &types.Content{Data: aws.String(body)}},
		},
		Source: aws.String(m.from),
	})
	if err != nil {
		return fmt.Errorf("email send failed: %w", err)
	}
	return nil
}

// LogMailer writes mail to the log instead of sending it; used when SES is
// not configured.
type LogMailer struct {
	Log *logrus.Logger
}

func (m LogMailer) Send(_ context.Context, to, subject, _ string) error {
	m.Log.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("mail not sent: no SES sender configured")
	return nil
}

func SendResetEmail(ctx context.Context, m Mailer, to, code string) error {
	body := fmt.Sprintf("Your password reset code is: %s\n\nUse this in the app to set a new password.", code)
	return m.Send(ctx, to, "Password Reset Code", body)
}
