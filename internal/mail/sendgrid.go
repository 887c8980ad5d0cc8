package mail

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
)

// SendGridSender delivers mail through the SendGrid v3 API.
type SendGridSender struct {
	client *sendgrid.Client
}

// NewSendGridSender creates a sender authenticated with apiKey.
func NewSendGridSender(apiKey string) *SendGridSender {
	return &SendGridSender{client: sendgrid.NewSendClient(apiKey)}
}

func (s *SendGridSender) Send(ctx context.Context, msg *Message) error {
	email := sgmail.NewSingleEmail(
		sgmail.NewEmail("MovieStream", msg.From),
		msg.Subject,
		sgmail.NewEmail("", msg.To),
		msg.Text,
		msg.HTML,
	)

	resp, err := s.client.SendWithContext(ctx, email)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid responded %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// LogSender writes messages to the log instead of sending them. It is used
// when no provider key is configured.
type LogSender struct {
	Logger logrus.FieldLogger
}

func (s *LogSender) Send(_ context.Context, msg *Message) error {
	s.Logger.WithFields(logrus.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info(msg.Text)
	return nil
}

// NewSender picks SendGrid when apiKey is set and LogSender otherwise.
func NewSender(apiKey string, logger logrus.FieldLogger) Sender {
	if apiKey == "" {
		logger.Warn("SENDGRID_API_KEY not set, emails will be logged instead of sent")
		return &LogSender{Logger: logger}
	}
	return NewSendGridSender(apiKey)
}
