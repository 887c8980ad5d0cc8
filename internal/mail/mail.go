// Package mail delivers transactional email.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// Message is a single outgoing email.
type Message struct {
	From    string
	To      string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers a Message through a provider.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

//go:generate mockgen -destination=mocks/mock_mail.go -package=mocks moviestream/internal/mail Mailer

// Mailer sends the application's emails.
type Mailer interface {
	// SendPasswordReset emails a link carrying the raw reset token.
	SendPasswordReset(ctx context.Context, to, token string) error
}

// Config configures a Service.
type Config struct {
	From        string
	FrontendURL string
	// LinkExpiry is shown to the recipient.
	LinkExpiry time.Duration
}

// Service renders emails and sends them through a circuit breaker.
type Service struct {
	sender  Sender
	breaker *gobreaker.CircuitBreaker
	cfg     Config
	logger  logrus.FieldLogger
}

var _ Mailer = (*Service)(nil)

// NewService creates a mail Service. After five consecutive delivery
// failures the breaker opens and sends fail fast for 30 seconds.
func NewService(sender Sender, cfg Config, logger logrus.FieldLogger) *Service {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "mail",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("circuit breaker state changed")
		},
	})

	return &Service{
		sender:  sender,
		breaker: breaker,
		cfg:     cfg,
		logger:  logger,
	}
}

// ResetLink builds the front-end URL a recipient follows to reset a password.
func ResetLink(frontendURL, token string) string {
	return fmt.Sprintf("%s/#/reset-password?token=%s", strings.TrimRight(frontendURL, "/"), url.QueryEscape(token))
}

func (s *Service) SendPasswordReset(ctx context.Context, to, token string) error {
	link := ResetLink(s.cfg.FrontendURL, token)

	body, err := renderPasswordReset(link, s.cfg.LinkExpiry)
	if err != nil {
		return fmt.Errorf("render template: %w", err)
	}

	msg := &Message{
		From:    s.cfg.From,
		To:      to,
		Subject: "Reset your password",
		Text:    fmt.Sprintf("Follow this link to choose a new password: %s\nThe link expires in %s.", link, formatExpiry(s.cfg.LinkExpiry)),
		HTML:    body,
	}

	_, err = s.breaker.Execute(func() (interface{}, error) {
		return nil, s.sender.Send(ctx, msg)
	})
	if err != nil {
		s.logger.WithError(err).WithField("to", to).Error("failed to send password reset email")
		return fmt.Errorf("send email: %w", err)
	}

	s.logger.WithField("to", to).Info("password reset email sent")
	return nil
}

var passwordResetTemplate = template.Must(template.New("passwordReset").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto;">
    <h2>Reset your password</h2>
    <p>We received a request to reset the password for your MovieStream account.</p>
    <p><a href="{{.ResetLink}}" style="background-color: #E50914; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px;">Reset Password</a></p>
    <p>Or copy and paste this link into your browser:</p>
    <p style="word-break: break-all;">{{.ResetLink}}</p>
    <p>This link expires in {{.Expiry}}. If you did not ask for a reset, ignore this email and your password will stay the same.</p>
</body>
</html>
`))

func renderPasswordReset(link string, expiry time.Duration) (string, error) {
	var buf bytes.Buffer
	data := struct {
		ResetLink string
		Expiry    string
	}{
		ResetLink: link,
		Expiry:    formatExpiry(expiry),
	}
	if err := passwordResetTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatExpiry(d time.Duration) string {
	switch {
	case d <= 0, d == time.Hour:
		return "1 hour"
	case d%time.Hour == 0:
		return fmt.Sprintf("%d hours", int(d.Hours()))
	default:
		return fmt.Sprintf("%d minutes", int(d.Minutes()))
	}
}
