//go:build api

package testserver

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"sync"

	"moviestream/internal/mail"
)

var resetLinkPattern = regexp.MustCompile(`token=([^\s"&]+)`)

// Mailbox is a mail.Sender that keeps messages in memory.
type Mailbox struct {
	mu       sync.Mutex
	messages []mail.Message
	fail     bool
}

// NewMailbox creates an empty Mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{}
}

// Send records msg, or fails when the mailbox is set to fail.
func (m *Mailbox) Send(_ context.Context, msg *mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fail {
		return errors.New("mailbox: delivery refused")
	}
	m.messages = append(m.messages, *msg)
	return nil
}

// FailDeliveries makes subsequent sends fail until reset.
func (m *Mailbox) FailDeliveries(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = fail
}

// Messages returns a copy of the sent messages.
func (m *Mailbox) Messages() []mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]mail.Message, len(m.messages))
	copy(out, m.messages)
	return out
}

// Reset clears recorded messages and delivery failures.
func (m *Mailbox) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = nil
	m.fail = false
}

// LastResetToken returns the token from the newest reset email sent to
// to, or "" when none was sent.
func (m *Mailbox) LastResetToken(to string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := len(m.messages) - 1; i >= 0; i-- {
		if m.messages[i].To != to {
			continue
		}
		match := resetLinkPattern.FindStringSubmatch(m.messages[i].Text)
		if match == nil {
			continue
		}
		token, err := url.QueryUnescape(match[1])
		if err != nil {
			return match[1]
		}
		return token
	}
	return ""
}
