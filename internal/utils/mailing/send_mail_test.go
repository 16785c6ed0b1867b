package mailing

import (
	"bytes"
	"context"
	"testing"

	"Pantry-Tracker/domain"
	"Pantry-Tracker/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type captureSender struct {
	sent []*gomail.Message
}

func (c *captureSender) DialAndSend(m ...*gomail.Message) error {
	c.sent = append(c.sent, m...)
	return nil
}

func TestNotifySendsMessage(t *testing.T) {
	capture := &captureSender{}
	m := &NotificationMailer{
		config: MailConfig{SMTPEmail: "pantry@example.com", MailTo: "me@example.com", AppURL: "http://localhost:8080"},
		sender: capture,
	}

	err := m.Notify(context.Background(), entities.Notification{
		Type:    domain.NotificationTypeDepleted,
		Message: "Milk has run out & was added to the shopping cart.",
	})
	require.NoError(t, err)
	require.Len(t, capture.sent, 1)

	msg := capture.sent[0]
	assert.Equal(t, []string{"me@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Pantry: item ran out"}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Milk has run out &amp; was added")
}

func TestMailConfigEnabled(t *testing.T) {
	assert.False(t, MailConfig{}.Enabled())
	assert.True(t, MailConfig{SMTPHost: "smtp", SMTPEmail: "a@b.c", MailTo: "d@e.f"}.Enabled())
}

func TestNewNotificationMailerRejectsBadPort(t *testing.T) {
	_, err := NewNotificationMailer(MailConfig{SMTPPort: "smtp"})
	assert.Error(t, err)
}
