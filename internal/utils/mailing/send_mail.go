package mailing

import (
	"context"
	"fmt"
	"html"
	"strconv"

	"Pantry-Tracker/domain"
	"Pantry-Tracker/entities"
	"Pantry-Tracker/internal/utils"

	"gopkg.in/gomail.v2"
)

type (
	MailConfig struct {
		AppURL       string
		SMTPHost     string
		SMTPPort     string
		SMTPSender   string
		SMTPEmail    string
		SMTPPassword string
		MailTo       string
	}

	sender interface {
		DialAndSend(m ...*gomail.Message) error
	}

	// NotificationMailer emails every committed notification to MailTo.
	NotificationMailer struct {
		config MailConfig
		sender sender
	}
)

func LoadMailConfig() MailConfig {
	return MailConfig{
		AppURL:       utils.GetConfig("APP_URL"),
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
		MailTo:       utils.GetConfig("MAIL_TO"),
	}
}

// Enabled reports whether enough SMTP settings exist to send mail.
func (c MailConfig) Enabled() bool {
	return c.SMTPHost != "" && c.SMTPEmail != "" && c.MailTo != ""
}

func NewNotificationMailer(config MailConfig) (*NotificationMailer, error) {
	port, err := strconv.Atoi(config.SMTPPort)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT %q: %w", config.SMTPPort, err)
	}
	dialer := gomail.NewDialer(
		config.SMTPHost,
		port,
		config.SMTPEmail,
		config.SMTPPassword,
	)
	return &NotificationMailer{config: config, sender: dialer}, nil
}

func (m *NotificationMailer) Notify(ctx context.Context, n entities.Notification) error {
	subject := "Pantry: " + subjectFor(n.Type)
	body := fmt.Sprintf("<p>%s</p>", html.EscapeString(n.Message))
	if m.config.AppURL != "" {
		body += fmt.Sprintf(`<p><a href="%s">Open your pantry</a></p>`, html.EscapeString(m.config.AppURL))
	}
	return m.SendMail(m.config.MailTo, subject, body)
}

func (m *NotificationMailer) SendMail(toEmail string, subject string, body string) error {
	mailer := gomail.NewMessage()
	if m.config.SMTPSender != "" {
		mailer.SetAddressHeader("From", m.config.SMTPEmail, m.config.SMTPSender)
	} else {
		mailer.SetHeader("From", m.config.SMTPEmail)
	}
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	if err := m.sender.DialAndSend(mailer); err != nil {
		return fmt.Errorf("send mail to %s: %w", toEmail, err)
	}
	return nil
}

func subjectFor(notificationType string) string {
	switch notificationType {
	case domain.NotificationTypeExpiration:
		return "item expiring soon"
	case domain.NotificationTypeDepleted:
		return "item ran out"
	case domain.NotificationTypeAutoConsumed:
		return "daily consumption recorded"
	default:
		return "notification"
	}
}
