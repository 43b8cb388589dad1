package mailer

import (
	"github.com/studyhub-dev/studyhub/internal/logging"
)

// consoleSender logs messages instead of delivering them. Used whenever
// SMTP is not configured.
type consoleSender struct{}

func NewConsoleSender() Sender {
	return &consoleSender{}
}

func (s *consoleSender) Send(to, subject, body string) error {
	logging.Logger.WithFields(map[string]interface{}{
		"to":      to,
		"subject": subject,
	}).Info("email (console mode, not actually sent)")
	logging.Logger.Info(body)
	return nil
}
