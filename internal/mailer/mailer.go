package mailer

import "os"

// Sender delivers a plain-text email.
type Sender interface {
	Send(to, subject, body string) error
}

// NewFromEnv returns the SMTP sender when SMTP_HOST is configured and the
// console sender otherwise.
func NewFromEnv() Sender {
	host := os.Getenv("SMTP_HOST")

	if host == "" {
		return NewConsoleSender()
	}

	return NewSMTPSender(Config{
		Host:     host,
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("EMAIL_FROM"),
	})
}
