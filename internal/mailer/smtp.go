package mailer

import (
	"fmt"
	"net/smtp"
)

type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type smtpSender struct {
	config Config
}

func NewSMTPSender(config Config) Sender {
	if config.Port == "" {
		config.Port = "587"
	}
	if config.From == "" {
		config.From = config.Username
	}
	return &smtpSender{config: config}
}

func (s *smtpSender) Send(to, subject, body string) error {
	if s.config.From == "" {
		return fmt.Errorf("email 'From' address is not configured")
	}

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + s.config.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n" +
		body + "\r\n")

	var auth smtp.Auth
	if s.config.Username != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}

	addr := s.config.Host + ":" + s.config.Port

	if err := smtp.SendMail(addr, auth, s.config.From, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
