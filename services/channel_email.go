package services

import (
	"context"
	"fmt"
	"net/smtp"
	"os"
	"time"

	"debtflow-backend/models"
	"debtflow-backend/utils"
)

type EmailSender struct {
	host     string
	port     string
	username string
	password string
}

func NewEmailSender() (*EmailSender, error) {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	username := os.Getenv("SMTP_USER")
	password := os.Getenv("SMTP_PASS")

	if host == "" {
		return nil, fmt.Errorf("SMTP_HOST not set")
	}
	if port == "" {
		return nil, fmt.Errorf("SMTP_PORT not set")
	}
	if username == "" {
		return nil, fmt.Errorf("SMTP_USER not set")
	}
	if password == "" {
		return nil, fmt.Errorf("SMTP_PASS not set")
	}

	return &EmailSender{host: host, port: port, username: username, password: password}, nil
}

func (s *EmailSender) Channel() models.Channel {
	return models.ChannelEmail
}

func (s *EmailSender) Send(ctx context.Context, d Dispatch) (string, error) {
	if !utils.ValidateEmail(d.To) {
		return "", &ChannelError{Channel: models.ChannelEmail, Reason: "invalid_address"}
	}

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	msg := []byte(
		"From: " + s.username + "\r\n" +
			"To: " + d.To + "\r\n" +
			"Subject: " + d.Subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/plain; charset=UTF-8\r\n" +
			"\r\n" +
			d.Body,
	)

	if err := smtp.SendMail(addr, auth, s.username, []string{d.To}, msg); err != nil {
		return "", &ChannelError{Channel: models.ChannelEmail, Reason: "provider_rejected", Err: err}
	}

	return fmt.Sprintf("smtp-%d", time.Now().UnixNano()), nil
}
