package email

import (
	"fmt"
	"net/smtp"

	"go-candidate-backend/config"
)

// Sender dispatches candidate lifecycle emails. Workflows depend on this
// interface so delivery can be mocked in tests.
type Sender interface {
	SendVerificationEmail(to, token string) error
	SendResetPasswordEmail(to, token string) error
}

// EmailService sends emails via plain SMTP.
type EmailService struct {
	host        string
	port        string
	username    string
	password    string
	fromEmail   string
	frontendURL string
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:        cfg.SMTPHost,
		port:        cfg.SMTPPort,
		username:    cfg.SMTPUsername,
		password:    cfg.SMTPPassword,
		fromEmail:   cfg.SMTPFromEmail,
		frontendURL: cfg.FrontendURL,
	}
}

// SendVerificationEmail sends the account-confirmation link. The link is
// valid for 24 hours, matching the verification token expiry.
func (s *EmailService) SendVerificationEmail(to, token string) error {
	verifyURL := fmt.Sprintf("%s/auth/verify?token=%s", s.frontendURL, token)
	subject := "Confirm your account"
	body := "Hello! Please confirm your new account by accessing the following link (available 24h):\r\n\r\n" + verifyURL
	return s.send(to, subject, body)
}

// SendResetPasswordEmail sends the password-reset link. The link is valid
// for 30 minutes, matching the reset token expiry.
func (s *EmailService) SendResetPasswordEmail(to, token string) error {
	resetURL := fmt.Sprintf("%s/auth/reset-password?token=%s", s.frontendURL, token)
	subject := "Password reset requested"
	body := "You have requested to reset your account password.\r\n\r\nPlease access the following link (available 30 minutes):\r\n" + resetURL
	return s.send(to, subject, body)
}

func (s *EmailService) send(to, subject, body string) error {
	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/plain; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		to,
		subject,
		body,
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// IsConfigured checks if the email service has valid SMTP configuration.
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}
