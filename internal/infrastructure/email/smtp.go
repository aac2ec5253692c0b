package email

import (
	"context"
	"fmt"
	"net/smtp"
)

type ResetPasswordData struct {
	Email     string
	Token     string
	ExpiresIn string
}

type Service interface {
	SendResetPasswordEmail(ctx context.Context, data ResetPasswordData) error
}

type smtpService struct {
	addr string
	from string
}

func NewSMTPService(host, port, from string) Service {
	return &smtpService{
		addr: host + ":" + port,
		from: from,
	}
}

func (s *smtpService) SendResetPasswordEmail(ctx context.Context, data ResetPasswordData) error {
	subject := "Reset your Matcha Journal password"
	body := fmt.Sprintf(`Hi,

Use the following token to reset your password:

%s

The token is valid for %s and can be used once.

If you did not request a password reset, you can ignore this email.`, data.Token, data.ExpiresIn)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.from, data.Email, subject, body))

	return smtp.SendMail(s.addr, nil, s.from, []string{data.Email}, msg)
}
