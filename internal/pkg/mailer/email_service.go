// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"
	"html"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendUpgradeReceipt(toEmail, name, message string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderName string) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: username,
		senderName:  senderName,
	}
}

func (s *emailService) SendUpgradeReceipt(toEmail, name, message string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Подписка Бизнес PRO оформлена")
	m.SetBody("text/html", upgradeReceiptBody(name, message))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send upgrade receipt to %s: %w", toEmail, err)
	}
	return nil
}

func upgradeReceiptBody(name, message string) string {
	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Здравствуйте, %s!</h2>
			<p>%s</p>
			<p>Лимит в 3 документа снят, экспорт доступен в DOCX, PDF и TXT.</p>
		</div>
	`, html.EscapeString(name), html.EscapeString(message))
}
