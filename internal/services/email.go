package services

import (
	"fmt"
	"net/smtp"
	"strings"

	"luxfur/internal/models"
)

// EmailConfig holds SMTP settings for outgoing mail.
type EmailConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// EmailService sends transactional mail over SMTP.
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service.
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// SendOrderConfirmation emails the customer that their order was created.
func (s *EmailService) SendOrderConfirmation(order *models.Order) error {
	subject := fmt.Sprintf("Order %d confirmation", order.ID)

	var body strings.Builder
	fmt.Fprintf(&body, "Dear %s,\r\n\r\n", order.FirstName)
	fmt.Fprintf(&body, "You have successfully placed an order on our site.\r\n")
	fmt.Fprintf(&body, "Your order ID is %d.\r\n\r\n", order.ID)
	for _, item := range order.Items {
		fmt.Fprintf(&body, "  %d x %s @ %s\r\n", item.Quantity, item.ProductName, item.UnitPrice.StringFixed(2))
	}
	fmt.Fprintf(&body, "\r\nTotal: %s\r\n", order.TotalCost().StringFixed(2))

	return s.send(order.Email, subject, body.String())
}

func (s *EmailService) send(to, subject, body string) error {
	from := s.config.FromEmail
	if s.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	var auth smtp.Auth
	if s.config.Username != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
