package notifications

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/weakestcomrade/dexviewcinema-sub000/internal/shared/config"
)

// EmailService delivers booking lifecycle emails.
type EmailService interface {
	SendBookingEmail(ctx context.Context, message *BookingMessage) error
}

type smtpEmailService struct {
	client    *mail.Client
	fromEmail string
	templates map[MessageType]*template.Template
}

func NewSMTPEmailService(cfg config.EmailConfig) (EmailService, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.FromEmail == "" {
		return nil, fmt.Errorf("from email is required")
	}

	client, err := mail.NewClient(cfg.SMTPHost,
		mail.WithPort(cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.SMTPUsername),
		mail.WithPassword(cfg.SMTPPassword),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return &smtpEmailService{
		client:    client,
		fromEmail: cfg.FromEmail,
		templates: loadTemplates(),
	}, nil
}

func (s *smtpEmailService) SendBookingEmail(ctx context.Context, message *BookingMessage) error {
	tmpl, ok := s.templates[message.Type]
	if !ok {
		return fmt.Errorf("no email template for message type %s", message.Type)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, templateData(message)); err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat("DexView Cinema", s.fromEmail); err != nil {
		return fmt.Errorf("failed to set from address: %w", err)
	}
	if err := msg.To(message.RecipientEmail); err != nil {
		return fmt.Errorf("failed to set recipient address: %w", err)
	}
	msg.Subject(subjectFor(message))
	msg.SetBodyString(mail.TypeTextHTML, body.String())

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func subjectFor(message *BookingMessage) string {
	switch message.Type {
	case MessageTypeBookingConfirmed:
		return fmt.Sprintf("Booking Confirmed - %s (%s)", message.EventTitle, message.BookingCode)
	case MessageTypeBookingCancelled:
		return fmt.Sprintf("Booking Cancelled - %s (%s)", message.EventTitle, message.BookingCode)
	default:
		return "DexView Cinema Booking Update"
	}
}

func templateData(message *BookingMessage) map[string]interface{} {
	return map[string]interface{}{
		"RecipientName": message.RecipientName,
		"BookingCode":   message.BookingCode,
		"EventTitle":    message.EventTitle,
		"EventType":     message.EventType,
		"Seats":         strings.Join(message.Seats, ", "),
		"TotalAmount":   fmt.Sprintf("%.2f", message.TotalAmount),
		"PaymentMethod": message.PaymentMethod,
	}
}

func loadTemplates() map[MessageType]*template.Template {
	return map[MessageType]*template.Template{
		MessageTypeBookingConfirmed: template.Must(template.New("booking_confirmed").Parse(bookingConfirmedTemplate)),
		MessageTypeBookingCancelled: template.Must(template.New("booking_cancelled").Parse(bookingCancelledTemplate)),
	}
}

const bookingConfirmedTemplate = `
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h2>Your booking is confirmed!</h2>
	<p>Hi {{.RecipientName}},</p>
	<p>Your seats for <strong>{{.EventTitle}}</strong> are locked in.</p>
	<table cellpadding="6" style="border-collapse: collapse;">
		<tr><td><strong>Booking code</strong></td><td>{{.BookingCode}}</td></tr>
		<tr><td><strong>Seats</strong></td><td>{{.Seats}}</td></tr>
		<tr><td><strong>Total paid</strong></td><td>&#8358;{{.TotalAmount}}</td></tr>
		<tr><td><strong>Payment method</strong></td><td>{{.PaymentMethod}}</td></tr>
	</table>
	<p>Present your booking code at the entrance.</p>
	<p>DexView Cinema</p>
</body>
</html>`

const bookingCancelledTemplate = `
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h2>Your booking has been cancelled</h2>
	<p>Hi {{.RecipientName}},</p>
	<p>Your booking <strong>{{.BookingCode}}</strong> for <strong>{{.EventTitle}}</strong>
	(seats {{.Seats}}) has been cancelled and the seats released.</p>
	<p>If you did not request this, please contact support.</p>
	<p>DexView Cinema</p>
</body>
</html>`
