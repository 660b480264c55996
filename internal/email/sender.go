// Package email renders and delivers the showroom's transactional emails.
package email

import (
	"context"
	"fmt"
	"net/mail"

	"showroom_backend/platform/config"
	"showroom_backend/platform/logger"
)

// TestDrive is a test drive booking as it appears in both emails.
type TestDrive struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	PhoneE164 string // normalized Phone, equal to Phone when it could not be parsed
	Model     string
	Message   string
}

// Sender delivers the two booking emails. Implementations are immutable after
// construction and safe for concurrent use.
type Sender interface {
	// SendTestDriveNotification tells the showroom about a new booking.
	SendTestDriveNotification(ctx context.Context, toEmail string, td TestDrive) error
	// SendTestDriveConfirmation confirms the booking to the customer.
	SendTestDriveConfirmation(ctx context.Context, toEmail string, td TestDrive) error
}

// identity is the sender identity shared by every transport.
type identity struct {
	fromEmail            string
	notificationFromName string
	confirmationFromName string
}

func identityFrom(cfg config.EmailConfig) identity {
	return identity{
		fromEmail:            cfg.GetEmailUser(),
		notificationFromName: cfg.GetShowroomFromName(),
		confirmationFromName: cfg.GetConfirmationFromName(),
	}
}

// NewSender builds the transport selected by EMAIL_PROVIDER. It is called once
// at startup; the returned Sender is shared by all requests.
func NewSender(cfg config.EmailConfig, log *logger.Logger) (Sender, error) {
	switch cfg.GetEmailProvider() {
	case config.EmailProviderSMTP:
		sender, err := NewSMTPSender(cfg.GetSMTPHost(), cfg.GetSMTPPort(), cfg.GetEmailUser(), cfg.GetEmailPassword(), identityFrom(cfg))
		if err != nil {
			return nil, err
		}
		return sender, nil
	case config.EmailProviderBrevo:
		return NewBrevoSender(cfg.GetBrevoAPIKey(), identityFrom(cfg)), nil
	case config.EmailProviderLog:
		return LogSender{log: log}, nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.GetEmailProvider())
	}
}

// replyToFor returns the customer's address when it parses, so the showroom
// can answer the notification directly. Unparseable input yields "".
func replyToFor(td TestDrive) string {
	addr, err := mail.ParseAddress(td.Email)
	if err != nil {
		return ""
	}
	return addr.Address
}

// LogSender writes emails to the log instead of delivering them. Used for
// local development with EMAIL_PROVIDER=log.
type LogSender struct {
	log *logger.Logger
}

func (s LogSender) SendTestDriveNotification(ctx context.Context, toEmail string, td TestDrive) error {
	msg, err := renderTestDriveNotification(td)
	if err != nil {
		return err
	}
	s.logMessage(ctx, toEmail, msg)
	return nil
}

func (s LogSender) SendTestDriveConfirmation(ctx context.Context, toEmail string, td TestDrive) error {
	msg, err := renderTestDriveConfirmation(td)
	if err != nil {
		return err
	}
	s.logMessage(ctx, toEmail, msg)
	return nil
}

func (s LogSender) logMessage(ctx context.Context, toEmail string, msg rendered) {
	if s.log == nil {
		return
	}
	s.log.WithContext(ctx).Info("email not delivered (log provider)",
		"to", toEmail,
		"subject", msg.Subject,
		"body", msg.Text,
	)
}
