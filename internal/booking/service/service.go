// Package service implements test drive booking dispatch.
package service

import (
	"context"
	"strings"

	"showroom_backend/internal/booking/transport"
	"showroom_backend/internal/email"
	"showroom_backend/platform/apperr"
	"showroom_backend/platform/config"
	"showroom_backend/platform/logger"
	"showroom_backend/platform/phone"
	"showroom_backend/platform/sanitize"
)

// ErrEmailFailed is the only failure text a caller ever sees.
const ErrEmailFailed = "Email failed to send"

// State is a step of one dispatch.
type State string

const (
	StateReceived            State = "received"
	StateSendingNotification State = "sending_notification"
	StateSendingConfirmation State = "sending_confirmation"
	StateResponded           State = "responded"
)

// Service sends the showroom notification and the customer confirmation.
type Service struct {
	sender        email.Sender
	showroomEmail string
	phoneRegion   string
	log           *logger.Logger
}

// New creates a booking service around a shared, already authenticated sender.
func New(sender email.Sender, cfg config.BookingConfig, log *logger.Logger) *Service {
	return &Service{
		sender:        sender,
		showroomEmail: cfg.GetShowroomEmail(),
		phoneRegion:   cfg.GetPhoneDefaultRegion(),
		log:           log,
	}
}

// Dispatch sends the notification and, only if that succeeded, the confirmation.
// Any send failure is reported as a single upstream error; callers cannot tell
// which of the two sends failed.
func (s *Service) Dispatch(ctx context.Context, req transport.BookingRequest) error {
	log := s.log.WithContext(ctx)
	// sends run to completion even if the caller goes away
	ctx = context.WithoutCancel(ctx)

	log.Debug("booking dispatch", "state", StateReceived, "model", req.Model)
	if !transport.IsKnownModel(req.Model) {
		log.Warn("booking with unknown model label", "model", sanitize.Text(req.Model))
	}

	td := toTestDrive(req, s.phoneRegion)

	log.Debug("booking dispatch", "state", StateSendingNotification)
	err := s.sender.SendTestDriveNotification(ctx, s.showroomEmail, td)
	log.MailEvent("notification", s.showroomEmail, err)
	if err != nil {
		log.Debug("booking dispatch", "state", StateResponded, "success", false)
		return apperr.Upstream(ErrEmailFailed, err).WithOp("booking.Dispatch")
	}

	log.Debug("booking dispatch", "state", StateSendingConfirmation)
	err = s.sender.SendTestDriveConfirmation(ctx, req.Email, td)
	log.MailEvent("confirmation", sanitize.Text(req.Email), err)
	if err != nil {
		log.Debug("booking dispatch", "state", StateResponded, "success", false)
		return apperr.Upstream(ErrEmailFailed, err).WithOp("booking.Dispatch")
	}

	log.Debug("booking dispatch", "state", StateResponded, "success", true)
	return nil
}

func toTestDrive(req transport.BookingRequest, region string) email.TestDrive {
	e164 := phone.NormalizeE164(req.Phone, region)
	if !strings.HasPrefix(e164, "+") {
		e164 = req.Phone
	}
	return email.TestDrive{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		PhoneE164: e164,
		Model:     req.Model,
		Message:   req.Message,
	}
}
