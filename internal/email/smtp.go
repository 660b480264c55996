package email

import (
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

const smtpImplicitTLSPort = 465

// SMTPSender implements the Sender interface using a direct SMTP connection via go-mail.
// The authenticated client options are fixed at construction; every send dials
// its own connection so concurrent requests never share SMTP state.
type SMTPSender struct {
	host string
	opts []gomail.Option
	id   identity
}

// NewSMTPSender creates an SMTPSender authenticating with username/password.
// The options are checked once here so a bad host or port fails at startup.
func NewSMTPSender(host string, port int, username, password string, id identity) (*SMTPSender, error) {
	opts := []gomail.Option{
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(username),
		gomail.WithPassword(password),
		gomail.WithTimeout(15 * time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	}
	if port == smtpImplicitTLSPort {
		opts = append(opts, gomail.WithSSLPort(false))
	} else {
		opts = append(opts, gomail.WithTLSPortPolicy(gomail.TLSMandatory), gomail.WithPort(port))
	}

	if _, err := gomail.NewClient(host, opts...); err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	return &SMTPSender{
		host: host,
		opts: opts,
		id:   id,
	}, nil
}

func (s *SMTPSender) SendTestDriveNotification(ctx context.Context, toEmail string, td TestDrive) error {
	content, err := renderTestDriveNotification(td)
	if err != nil {
		return err
	}
	return s.send(ctx, s.id.notificationFromName, toEmail, replyToFor(td), content)
}

func (s *SMTPSender) SendTestDriveConfirmation(ctx context.Context, toEmail string, td TestDrive) error {
	content, err := renderTestDriveConfirmation(td)
	if err != nil {
		return err
	}
	return s.send(ctx, s.id.confirmationFromName, toEmail, "", content)
}

func (s *SMTPSender) send(ctx context.Context, fromName, toEmail, replyTo string, content rendered) error {
	msg, err := s.buildMsg(fromName, toEmail, replyTo, content)
	if err != nil {
		return err
	}

	client, err := gomail.NewClient(s.host, s.opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func (s *SMTPSender) buildMsg(fromName, toEmail, replyTo string, content rendered) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(fromName, s.id.fromEmail); err != nil {
		return nil, fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return nil, fmt.Errorf("smtp to: %w", err)
	}
	if replyTo != "" {
		if err := msg.ReplyTo(replyTo); err != nil {
			return nil, fmt.Errorf("smtp reply-to: %w", err)
		}
	}
	msg.Subject(content.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, content.Text)
	msg.AddAlternativeString(gomail.TypeTextHTML, content.HTML)
	return msg, nil
}
