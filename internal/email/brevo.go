package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const brevoDefaultEndpoint = "https://api.brevo.com/v3/smtp/email"

// BrevoSender implements the Sender interface on top of the Brevo transactional API.
type BrevoSender struct {
	apiKey   string
	endpoint string
	id       identity
	client   *http.Client
}

type brevoContact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type brevoEmailRequest struct {
	Sender      brevoContact   `json:"sender"`
	To          []brevoContact `json:"to"`
	ReplyTo     *brevoContact  `json:"replyTo,omitempty"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
	TextContent string         `json:"textContent,omitempty"`
}

// NewBrevoSender creates a BrevoSender using the public Brevo endpoint.
func NewBrevoSender(apiKey string, id identity) *BrevoSender {
	return &BrevoSender{
		apiKey:   apiKey,
		endpoint: brevoDefaultEndpoint,
		id:       id,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (b *BrevoSender) SendTestDriveNotification(ctx context.Context, toEmail string, td TestDrive) error {
	content, err := renderTestDriveNotification(td)
	if err != nil {
		return err
	}
	return b.send(ctx, b.id.notificationFromName, toEmail, replyToFor(td), content)
}

func (b *BrevoSender) SendTestDriveConfirmation(ctx context.Context, toEmail string, td TestDrive) error {
	content, err := renderTestDriveConfirmation(td)
	if err != nil {
		return err
	}
	return b.send(ctx, b.id.confirmationFromName, toEmail, "", content)
}

func (b *BrevoSender) send(ctx context.Context, fromName, toEmail, replyTo string, content rendered) error {
	payload := brevoEmailRequest{
		Sender:      brevoContact{Name: fromName, Email: b.id.fromEmail},
		To:          []brevoContact{{Email: toEmail}},
		Subject:     content.Subject,
		HTMLContent: content.HTML,
		TextContent: content.Text,
	}
	if replyTo != "" {
		payload.ReplyTo = &brevoContact{Email: replyTo}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", b.apiKey)
	req.Header.Set("content-type", "application/json")
	req.Header.Set("accept", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("brevo send failed: status %d: %s", resp.StatusCode, string(data))
	}

	return nil
}
