// Package notify delivers outbound email notifications through a
// transactional-email HTTP API. Delivery is best-effort: the scheduler never
// waits on it and never sees its errors.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/skillbridge/exchange-system/internal/core/domain"
)

const (
	defaultEndpoint = "https://api.brevo.com/v3/smtp/email"
	requestTimeout  = 10 * time.Second
)

// EmailNotifier implements ports.Notifier over a Brevo-compatible HTTP API.
// With an empty API key it degrades to log-only delivery, which keeps local
// development working without credentials.
type EmailNotifier struct {
	endpoint    string
	apiKey      string
	senderEmail string
	senderName  string
	client      *http.Client
	log         zerolog.Logger
}

func NewEmailNotifier(apiKey, senderEmail, senderName string, log zerolog.Logger) *EmailNotifier {
	return &EmailNotifier{
		endpoint:    defaultEndpoint,
		apiKey:      apiKey,
		senderEmail: senderEmail,
		senderName:  senderName,
		client:      &http.Client{Timeout: requestTimeout},
		log:         log,
	}
}

type emailPayload struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
}

// Send renders and delivers one notification email.
func (e *EmailNotifier) Send(ctx context.Context, n domain.Notification) error {
	subject, body := renderEmail(n)

	if e.apiKey == "" {
		e.log.Info().
			Str("recipient", n.RecipientEmail).
			Str("subject", subject).
			Msg("email notifier not configured, logging instead")
		return nil
	}

	payload := emailPayload{
		Sender:      map[string]string{"name": e.senderName, "email": e.senderEmail},
		To:          []map[string]string{{"email": n.RecipientEmail, "name": n.RecipientName}},
		Subject:     subject,
		HTMLContent: body,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", e.apiKey)
	req.Header.Set("content-type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusAccepted {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("email provider returned %d: %s", resp.StatusCode, detail)
	}
	return nil
}

func renderEmail(n domain.Notification) (subject, body string) {
	when := n.ScheduledDate.Format("Mon, 2 Jan 2006 15:04 MST")

	switch n.Kind {
	case domain.NotifySessionCreated:
		subject = "New session proposed: " + n.SessionTitle
		body = fmt.Sprintf(
			"<h1>Session Proposed</h1><p>Hi %s,</p><p>A teacher has proposed the session <b>%s</b> scheduled for %s. Confirm it from your dashboard.</p>",
			n.RecipientName, n.SessionTitle, when,
		)
	case domain.NotifySessionConfirmed:
		subject = "Session confirmed: " + n.SessionTitle
		body = fmt.Sprintf(
			"<h1>Session Confirmed</h1><p>Hi %s,</p><p>Your student confirmed <b>%s</b> scheduled for %s.</p>",
			n.RecipientName, n.SessionTitle, when,
		)
	default:
		subject = "Skill exchange update"
		body = fmt.Sprintf("<p>Hi %s,</p><p>There is an update on session <b>%s</b>.</p>", n.RecipientName, n.SessionTitle)
	}
	return subject, body
}
