package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"leadmarket/internal/pkg/config"
	"leadmarket/internal/pkg/errs"
)

type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

type HTTPEmailSender struct {
	url    string
	apiKey string
	from   string
	client *http.Client
}

func NewEmailSender(cfg config.NotifyConfig) EmailSender {
	if cfg.EmailURL == "" {
		return NoopEmailSender{}
	}
	return &HTTPEmailSender{
		url:    cfg.EmailURL,
		apiKey: cfg.EmailAPIKey,
		from:   cfg.EmailFrom,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *HTTPEmailSender) SendEmail(ctx context.Context, to, subject, body string) error {
	payload, err := json.Marshal(map[string]string{
		"from":    s.from,
		"to":      to,
		"subject": subject,
		"body":    body,
	})
	if err != nil {
		return errs.Wrap(err, "marshal email payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return errs.Wrap(err, "build email request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return errs.Wrap(err, "send email")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return errs.New(fmt.Sprintf("email provider returned status %d", resp.StatusCode))
	}
	return nil
}

type NoopEmailSender struct{}

func (NoopEmailSender) SendEmail(_ context.Context, _, _, _ string) error { return nil }
