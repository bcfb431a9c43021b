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

type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

type HTTPSMSSender struct {
	url    string
	apiKey string
	from   string
	client *http.Client
}

func NewSMSSender(cfg config.NotifyConfig) SMSSender {
	if cfg.SMSURL == "" {
		return NoopSMSSender{}
	}
	return &HTTPSMSSender{
		url:    cfg.SMSURL,
		apiKey: cfg.SMSAPIKey,
		from:   cfg.SMSFrom,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *HTTPSMSSender) SendSMS(ctx context.Context, to, body string) error {
	payload, err := json.Marshal(map[string]string{
		"from": s.from,
		"to":   to,
		"body": body,
	})
	if err != nil {
		return errs.Wrap(err, "marshal sms payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return errs.Wrap(err, "build sms request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return errs.Wrap(err, "send sms")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return errs.New(fmt.Sprintf("sms provider returned status %d", resp.StatusCode))
	}
	return nil
}

// NoopSMSSender is used when no provider is configured (local dev, CI).
type NoopSMSSender struct{}

func (NoopSMSSender) SendSMS(_ context.Context, _, _ string) error { return nil }
