package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/BruksfildServices01/coach-calendar/internal/config"
)

// EmailJSClient sends templated email through the EmailJS REST API.
type EmailJSClient struct {
	cfg        config.EmailJSConfig
	httpClient *http.Client
}

func NewEmailJSClient(cfg config.EmailJSConfig) *EmailJSClient {
	return &EmailJSClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type emailJSRequest struct {
	ServiceID      string `json:"service_id"`
	TemplateID     string `json:"template_id"`
	UserID         string `json:"user_id"`
	AccessToken    string `json:"accessToken,omitempty"`
	TemplateParams Params `json:"template_params"`
}

func (c *EmailJSClient) templateID(template string) (string, error) {
	switch template {
	case TemplateBookingAccepted:
		return c.cfg.BookingTemplateID, nil
	case TemplateEventUpdated:
		return c.cfg.EventUpdatedTemplateID, nil
	default:
		return "", fmt.Errorf("unknown template %q", template)
	}
}

func (c *EmailJSClient) Send(ctx context.Context, msg Message) error {
	templateID, err := c.templateID(msg.Template)
	if err != nil {
		return err
	}

	body, err := json.Marshal(emailJSRequest{
		ServiceID:      c.cfg.ServiceID,
		TemplateID:     templateID,
		UserID:         c.cfg.PublicKey,
		AccessToken:    c.cfg.PrivateKey,
		TemplateParams: msg.Params,
	})
	if err != nil {
		return fmt.Errorf("encode emailjs request: %w", err)
	}

	url := strings.TrimRight(c.cfg.APIURL, "/") + "/api/v1.0/email/send"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("emailjs request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("emailjs status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}
