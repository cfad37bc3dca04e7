package distribution

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"carencia/internal/domain"
)

const (
	webhookUserAgent     = "CarencIA-LeadDistributor/1.0"
	defaultWebhookExpiry = 10 * time.Second
)

// WebhookClient POSTs new-lead payloads to dealership endpoints. No
// retries: a failed delivery is downgraded to the next channel by the
// dispatcher.
type WebhookClient struct {
	httpClient *http.Client
}

func NewWebhookClient(timeout time.Duration) *WebhookClient {
	if timeout <= 0 {
		timeout = defaultWebhookExpiry
	}
	return &WebhookClient{
		httpClient: &http.Client{Timeout: timeout},
	}
}

type webhookVehicle struct {
	ID    string  `json:"id"`
	Make  string  `json:"make"`
	Model string  `json:"model"`
	Year  int     `json:"year"`
	Price float64 `json:"price"`
}

type webhookLead struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	VehicleInterest *webhookVehicle `json:"vehicleInterest"`
	Origin          string          `json:"origin"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type webhookPayload struct {
	Event     string      `json:"event"`
	Timestamp time.Time   `json:"timestamp"`
	Lead      webhookLead `json:"lead"`
}

func buildWebhookPayload(lead *domain.Lead) webhookPayload {
	wl := webhookLead{
		ID:        lead.ID.String(),
		Name:      lead.Name,
		Email:     lead.Email,
		Phone:     lead.Phone,
		Origin:    lead.Origin,
		CreatedAt: lead.CreatedAt,
	}
	if v := lead.VehicleInterest; v != nil {
		wl.VehicleInterest = &webhookVehicle{
			ID:    v.ID.String(),
			Make:  v.Make,
			Model: v.Model,
			Year:  v.Year,
			Price: v.Price,
		}
	}
	return webhookPayload{
		Event:     "new_lead",
		Timestamp: time.Now(),
		Lead:      wl,
	}
}

// Send delivers the payload. Any non-2xx status is a failure carrying
// the status code; network errors and timeouts surface as-is.
func (c *WebhookClient) Send(ctx context.Context, url string, lead *domain.Lead) error {
	body, err := json.Marshal(buildWebhookPayload(lead))
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", webhookUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook delivery: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
