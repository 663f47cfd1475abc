package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client posts reminder notifications to a configured webhook. The webhook is
// whatever the operator wires up (a chat bridge, an email relay); this client
// only owns the HTTP round trip and its timeout.
type Client struct {
	WebhookURL string
	HTTPClient *http.Client
}

type Reminder struct {
	OrderNumber   string `json:"order_number"`
	CustomerName  string `json:"customer_name"`
	InstallmentNo int    `json:"installment_no"`
	Amount        int64  `json:"amount"`
	DueDate       string `json:"due_date"`
	Overdue       bool   `json:"overdue"`
}

func NewClient(webhookURL string) *Client {
	return &Client{
		WebhookURL: webhookURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) Enabled() bool {
	return c.WebhookURL != ""
}

// Send posts one reminder. A non-2xx response is an error; the caller decides
// whether to retry on a later sweep.
func (c *Client) Send(reminder Reminder) error {
	body, err := json.Marshal(reminder)
	if err != nil {
		return fmt.Errorf("failed to marshal reminder: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("reminder webhook returned status %d", resp.StatusCode)
	}
	return nil
}
