// Package notifier calls the notification service that emails clients about
// order status changes.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/core/ports"
)

const notifyPath = "/notify"

// Request is the body accepted by the notification service.
type Request struct {
	OrderID    string `json:"orderId"`
	StatusName string `json:"statusName"`
}

// Response is the body returned by the notification service.
type Response struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}

// Client implements ports.Notifier over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client posting to baseURL. Every call is bounded by timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Notify posts the order and status name. Transport errors and non-2xx
// answers are reported in the result.
func (c *Client) Notify(ctx context.Context, orderID kernel.UUID, statusName string) ports.NotificationResult {
	body, err := json.Marshal(Request{OrderID: orderID.String(), StatusName: statusName})
	if err != nil {
		return failed(err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+notifyPath, bytes.NewReader(body))
	if err != nil {
		return failed(err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return failed(fmt.Sprintf("notification service unreachable: %v", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return failed(fmt.Sprintf("read notification response: %v", err))
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return ports.NotificationResult{Sent: true}
	}

	var decoded Response
	if json.Unmarshal(raw, &decoded) == nil && decoded.Error != "" {
		msg := decoded.Error
		if decoded.Details != "" {
			msg += ": " + decoded.Details
		}
		return failed(msg)
	}
	return failed(fmt.Sprintf("notification service returned %d", resp.StatusCode))
}

func failed(msg string) ports.NotificationResult {
	return ports.NotificationResult{Sent: false, Error: msg}
}
