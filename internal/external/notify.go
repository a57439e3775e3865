package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"travelapp/internal/config"
)

// NotificationClient отправляет письма через внешний сервис уведомлений.
// При пустом BaseURL клиент выключен и все вызовы становятся no-op.
type NotificationClient struct {
	baseURL    string
	httpClient *http.Client
}

type notificationRequest struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

func NewNotificationClient(cfg config.NotifyConfig) *NotificationClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &NotificationClient{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *NotificationClient) Enabled() bool {
	return c != nil && c.baseURL != ""
}

// SendBookingConfirmation отправляет письмо о подтверждении бронирования
func (c *NotificationClient) SendBookingConfirmation(ctx context.Context, email, bookingID string) error {
	return c.send(ctx, notificationRequest{
		Recipient: email,
		Subject:   fmt.Sprintf("Booking %s confirmed", bookingID),
		Body:      fmt.Sprintf("Your booking %s has been confirmed. Thank you for choosing us.", bookingID),
	})
}

// SendBookingCancellation отправляет письмо об отмене с суммой возврата
func (c *NotificationClient) SendBookingCancellation(ctx context.Context, email, bookingID string, refundAmount int64) error {
	return c.send(ctx, notificationRequest{
		Recipient: email,
		Subject:   fmt.Sprintf("Booking %s cancelled", bookingID),
		Body:      fmt.Sprintf("Your booking %s has been cancelled. Refund amount: %d.", bookingID, refundAmount),
	})
}

func (c *NotificationClient) send(ctx context.Context, payload notificationRequest) error {
	if !c.Enabled() {
		return nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/notifications", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notification service returned status %d", resp.StatusCode)
	}
	return nil
}
