package messaging

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/stan.go"

	"travelapp/internal/config"
)

// NATSClient - клиент NATS Streaming для публикации доменных событий.
// При пустом URL работает в выключенном режиме: Publish становится no-op,
// чтобы приложение поднималось без брокера.
type NATSClient struct {
	conn stan.Conn
}

func NewNATSClient(cfg config.NATSConfig) (*NATSClient, error) {
	if cfg.URL == "" {
		slog.Info("NATS is disabled, events will not be published")
		return &NATSClient{}, nil
	}

	clientID := fmt.Sprintf("%s-%s", cfg.ClientID, uuid.New().String()[:8])

	conn, err := stan.Connect(cfg.ClusterID, clientID,
		stan.NatsURL(cfg.URL),
		stan.ConnectWait(10*time.Second),
		stan.SetConnectionLostHandler(func(_ stan.Conn, reason error) {
			slog.Error("NATS connection lost", "error", reason)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	slog.Info("Connected to NATS Streaming", "url", cfg.URL, "client_id", clientID)
	return &NATSClient{conn: conn}, nil
}

func (n *NATSClient) Enabled() bool {
	return n != nil && n.conn != nil
}

// Publish сериализует событие в JSON и публикует в указанный subject
func (n *NATSClient) Publish(subject string, event interface{}) error {
	if !n.Enabled() {
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := n.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	return nil
}

// SubscribeQueue подписывается на subject в составе queue-группы с durable name
func (n *NATSClient) SubscribeQueue(subject, queueGroup, durableName string, handler stan.MsgHandler) (stan.Subscription, error) {
	if !n.Enabled() {
		return nil, fmt.Errorf("NATS is disabled")
	}

	sub, err := n.conn.QueueSubscribe(subject, queueGroup, handler,
		stan.DurableName(durableName),
		stan.SetManualAckMode(),
		stan.AckWait(30*time.Second),
		stan.MaxInflight(1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", subject, err)
	}

	slog.Info("Subscribed to NATS subject", "subject", subject, "queue_group", queueGroup)
	return sub, nil
}

func (n *NATSClient) Close() error {
	if !n.Enabled() {
		return nil
	}
	return n.conn.Close()
}
