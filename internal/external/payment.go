package external

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"travelapp/internal/config"
)

// PaymentClient эмулирует внешний платёжный шлюз. Настоящей интеграции нет:
// исход платежа разыгрывается с заданной вероятностью успеха после
// фиксированной задержки обработки.
type PaymentClient struct {
	successRate     float64
	processingDelay time.Duration
}

// ChargeResult - результат попытки списания
type ChargeResult struct {
	Approved    bool
	PaymentRef  string
	ProcessedAt time.Time
}

func NewPaymentClient(cfg config.PaymentConfig) *PaymentClient {
	return &PaymentClient{
		successRate:     cfg.SuccessRate,
		processingDelay: cfg.ProcessingDelay,
	}
}

// Charge имитирует обработку платежа. Задержка прерывается при отмене контекста.
func (p *PaymentClient) Charge(ctx context.Context, bookingID string, amount int64) (*ChargeResult, error) {
	if p.processingDelay > 0 {
		timer := time.NewTimer(p.processingDelay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	now := time.Now()
	result := &ChargeResult{
		Approved:    rand.Float64() < p.successRate,
		ProcessedAt: now,
	}
	if result.Approved {
		result.PaymentRef = fmt.Sprintf("PAY_%s_%d", bookingID, now.Unix())
	}

	return result, nil
}
