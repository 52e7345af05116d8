package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Kamleshja/pims-service/internal/auth"
	"github.com/Kamleshja/pims-service/internal/inventory"
	"github.com/Kamleshja/pims-service/internal/inventory/dto"
	"github.com/Kamleshja/pims-service/pkg/broker"
	"github.com/Kamleshja/pims-service/pkg/logger"
	"go.uber.org/zap"
)

// InventoryListener deducts stock for committed orders. Each order item goes
// through the same AdjustStock path as manual adjustments, so the ledger and
// low-stock semantics hold for event-driven changes too.
type InventoryListener struct {
	consumer *broker.KafkaConsumer
	uc       inventory.UseCase
	logger   logger.ZapLogger
}

func NewInventoryListener(consumer *broker.KafkaConsumer, uc inventory.UseCase, log logger.ZapLogger) *InventoryListener {
	return &InventoryListener{
		consumer: consumer,
		uc:       uc,
		logger:   log,
	}
}

func (l *InventoryListener) Start(ctx context.Context) {
	l.logger.Info("starting inventory order listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("stopping inventory order listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type orderCreatedEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   orderPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type orderPayload struct {
	ID    string             `json:"id"`
	Items []orderItemPayload `json:"items"`
}

type orderItemPayload struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (l *InventoryListener) processMessage(ctx context.Context, value []byte) {
	var event orderCreatedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("failed to unmarshal order event", zap.Error(err))
		return
	}

	if event.EventType != "OrderCreated" {
		return
	}

	l.logger.Info("processing OrderCreated event", zap.String("order_id", event.Payload.ID))

	for _, item := range event.Payload.Items {
		_, err := l.uc.AdjustStock(ctx, &dto.AdjustStockInput{
			ProductID:      item.ProductID,
			QuantityChange: -item.Quantity,
			Reason:         "order sale " + event.Payload.ID,
			ActorID:        auth.SystemActorID,
		})
		if err != nil {
			l.logger.Error("failed to deduct stock for order item",
				zap.String("order_id", event.Payload.ID),
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
		}
	}
}
