package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Guimenn/mobiliai-inventory/config"
	"github.com/Guimenn/mobiliai-inventory/internal/inventory"
	"github.com/Guimenn/mobiliai-inventory/internal/inventory/dto"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// SaleListener consumes completed-sale events from the sales module and
// deducts the sold units from the selling store's inventory rows.
type SaleListener struct {
	reader *kafka.Reader
	uc     inventory.UseCase
	logger *zap.Logger
}

func NewSaleListener(cfg *config.KafkaConfig, uc inventory.UseCase, log *zap.Logger) *SaleListener {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.Topic,
		GroupID:  cfg.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &SaleListener{
		reader: reader,
		uc:     uc,
		logger: log,
	}
}

func (l *SaleListener) Close() error {
	return l.reader.Close()
}

func (l *SaleListener) Start(ctx context.Context) {
	l.logger.Info("Starting sale event listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping sale event listener")
			return
		default:
			msg, err := l.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type SaleCompletedEvent struct {
	EventID   string      `json:"event_id"`
	EventType string      `json:"event_type"`
	Payload   SalePayload `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

type SalePayload struct {
	ID      string         `json:"id"`
	StoreID string         `json:"store_id"`
	Items   []dto.SaleItem `json:"items"`
}

func (l *SaleListener) processMessage(ctx context.Context, value []byte) {
	var event SaleCompletedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != "SaleCompleted" {
		return
	}

	l.logger.Info("Processing SaleCompleted event",
		zap.String("sale_id", event.Payload.ID),
		zap.String("store_id", event.Payload.StoreID),
	)

	if err := l.uc.RecordSale(ctx, event.Payload.StoreID, event.Payload.Items); err != nil {
		l.logger.Error("Failed to record sale",
			zap.String("sale_id", event.Payload.ID),
			zap.Error(err),
		)
	}
}
