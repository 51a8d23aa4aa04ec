package service

import (
	"context"
	"encoding/json"

	"sales-assistant-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IStockAlertService interface {
	Consume(ctx context.Context) error
}

// stockAlertService drains low-stock alerts off the in-process bus and logs
// them, off the request path.
type stockAlertService struct {
	pubSub *gochannel.GoChannel
	log    logger.ILogger
}

func NewStockAlertService(pubSub *gochannel.GoChannel, log logger.ILogger) IStockAlertService {
	return &stockAlertService{pubSub: pubSub, log: log}
}

func (s *stockAlertService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, StockAlertTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(msg)
		}
	}()

	return nil
}

func (s *stockAlertService) processMessage(msg *message.Message) {
	var alert StockAlertMessage
	if err := json.Unmarshal(msg.Payload, &alert); err != nil {
		s.log.Error("stock-alert", "Failed to unmarshal alert", map[string]interface{}{"error": err.Error()})
		msg.Ack() // malformed payloads would retry forever
		return
	}

	s.log.Warn("stock-alert", "Product stock is running low", map[string]interface{}{
		"product": alert.ProductName,
		"stock":   alert.Stock,
	})
	msg.Ack()
}
