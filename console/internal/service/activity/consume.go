package activity

import (
	"context"
	"encoding/json"

	"github.com/Astemirdum/library-console/pkg/kafka"
	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

type HandleFunc func(ctx context.Context, event kafka.EventActivity) error

// Consumer reads activity events back from the topic. It implements
// sarama.ConsumerGroupHandler.
type Consumer struct {
	handle HandleFunc
	log    *zap.Logger
}

func NewConsumer(handle HandleFunc, log *zap.Logger) *Consumer {
	return &Consumer{
		handle: handle,
		log:    log.Named("consumer"),
	}
}

func (c *Consumer) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (c *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim marks undecodable messages so they are skipped. A message the
// handler fails on stays unmarked and is redelivered after a rebalance.
func (c *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				c.log.Warn("message channel was closed")
				return nil
			}
			var event kafka.EventActivity
			if err := json.Unmarshal(message.Value, &event); err != nil {
				c.log.Error("decode activity", zap.Error(err), zap.Int64("offset", message.Offset))
				session.MarkMessage(message, "")
				continue
			}
			if err := c.handle(session.Context(), event); err != nil {
				c.log.Error("handle activity", zap.Error(err))
				continue
			}
			c.log.Debug("message claimed",
				zap.String("topic", message.Topic),
				zap.Time("timestamp", message.Timestamp),
				zap.String("action", string(event.Action)))
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}
