package kafka

import (
	"context"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	ActivityTopic         = "library-activity"
	ActivityConsumerGroup = "library-activity-log"
)

type Config struct {
	Addrs         []string `envconfig:"KAFKA_ADDRS"`
	ActivityTopic string   `envconfig:"KAFKA_ACTIVITY_TOPIC" default:"library-activity"`
	ConsumerGroup string   `envconfig:"KAFKA_CONSUMER_GROUP" default:"library-activity-log"`
}

func (c Config) Enabled() bool {
	return len(c.Addrs) > 0
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

func NewConsumerGroup(cfg Config) (sarama.ConsumerGroup, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	defaultCfg.Consumer.Return.Errors = false

	group := cfg.ConsumerGroup
	if group == "" {
		group = ActivityConsumerGroup
	}
	return sarama.NewConsumerGroup(cfg.Addrs, group, defaultCfg)
}

// Consume rejoins the group after every rebalance until ctx is done or the
// group is closed.
func Consume(ctx context.Context, group sarama.ConsumerGroup, handler sarama.ConsumerGroupHandler, topics ...string) error {
	for {
		if err := group.Consume(ctx, topics, handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			return errors.Wrap(err, "consume")
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

type Action string

const (
	ActionBookCreated       Action = "book.created"
	ActionBookDeleted       Action = "book.deleted"
	ActionAuthorCreated     Action = "author.created"
	ActionBorrowingCreated  Action = "borrowing.created"
	ActionBorrowingReturned Action = "borrowing.returned"
)

// EventActivity is a successful mutation made through the console.
type EventActivity struct {
	ID       uuid.UUID `json:"id"`
	Action   Action    `json:"action"`
	EntityID int       `json:"entity_id"`
	At       time.Time `json:"at"`
}

func NewEventActivity(action Action, entityID int, at time.Time) EventActivity {
	return EventActivity{
		ID:       uuid.New(),
		Action:   action,
		EntityID: entityID,
		At:       at.UTC(),
	}
}
