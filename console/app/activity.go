package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Astemirdum/library-console/console/config"
	"github.com/Astemirdum/library-console/console/internal/service/activity"
	"github.com/Astemirdum/library-console/pkg/kafka"
	"github.com/Astemirdum/library-console/pkg/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// RunActivityLog follows the activity topic and logs every event until a
// termination signal arrives.
func RunActivityLog(cfg config.Config) error {
	log := logger.NewLogger(cfg.Log, "activity-log")
	defer log.Sync() //nolint:errcheck

	if !cfg.Kafka.Enabled() {
		return errors.New("KAFKA_ADDRS is empty")
	}
	group, err := kafka.NewConsumerGroup(cfg.Kafka)
	if err != nil {
		return errors.Wrap(err, "kafka.NewConsumerGroup")
	}
	defer group.Close() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := activity.NewConsumer(func(_ context.Context, ev kafka.EventActivity) error {
		log.Info("activity",
			zap.String("id", ev.ID.String()),
			zap.String("action", string(ev.Action)),
			zap.Int("entity_id", ev.EntityID),
			zap.Time("at", ev.At))
		return nil
	}, log)

	log.Info("consuming", zap.String("topic", cfg.Kafka.ActivityTopic), zap.String("group", cfg.Kafka.ConsumerGroup))
	return kafka.Consume(ctx, group, consumer, cfg.Kafka.ActivityTopic)
}
