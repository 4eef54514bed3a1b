package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Astemirdum/library-console/console/config"
	"github.com/Astemirdum/library-console/console/internal/handler"
	"github.com/Astemirdum/library-console/console/internal/server"
	"github.com/Astemirdum/library-console/console/internal/service/activity"
	"github.com/Astemirdum/library-console/console/internal/service/library"
	"github.com/Astemirdum/library-console/console/internal/view"
	"github.com/Astemirdum/library-console/pkg/kafka"
	"github.com/Astemirdum/library-console/pkg/logger"
	"github.com/Astemirdum/library-console/pkg/validate"
	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

func Run(cfg config.Config) {
	log := logger.NewLogger(cfg.Log, "console")
	defer log.Sync() //nolint:errcheck

	lib, err := library.NewService(log, cfg)
	if err != nil {
		log.Fatal("library client", zap.Error(err))
	}

	var (
		svc      view.LibraryService = lib
		producer sarama.SyncProducer
	)
	if cfg.Kafka.Enabled() {
		producer, err = kafka.NewProducer(cfg.Kafka)
		if err != nil {
			log.Fatal("kafka producer", zap.Error(err))
		}
		svc = activity.NewService(lib, producer, cfg.Kafka.ActivityTopic, log)
		log.Info("activity events on", zap.String("topic", cfg.Kafka.ActivityTopic))
	}

	page := handler.NewPage()
	ctrl := view.NewController(svc, page, validate.NewCustomValidator(), log)
	h := handler.New(ctrl, page, log)

	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ", zap.String("addr", srv.Addr()))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Error("producer close", zap.Error(err))
		}
	}
	log.Info("Graceful shutdown finished")
}
