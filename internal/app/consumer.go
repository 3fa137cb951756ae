package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ArthurRocumback/Folha-de-Ponto/internal/events"
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/messaging/kafka/consumer"
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/shared/connection"
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/timeclock"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer mantém o agregado de frequência diária a partir dos eventos
// ponto.registrado.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	timeclockRepo := timeclock.NewRepository(gormDB)
	timeclockService := timeclock.NewService(sqlDB, timeclockRepo, nil, nil, nil)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.PontoRegistradoTopic,
		GroupID:        "folha-de-ponto-frequencia",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumePontoRegistrado(ctx, reader, timeclockService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
