package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fulfillment/cmd"
	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/kafka/orderevents"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/redis/orderlock"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/logger"

	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	l := logger.New(configs.Environment, configs.LogLevel)
	defer func() { _ = logger.Sync(l) }()

	gormDB, sqlDB := mustGormDB(configs, l)
	defer sqlDB.Close()

	if err = orderrepo.Migrate(gormDB); err != nil {
		l.Fatal("Failed to migrate database", zap.Error(err))
	}

	redisClient, err := orderlock.NewClient(configs.Redis.URL)
	if err != nil {
		l.Fatal("Failed to create Redis client", zap.Error(err))
	}
	defer redisClient.Close()
	locker := orderlock.NewRedisOrderLocker(redisClient, configs.Redis.LockTTL, configs.Redis.LockWait)

	var publisher ports.OrderEventPublisher
	if len(configs.Kafka.Brokers) > 0 {
		producer, producerErr := orderevents.NewSyncProducer(configs.Kafka.Brokers)
		if producerErr != nil {
			l.Fatal("Failed to create Kafka producer", zap.Error(producerErr))
		}
		kafkaPublisher := orderevents.NewKafkaPublisher(producer, configs.Kafka.OrderChangedTopic, l)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	} else {
		l.Warn("KAFKA_BROKERS is empty, order events are not published")
	}

	app := cmd.NewCompositionRoot(configs, gormDB, locker, publisher, l)

	jobManager := jobs.NewJobManager().Add("approval backlog", app.CreateApprovalBacklogJob())
	if err = jobManager.StartAll(); err != nil {
		l.Fatal("Failed to start jobs", zap.Error(err))
	}
	defer jobManager.StopAll()

	startWebServer(app, configs, l)
}

func mustGormDB(configs cmd.Config, l *zap.Logger) (*gorm.DB, *sql.DB) {
	sqlDB, err := sql.Open("postgres", configs.Database.DSN())
	if err != nil {
		l.Fatal("Failed to open database", zap.Error(err))
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.NewGormLogger(l, logger.GormLevel(configs.LogLevel), 200*time.Millisecond),
	})
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}

	return gormDB, sqlDB
}

func startWebServer(app cmd.CompositionRoot, configs cmd.Config, l *zap.Logger) {
	server := httpin.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateApproveOrderCommandHandler(),
		app.CreateRejectOrderCommandHandler(),
		app.CreateAllocateInventoryCommandHandler(),
		app.CreateDispatchProductsCommandHandler(),
		app.CreateDeliverProductsCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateGetOrdersByStatusQueryHandler(),
		l,
	)

	e, err := httpin.NewRouter(server, httpin.RouterConfig{
		RateLimit: configs.RateLimit,
		LogLevel:  echoLogLevel(configs.LogLevel),
		Logger:    l,
	})
	if err != nil {
		l.Fatal("Failed to build router", zap.Error(err))
	}

	go func() {
		addr := fmt.Sprintf("0.0.0.0:%d", configs.HTTPPort)
		l.Info("HTTP server starting", zap.String("addr", addr))
		if startErr := e.Start(addr); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			l.Fatal("HTTP server failed", zap.Error(startErr))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = e.Shutdown(ctx); err != nil {
		l.Error("HTTP server shutdown failed", zap.Error(err))
	}
}

func echoLogLevel(level string) log.Lvl {
	switch level {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}
