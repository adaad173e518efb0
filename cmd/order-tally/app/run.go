package app

import (
	"context"
	"os"

	"github.com/aq2208/order-tally/configs"
	"github.com/aq2208/order-tally/internal/adapter/cache"
	"github.com/aq2208/order-tally/internal/adapter/http"
	"github.com/aq2208/order-tally/internal/adapter/http/middleware"
	"github.com/aq2208/order-tally/internal/adapter/kafka"
	"github.com/aq2208/order-tally/internal/adapter/queue"
	domain "github.com/aq2208/order-tally/internal/entity"
	"github.com/aq2208/order-tally/internal/logging"
	"github.com/aq2208/order-tally/internal/sink"
	"github.com/aq2208/order-tally/internal/usecase"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	logger := logging.Init(cfg.App.Name, cfg.App.LogFile)
	logger.Info("order-tally: starting up")

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	// consumption guard: redis when configured, in-process otherwise
	var guard usecase.ConsumptionGuard
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       0,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, func() { _ = rdb.Close() })
		guard = cache.NewRedisGuard(rdb, cfg.Guard.TTL)
	} else {
		logger.Warn("no redis configured, using in-process consumption guard")
		guard = cache.NewMemoryGuard()
	}

	// report sinks: stdout always, brokers when enabled
	sinks := []domain.ReportSink{sink.NewWriterSink(os.Stdout)}

	if cfg.Rabbit.Enabled {
		conn, err := amqp.Dial(cfg.Rabbit.URL)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, func() { _ = conn.Close() })

		ch, err := conn.Channel()
		if err != nil {
			cleanup()
			return nil, nil, err
		}

		rs, err := queue.NewRabbitSink(ch,
			queue.WithExchange(cfg.Rabbit.Exchange),
			queue.WithRoutingKey(cfg.Rabbit.RoutingKey),
		)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		sinks = append(sinks, rs)
	}

	if cfg.Kafka.Enabled {
		producer, err := kafka.NewSyncProducer(cfg.Kafka.Brokers)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, func() { _ = producer.Close() })
		sinks = append(sinks, kafka.NewSink(producer, cfg.Kafka.Topic))
	}

	var reportSink domain.ReportSink = sinks[0]
	if len(sinks) > 1 {
		reportSink = sink.NewMulti(sinks...)
	}

	// use case + handlers + router
	processUC := usecase.NewProcessOrder(guard, reportSink)
	h := http.NewOrderHandler(processUC, cfg.HTTP.RequestTimeout)
	th := http.NewTokenHandler(cfg)
	authz := middleware.NewAuthz(cfg)
	router := http.NewRouter(h, th, authz)

	return &App{Router: router}, cleanup, nil
}
