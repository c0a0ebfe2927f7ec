package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/stichkala/order-service/docs"
	"github.com/stichkala/order-service/internal/app"
	"github.com/stichkala/order-service/internal/config"
	"github.com/stichkala/order-service/internal/gateway"
	"github.com/stichkala/order-service/internal/handler"
	"github.com/stichkala/order-service/internal/middleware"
	"github.com/stichkala/order-service/internal/notify"
	"github.com/stichkala/order-service/internal/outbox"
	"github.com/stichkala/order-service/internal/postgres"
	"github.com/stichkala/order-service/internal/pricing"
	"github.com/stichkala/order-service/internal/repo"
	"github.com/stichkala/order-service/internal/service"
	"github.com/stichkala/order-service/pkg/cache"
	"github.com/stichkala/order-service/pkg/trm"

	"github.com/joho/godotenv"
)

// @title           Storefront Order Service API
// @version         1.0
// @description     Оформление заказов, сверка оплаты и трекинг
// @BasePath        /
func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	db, err := postgres.New(ctx, conf.Postgres)
	panicIfErr("failed to connect to db", err)
	defer db.Close()
	logger.Info("postgres connected")

	panicIfErr("failed to migrate db", postgres.Migrate(ctx, db))

	orderRepo := repo.NewPostgresRepo(db)
	txManager := trm.NewManager(db)
	cache := cache.NewLRUCache(conf.Cache.Capacity, conf.Cache.TTL)
	razorpay := gateway.NewRazorpay(logger, conf.Gateway)

	orderService := service.NewOrderService(logger, txManager, orderRepo, orderRepo, razorpay, cache, service.Config{
		Pricing: pricing.Policy{
			RejectMismatch: conf.Orders.RejectTotalMismatch,
			Tolerance:      conf.Orders.TotalTolerance,
		},
		DeliveryLeadTime: conf.Orders.DeliveryLeadTime,
		GatewayTimeout:   conf.Gateway.Timeout,
		EventTopic:       conf.Kafka.Topic,
	})
	paymentService := service.NewPaymentService(logger, txManager, orderRepo, razorpay, cache, conf.Kafka.Topic)

	relay := outbox.NewRelay(logger, txManager, orderRepo, outbox.NewKafkaWriter(conf.Kafka), conf.Outbox)
	defer relay.Close()

	limiter := middleware.NewRateLimiter(conf.RateLimit.RPS, conf.RateLimit.Burst)

	handler.RegisterMetrics()
	kafkaHandler := handler.NewKafkaHandler(logger, conf.Kafka, newNotifier(logger, conf.Notify))
	httpHandler := handler.NewHTTPHandler(logger, orderService, paymentService, limiter.Handler)

	app := app.New(logger, conf)

	app.SetHTTPHandlers(httpHandler)
	app.SetConsumers(kafkaHandler)
	app.SetStarters(cache, limiter, relay, cacheWarmUpAdapter{logger: logger, svc: orderService, count: conf.Cache.Capacity})

	panicIfErr("failed to start app", app.Start(ctx))
	<-ctx.Done()
	panicIfErr("failed to stop app", app.Stop())
}

func init() {
	godotenv.Load()
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func newNotifier(logger *slog.Logger, cfg config.Notify) handler.Notifier {
	if cfg.WebhookURL == "" {
		return notify.NewLogNotifier(logger)
	}
	return notify.NewWebhookNotifier(logger, cfg.WebhookURL, cfg.Timeout)
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}

type warmUpper interface {
	WarmUpCache(ctx context.Context, count int) error
}

type cacheWarmUpAdapter struct {
	logger *slog.Logger
	svc    warmUpper
	count  int
}

// Start warms the cache once. A cold cache is not fatal.
func (a cacheWarmUpAdapter) Start(ctx context.Context) error {
	if err := a.svc.WarmUpCache(ctx, a.count); err != nil {
		a.logger.Warn("cache warm up skipped", slog.Any("error", err))
	}
	return nil
}
