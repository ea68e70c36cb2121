package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"artnotifier/internal/config"
	"artnotifier/internal/repository"
	"artnotifier/internal/service"
	amqpt "artnotifier/internal/transport/amqp"
	httpt "artnotifier/internal/transport/http"
	"artnotifier/internal/worker"
	"artnotifier/pkg/rabbit"
	"artnotifier/pkg/storage/postgres"
	"artnotifier/pkg/storage/redis"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wb-go/wbf/retry"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	_strategyBackoff    = 2
	_channelReopenTries = 3
	_channelReopenDelay = 200 * time.Millisecond
)

var errBrokerDisconnected = errors.New("broker connection closed")

// pingFunc adapts a health check to httpt.ReadinessChecker.
type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func Run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	eg, ctx := errgroup.WithContext(ctx)

	db, dbErr := initDatabase(ctx, &cfg.Database, log)
	if dbErr != nil {
		return dbErr
	}
	defer closeDB(db)

	tm, tmErr := initTransactionManager(db, log)
	if tmErr != nil {
		return tmErr
	}

	rdb, rdbErr := initCache(ctx, &cfg.Cache)
	if rdbErr != nil {
		return rdbErr
	}
	defer closeCache(rdb, log)

	conn, connErr := initBroker(&cfg.Broker)
	if connErr != nil {
		return connErr
	}
	defer closeBroker(conn, log)

	publisher, pubErr := initPublisher(conn, cfg)
	if pubErr != nil {
		return pubErr
	}
	defer func() { _ = publisher.Close() }()

	notifyRepo := repository.NewNotifyRepository(db)
	userRepo := repository.NewUserRepository(db)
	cacheRepo := repository.NewCacheRepository(rdb.Client, cfg.Cache.DedupTTL, log.With(zap.String("component", "cache")))

	notifyService, svcErr := initNotifyService(&cfg.Service, notifyRepo, userRepo, log)
	if svcErr != nil {
		return svcErr
	}

	if cfg.Worker.Enabled {
		if wErr := initWorker(ctx, eg, &cfg.Worker, tm, notifyRepo, cacheRepo, publisher, log); wErr != nil {
			return wErr
		}
	}

	if cErr := initConsumers(ctx, eg, conn, &cfg.Broker, notifyService, cacheRepo, log); cErr != nil {
		return cErr
	}

	readiness := []httpt.ReadinessChecker{
		db,
		pingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() }),
		pingFunc(func(context.Context) error {
			if !publisher.IsConnected() {
				return errBrokerDisconnected
			}
			return nil
		}),
	}
	if serverErr := initHTTPServer(ctx, eg, cfg, notifyService, readiness, log); serverErr != nil {
		return serverErr
	}

	return waitForShutdown(eg)
}

func initDatabase(ctx context.Context, cfg *config.Database, log *zap.Logger) (*postgres.Postgres, error) {
	dbLog := log.With(zap.String("component", "database"))

	if cfg.MigrationsPath != "" {
		if err := postgres.Migrate(cfg.DSN, cfg.MigrationsPath, dbLog); err != nil {
			return nil, fmt.Errorf("app.initDatabase: %w", err)
		}
	}

	db, err := postgres.New(
		ctx,
		cfg.DSN,
		dbLog,
		postgres.MaxPoolSize(cfg.PoolMax),
		postgres.MaxConnAttempts(cfg.ConnAttempts),
		postgres.BaseRetryDelay(cfg.BaseRetryDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("app.initDatabase: %w", err)
	}
	return db, nil
}

func closeDB(db *postgres.Postgres) {
	if db != nil {
		db.Close()
	}
}

func initTransactionManager(db *postgres.Postgres, log *zap.Logger) (postgres.Manager, error) {
	tm, err := postgres.NewManager(db, log)
	if err != nil {
		return nil, fmt.Errorf("app.initTransactionManager: %w", err)
	}
	return tm, nil
}

func initCache(ctx context.Context, cfg *config.Cache) (*redis.Redis, error) {
	rdb, err := redis.New(
		ctx,
		cfg.Addr,
		cfg.Password,
		cfg.DB,
		redis.PoolSize(cfg.PoolSize),
		redis.MinIdleCons(cfg.MinIdleCons),
		redis.PoolTimeout(cfg.PoolTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("app.initCache: %w", err)
	}
	return rdb, nil
}

func closeCache(rdb *redis.Redis, log *zap.Logger) {
	if err := rdb.Close(); err != nil {
		log.Warn("failed to close redis", zap.Error(err))
	}
}

func initBroker(cfg *config.Broker) (*amqp.Connection, error) {
	strategy := retry.Strategy{
		Attempts: cfg.ConnectAttempts,
		Delay:    cfg.RetryDelay,
		Backoff:  _strategyBackoff,
	}
	conn, err := rabbit.Dial(cfg.URL, cfg.ConnectionName, strategy)
	if err != nil {
		return nil, fmt.Errorf("app.initBroker: %w", err)
	}
	return conn, nil
}

func closeBroker(conn *amqp.Connection, log *zap.Logger) {
	if conn.IsClosed() {
		return
	}
	if err := conn.Close(); err != nil {
		log.Warn("failed to close broker connection", zap.Error(err))
	}
}

func initPublisher(conn *amqp.Connection, cfg *config.Config) (*rabbit.Publisher, error) {
	strategy := retry.Strategy{
		Attempts: _channelReopenTries,
		Delay:    _channelReopenDelay,
		Backoff:  _strategyBackoff,
	}
	publisher, err := rabbit.NewPublisher(conn, cfg.Broker.DeliveryExchange, cfg.App.Name, strategy)
	if err != nil {
		return nil, fmt.Errorf("app.initPublisher: %w", err)
	}
	return publisher, nil
}

func initNotifyService(
	cfg *config.Service,
	notifyRepo *repository.NotifyRepository,
	userRepo *repository.UserRepository,
	log *zap.Logger,
) (*service.NotifyService, error) {
	notifyService, err := service.NewNotifyService(
		notifyRepo,
		userRepo,
		log.With(zap.String("component", "service")),
		service.WithMaxRetries(cfg.MaxRetries),
		service.WithPageLimits(cfg.DefaultPageLimit, cfg.MaxPageLimit),
		service.WithDispatchTimeout(cfg.DispatchTimeout),
		service.WithCASAttempts(cfg.CASAttempts),
	)
	if err != nil {
		return nil, fmt.Errorf("app.initNotifyService: %w", err)
	}
	return notifyService, nil
}

func initWorker(
	ctx context.Context,
	eg *errgroup.Group,
	cfg *config.Worker,
	tm postgres.Manager,
	notifyRepo *repository.NotifyRepository,
	cacheRepo *repository.CacheRepository,
	publisher *rabbit.Publisher,
	log *zap.Logger,
) error {
	w, err := worker.New(
		tm,
		notifyRepo,
		cacheRepo,
		publisher,
		log.With(zap.String("component", "worker")),
		worker.Interval(cfg.SweepInterval),
		worker.BatchSize(cfg.BatchSize),
		worker.LeaseTTL(cfg.LeaseTTL),
		worker.BaseRetryDelay(cfg.BaseRetryDelay),
	)
	if err != nil {
		return fmt.Errorf("app.initWorker: %w", err)
	}

	eg.Go(func() error {
		return w.Run(ctx)
	})
	return nil
}

func initConsumers(
	ctx context.Context,
	eg *errgroup.Group,
	conn *amqp.Connection,
	cfg *config.Broker,
	svc *service.NotifyService,
	cacheRepo *repository.CacheRepository,
	log *zap.Logger,
) error {
	events, err := rabbit.NewConsumer(
		conn,
		amqpt.EventsConsumerConfig(cfg),
		amqpt.NewEventHandler(svc, cacheRepo, log).Handle,
		log.With(zap.String("component", "events consumer")),
	)
	if err != nil {
		return fmt.Errorf("app.initConsumers: events: %w", err)
	}

	reports, err := rabbit.NewConsumer(
		conn,
		amqpt.ReportsConsumerConfig(cfg),
		amqpt.NewReportHandler(svc, cacheRepo, cacheRepo, log).Handle,
		log.With(zap.String("component", "reports consumer")),
	)
	if err != nil {
		_ = events.Close()
		return fmt.Errorf("app.initConsumers: reports: %w", err)
	}

	eg.Go(func() error {
		return events.Run(ctx)
	})
	eg.Go(func() error {
		return reports.Run(ctx)
	})
	return nil
}

func initHTTPServer(
	ctx context.Context,
	eg *errgroup.Group,
	cfg *config.Config,
	svc *service.NotifyService,
	readiness []httpt.ReadinessChecker,
	log *zap.Logger,
) error {
	handler, err := httpt.NewNotifyHandler(
		svc,
		log.With(zap.String("component", "http")),
		httpt.RequestTimeout(cfg.HTTP.RequestTimeout),
		httpt.Metrics(cfg.Metrics.Enabled, cfg.Metrics.Path),
		httpt.Readiness(readiness...),
	)
	if err != nil {
		return fmt.Errorf("app.initHTTPServer: %w", err)
	}

	httpServer, err := httpt.NewHTTPServer(handler, &cfg.HTTP, log.With(zap.String("component", "http server")))
	if err != nil {
		return fmt.Errorf("app.initHTTPServer: %w", err)
	}

	eg.Go(func() error {
		return httpServer.Start(ctx)
	})
	return nil
}

func waitForShutdown(eg *errgroup.Group) error {
	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("app.waitForShutdown: application failed: %w", err)
	}
	return nil
}
