package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fekuna/agritrace-service/config"
	"github.com/fekuna/agritrace-service/internal/access"
	batchUCPkg "github.com/fekuna/agritrace-service/internal/batch/usecase"
	"github.com/fekuna/agritrace-service/internal/event"
	journeyUCPkg "github.com/fekuna/agritrace-service/internal/journey/usecase"
	"github.com/fekuna/agritrace-service/internal/server"
	"github.com/fekuna/agritrace-service/internal/store"
	traceListenerPkg "github.com/fekuna/agritrace-service/internal/trace/listener"
	"github.com/fekuna/agritrace-service/pkg/broker"
	"github.com/fekuna/agritrace-service/pkg/cache"
	"github.com/fekuna/agritrace-service/pkg/lock"
	"github.com/fekuna/agritrace-service/pkg/logger"
	"github.com/fekuna/agritrace-service/pkg/metrics"
	"github.com/fekuna/agritrace-service/pkg/search"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.IsDevelopment() {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Open Store
	st, err := store.Open(cfg)
	if err != nil {
		appLogger.Fatal("Could not open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer st.Close()
	if cfg.Store.AutoMigrate {
		if err := st.Migrate(ctx); err != nil {
			appLogger.Fatal("Could not migrate store", zap.Error(err))
		}
	}
	appLogger.Info("Store ready", zap.String("driver", st.Driver))

	healthChecks := map[string]metrics.Check{"store": st.Ping}

	// 4. Initialize Redis
	var redisClient *cache.RedisClient
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Fatal("Could not connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		healthChecks["redis"] = func(ctx context.Context) error {
			return redisClient.Client.Ping(ctx).Err()
		}
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	var locker lock.Locker = lock.NewKeyedMutex()
	if cfg.Lock.Backend == config.LockRedis {
		locker = lock.NewRedisLocker(redisClient, cfg.Lock.TTL, cfg.Lock.Attempts)
	}

	// 5. Event Bus and subscribers
	appMetrics := metrics.New()
	bus := event.NewBus(appLogger)
	bus.Subscribe("metrics", event.HandlerFunc(func(_ context.Context, e event.Event) error {
		appMetrics.ObserveEvent(string(e.Type), e.Stage.String())
		return nil
	}))

	if cfg.Kafka.Enabled {
		producer := broker.NewProducer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		defer producer.Close()

		relay := event.NewKafkaRelay(producer, appLogger)
		bus.Subscribe("kafka", event.HandlerFunc(func(ctx context.Context, e event.Event) error {
			err := relay.Handle(ctx, e)
			appMetrics.SetCircuitBreakerState("kafka-relay", int(relay.State()))
			return err
		}))
		appLogger.Info("Kafka relay enabled", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	// 6. Initialize Elasticsearch indexer
	if cfg.Kafka.Indexer {
		esClient, err := search.NewClient(&search.Config{
			Addresses: cfg.Elastic.Addresses,
			Username:  cfg.Elastic.Username,
			Password:  cfg.Elastic.Password,
		})
		if err != nil {
			// the ledger keeps serving without the trace index
			appLogger.Warn("Could not connect to Elasticsearch, trace indexing disabled", zap.Error(err))
		} else {
			consumer := broker.NewConsumer(&broker.Config{
				Brokers: cfg.Kafka.Brokers,
				Topic:   cfg.Kafka.Topic,
				GroupID: cfg.Kafka.GroupID,
			})
			defer consumer.Close()

			traceListener := traceListenerPkg.NewTraceListener(consumer, esClient, cfg.Elastic.Index, appLogger)
			go traceListener.Start(ctx)
			appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
		}
	}

	// 7. Initialize UseCases
	var batchOwners access.OwnerLookupFunc
	authz, err := newAuthorizer(cfg, func(ctx context.Context, batchID string) (string, error) {
		return batchOwners(ctx, batchID)
	})
	if err != nil {
		appLogger.Fatal("Could not load access policy", zap.String("path", cfg.Access.PolicyFile), zap.Error(err))
	}

	var batchOpts []batchUCPkg.Option
	if redisClient != nil && cfg.Redis.CacheBatches {
		batchOpts = append(batchOpts, batchUCPkg.WithCache(redisClient))
	}
	batchUC := batchUCPkg.NewBatchUseCase(st.Batches, authz, locker, bus, appLogger, batchOpts...)
	batchOwners = batchUC.OwnerOf
	journeyUC := journeyUCPkg.NewJourneyUseCase(st.Journeys, authz, locker, bus, appLogger)

	// 8. Start metrics listener
	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsServer = &http.Server{
			Addr:    cfg.Metrics.Addr,
			Handler: metrics.NewRouter(appMetrics, healthChecks),
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				appLogger.Error("metrics server failed", zap.Error(err))
			}
		}()
		appLogger.Info("Serving metrics", zap.String("addr", cfg.Metrics.Addr))
	}

	// 9. Start gRPC Server
	port := cfg.Server.GRPCPort
	if !strings.HasPrefix(port, ":") && !strings.Contains(port, ":") {
		port = ":" + port
	}

	lis, err := net.Listen("tcp", port)
	if err != nil {
		appLogger.Fatal("failed to listen", zap.String("port", port), zap.Error(err))
	}

	grpcServer := server.NewGRPCServer(server.Deps{
		Batch:          batchUC,
		Journey:        journeyUC,
		Logger:         appLogger,
		ObserveRequest: appMetrics.ObserveRequest,
	})

	appLogger.Info("Starting gRPC server", zap.String("port", port))

	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()
	grpcServer.GracefulStop()
	if metricsServer != nil {
		shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer stop()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			appLogger.Warn("metrics server shutdown", zap.Error(err))
		}
	}
	appLogger.Info("Server stopped")
}

func newAuthorizer(cfg *config.Config, owners access.OwnerLookupFunc) (access.Authorizer, error) {
	if cfg.Access.PolicyFile == "" {
		return access.Open{Owners: owners}, nil
	}
	return access.LoadDirectory(cfg.Access.PolicyFile, owners)
}
