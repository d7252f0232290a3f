package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/bookshelf/internal/books"
	"github.com/MrSnakeDoc/bookshelf/internal/config"
	"github.com/MrSnakeDoc/bookshelf/internal/httpserver"
	"github.com/MrSnakeDoc/bookshelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookshelf/internal/logger"
	"github.com/MrSnakeDoc/bookshelf/internal/redis"
	"github.com/MrSnakeDoc/bookshelf/internal/sources/seed"
	"github.com/MrSnakeDoc/bookshelf/internal/store/memory"
	redisstore "github.com/MrSnakeDoc/bookshelf/internal/store/redis"
	"github.com/MrSnakeDoc/bookshelf/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	service     *books.Service
}

func New(ctx context.Context) (*App, error) {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	opts := []books.Option{books.WithClock(time.Now)}

	// Change feed is optional, but once configured Redis must answer at startup.
	var (
		redisClient *goredis.Client
		feed        deps.Pinger
	)
	if cfg.FeedEnabled() {
		client, err := redis.New(ctx, redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
		}, loggerClient)
		if err != nil {
			return nil, fmt.Errorf("failed to connect change feed: %w", err)
		}
		redisClient = client

		f := redisstore.NewFeed(client, cfg.RedisStream, int64(cfg.RedisStreamMaxLen))
		feed = f
		opts = append(opts, books.WithPublisher(f, cfg.RedisPublishTimeout))
		loggerClient.Info("change feed enabled",
			logger.String("addr", cfg.RedisAddr),
			logger.String("stream", f.Stream()))
	} else {
		loggerClient.Info("change feed not configured, mutations are not published")
	}

	service := books.NewService(memory.NewBookStore(), loggerClient, opts...)

	if cfg.SeedFile != "" {
		payloads, err := seed.NewLoader(cfg.SeedFile).Load()
		if err != nil {
			closeRedis(redisClient, loggerClient)
			return nil, fmt.Errorf("failed to load seed file %s: %w", cfg.SeedFile, err)
		}
		n, err := seed.Seed(ctx, service, payloads)
		if err != nil {
			closeRedis(redisClient, loggerClient)
			return nil, fmt.Errorf("failed to seed books: %w", err)
		}
		loggerClient.Info("books seeded",
			logger.String("file", cfg.SeedFile),
			logger.Int("count", n))
	}

	d := deps.Deps{
		Logger:          loggerClient,
		StartTime:       time.Now(),
		Version:         version.Version,
		Commit:          version.Commit,
		BuildDate:       version.BuildDate,
		GoVersion:       version.GoVersion,
		TimeNow:         time.Now,
		Books:           service,
		Feed:            feed,
		AllowedCIDRS:    cfg.AllowedCIDRS,
		TrustProxy:      cfg.TrustProxy,
		RateLimitBurst:  cfg.RateLimitBurst,
		RateLimitPerMin: cfg.RateLimitPerMin,
	}

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      httpserver.New(cfg, loggerClient, d),
		redisClient: redisClient,
		service:     service,
	}, nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting %s on %s", version.String(), a.cfg.ListenPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		closeRedis(a.redisClient, a.logger)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	closeRedis(a.redisClient, a.logger)

	a.logger.Info("✅ Bookshelf stopped cleanly",
		logger.Int("books_dropped", a.service.Count()))
	_ = a.logger.Sync()
	return nil
}

func closeRedis(client *goredis.Client, log logger.Logger) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		log.Warnf("failed to close redis: %v", err)
		return
	}
	log.Info("✅ Redis closed cleanly")
}
