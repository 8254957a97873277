package mock

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/orris-inc/stripegate/internal/infrastructure/fakeapi"
	"github.com/orris-inc/stripegate/internal/infrastructure/ratelimit"
	"github.com/orris-inc/stripegate/internal/interfaces/cli/common"
	sharedConfig "github.com/orris-inc/stripegate/internal/shared/config"
	"github.com/orris-inc/stripegate/internal/shared/goroutine"
	"github.com/orris-inc/stripegate/internal/shared/logger"
	"github.com/orris-inc/stripegate/internal/shared/utils"
)

var (
	addr      string
	apiKey    string
	rateLimit int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mock",
		Short: "Serve an in-memory fake of the payment API",
		Long: `Serve an in-memory fake of the payment API on --addr.

Point the other commands at it with --base-url http://<addr>/v1 and use the
mock API key as STRIPEGATE_STRIPE_API_KEY. The card token "` + fakeapi.DeclinedCardToken + `"
is always declined.`,
		Args: cobra.NoArgs,
		RunE: run,
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to mock.addr)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Accepted API key (defaults to mock.api_key)")
	cmd.Flags().IntVar(&rateLimit, "rate-limit", 0, "Requests per key per mock.rate_limit.window, 0 for unlimited (defaults to mock.rate_limit.limit)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := common.LoadConfig()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Mock.Addr = addr
	}
	if apiKey != "" {
		cfg.Mock.APIKey = apiKey
	}
	if cmd.Flags().Changed("rate-limit") {
		cfg.Mock.RateLimit.Limit = rateLimit
	}
	if err := utils.ValidateStruct(&cfg.Mock); err != nil {
		return err
	}

	if cfg.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
	}

	log := logger.NewLogger().With("component", "mock")
	opts, closeLimiter, err := limiterOptions(cmd.Context(), cfg.Mock.RateLimit, log)
	if err != nil {
		return err
	}
	defer closeLimiter()

	server := fakeapi.New(cfg.Mock.APIKey, log, opts...)

	srv := &http.Server{
		Addr:         cfg.Mock.Addr,
		Handler:      server.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Infow("mock server starting",
		"address", cfg.Mock.Addr,
		"api_key", utils.MaskSecret(cfg.Mock.APIKey))
	fmt.Fprintf(cmd.OutOrStdout(), "listening on http://%s/v1\n", cfg.Mock.Addr)

	serveErr := goroutine.Go(log, "mock-server", func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("failed to start mock server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Infow("shutting down mock server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("mock server forced to shutdown", "error", err)
		return err
	}

	log.Infow("mock server exited gracefully")
	return nil
}

// limiterOptions builds the rate limiter configured for the mock, backed by
// Redis when an address is set.
func limiterOptions(ctx context.Context, cfg sharedConfig.RateLimitConfig, log logger.Interface) ([]fakeapi.Option, func(), error) {
	if cfg.Limit <= 0 {
		return nil, func() {}, nil
	}

	limits := ratelimit.Config{Limit: cfg.Limit, Window: cfg.Window}
	if cfg.RedisAddr == "" {
		log.Infow("rate limiting enabled", "limit", cfg.Limit, "window", cfg.Window, "backend", "memory")
		return []fakeapi.Option{fakeapi.WithRateLimiter(ratelimit.NewMemoryRateLimiter(limits))}, func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}

	log.Infow("rate limiting enabled", "limit", cfg.Limit, "window", cfg.Window, "backend", "redis", "redis_addr", cfg.RedisAddr)
	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Warnw("failed to close redis client", "error", err)
		}
	}
	return []fakeapi.Option{fakeapi.WithRateLimiter(ratelimit.NewRedisRateLimiter(client, limits))}, closeFn, nil
}
