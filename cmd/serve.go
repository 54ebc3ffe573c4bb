package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"

	"loan-planner/config"
	httpLayer "loan-planner/http"
	"loan-planner/logger"
	"loan-planner/repository"
	"loan-planner/service"
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "start the HTTP API" }
func (*serveCmd) Usage() string {
	return `loan-planner [-config <file>] serve [-addr <addr>]

  Serves the simulation API until SIGINT or SIGTERM.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address. Overrides http.addr from the configuration.")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.addr != "" {
		cfg.HTTP.Addr = c.addr
	}

	log, err := logger.Init(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		return subcommands.ExitFailure
	}

	var cache repository.CacheRepository = repository.NewMockCache()
	if cfg.Redis.Enabled {
		rc, err := repository.NewRedisCache(ctx, repository.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Error("redis unavailable", "error", err)
			return subcommands.ExitFailure
		}
		defer rc.Close()
		cache = rc
	}

	planService := service.NewPlanService(
		repository.NewPlanRepositoryMemory(cfg.Limits.MaxHistory),
		cache,
		service.WithLimits(service.Limits{
			MaxLoanAmount: cfg.Limits.MaxLoanAmount,
			MaxTermYears:  cfg.Limits.MaxTermYears,
			MaxAnnualRate: cfg.Limits.MaxAnnualRate,
		}),
		service.WithCacheTTL(cfg.Redis.TTL),
		service.WithLogger(log),
	)
	loanService := service.NewLoanService(log)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Refill)
	defer rateLimiter.Stop()

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      httpLayer.NewRouter(planService, loanService, rateLimiter),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("API listening", "addr", cfg.HTTP.Addr, "redis", cfg.Redis.Enabled)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		log.Error("error starting server", "error", err)
		return subcommands.ExitFailure
	case <-quit:
		log.Info("shutting down server")
	case <-ctx.Done():
		log.Info("shutting down server", "reason", ctx.Err())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("error during server shutdown", "error", err)
		return subcommands.ExitFailure
	}

	log.Info("server exited")
	return subcommands.ExitSuccess
}
