package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"balance_ranker/internal/app/port"
	"balance_ranker/internal/app/provider"
	"balance_ranker/internal/app/ranking"
	"balance_ranker/internal/app/service"
	"balance_ranker/internal/client"
	"balance_ranker/internal/infrastructure/balanceloader"
	"balance_ranker/internal/infrastructure/configloader"
	clientprovider "balance_ranker/internal/infrastructure/network/client"
	networkdefinition "balance_ranker/internal/infrastructure/network/definition"
	"balance_ranker/internal/infrastructure/pricecache"
	"balance_ranker/internal/infrastructure/restapi"
	"balance_ranker/internal/pkg/logger"
	"balance_ranker/internal/pkg/metrics"

	"go.uber.org/zap"
)

func main() {
	cfgPath := configloader.PathFromEnv()
	cfg, err := configloader.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to load configuration %s: %v\n", cfgPath, err)
		os.Exit(1)
	}

	zapLogger, err := logger.NewZap(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to initialize zap logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()
	logger.Init(cfg.Logging.Level, zapLogger)

	logger.Info("Balance ranker starting", "config", cfgPath, "log_level", cfg.Logging.Level)
	appLogger := logger.NewSlogAdapter()

	metrics.MustRegisterMetrics()

	priceProvider, err := newPriceProvider(cfg, zapLogger, appLogger)
	if err != nil {
		logger.Fatal("Failed to initialize price feed", "error", err)
	}

	balanceSource, err := newBalanceSource(cfg, appLogger)
	if err != nil {
		logger.Fatal("Failed to initialize balance sources", "error", err)
	}

	eligible, err := ranking.PolicyByName(cfg.Ranking.Eligibility)
	if err != nil {
		logger.Fatal("Invalid eligibility policy", "error", err)
	}
	pipeline := ranking.NewPipeline(cfg.Ranking.Priorities, eligible)
	logger.Info("Ranking pipeline initialized", "chains", len(cfg.Ranking.Priorities), "eligibility", cfg.Ranking.Eligibility)

	portfolioService := service.NewPortfolioService(balanceSource, priceProvider, pipeline, appLogger)
	swapService := service.NewSwapService(priceProvider, cfg.PriceFeed.IconBaseURL, appLogger)

	router := restapi.SetupRouter(
		restapi.NewPortfolioHandler(portfolioService, appLogger),
		restapi.NewSwapHandler(swapService, appLogger),
		cfg.Swagger,
		zapLogger.Named("http"),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start HTTP server", "error", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	<-signalChan

	logger.Info("Shutdown signal received, stopping HTTP server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	} else {
		logger.Info("HTTP server stopped")
	}
}

func newPriceProvider(cfg *configloader.Config, zapLogger *zap.Logger, appLogger port.Logger) (*pricecache.Provider, error) {
	var feed port.PriceFeedClient
	if cfg.PriceFeed.URL == configloader.StaticPriceFeed {
		static, err := pricecache.NewStaticFeed(cfg.PriceFeed.Static)
		if err != nil {
			return nil, err
		}
		feed = static
		logger.Info("Using static price table", "currencies", len(cfg.PriceFeed.Static))
	} else {
		feed = client.NewPriceFeedClient(
			cfg.PriceFeed.URL,
			time.Duration(cfg.PriceFeed.RequestTimeoutMillis)*time.Millisecond,
			zapLogger,
			client.WithRateLimit(cfg.PriceFeed.RateLimitPerSecond, cfg.PriceFeed.RateLimitBurst),
		)
		logger.Info("Price feed client initialized", "url", cfg.PriceFeed.URL)
	}
	ttl := time.Duration(cfg.PriceFeed.CacheTTLSeconds) * time.Second
	return pricecache.NewProvider(feed, ttl, appLogger), nil
}

func newBalanceSource(cfg *configloader.Config, appLogger port.Logger) (port.BalanceSource, error) {
	var sources []port.BalanceSource
	if cfg.Balances.File != "" {
		sources = append(sources, balanceloader.NewFileLoader(cfg.Balances.File, appLogger))
		logger.Info("File balance source enabled", "path", cfg.Balances.File)
	}

	if len(cfg.Networks) > 0 {
		networks, err := networkdefinition.Resolve(cfg.Networks)
		if err != nil {
			return nil, err
		}
		rpcTimeout := time.Duration(cfg.Performance.RPCCallTimeoutSeconds) * time.Second
		clients := clientprovider.NewEVMClientProvider(rpcTimeout, appLogger, nil)
		sources = append(sources, clientprovider.NewNativeBalanceSource(
			networks,
			cfg.Wallets,
			clients,
			cfg.Performance.MaxConcurrentRoutines,
			appLogger,
		))
		logger.Info("EVM balance source enabled", "networks", len(networks), "wallets", len(cfg.Wallets))
	}

	if len(sources) == 0 {
		logger.Warn("No balance sources configured; the balance list will be empty")
	}
	return provider.NewBalanceProvider(appLogger, sources...), nil
}
