package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"balance_ranker/internal/app/exchange"
	"balance_ranker/internal/app/port"
	"balance_ranker/internal/client"
	"balance_ranker/internal/domain/entity"
	"balance_ranker/internal/infrastructure/configloader"
	"balance_ranker/internal/infrastructure/pricecache"
	"balance_ranker/internal/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("swapquote", flag.ContinueOnError)
	fs.SetOutput(stderr)
	from := fs.String("from", "", "currency to sell")
	to := fs.String("to", "", "currency to buy")
	amountStr := fs.String("amount", "", "amount of -from to convert")
	cfgPath := fs.String("config", configloader.PathFromEnv(), "path to the YAML configuration")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if *from == "" || *to == "" || *amountStr == "" {
		fmt.Fprintln(stderr, "usage: swapquote -from ETH -to USDC -amount 1 [-config path]")
		return 1
	}
	amount, err := decimal.NewFromString(*amountStr)
	if err != nil {
		fmt.Fprintf(stderr, "invalid amount %q: %v\n", *amountStr, err)
		return 1
	}

	logrus.SetOutput(stderr)
	logrus.SetLevel(logrus.WarnLevel)
	cfg, err := configloader.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load configuration: %v\n", err)
		return 1
	}

	zapLogger, err := logger.NewZap("warn")
	if err != nil {
		fmt.Fprintf(stderr, "failed to initialize logger: %v\n", err)
		return 1
	}
	defer zapLogger.Sync()
	logger.Init("warn", zapLogger)

	feed, err := newFeed(cfg, zapLogger)
	if err != nil {
		fmt.Fprintf(stderr, "failed to initialize price feed: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.PriceFeed.RequestTimeoutMillis)*time.Millisecond+time.Second)
	defer cancel()

	prices, err := pricecache.NewProvider(feed, time.Minute, logger.NewSlogAdapter()).PriceTable(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "failed to fetch prices: %v\n", err)
		return 1
	}

	result, err := exchange.Quote(prices, *from, *to, amount)
	if err != nil {
		var invalid *entity.InvalidAssetError
		switch {
		case errors.As(err, &invalid):
			fmt.Fprintf(stderr, "unknown currency: %s\n", invalid.Asset)
		case errors.Is(err, entity.ErrDivisionByZero):
			fmt.Fprintf(stderr, "cannot convert: %v\n", err)
		default:
			fmt.Fprintf(stderr, "conversion failed: %v\n", err)
		}
		return 1
	}

	fmt.Fprintf(stdout, "%s %s = %s %s (rate %s)\n",
		result.InputAmount.String(), result.From,
		exchange.FormatResult(result.OutputAmount), result.To,
		result.Rate.String())
	return 0
}

func newFeed(cfg *configloader.Config, zapLogger *zap.Logger) (port.PriceFeedClient, error) {
	if cfg.PriceFeed.URL == configloader.StaticPriceFeed {
		return pricecache.NewStaticFeed(cfg.PriceFeed.Static)
	}
	return client.NewPriceFeedClient(
		cfg.PriceFeed.URL,
		time.Duration(cfg.PriceFeed.RequestTimeoutMillis)*time.Millisecond,
		zapLogger,
	), nil
}
