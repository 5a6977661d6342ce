package client

import (
	"context"
	"fmt"
	"time"

	"balance_ranker/internal/app/port"
	"balance_ranker/internal/domain/entity"
	"balance_ranker/internal/pkg/metrics"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// priceFeedClientImpl fetches the price list over HTTP.
type priceFeedClientImpl struct {
	client  *fasthttp.Client
	url     string
	timeout time.Duration
	limiter *rate.Limiter
	logger  *zap.Logger
}

// PriceFeedOption customises a price feed client.
type PriceFeedOption func(*priceFeedClientImpl)

// WithHTTPClient replaces the underlying fasthttp client.
func WithHTTPClient(c *fasthttp.Client) PriceFeedOption {
	return func(p *priceFeedClientImpl) { p.client = c }
}

// WithRateLimit caps outgoing requests; a non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) PriceFeedOption {
	return func(p *priceFeedClientImpl) {
		if rps <= 0 {
			p.limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		p.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// NewPriceFeedClient creates a client for the feed at url.
func NewPriceFeedClient(url string, timeout time.Duration, logger *zap.Logger, opts ...PriceFeedOption) port.PriceFeedClient {
	c := &priceFeedClientImpl{
		client:  &fasthttp.Client{},
		url:     url,
		timeout: timeout,
		logger:  logger.Named("PriceFeedClient"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchPrices implements port.PriceFeedClient. Records are returned as sent; filtering
// null prices is left to entity.NewPriceTable.
func (c *priceFeedClientImpl) FetchPrices(ctx context.Context) ([]entity.PriceRecord, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("price feed rate limiter: %w", err)
		}
	}

	c.logger.Debug("Requesting prices", zap.String("url", c.url))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(c.url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	start := time.Now()
	deadline := start.Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	err := c.client.DoDeadline(req, resp, deadline)
	metrics.PriceFeedLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.PriceFeedRequests.WithLabelValues("error").Inc()
		c.logger.Error("Failed to execute price feed request", zap.String("url", c.url), zap.Error(err))
		return nil, fmt.Errorf("failed to execute request to %s: %w", c.url, err)
	}

	rawBody := resp.Body()
	if resp.StatusCode() != fasthttp.StatusOK {
		metrics.PriceFeedRequests.WithLabelValues("bad_status").Inc()
		c.logger.Error("Price feed request failed",
			zap.String("url", c.url),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", rawBody))
		return nil, fmt.Errorf("price feed request to %s failed with status %d", c.url, resp.StatusCode())
	}

	var records []entity.PriceRecord
	if err := json.Unmarshal(rawBody, &records); err != nil {
		metrics.PriceFeedRequests.WithLabelValues("decode_error").Inc()
		c.logger.Error("Failed to unmarshal price feed response",
			zap.String("url", c.url),
			zap.ByteString("responseBody", rawBody),
			zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal price feed response from %s: %w", c.url, err)
	}

	metrics.PriceFeedRequests.WithLabelValues("ok").Inc()
	if len(records) == 0 {
		c.logger.Warn("Price feed returned 200 OK with an empty list", zap.String("url", c.url))
	}
	c.logger.Debug("Fetched price records", zap.Int("recordCount", len(records)))
	return records, nil
}
