package disney

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/amaumene/dsnparr/internal/config"
	"github.com/amaumene/dsnparr/internal/metrics"
	"github.com/amaumene/dsnparr/internal/models"
	"github.com/amaumene/dsnparr/internal/tracing"
)

// Client handles communication with the Disney+ / Star+ content API
type Client struct {
	baseURLs   map[models.SiteVariant]string
	userAgent  string
	retries    int
	httpClient *http.Client
	tracer     trace.Tracer
	logger     *logrus.Logger
}

// NewClient creates a new content API client
func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	return &Client{
		baseURLs: map[models.SiteVariant]string{
			models.VariantDisney: cfg.DisneyContentURL,
			models.VariantStar:   cfg.StarContentURL,
		},
		userAgent:  cfg.UserAgent,
		retries:    cfg.RetryAttempts,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		tracer:     otel.Tracer(tracing.ServiceName),
		logger:     logger,
	}
}

// retryableError marks a failure worth another attempt
type retryableError struct {
	status int
	body   string
}

func (e *retryableError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.status, e.body)
}

// getJSON fetches fullURL and decodes the JSON body into result. Transient
// failures (transport errors, 429, 5xx) are retried with exponential
// backoff; 404 is reported as models.ErrContentNotFound.
func (c *Client) getJSON(ctx context.Context, endpoint, fullURL string, result interface{}) error {
	ctx, span := c.tracer.Start(ctx, "content_api."+endpoint, trace.WithAttributes(
		attribute.String("http.url", fullURL),
	))
	defer span.End()

	start := time.Now()
	attempt := 0

	operation := func() error {
		attempt++
		c.logger.WithFields(logrus.Fields{
			"endpoint": endpoint,
			"url":      fullURL,
			"attempt":  attempt,
		}).Debug("Making content API request")

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		req.Header.Set("Accept", "application/json")
		if c.userAgent != "" {
			req.Header.Set("User-Agent", c.userAgent)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(models.ErrContentNotFound)
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return &retryableError{status: resp.StatusCode, body: string(body)}
		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return backoff.Permanent(fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body)))
		}

		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
		}
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 200 * time.Millisecond
	policy.MaxInterval = 2 * time.Second
	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, uint64(c.retries)), ctx))

	outcome := "ok"
	switch {
	case errors.Is(err, models.ErrContentNotFound):
		outcome = "not_found"
	case err != nil:
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.SetAttributes(attribute.Int("http.attempts", attempt))
	metrics.APIRequestDuration.WithLabelValues(endpoint, outcome).Observe(time.Since(start).Seconds())

	return err
}

// baseURL returns the content API root for a site variant
func (c *Client) baseURL(variant models.SiteVariant) (string, error) {
	base, ok := c.baseURLs[variant]
	if !ok || base == "" {
		return "", fmt.Errorf("no content API configured for %q", variant)
	}
	return base, nil
}
