package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/TimurManjosov/ffc-commons-go/internal/config"
	"github.com/TimurManjosov/ffc-commons-go/internal/logger"
	"github.com/TimurManjosov/ffc-commons-go/internal/telemetry"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// RequestIDHeader carries an identifier shared by every attempt of one Post.
const RequestIDHeader = "X-FFC-Request-ID"

// Transport sends an encoded request to the evaluation backend and returns
// the raw response text.
type Transport interface {
	Post(ctx context.Context, path, body string) (string, error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, path, body string) (string, error)

// Post implements Transport.
func (f TransportFunc) Post(ctx context.Context, path, body string) (string, error) {
	return f(ctx, path, body)
}

// StatusError is returned for a response outside the 2xx range.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Body)
}

// HTTPTransport is the resty-backed Transport. Transport errors and 5xx
// responses are retried up to the configured count with exponential backoff.
type HTTPTransport struct {
	client     *resty.Client
	retryCount int
	retryWait  time.Duration
	log        *logger.Logger
}

// NewHTTPTransport builds a transport from cfg. cfg should already be validated.
func NewHTTPTransport(cfg *config.Config, log *logger.Logger) *HTTPTransport {
	if log == nil {
		log = logger.Nop()
	}
	wait := cfg.RetryWait
	if wait <= 0 {
		wait = 100 * time.Millisecond
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Authorization", cfg.EnvSecret).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &HTTPTransport{client: cli, retryCount: max(cfg.RetryCount, 0), retryWait: wait, log: log}
}

// Post implements Transport.
func (h *HTTPTransport) Post(ctx context.Context, path, body string) (string, error) {
	requestID := uuid.New().String()
	var lastErr error
	for attempt := 0; attempt <= h.retryCount; attempt++ {
		text, status, err := h.post(ctx, path, requestID, body)
		if err == nil {
			return text, nil
		}
		lastErr = err

		retryable := status == 0 || status >= 500
		if !retryable || ctx.Err() != nil || attempt == h.retryCount {
			h.log.Warn().Err(err).Str("path", path).Str("request_id", requestID).Int("status", status).
				Int("attempt", attempt+1).Int("attempts", h.retryCount+1).
				Msg("request failed permanently")
			break
		}

		backoff := h.retryWait * time.Duration(1<<attempt)
		h.log.Debug().Err(err).Str("path", path).Str("request_id", requestID).Int("status", status).
			Int("attempt", attempt+1).Dur("retry_in", backoff).
			Msg("request failed")

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", fmt.Errorf("request failed: %w", ctx.Err())
		case <-timer.C:
		}
	}
	return "", lastErr
}

// post performs one attempt. status is 0 when no response was received.
func (h *HTTPTransport) post(ctx context.Context, path, requestID, body string) (string, int, error) {
	start := time.Now()
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, requestID).
		SetBody(body).
		Post(path)
	elapsed := time.Since(start)

	if err != nil {
		telemetry.ObserveRequest(path, 0, elapsed)
		return "", 0, fmt.Errorf("request failed: %w", err)
	}

	status := resp.StatusCode()
	telemetry.ObserveRequest(path, status, elapsed)
	h.log.Debug().Str("path", path).Int("status", status).Dur("elapsed", elapsed).Msg("request done")

	if status < 200 || status > 299 {
		return "", status, &StatusError{StatusCode: status, Body: resp.String()}
	}
	return resp.String(), status, nil
}
