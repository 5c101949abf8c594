// Package client sends evaluation requests to the backend and decodes the
// responses into model values.
package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/TimurManjosov/ffc-commons-go/internal/config"
	"github.com/TimurManjosov/ffc-commons-go/internal/logger"
	"github.com/TimurManjosov/ffc-commons-go/internal/telemetry"
	"github.com/TimurManjosov/ffc-commons-go/pkg/model"
	"github.com/prometheus/client_golang/prometheus"
)

// Client evaluates flags through a Transport.
type Client struct {
	transport     Transport
	variationPath string
	allFlagsPath  string
	log           *logger.Logger
}

// NewClient creates a client on top of an existing transport.
func NewClient(t Transport, variationPath, allFlagsPath string, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{transport: t, variationPath: variationPath, allFlagsPath: allFlagsPath, log: log}
}

// New validates cfg and creates a client backed by an HTTPTransport. The
// transport metrics are registered with prometheus.DefaultRegisterer.
func New(cfg *config.Config, log *logger.Logger) (*Client, error) {
	return NewWithRegisterer(cfg, log, prometheus.DefaultRegisterer)
}

// NewWithRegisterer is New with the transport metrics registered on reg.
// Building several clients on the same registerer is fine.
func NewWithRegisterer(cfg *config.Config, log *logger.Logger, reg prometheus.Registerer) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := telemetry.Register(reg); err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	return NewClient(NewHTTPTransport(cfg, log), cfg.VariationPath, cfg.AllFlagsPath, log), nil
}

func (c *Client) send(ctx context.Context, path, flagKey string, user model.User) (string, error) {
	params, err := model.NewVariationParams(flagKey, &user)
	if err != nil {
		return "", err
	}
	body, err := params.Jsonfy()
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}
	return c.transport.Post(ctx, path, body)
}

// Variation evaluates one flag. Whenever the backend does not produce a
// value, the returned detail carries fallback with index -1; the error is
// non-nil only when the request or the response decoding failed.
func Variation[T model.Variation](ctx context.Context, c *Client, flagKey string, user model.User, fallback T) (model.EvalDetail[T], error) {
	if strings.TrimSpace(flagKey) == "" {
		err := model.ValidationError{Field: "featureFlagKeyName", Message: "flag key shouldn't be empty"}
		return model.FallbackEvalDetail(fallback, err.Error(), flagKey), err
	}

	text, err := c.send(ctx, c.variationPath, flagKey, user)
	if err != nil {
		return model.FallbackEvalDetail(fallback, err.Error(), flagKey), err
	}

	state, err := model.DecodeFlagState[T](text)
	if err != nil {
		telemetry.DecodeFailed("flag_state")
		c.log.Error().Err(err).Str("flag", flagKey).Msg("failed to decode flag state")
		return model.FallbackEvalDetail(fallback, err.Error(), flagKey), fmt.Errorf("failed to decode response: %w", err)
	}
	if !state.Success() || !state.Data().IsSuccess() {
		c.log.Debug().Str("flag", flagKey).Str("message", state.Message()).Msg("backend returned no variation")
		return model.FallbackEvalDetail(fallback, state.Message(), flagKey), nil
	}
	return state.Data(), nil
}

// AllFlags evaluates every flag for user. Failures are reported in the
// returned state rather than as an error, with the failure as message.
func AllFlags[T model.Variation](ctx context.Context, c *Client, user model.User) model.AllFlagStates[T] {
	text, err := c.send(ctx, c.allFlagsPath, "", user)
	if err != nil {
		c.log.Warn().Err(err).Str("user", user.Key()).Msg("all flags request failed")
		return model.EmptyAllFlagStates[T](err.Error())
	}
	states, err := model.DecodeAllFlagStates[T](text)
	if err != nil {
		telemetry.DecodeFailed("all_flag_states")
		c.log.Error().Err(err).Str("user", user.Key()).Msg("failed to decode all flag states")
		return model.EmptyAllFlagStates[T](err.Error())
	}
	return states
}
