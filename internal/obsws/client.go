// Package obsws adapts the goobs obs-websocket client to the requests obsctl issues.
package obsws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/andreykaipov/goobs"
)

// DialConfig controls connection setup.
type DialConfig struct {
	// Address is host:port, without a scheme.
	Address  string
	Password *string
	Logger   *slog.Logger
}

// Client is one identified obs-websocket session. Calls are issued sequentially.
type Client struct {
	obs    *goobs.Client
	logger *slog.Logger
}

// Dial connects and completes the Hello/Identify handshake.
func Dial(ctx context.Context, cfg DialConfig) (*Client, error) {
	address := strings.TrimSpace(cfg.Address)
	if address == "" {
		return nil, errors.New("obs-websocket address is empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	opts := []goobs.Option{goobs.WithLogger(printfLogger{logger: logger})}
	if cfg.Password != nil {
		opts = append(opts, goobs.WithPassword(*cfg.Password))
	}

	type dialResult struct {
		obs *goobs.Client
		err error
	}
	done := make(chan dialResult, 1)
	go func() {
		obs, err := goobs.New(address, opts...)
		done <- dialResult{obs: obs, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return nil, res.err
		}
		logger.Info("obs-websocket identified",
			"address", address,
			"authenticated", cfg.Password != nil,
		)
		return &Client{obs: res.obs, logger: logger}, nil
	case <-ctx.Done():
		// goobs.New has no context; release a late connection once it lands.
		go func() {
			if res := <-done; res.obs != nil {
				_ = res.obs.Disconnect()
			}
		}()
		return nil, ctx.Err()
	}
}

// Close ends the session.
func (c *Client) Close() error {
	return c.obs.Disconnect()
}

// do runs one goobs request, tagging failures with the request type.
func (c *Client) do(ctx context.Context, requestType string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", requestType, err)
	}

	start := time.Now()
	err := fn()
	c.logger.Debug("obs request",
		"request_type", requestType,
		"ok", err == nil,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", requestType, err)
	}
	return nil
}

// convert copies src into dst through its JSON form. goobs request and
// response types carry obs-websocket field names as their json tags.
func convert(src, dst any) error {
	body, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, dst)
}

// printfLogger routes goobs diagnostics into the run log.
type printfLogger struct {
	logger *slog.Logger
}

func (l printfLogger) Printf(format string, args ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)), "component", "goobs")
}
