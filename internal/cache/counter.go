// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	counterKeyPrefix = "ratelimit:"
	counterTimeout   = 500 * time.Millisecond
)

// WindowCounter stores per-window request counts in Valkey so every server
// instance shares one rate limit. It satisfies httprate.LimitCounter.
//
// Valkey errors are logged and treated as zero counts: an unreachable
// Valkey never blocks API traffic.
type WindowCounter struct {
	client *redis.Client
	window time.Duration
}

// NewWindowCounter returns a counter backed by client.
func NewWindowCounter(client *redis.Client) *WindowCounter {
	return &WindowCounter{client: client, window: time.Minute}
}

// Config records the window length; keys expire after a few windows.
func (c *WindowCounter) Config(_ int, windowLength time.Duration) {
	c.window = windowLength
}

// Increment adds one request to key in currentWindow.
func (c *WindowCounter) Increment(key string, currentWindow time.Time) error {
	return c.IncrementBy(key, currentWindow, 1)
}

// IncrementBy adds amount requests to key in currentWindow.
func (c *WindowCounter) IncrementBy(key string, currentWindow time.Time, amount int) error {
	ctx, cancel := context.WithTimeout(context.Background(), counterTimeout)
	defer cancel()

	k := c.key(key, currentWindow)
	_, err := c.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.IncrBy(ctx, k, int64(amount))
		p.Expire(ctx, k, 3*c.window)
		return nil
	})
	if err != nil {
		slog.Warn("rate limit counter increment failed", "key", k, "error", err)
	}
	return nil
}

// Get returns the counts for the current and previous windows.
func (c *WindowCounter) Get(key string, currentWindow, previousWindow time.Time) (int, int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), counterTimeout)
	defer cancel()

	vals, err := c.client.MGet(ctx, c.key(key, currentWindow), c.key(key, previousWindow)).Result()
	if err != nil {
		slog.Warn("rate limit counter read failed", "key", key, "error", err)
		return 0, 0, nil
	}
	return toCount(vals[0]), toCount(vals[1]), nil
}

func (c *WindowCounter) key(key string, window time.Time) string {
	return counterKeyPrefix + key + ":" + strconv.FormatInt(window.Unix(), 10)
}

func toCount(v any) int {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
