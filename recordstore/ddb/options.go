/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"log/slog"
	"time"
)

// Options configures paging and retry behavior of a Store
type Options struct {
	MaxRetries   int           // Retry attempts per page for transient errors (default: 3)
	RetryBackoff time.Duration // Linear backoff step between retries (default: 1s)
	PageSize     int32         // Items per DynamoDB page (default: 100)
	Logger       *slog.Logger  // Defaults to slog.Default()
}

// Option is a functional option for configuring a Store
type Option func(*Options)

// DefaultOptions returns default store options
func DefaultOptions() Options {
	return Options{
		MaxRetries:   3,
		RetryBackoff: time.Second,
		PageSize:     100,
	}
}

// WithMaxRetries sets the maximum retry attempts
func WithMaxRetries(retries int) Option {
	return func(opts *Options) {
		opts.MaxRetries = retries
	}
}

// WithRetryBackoff sets the retry backoff duration
func WithRetryBackoff(backoff time.Duration) Option {
	return func(opts *Options) {
		opts.RetryBackoff = backoff
	}
}

// WithPageSize sets the DynamoDB page size
func WithPageSize(size int32) Option {
	return func(opts *Options) {
		opts.PageSize = size
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}
