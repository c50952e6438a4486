package maintenance

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/scribehq/scribe/internal/store"
	"github.com/scribehq/scribe/pkg/logger"
)

const (
	defaultSchedule      = "@every 1h"
	defaultUsedRetention = 24 * time.Hour
)

// Cleaner coordinates background maintenance: purging expired one-time codes
// and removing consumed codes past their retention window.
type Cleaner struct {
	codes *store.OtpCodes
	cron  *cron.Cron
	now   func() time.Time
	log   *zap.Logger

	schedule      string
	usedRetention time.Duration
}

// Option customises the Cleaner.
type Option func(*Cleaner)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(cleaner *Cleaner) {
		if c != nil {
			cleaner.cron = c
		}
	}
}

// WithNow overrides the clock used for cleanup comparisons.
func WithNow(now func() time.Time) Option {
	return func(cleaner *Cleaner) {
		if now != nil {
			cleaner.now = now
		}
	}
}

// WithSchedule overrides the cron specification for the cleanup job.
func WithSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		if spec != "" {
			cleaner.schedule = spec
		}
	}
}

// WithUsedRetention adjusts how long consumed codes are kept before removal.
func WithUsedRetention(d time.Duration) Option {
	return func(cleaner *Cleaner) {
		if d > 0 {
			cleaner.usedRetention = d
		}
	}
}

// NewCleaner constructs a Cleaner with sensible defaults. A nil code store
// results in the cleanup job being skipped.
func NewCleaner(codes *store.OtpCodes, opts ...Option) *Cleaner {
	cleaner := &Cleaner{
		codes:         codes,
		now:           time.Now,
		schedule:      defaultSchedule,
		usedRetention: defaultUsedRetention,
		log:           logger.WithModule("maintenance"),
	}

	for _, opt := range opts {
		opt(cleaner)
	}

	if cleaner.cron == nil {
		cleaner.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	return cleaner
}

// Start registers the cleanup job with the cron scheduler and launches it.
func (c *Cleaner) Start() error {
	if c.codes == nil {
		return nil
	}

	if _, err := c.cron.AddFunc(c.schedule, func() {
		if err := c.RunOnce(context.Background()); err != nil {
			c.log.Warn("one-time code cleanup failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}

	c.cron.Start()
	return nil
}

// Stop halts the underlying scheduler, waiting for any running jobs to complete.
func (c *Cleaner) Stop() context.Context {
	if c.cron == nil {
		return context.Background()
	}
	return c.cron.Stop()
}

// RunOnce executes the cleanup routines sequentially. Primarily used in tests
// and during graceful shutdown.
func (c *Cleaner) RunOnce(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.codes == nil {
		return nil
	}

	var errs error
	now := c.now()

	expired, err := c.codes.DeleteExpired(ctx, now)
	if err != nil {
		errs = multierr.Append(errs, err)
	}

	used, err := c.codes.DeleteUsedBefore(ctx, now.Add(-c.usedRetention))
	if err != nil {
		errs = multierr.Append(errs, err)
	}

	if errs == nil && (expired > 0 || used > 0) {
		c.log.Info("one-time codes purged",
			zap.Int64("expired", expired),
			zap.Int64("used", used),
		)
	}

	return errs
}
