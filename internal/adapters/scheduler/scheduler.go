package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rafaelleal24/smartpantry/internal/adapters/config"
	"github.com/rafaelleal24/smartpantry/internal/core/domain"
	"github.com/rafaelleal24/smartpantry/internal/core/logger"
	"github.com/rafaelleal24/smartpantry/internal/core/port"
	"github.com/rafaelleal24/smartpantry/internal/core/service"
	"github.com/robfig/cron/v3"
)

type Sweeper interface {
	Sweep(ctx context.Context, referenceDate time.Time) service.SweepReport
}

// Scheduler runs the expiry sweep on a cron schedule. A per-date lock keeps
// replicas from sweeping the same day twice.
type Scheduler struct {
	sweeper   Sweeper
	lock      port.LockPort
	calendar  *service.Calendar
	schedule  string
	lockTTL   time.Duration
	onStartup bool
}

func NewScheduler(sweeper Sweeper, lock port.LockPort, calendar *service.Calendar, cfg config.SweepConfig) *Scheduler {
	return &Scheduler{
		sweeper:   sweeper,
		lock:      lock,
		calendar:  calendar,
		schedule:  cfg.Schedule,
		lockTTL:   cfg.LockTTL,
		onStartup: cfg.OnStartup,
	}
}

// Start blocks until ctx is cancelled. A sweep in progress is allowed to
// finish before Start returns.
func (s *Scheduler) Start(ctx context.Context) error {
	c := cron.New(
		cron.WithLocation(s.calendar.Location()),
		cron.WithLogger(cronLogger{}),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{})),
	)

	// Shutdown does not cancel a run in progress.
	runCtx := logger.WithAttributes(context.WithoutCancel(ctx), map[string]any{
		"sweep.trigger": "schedule",
	})
	if _, err := c.AddFunc(s.schedule, func() { s.RunOnce(runCtx) }); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", s.schedule, err)
	}

	logger.Info(ctx, "sweep: scheduler started", map[string]any{
		"schedule": s.schedule,
		"timezone": s.calendar.Location().String(),
	})

	c.Start()
	if s.onStartup {
		go s.RunOnce(runCtx)
	}

	<-ctx.Done()
	<-c.Stop().Done()
	logger.Info(context.Background(), "sweep: scheduler stopped", nil)
	return nil
}

// RunOnce sweeps today's date unless another run already holds the lock for
// it. The bool reports whether a sweep ran. A sweep that could not load
// products gives the lock back.
func (s *Scheduler) RunOnce(ctx context.Context) (service.SweepReport, bool) {
	today := s.calendar.Today()
	key := fmt.Sprintf("sweep-lock:%s", today.Format(domain.DateLayout))

	acquired, err := s.lock.Acquire(ctx, key, s.lockTTL)
	if err != nil {
		logger.Error(ctx, "sweep: lock unavailable, sweeping anyway", err, map[string]any{
			"lock_key": key,
		})
		return s.sweeper.Sweep(ctx, today), true
	}
	if !acquired {
		logger.Info(ctx, "sweep: already done for date", map[string]any{
			"reference_date": today.Format(domain.DateLayout),
		})
		return service.SweepReport{}, false
	}

	report := s.sweeper.Sweep(ctx, today)
	if report.Aborted {
		// The next trigger for the same date may retry.
		if err := s.lock.Release(ctx, key); err != nil {
			logger.Warn(ctx, "sweep: lock release failed", map[string]any{
				"lock_key": key,
				"error":    err.Error(),
			})
		}
	}
	return report, true
}

type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	logger.Debug(context.Background(), "cron: "+msg, toAttributes(keysAndValues))
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	logger.Error(context.Background(), "cron: "+msg, err, toAttributes(keysAndValues))
}

func toAttributes(keysAndValues []any) map[string]any {
	attrs := make(map[string]any, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		attrs[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return attrs
}
